// Package audio provides the game's sound cue players. Subpackages implement
// them on ebiten's audio context (mp3 assets) and on beep (synthesised tones).
package audio

// Nop plays nothing. Hosts fall back to it when no audio device or asset is
// available.
type Nop struct{}

func (Nop) StartAmbient() {}
func (Nop) StopAmbient()  {}
func (Nop) PlayHit()      {}
func (Nop) PlayGameOver() {}

// Counter counts cue calls. The headless runner reports it.
type Counter struct {
	AmbientStarts int
	AmbientStops  int
	Hits          int
	GameOvers     int
}

func (c *Counter) StartAmbient() { c.AmbientStarts++ }
func (c *Counter) StopAmbient()  { c.AmbientStops++ }
func (c *Counter) PlayHit()      { c.Hits++ }
func (c *Counter) PlayGameOver() { c.GameOvers++ }
