package game_test

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/plus3/vortex/game"
	"github.com/plus3/vortex/host"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

type recordingSurface struct {
	calls []string
}

func (s *recordingSurface) Clear()          { s.calls = append(s.calls, "clear") }
func (s *recordingSurface) DrawBackground() { s.calls = append(s.calls, "background") }
func (s *recordingSurface) FillCircle(x, y, r float64, c color.Color) {
	s.calls = append(s.calls, fmt.Sprintf("circle %.0f,%.0f r%.0f", x, y, r))
}

type recordingPresenter struct {
	scores      []int
	finalScores []int
	label       string
	headings    []string
	dialog      bool
}

func (p *recordingPresenter) SetScore(score int)       { p.scores = append(p.scores, score) }
func (p *recordingPresenter) ShowFinalScore(score int) { p.finalScores = append(p.finalScores, score) }
func (p *recordingPresenter) SetButtonLabel(label string) {
	p.label = label
}
func (p *recordingPresenter) EnsureHeading(text string) {
	for _, h := range p.headings {
		if h == text {
			return
		}
	}
	p.headings = append(p.headings, text)
}
func (p *recordingPresenter) ShowDialog() { p.dialog = true }
func (p *recordingPresenter) HideDialog() { p.dialog = false }

type recordingSounds struct {
	ambient  bool
	hits     int
	gameOver int
}

func (s *recordingSounds) StartAmbient() { s.ambient = true }
func (s *recordingSounds) StopAmbient()  { s.ambient = false }
func (s *recordingSounds) PlayHit()      { s.hits++ }
func (s *recordingSounds) PlayGameOver() { s.gameOver++ }

type recordingEvents struct {
	hits  []int
	ended []int
}

func (e *recordingEvents) Hit(score int)   { e.hits = append(e.hits, score) }
func (e *recordingEvents) Ended(score int) { e.ended = append(e.ended, score) }

type harness struct {
	clock     *host.ManualClock
	loop      *host.Loop
	session   *game.Session
	surface   *recordingSurface
	presenter *recordingPresenter
	sounds    *recordingSounds
}

func newHarness() *harness {
	h := &harness{
		clock:     host.NewManualClock(epoch),
		surface:   &recordingSurface{},
		presenter: &recordingPresenter{},
		sounds:    &recordingSounds{},
	}
	h.loop = host.NewLoop(h.clock)
	h.session = game.NewSession(game.SessionConfig{
		Loop:      h.loop,
		Arena:     game.Arena{Width: 800, Height: 600},
		Tuning:    game.DefaultTuning(),
		Surface:   h.surface,
		Presenter: h.presenter,
		Sounds:    h.sounds,
		Rand:      newRand(),
	})
	return h
}

// frame advances the clock by one 60Hz frame and pumps.
func (h *harness) frame() {
	h.loop.Pump()
	h.clock.Advance(16 * time.Millisecond)
}

func (h *harness) spawn(kind game.Kind, x, y, radius float64, v game.Velocity) {
	h.session.Storage().Spawn(game.NewEntity(kind, x, y, radius, color.RGBA{R: 200, A: 255}, v)...)
}
