// Package ebitenaudio plays the game's cues from mp3 assets on an ebiten audio
// context.
package ebitenaudio

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"go.uber.org/zap"
)

// SampleRate is the context rate every asset is resampled to.
const SampleRate = 44100

// Assets names the cue files and their volumes. Empty paths are skipped.
type Assets struct {
	Ambient        string
	Hit            string
	GameOver       string
	AmbientVolume  float64
	HitVolume      float64
	GameOverVolume float64
}

// Sounds implements game.Sounds. Cues whose asset failed to load are silent.
type Sounds struct {
	context *audio.Context
	log     *zap.Logger

	ambient  *audio.Player
	hit      []byte
	gameOver []byte

	hitVolume      float64
	gameOverVolume float64
}

// New decodes every asset up front. Missing or broken assets are logged and
// skipped rather than failing the game.
func New(context *audio.Context, assets Assets, log *zap.Logger) *Sounds {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sounds{
		context:        context,
		log:            log,
		hitVolume:      assets.HitVolume,
		gameOverVolume: assets.GameOverVolume,
	}

	if pcm, ok := s.load("ambient", assets.Ambient); ok {
		loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		player, err := context.NewPlayer(loop)
		if err != nil {
			log.Warn("ambient player unavailable", zap.Error(err))
		} else {
			player.SetVolume(assets.AmbientVolume)
			s.ambient = player
		}
	}
	s.hit, _ = s.load("hit", assets.Hit)
	s.gameOver, _ = s.load("game over", assets.GameOver)
	return s
}

func (s *Sounds) load(name, path string) ([]byte, bool) {
	if path == "" {
		return nil, false
	}
	pcm, err := DecodeFile(path)
	if err != nil {
		s.log.Warn("audio asset skipped", zap.String("cue", name), zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return pcm, true
}

// DecodeFile decodes an mp3 file into signed 16-bit stereo PCM at SampleRate.
func DecodeFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio asset: %w", err)
	}
	defer file.Close()

	stream, err := mp3.DecodeWithSampleRate(SampleRate, file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return pcm, nil
}

// StartAmbient restarts the ambient loop from the beginning.
func (s *Sounds) StartAmbient() {
	if s.ambient == nil {
		return
	}
	if err := s.ambient.Rewind(); err != nil {
		s.log.Warn("rewind ambient", zap.Error(err))
	}
	s.ambient.Play()
}

func (s *Sounds) StopAmbient() {
	if s.ambient != nil {
		s.ambient.Pause()
	}
}

func (s *Sounds) PlayHit() {
	s.playOnce(s.hit, s.hitVolume)
}

func (s *Sounds) PlayGameOver() {
	s.playOnce(s.gameOver, s.gameOverVolume)
}

// playOnce starts a fresh player so overlapping cues do not cut each other off.
func (s *Sounds) playOnce(pcm []byte, volume float64) {
	if pcm == nil {
		return
	}
	player := s.context.NewPlayerFromBytes(pcm)
	player.SetVolume(volume)
	player.Play()
}

// Close releases the ambient player.
func (s *Sounds) Close() error {
	if s.ambient == nil {
		return nil
	}
	return s.ambient.Close()
}
