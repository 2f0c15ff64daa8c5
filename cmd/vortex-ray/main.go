package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/plus3/vortex/audio"
	"github.com/plus3/vortex/audio/synth"
	"github.com/plus3/vortex/game"
	"github.com/plus3/vortex/host"
	"github.com/plus3/vortex/internal/config"
	"github.com/plus3/vortex/internal/logging"
	"github.com/plus3/vortex/render/raysurface"
	"github.com/plus3/vortex/ui"
)

func main() {
	configPath := flag.String("config", "", "Config file to load instead of $VORTEX_CONFIG or config/vortex.toml.")
	mute := flag.Bool("mute", false, "Disable the synthesised sound.")
	flag.Parse()

	if err := run(*configPath, *mute); err != nil {
		fmt.Fprintln(os.Stderr, "vortex-ray:", err)
		os.Exit(1)
	}
}

func run(configPath string, mute bool) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, _, err = config.Resolve()
	}
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	width, height := int32(cfg.Window.Width), int32(cfg.Window.Height)
	rl.InitWindow(width, height, cfg.Window.Title)
	rl.SetTargetFPS(int32(cfg.Window.TPS))
	defer rl.CloseWindow()

	surface := raysurface.New(width, height)
	if _, err := os.Stat(cfg.Assets.Background); err == nil {
		surface.SetBackground(rl.LoadTexture(cfg.Assets.Background))
	} else {
		log.Warn("background unavailable, using a flat fill", zap.Error(err))
	}

	var sounds game.Sounds = audio.Nop{}
	if !mute {
		s := synth.New()
		if err := s.Open(); err != nil {
			log.Warn("audio unavailable", zap.Error(err))
		} else {
			defer s.Close()
			sounds = s
		}
	}

	loop := host.NewLoop(host.SystemClock{}, host.WithLogger(log))
	overlay := ui.NewOverlay()
	session := game.NewSession(game.SessionConfig{
		Loop:      loop,
		Arena:     cfg.Arena(),
		Tuning:    cfg.Tuning(),
		Surface:   surface,
		Presenter: overlay,
		Sounds:    sounds,
		Rand:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Logger:    log,
	})
	start := func() {
		overlay.HideDialog()
		session.Start()
	}

	surface.Clear()
	surface.DrawBackground()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}

		clicked := rl.IsMouseButtonPressed(rl.MouseButtonLeft)
		switch {
		case overlay.DialogVisible() && (clicked || rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace)):
			start()
		case clicked:
			session.Fire(float64(rl.GetMouseX()), float64(rl.GetMouseY()))
		}

		loop.Pump()

		rl.BeginDrawing()
		surface.Draw()
		raysurface.DrawOverlay(overlay.Snapshot(), width, height)
		rl.EndDrawing()
	}

	log.Info("vortex-ray stopped", zap.Int("score", session.Score()))
	return nil
}
