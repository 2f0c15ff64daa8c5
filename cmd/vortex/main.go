package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/plus3/vortex/audio/ebitenaudio"
	"github.com/plus3/vortex/debugui/ebitenui"
	"github.com/plus3/vortex/game"
	"github.com/plus3/vortex/host"
	"github.com/plus3/vortex/internal/config"
	"github.com/plus3/vortex/internal/logging"
	"github.com/plus3/vortex/render/ebitensurface"
	"github.com/plus3/vortex/ui"
)

func main() {
	configPath := flag.String("config", "", "Config file to load instead of $VORTEX_CONFIG or config/vortex.toml.")
	debug := flag.Bool("debug", false, "Show the ImGui debug windows.")
	flag.Parse()

	if err := run(*configPath, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "vortex:", err)
		os.Exit(1)
	}
}

func run(configPath string, debug bool) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, configPath, err = config.Resolve()
	}
	if err != nil {
		return err
	}
	cfg.Debug.Enabled = cfg.Debug.Enabled || debug

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	background, err := ebitensurface.LoadBackground(cfg.Assets.Background)
	if err != nil {
		log.Warn("background unavailable, using a flat fill", zap.Error(err))
	}
	surface := ebitensurface.New(cfg.Window.Width, cfg.Window.Height, background)

	sounds := ebitenaudio.New(audio.NewContext(ebitenaudio.SampleRate), ebitenaudio.Assets{
		Ambient:        cfg.Assets.Ambient,
		Hit:            cfg.Assets.Hit,
		GameOver:       cfg.Assets.GameOver,
		AmbientVolume:  cfg.Assets.AmbientVolume,
		HitVolume:      cfg.Assets.HitVolume,
		GameOverVolume: cfg.Assets.GameOverVolume,
	}, log)
	defer sounds.Close() //nolint:errcheck

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

	app := &App{
		cfg:     cfg,
		log:     log,
		loop:    loop,
		session: session,
		surface: surface,
		overlay: overlay,
	}

	if cfg.Debug.Enabled {
		app.debug = ebitenui.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, session, app.start)
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	ebiten.SetTPS(cfg.Window.TPS)

	log.Info("vortex starting",
		zap.String("config", configPath),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Bool("debug", cfg.Debug.Enabled))

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	log.Info("vortex stopped", zap.Int("score", session.Score()))
	return nil
}
