package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	xterm "golang.org/x/term"

	"github.com/plus3/vortex/audio"
	"github.com/plus3/vortex/audio/synth"
	"github.com/plus3/vortex/game"
	"github.com/plus3/vortex/host"
	"github.com/plus3/vortex/internal/config"
	"github.com/plus3/vortex/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "Config file to load instead of $VORTEX_CONFIG or config/vortex.toml.")
	logPath := flag.String("log", "vortex-term.log", "File to log to; the terminal belongs to the game.")
	mute := flag.Bool("mute", false, "Disable the synthesised sound.")
	flag.Parse()

	if err := run(*configPath, *logPath, *mute); err != nil {
		fmt.Fprintln(os.Stderr, "vortex-term:", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, mute bool) error {
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

	log, err := logging.NewFile(cfg.Logging, logPath)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	if !xterm.IsTerminal(int(os.Stdin.Fd())) || !xterm.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("needs an interactive terminal; try vortex-sim for headless runs")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	var sounds game.Sounds = audio.Nop{}
	if !mute {
		s := synth.New()
		if err := s.Open(); err != nil {
			// the game runs silently without a sound device
			log.Warn("audio unavailable", zap.Error(err))
		} else {
			defer s.Close()
			sounds = s
		}
	}

	loop := host.NewLoop(host.SystemClock{}, host.WithLogger(log))
	term := newTerm(screen, loop, cfg, sounds, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), log)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Window.TPS))
	defer ticker.Stop()

	log.Info("vortex-term starting", zap.Float64("width", cfg.Arena().Width), zap.Float64("height", cfg.Arena().Height))
	term.draw()
	for {
		select {
		case ev := <-events:
			if !term.handle(ev) {
				log.Info("vortex-term stopped", zap.Int("score", term.session.Score()))
				return nil
			}
		case <-interrupt:
			return nil
		case <-ticker.C:
			loop.Pump()
			term.draw()
		}
	}
}
