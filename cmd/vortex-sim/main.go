package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/vortex/internal/config"
	"github.com/plus3/vortex/internal/logging"
	"github.com/plus3/vortex/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "Config file to load instead of $VORTEX_CONFIG or config/vortex.toml.")
	duration := flag.Duration("duration", 0, "Simulated time to play for. Overrides sim.duration.")
	seed := flag.Uint64("seed", 0, "Random seed. Overrides sim.seed.")
	script := flag.String("script", "", "Lua targeting script. Overrides sim.script.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if err := run(*configPath, *duration, *seed, *script, *gcPauseMetrics); err != nil {
		fmt.Fprintln(os.Stderr, "vortex-sim:", err)
		os.Exit(1)
	}
}

func run(configPath string, duration time.Duration, seed uint64, script string, gcPauseMetrics bool) error {
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
	if duration > 0 {
		cfg.Sim.Duration = duration
	}
	if seed != 0 {
		cfg.Sim.Seed = seed
	}
	if script != "" {
		cfg.Sim.Script = script
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting headless run",
		zap.String("config", configPath),
		zap.Duration("duration", cfg.Sim.Duration),
		zap.Uint64("seed", cfg.Sim.Seed),
		zap.String("script", cfg.Sim.Script))

	var targeter sim.Targeter
	if cfg.Sim.Script != "" {
		lt, err := sim.LoadLuaTargeter(cfg.Sim.Script, log)
		if err != nil {
			return err
		}
		defer lt.Close()
		targeter = lt
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report := &Report{
		Duration:       cfg.Sim.Duration,
		Seed:           cfg.Sim.Seed,
		FireEvery:      cfg.Sim.FireEvery,
		Script:         cfg.Sim.Script,
		Arena:          cfg.Arena(),
		GCPauseMetrics: gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	startTime := time.Now()
	result, err := sim.Run(ctx, sim.Options{
		Arena:     cfg.Arena(),
		Tuning:    cfg.Tuning(),
		Duration:  cfg.Sim.Duration,
		Seed:      cfg.Sim.Seed,
		FireEvery: cfg.Sim.FireEvery,
		Restarts:  cfg.Sim.Restarts,
		Step:      time.Second / time.Duration(cfg.Window.TPS),
		Targeter:  targeter,
		Logger:    log,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		log.Warn("run interrupted")
	}

	report.TotalTime = time.Since(startTime)
	report.Result = result
	report.PumpTime = Stats{Samples: result.PumpTimes}
	report.PumpTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("run finished", zap.Int("games", len(result.Games)), zap.Int("pumps", result.Pumps))

	fmt.Println("\n--- Vortex Headless Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}
