// Package sim plays vortex headlessly on a manual clock with an autopilot
// that shoots at enemies, by default the nearest one.
package sim

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/vortex/audio"
	"github.com/plus3/vortex/ecs"
	"github.com/plus3/vortex/game"
	"github.com/plus3/vortex/host"
	"github.com/plus3/vortex/optional"
	"github.com/plus3/vortex/ui"
)

// Epoch is the manual clock's starting time.
var Epoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

type Options struct {
	Arena  game.Arena
	Tuning game.Tuning
	// Duration is simulated time, not wall time.
	Duration  time.Duration
	Seed      uint64
	FireEvery time.Duration
	// Restarts is how many extra games are played after the first one ends.
	Restarts int
	// Step is the simulated frame interval. Zero means 16ms.
	Step time.Duration
	// Targeter picks shots. Nil means Nearest.
	Targeter Targeter
	Logger   *zap.Logger
}

// Game is the outcome of one played game.
type Game struct {
	Score    int
	Ticks    int
	Shots    int
	Duration time.Duration
	Finished bool
}

type Result struct {
	Games     []Game
	Pumps     int
	PumpTimes []time.Duration
	Sounds    audio.Counter
	Scheduler *ecs.SchedulerStats
	Storage   *ecs.StorageStats
	Remaining map[game.Kind]int
	Endings   int
}

// Run plays until the simulated duration elapses, the restarts run out or
// ctx is cancelled. A cancelled run still returns what was played.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Step <= 0 {
		opts.Step = 16 * time.Millisecond
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	clock := host.NewManualClock(Epoch)
	loop := host.NewLoop(clock, host.WithLogger(log))
	overlay := ui.NewOverlay()
	result := &Result{}

	session := game.NewSession(game.SessionConfig{
		Loop:      loop,
		Arena:     opts.Arena,
		Tuning:    opts.Tuning,
		Presenter: overlay,
		Sounds:    &result.Sounds,
		Rand:      rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		Logger:    log,
	})

	targeter := opts.Targeter
	if targeter == nil {
		targeter = Nearest{}
	}
	pilot := &autopilot{session: session, targeter: targeter, every: opts.FireEvery}
	start := func() {
		overlay.HideDialog()
		session.Start()
		pilot.reset(clock.Now())
	}
	start()

	end := Epoch.Add(opts.Duration)
	var err error
	for clock.Now().Before(end) {
		if err = ctx.Err(); err != nil {
			break
		}

		began := time.Now()
		loop.Pump()
		result.PumpTimes = append(result.PumpTimes, time.Since(began))
		result.Pumps++

		pilot.step(clock.Now())
		clock.Advance(opts.Step)

		if session.GameOver() && overlay.DialogVisible() {
			result.Games = append(result.Games, pilot.finish(clock.Now(), true))
			log.Debug("game finished", zap.Int("game", len(result.Games)), zap.Int("score", session.Score()))
			if len(result.Games) > opts.Restarts {
				break
			}
			start()
		}
	}
	if !session.GameOver() || !overlay.DialogVisible() {
		result.Games = append(result.Games, pilot.finish(clock.Now(), session.GameOver()))
	}

	result.Scheduler = session.Scheduler().GetStats()
	result.Storage = session.Storage().CollectStats()
	result.Remaining = game.Count(session.Storage())
	result.Endings = ecs.NewSingleton[game.State](session.Storage()).Get().Endings
	return result, err
}

type autopilot struct {
	session  *game.Session
	targeter Targeter
	every    time.Duration

	began    time.Time
	lastShot time.Time
	shots    int
}

func (a *autopilot) reset(now time.Time) {
	a.began = now
	a.lastShot = now
	a.shots = 0
}

func (a *autopilot) step(now time.Time) {
	if !a.session.Running() || now.Sub(a.lastShot) < a.every {
		return
	}
	a.target().IfPresent(func(p game.Position) {
		a.session.Fire(p.X, p.Y)
		a.lastShot = now
		a.shots++
	})
}

func (a *autopilot) target() optional.Option[game.Position] {
	storage := a.session.Storage()
	players := game.Entities(storage, game.KindPlayer)
	if len(players) == 0 {
		return optional.None[game.Position]()
	}
	return a.targeter.Target(players[0].Position, game.Entities(storage, game.KindEnemy))
}

func (a *autopilot) finish(now time.Time, finished bool) Game {
	return Game{
		Score:    a.session.Score(),
		Ticks:    a.session.Driver().Ticks(),
		Shots:    a.shots,
		Duration: now.Sub(a.began),
		Finished: finished,
	}
}
