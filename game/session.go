package game

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/vortex/ecs"
	"github.com/plus3/vortex/host"
	"github.com/plus3/vortex/optional"
)

// Presenter is the UI the session reports to.
type Presenter interface {
	SetScore(score int)
	ShowFinalScore(score int)
	SetButtonLabel(label string)
	// EnsureHeading shows the heading unless it is already shown.
	EnsureHeading(text string)
	ShowDialog()
	HideDialog()
}

// Sounds plays the game's audio cues. All calls are fire-and-forget.
type Sounds interface {
	StartAmbient()
	StopAmbient()
	PlayHit()
	PlayGameOver()
}

// SessionConfig collects a session's collaborators. Presenter, Sounds, Surface,
// Rand and Logger are optional.
type SessionConfig struct {
	Loop      *host.Loop
	Arena     Arena
	Tuning    Tuning
	Surface   Surface
	Presenter Presenter
	Sounds    Sounds
	Rand      *rand.Rand
	Logger    *zap.Logger
	// Systems are appended after movement, collision and render.
	Systems []ecs.System
}

// Session owns a storage and its systems and runs games on a host loop.
type Session struct {
	loop      *host.Loop
	arena     Arena
	tuning    Tuning
	presenter Presenter
	sounds    Sounds
	rng       *rand.Rand
	log       *zap.Logger

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	driver    *Driver
	state     *ecs.Singleton[State]
	players   *ecs.View[struct{ *Position }]

	player      *ecs.EntityRef
	spawnTimer  host.Handle
	dialogTimer host.Handle
}

// NewSession wires the systems together. Nothing runs until Start.
func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		loop:      cfg.Loop,
		arena:     cfg.Arena,
		tuning:    cfg.Tuning,
		presenter: cfg.Presenter,
		sounds:    cfg.Sounds,
		rng:       cfg.Rand,
		log:       cfg.Logger,
	}
	if s.presenter == nil {
		s.presenter = nopPresenter{}
	}
	if s.sounds == nil {
		s.sounds = nopSounds{}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	s.storage = NewStorage()
	s.state = ecs.NewSingleton[State](s.storage)
	s.players = ecs.NewView[struct{ *Position }](s.storage)

	s.scheduler = ecs.NewScheduler(s.storage, ecs.WithClock(s.loop.Now))
	s.scheduler.Register(&MovementSystem{Arena: s.arena, Tuning: s.tuning})
	s.scheduler.Register(&CollisionSystem{Rand: s.rng, Tuning: s.tuning, Events: (*sessionEvents)(s)})
	s.scheduler.Register(&RenderSystem{Surface: cfg.Surface})
	for _, system := range cfg.Systems {
		s.scheduler.Register(system)
	}

	s.driver = NewDriver(s.loop, s.scheduler, s.log)
	return s
}

// Start begins a new game, abandoning any game in progress.
func (s *Session) Start() {
	s.loop.Cancel(s.spawnTimer)
	s.loop.Cancel(s.dialogTimer)
	s.spawnTimer, s.dialogTimer = 0, 0
	s.driver.Stop()

	state := s.state.Get()
	state.Score = 0
	state.GameOver = false

	s.storage.Clear()
	s.player = s.storage.CreateEntityRef(s.storage.Spawn(NewPlayer(s.arena, s.tuning)...))

	s.presenter.SetScore(0)
	s.spawnTimer = s.loop.Every(s.tuning.SpawnInterval, s.SpawnEnemy)
	s.sounds.StartAmbient()
	s.driver.Start()

	s.log.Info("session started",
		zap.Float64("width", s.arena.Width),
		zap.Float64("height", s.arena.Height),
		zap.Int("endings", state.Endings))
}

// playerPosition is the player's current position, absent when there is no player.
func (s *Session) playerPosition() optional.Option[Position] {
	return optional.Map(optional.FromPtr(s.players.GetRef(s.player)), func(v struct{ *Position }) Position {
		return *v.Position
	})
}

// Fire launches a projectile from the player toward (x, y). Ignored unless a
// game is running.
func (s *Session) Fire(x, y float64) {
	if !s.Running() {
		return
	}
	CreateProjectile(s.playerPosition(), Position{X: x, Y: y}, s.tuning).IfPresent(func(bundle []any) {
		s.storage.Spawn(bundle...)
	})
}

// SpawnEnemy adds one enemy aimed at the player. Without a player it does nothing.
func (s *Session) SpawnEnemy() {
	CreateEnemy(s.rng, s.arena, s.tuning, s.playerPosition()).IfPresent(func(bundle []any) {
		id := s.storage.Spawn(bundle...)
		s.log.Debug("enemy spawned", zap.Uint64("id", uint64(id)))
	})
}

func (s *Session) onHit(score int) {
	s.presenter.SetScore(score)
	s.sounds.PlayHit()
	s.log.Debug("enemy destroyed", zap.Int("score", score))
}

func (s *Session) onGameOver(score int) {
	s.loop.Cancel(s.spawnTimer)
	s.spawnTimer = 0

	s.sounds.StopAmbient()
	s.sounds.PlayGameOver()
	s.presenter.ShowFinalScore(score)
	s.presenter.SetButtonLabel("Restart")
	s.presenter.EnsureHeading("Game Over")
	s.dialogTimer = s.loop.After(s.tuning.GameOverDelay, func() {
		s.dialogTimer = 0
		s.presenter.ShowDialog()
	})

	s.log.Info("game over", zap.Int("score", score), zap.Int("ticks", s.driver.Ticks()))
}

// Score is the current game's score.
func (s *Session) Score() int {
	return s.state.Get().Score
}

// GameOver reports whether the current game has ended.
func (s *Session) GameOver() bool {
	return s.state.Get().GameOver
}

// Running reports whether the loop driver is ticking.
func (s *Session) Running() bool {
	return s.driver.State() == Running
}

// Storage exposes the entity store.
func (s *Session) Storage() *ecs.Storage {
	return s.storage
}

// Scheduler exposes the system scheduler.
func (s *Session) Scheduler() *ecs.Scheduler {
	return s.scheduler
}

// Driver exposes the loop driver.
func (s *Session) Driver() *Driver {
	return s.driver
}

// Now is the loop clock's current time.
func (s *Session) Now() time.Time {
	return s.loop.Now()
}

// Arena is the playing field the session was created with.
func (s *Session) Arena() Arena {
	return s.arena
}

type sessionEvents Session

func (e *sessionEvents) Hit(score int)   { (*Session)(e).onHit(score) }
func (e *sessionEvents) Ended(score int) { (*Session)(e).onGameOver(score) }

type nopPresenter struct{}

func (nopPresenter) SetScore(int)          {}
func (nopPresenter) ShowFinalScore(int)    {}
func (nopPresenter) SetButtonLabel(string) {}
func (nopPresenter) EnsureHeading(string)  {}
func (nopPresenter) ShowDialog()           {}
func (nopPresenter) HideDialog()           {}

type nopSounds struct{}

func (nopSounds) StartAmbient() {}
func (nopSounds) StopAmbient()  {}
func (nopSounds) PlayHit()      {}
func (nopSounds) PlayGameOver() {}
