package game

import "time"

// Tuning holds the gameplay constants.
type Tuning struct {
	PlayerRadius     float64
	EnemyMinRadius   float64
	EnemyMaxRadius   float64
	EnemySpeed       float64
	ProjectileSpeed  float64
	ProjectileRadius float64
	FragmentCount    int
	FragmentMaxSpeed float64
	FragmentLifetime time.Duration
	ContactThreshold float64
	ScorePerHit      int
	SpawnInterval    time.Duration
	GameOverDelay    time.Duration
	// OffscreenMargin extends the arena when deciding a projectile has left it.
	OffscreenMargin float64
}

// DefaultTuning returns the stock game constants.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerRadius:     16,
		EnemyMinRadius:   10,
		EnemyMaxRadius:   30,
		EnemySpeed:       1.5,
		ProjectileSpeed:  5,
		ProjectileRadius: 5,
		FragmentCount:    5,
		FragmentMaxSpeed: 3,
		FragmentLifetime: 500 * time.Millisecond,
		ContactThreshold: 1,
		ScorePerHit:      100,
		SpawnInterval:    time.Second,
		GameOverDelay:    1500 * time.Millisecond,
		OffscreenMargin:  50,
	}
}

// Arena is the playing field, sized once when the host starts.
type Arena struct {
	Width, Height float64
}

// Center returns the middle of the arena.
func (a Arena) Center() Position {
	return Position{X: a.Width / 2, Y: a.Height / 2}
}

// Contains reports whether (x, y) lies within the arena grown by margin on every side.
func (a Arena) Contains(x, y, margin float64) bool {
	return x >= -margin && x <= a.Width+margin && y >= -margin && y <= a.Height+margin
}
