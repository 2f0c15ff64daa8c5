package game

// State is the session-wide simulation state, kept as a storage singleton so
// systems reach it through ecs.Singleton.
type State struct {
	Score    int
	GameOver bool
	// Endings counts game-over transitions over the storage's lifetime.
	Endings int
}

// Events receives the outcomes the collision pass produces. Calls happen during
// the command flush that follows the collision system.
type Events interface {
	Hit(score int)
	Ended(score int)
}
