package game

import (
	"image/color"
	"time"

	"github.com/plus3/vortex/ecs"
)

// Position is the entity's centre in arena coordinates.
type Position struct {
	X, Y float64
}

// Velocity is the displacement applied once per tick.
type Velocity struct {
	X, Y float64
}

// Body is the disc used for both collision and drawing.
type Body struct {
	Radius float64
	Color  color.RGBA
}

// Player tags the player's disc.
type Player struct{}

// Enemy tags an enemy.
type Enemy struct{}

// Projectile tags a fired shot.
type Projectile struct{}

// Fragment tags an explosion fragment. A zero Created means the fragment has
// already reached the end of its life.
type Fragment struct {
	Created time.Time
}

// RegisterComponents adds every game component to registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Enemy](registry)
	ecs.RegisterComponent[Projectile](registry)
	ecs.RegisterComponent[Fragment](registry)
}

// NewStorage returns a storage with the game components registered and the
// State singleton in place.
func NewStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[State](storage)
	return storage
}
