package game

import (
	"time"

	"github.com/plus3/vortex/ecs"
)

// MovementSystem advances every entity by its velocity once per tick. Fragments
// past their lifetime are dropped before they move, and projectiles that leave
// the arena are dropped after.
type MovementSystem struct {
	Entities ecs.Query[struct {
		ecs.EntityId
		*Position
		*Velocity
		*Body
		Fragment   *Fragment   `ecs:"optional"`
		Projectile *Projectile `ecs:"optional"`
	}]

	Arena  Arena
	Tuning Tuning
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Values() {
		if item.Fragment != nil && expired(item.Fragment.Created, frame.Now, s.Tuning.FragmentLifetime) {
			frame.Commands.Delete(item.EntityId)
			continue
		}

		item.Position.X += item.Velocity.X
		item.Position.Y += item.Velocity.Y

		if item.Projectile != nil && !s.Arena.Contains(item.Position.X, item.Position.Y, item.Body.Radius+s.Tuning.OffscreenMargin) {
			frame.Commands.Delete(item.EntityId)
		}
	}
}

func expired(created, now time.Time, lifetime time.Duration) bool {
	return created.IsZero() || now.Sub(created) >= lifetime
}
