package game

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/vortex/ecs"
)

type playerView struct {
	*Position
	*Body
	*Player
}

type enemyView struct {
	ecs.EntityId
	*Position
	*Body
	*Enemy
}

type projectileView struct {
	ecs.EntityId
	*Position
	*Body
	*Projectile
}

// touching reports contact between two discs: the gap between their edges is
// below threshold.
func touching(p1 *Position, b1 *Body, p2 *Position, b2 *Body, threshold float64) bool {
	dist := math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
	return dist-b1.Radius-b2.Radius < threshold
}

// CollisionSystem resolves player–enemy and projectile–enemy contact.
//
// The first player–enemy contact of a session sets State.GameOver; later
// contacts are ignored. A projectile hits at most one enemy per pass, the first
// in insertion order, and an enemy already destroyed in this pass cannot be hit
// again. Scores update immediately; entity changes and Events are applied at
// the flush that follows the system.
type CollisionSystem struct {
	Players     ecs.Query[playerView]
	Enemies     ecs.Query[enemyView]
	Projectiles ecs.Query[projectileView]
	State       ecs.Singleton[State]

	Rand   *rand.Rand
	Tuning Tuning
	Events Events
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state == nil {
		return
	}
	threshold := s.Tuning.ContactThreshold

	ended := false
	s.Players.First().IfPresent(func(player playerView) {
		for enemy := range s.Enemies.Values() {
			if !state.GameOver && touching(player.Position, player.Body, enemy.Position, enemy.Body, threshold) {
				state.GameOver = true
				state.Endings++
				ended = true
			}
		}
	})

	consumed := make(map[ecs.EntityId]struct{})
	for projectile := range s.Projectiles.Values() {
		for enemy := range s.Enemies.Values() {
			if _, gone := consumed[enemy.EntityId]; gone {
				continue
			}
			if !touching(projectile.Position, projectile.Body, enemy.Position, enemy.Body, threshold) {
				continue
			}

			consumed[enemy.EntityId] = struct{}{}
			state.Score += s.Tuning.ScorePerHit
			score := state.Score

			frame.Commands.Delete(projectile.EntityId)
			frame.Commands.Delete(enemy.EntityId)
			for _, part := range CreateExplosion(s.Rand, frame.Now, enemy.Position.X, enemy.Position.Y, enemy.Body.Radius, enemy.Body.Color, s.Tuning) {
				frame.Commands.Spawn(part...)
			}
			if s.Events != nil {
				frame.Commands.Defer(func() { s.Events.Hit(score) })
			}
			break
		}
	}

	if ended && s.Events != nil {
		frame.Commands.Defer(func() { s.Events.Ended(state.Score) })
	}
}
