package game

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/plus3/vortex/optional"
)

// NewEntity builds the component bundle for an entity of the given kind.
// Fragments built here carry a zero creation time and expire on the next
// movement pass; use CreateExplosion for live fragments.
func NewEntity(kind Kind, x, y, radius float64, c color.RGBA, v Velocity) []any {
	return []any{
		Position{X: x, Y: y},
		v,
		Body{Radius: radius, Color: c},
		kind.tag(),
	}
}

// NewPlayer builds the player at the centre of the arena.
func NewPlayer(arena Arena, t Tuning) []any {
	c := arena.Center()
	return NewEntity(KindPlayer, c.X, c.Y, t.PlayerRadius, colornames.Bisque, Velocity{})
}

// Heading returns the velocity of length speed pointing from one point to another.
// Coincident points give zero velocity.
func Heading(from, to Position, speed float64) Velocity {
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return Velocity{}
	}
	return Velocity{X: dx / length * speed, Y: dy / length * speed}
}

// CreateEnemy builds an enemy on a random arena edge, heading for the player.
// Without a player there is nothing to aim at and the result is absent.
func CreateEnemy(rng *rand.Rand, arena Arena, t Tuning, player optional.Option[Position]) optional.Option[[]any] {
	return optional.Map(player, func(target Position) []any {
		radius := t.EnemyMinRadius + rng.Float64()*(t.EnemyMaxRadius-t.EnemyMinRadius)

		var spawn Position
		switch rng.IntN(4) {
		case 0:
			spawn = Position{X: rng.Float64() * arena.Width, Y: 0}
		case 1:
			spawn = Position{X: rng.Float64() * arena.Width, Y: arena.Height}
		case 2:
			spawn = Position{X: 0, Y: rng.Float64() * arena.Height}
		default:
			spawn = Position{X: arena.Width, Y: rng.Float64() * arena.Height}
		}

		return NewEntity(KindEnemy, spawn.X, spawn.Y, radius, randomHue(rng), Heading(spawn, target, t.EnemySpeed))
	})
}

func randomHue(rng *rand.Rand) color.RGBA {
	r, g, b := colorful.Hsl(rng.Float64()*360, 0.5, 0.5).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// CreateProjectile builds a projectile leaving the player toward target.
func CreateProjectile(player optional.Option[Position], target Position, t Tuning) optional.Option[[]any] {
	return optional.Map(player, func(origin Position) []any {
		return NewEntity(KindProjectile, origin.X, origin.Y, t.ProjectileRadius, colornames.Green, Heading(origin, target, t.ProjectileSpeed))
	})
}

// CreateExplosion builds a burst of fragments at (x, y), each at half the source
// radius with a random direction and speed.
func CreateExplosion(rng *rand.Rand, now time.Time, x, y, radius float64, c color.RGBA, t Tuning) [][]any {
	parts := make([][]any, t.FragmentCount)
	for i := range parts {
		angle := rng.Float64() * 2 * math.Pi
		speed := rng.Float64() * t.FragmentMaxSpeed
		parts[i] = []any{
			Position{X: x, Y: y},
			Velocity{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Body{Radius: radius / 2, Color: c},
			Fragment{Created: now},
		}
	}
	return parts
}
