package game_test

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/vortex/ecs"
	"github.com/plus3/vortex/game"
)

type world struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	events    *recordingEvents
	surface   *recordingSurface
}

func newWorld() *world {
	w := &world{
		storage: game.NewStorage(),
		events:  &recordingEvents{},
		surface: &recordingSurface{},
	}
	arena := game.Arena{Width: 800, Height: 600}
	tuning := game.DefaultTuning()

	w.scheduler = ecs.NewScheduler(w.storage)
	w.scheduler.Register(&game.MovementSystem{Arena: arena, Tuning: tuning})
	w.scheduler.Register(&game.CollisionSystem{Rand: newRand(), Tuning: tuning, Events: w.events})
	w.scheduler.Register(&game.RenderSystem{Surface: w.surface})
	return w
}

func (w *world) spawn(kind game.Kind, x, y, radius float64, v game.Velocity) ecs.EntityId {
	return w.storage.Spawn(game.NewEntity(kind, x, y, radius, color.RGBA{G: 90, A: 255}, v)...)
}

func (w *world) state() *game.State {
	return ecs.NewSingleton[game.State](w.storage).Get()
}

func TestMovementZeroVelocity(t *testing.T) {
	w := newWorld()
	id := w.spawn(game.KindEnemy, 100, 100, 10, game.Velocity{})

	for i := 0; i < 50; i++ {
		w.scheduler.Step(epoch.Add(time.Duration(i)*16*time.Millisecond), 0.016)
	}

	assert.Equal(t, &game.Position{X: 100, Y: 100}, ecs.ReadComponent[game.Position](w.storage, id))
}

func TestMovementAppliesVelocityPerTick(t *testing.T) {
	w := newWorld()
	id := w.spawn(game.KindEnemy, 100, 100, 10, game.Velocity{X: 1.5, Y: -2})

	w.scheduler.Step(epoch, 10)
	w.scheduler.Step(epoch, 0.001)

	pos := ecs.ReadComponent[game.Position](w.storage, id)
	assert.InDelta(t, 103, pos.X, 1e-9)
	assert.InDelta(t, 96, pos.Y, 1e-9)
}

func TestFragmentExpiry(t *testing.T) {
	c := color.RGBA{A: 255}

	t.Run("alive before lifetime", func(t *testing.T) {
		w := newWorld()
		for _, part := range game.CreateExplosion(newRand(), epoch, 100, 100, 20, c, game.DefaultTuning()) {
			w.storage.Spawn(part...)
		}
		w.scheduler.Step(epoch.Add(490*time.Millisecond), 0.016)
		assert.Len(t, game.Entities(w.storage, game.KindFragment), 5)
	})

	t.Run("gone after lifetime", func(t *testing.T) {
		w := newWorld()
		for _, part := range game.CreateExplosion(newRand(), epoch, 100, 100, 20, c, game.DefaultTuning()) {
			w.storage.Spawn(part...)
		}
		w.scheduler.Step(epoch.Add(510*time.Millisecond), 0.016)
		assert.Empty(t, game.Entities(w.storage, game.KindFragment))
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		w := newWorld()
		w.storage.Spawn(game.CreateExplosion(newRand(), epoch, 100, 100, 20, c, game.DefaultTuning())[0]...)
		w.scheduler.Step(epoch.Add(500*time.Millisecond), 0.016)
		assert.Empty(t, game.Entities(w.storage, game.KindFragment))
	})

	t.Run("missing creation time expires at once", func(t *testing.T) {
		w := newWorld()
		w.spawn(game.KindFragment, 100, 100, 5, game.Velocity{})
		w.scheduler.Step(epoch, 0.016)
		assert.Empty(t, game.Entities(w.storage, game.KindFragment))
	})
}

func TestMovementRemovesOffArenaProjectiles(t *testing.T) {
	w := newWorld()
	inside := w.spawn(game.KindProjectile, 400, 10, 5, game.Velocity{Y: -5})
	leaving := w.spawn(game.KindProjectile, 400, -54, 5, game.Velocity{Y: -5})
	enemy := w.spawn(game.KindEnemy, 400, -200, 10, game.Velocity{})

	w.scheduler.Step(epoch, 0.016)

	assert.True(t, w.storage.Alive(inside))
	assert.False(t, w.storage.Alive(leaving), "left the arena plus margin")
	assert.True(t, w.storage.Alive(enemy), "only projectiles are culled")
}

func TestMovementKeepsSurvivorOrder(t *testing.T) {
	w := newWorld()
	a := w.spawn(game.KindEnemy, 10, 10, 10, game.Velocity{X: 1})
	w.spawn(game.KindFragment, 20, 20, 5, game.Velocity{})
	b := w.spawn(game.KindEnemy, 30, 30, 10, game.Velocity{X: 1})

	w.scheduler.Step(epoch, 0.016)

	enemies := game.Entities(w.storage, game.KindEnemy)
	require.Len(t, enemies, 2)
	assert.Equal(t, a, enemies[0].ID)
	assert.Equal(t, b, enemies[1].ID)
}

func TestCollisionProjectileHitsEnemy(t *testing.T) {
	w := newWorld()
	w.spawn(game.KindPlayer, 400, 300, 16, game.Velocity{})
	enemy := w.spawn(game.KindEnemy, 100, 100, 20, game.Velocity{})
	// 25.5 apart after nothing moves: 25.5 - 5 - 20 = 0.5 < 1
	projectile := w.spawn(game.KindProjectile, 100, 125.5, 5, game.Velocity{})

	w.scheduler.Step(epoch, 0.016)

	assert.Equal(t, 100, w.state().Score)
	assert.False(t, w.storage.Alive(enemy))
	assert.False(t, w.storage.Alive(projectile))

	fragments := game.Entities(w.storage, game.KindFragment)
	require.Len(t, fragments, 5)
	for _, f := range fragments {
		assert.Equal(t, game.Position{X: 100, Y: 100}, f.Position)
		assert.Equal(t, 10.0, f.Body.Radius)
		assert.Equal(t, epoch, f.Created)
	}
	assert.Equal(t, []int{100}, w.events.hits)
	assert.Empty(t, w.events.ended)
}

func TestCollisionNoContactJustOutside(t *testing.T) {
	w := newWorld()
	w.spawn(game.KindEnemy, 100, 100, 20, game.Velocity{})
	w.spawn(game.KindProjectile, 100, 126, 5, game.Velocity{})

	w.scheduler.Step(epoch, 0.016)

	assert.Equal(t, 0, w.state().Score)
	assert.Len(t, game.Entities(w.storage, game.KindEnemy), 1)
}

func TestCollisionProjectileHitsOneEnemy(t *testing.T) {
	w := newWorld()
	first := w.spawn(game.KindEnemy, 100, 100, 20, game.Velocity{})
	second := w.spawn(game.KindEnemy, 110, 100, 20, game.Velocity{})
	w.spawn(game.KindProjectile, 105, 100, 5, game.Velocity{})

	w.scheduler.Step(epoch, 0.016)

	assert.Equal(t, 100, w.state().Score)
	assert.False(t, w.storage.Alive(first), "first enemy in insertion order wins")
	assert.True(t, w.storage.Alive(second))
}

func TestCollisionEnemyConsumedOnce(t *testing.T) {
	w := newWorld()
	w.spawn(game.KindEnemy, 100, 100, 20, game.Velocity{})
	p1 := w.spawn(game.KindProjectile, 100, 100, 5, game.Velocity{})
	p2 := w.spawn(game.KindProjectile, 101, 100, 5, game.Velocity{})

	w.scheduler.Step(epoch, 0.016)

	assert.Equal(t, 100, w.state().Score)
	assert.False(t, w.storage.Alive(p1))
	assert.True(t, w.storage.Alive(p2), "second projectile has nothing left to hit")
	assert.Len(t, game.Entities(w.storage, game.KindFragment), 5)
}

func TestCollisionScoreMonotonic(t *testing.T) {
	w := newWorld()
	for i := 0; i < 4; i++ {
		x := float64(100 + i*100)
		w.spawn(game.KindEnemy, x, 100, 20, game.Velocity{})
		w.spawn(game.KindProjectile, x, 100, 5, game.Velocity{})
	}

	w.scheduler.Step(epoch, 0.016)

	assert.Equal(t, 400, w.state().Score)
	assert.Equal(t, []int{100, 200, 300, 400}, w.events.hits)
}

func TestCollisionGameOverOnce(t *testing.T) {
	w := newWorld()
	w.spawn(game.KindPlayer, 400, 300, 16, game.Velocity{})
	w.spawn(game.KindEnemy, 420, 300, 10, game.Velocity{})
	w.spawn(game.KindEnemy, 380, 300, 10, game.Velocity{})

	for i := 0; i < 5; i++ {
		w.scheduler.Step(epoch, 0.016)
	}

	state := w.state()
	assert.True(t, state.GameOver)
	assert.Equal(t, 1, state.Endings)
	assert.Equal(t, []int{0}, w.events.ended)
}

func TestCollisionWithoutPlayer(t *testing.T) {
	w := newWorld()
	w.spawn(game.KindEnemy, 400, 300, 10, game.Velocity{})

	w.scheduler.Step(epoch, 0.016)
	assert.False(t, w.state().GameOver)
}

func TestRenderDrawsInInsertionOrder(t *testing.T) {
	w := newWorld()
	w.spawn(game.KindPlayer, 400, 300, 16, game.Velocity{})
	w.spawn(game.KindEnemy, 10, 20, 15, game.Velocity{})
	w.spawn(game.KindProjectile, 400, 290, 5, game.Velocity{})

	w.scheduler.Step(epoch, 0.016)

	assert.Equal(t, []string{
		"clear",
		"background",
		"circle 400,300 r16",
		"circle 10,20 r15",
		"circle 400,290 r5",
	}, w.surface.calls)
}

func TestRenderSeesCollisionChanges(t *testing.T) {
	w := newWorld()
	w.spawn(game.KindEnemy, 100, 100, 20, game.Velocity{})
	w.spawn(game.KindProjectile, 100, 100, 5, game.Velocity{})

	w.scheduler.Step(epoch, 0.016)

	// background plus five fragments, no enemy and no projectile
	assert.Len(t, w.surface.calls, 2+5)
	for _, call := range w.surface.calls[2:] {
		assert.Equal(t, "circle 100,100 r10", call)
	}
}

func TestStoreRemoval(t *testing.T) {
	w := newWorld()
	var ids []ecs.EntityId
	for i := 0; i < 10; i++ {
		ids = append(ids, w.spawn(game.KindEnemy, float64(i), 0, 10, game.Velocity{}))
	}

	assert.True(t, w.storage.Delete(ids[4]))
	assert.Equal(t, 9, w.storage.Len())
	for _, e := range game.Entities(w.storage, game.KindEnemy) {
		assert.NotEqual(t, ids[4], e.ID)
	}
}
