package ecs_test

import (
	"slices"
	"testing"

	"github.com/plus3/vortex/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movable struct {
	*Position
	*Velocity
}

type named struct {
	ecs.EntityId
	*Name
	Health *Health `ecs:"optional"`
}

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[movable](storage)

	id := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 3, DY: 4})
	other := storage.Spawn(Position{X: 5})

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(3), item.Velocity.DX)

	item.Position.X = 10
	assert.Equal(t, float32(10), ecs.ReadComponent[Position](storage, id).X, "views point into storage")

	assert.Nil(t, view.Get(other), "missing required component")

	storage.Delete(id)
	assert.Nil(t, view.Get(id))
}

func TestViewOptionalAndEntityId(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[named](storage)

	a := storage.Spawn(Name{Value: "a"})
	b := storage.Spawn(Name{Value: "b"}, Health{Current: 5})

	itemA := view.Get(a)
	require.NotNil(t, itemA)
	assert.Equal(t, a, itemA.EntityId)
	assert.Nil(t, itemA.Health)

	itemB := view.Get(b)
	require.NotNil(t, itemB)
	assert.Equal(t, b, itemB.EntityId)
	require.NotNil(t, itemB.Health)
	assert.Equal(t, 5, itemB.Health.Current)
}

func TestViewFill(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[movable](storage)

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})

	var item movable
	assert.True(t, view.Fill(id, &item))
	assert.Equal(t, float32(2), item.Velocity.DX)

	assert.False(t, view.Fill(ecs.NewEntityId(12345, 0, 0), &item))
}

func TestViewGetRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[movable](storage)

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	ref := storage.CreateEntityRef(id)

	require.NotNil(t, view.GetRef(ref))
	storage.Delete(id)
	assert.Nil(t, view.GetRef(ref))
	assert.Nil(t, view.GetRef(nil))
}

func TestViewIterInsertionOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct{ *Position }](storage)

	// alternate archetypes so archetype order and insertion order differ
	storage.Spawn(Position{X: 1})
	storage.Spawn(Position{X: 2}, Velocity{})
	storage.Spawn(Name{Value: "skip"})
	storage.Spawn(Position{X: 3})
	storage.Spawn(Position{X: 4}, Marker{})

	var xs []float32
	for item := range view.Values() {
		xs = append(xs, item.Position.X)
	}
	assert.Equal(t, []float32{1, 2, 3, 4}, xs)
}

func TestViewIterAllowsStructuralChanges(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct{ *Position }](storage)

	for i := 0; i < 5; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	seen := 0
	for id := range view.Iter() {
		seen++
		storage.Delete(id)
		storage.Spawn(Name{Value: "new"})
	}

	assert.Equal(t, 5, seen)
	assert.Empty(t, slices.Collect(view.Values()))
}

func TestViewIterEarlyBreak(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct{ *Position }](storage)
	for i := 0; i < 5; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	count := 0
	for range view.Iter() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestNewViewPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[Position](storage) }, "non-pointer fields")
	assert.Panics(t, func() { ecs.NewView[int](storage) }, "not a struct")
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"maybe"`
		}](storage)
	}, "unknown tag")
}
