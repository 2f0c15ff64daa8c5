package ecs_test

import (
	"testing"

	"github.com/plus3/vortex/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gameState struct {
	Running bool
	Score   int
}

func TestSingleton(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	state := ecs.NewSingleton[gameState](storage, gameState{Running: true})
	require.True(t, state.Exists())
	state.Get().Score = 100

	same := ecs.NewSingleton[gameState](storage, gameState{Score: -1})
	assert.Equal(t, 100, same.Get().Score, "initializer ignored when the singleton exists")

	var read *gameState
	require.True(t, storage.ReadSingleton(&read))
	assert.Same(t, state.Get(), read)
}

func TestAddSingletonKeepsPointers(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	state := ecs.NewSingleton[gameState](storage)
	ptr := state.Get()

	storage.AddSingleton(gameState{Score: 5})
	assert.Equal(t, 5, ptr.Score)
}

func TestSingletonLateBinding(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var state ecs.Singleton[gameState]
	state.Init(storage)
	assert.False(t, state.Exists())
	assert.Nil(t, state.Get())

	storage.AddSingleton(&gameState{Score: 3})
	require.True(t, state.Exists())
	assert.Equal(t, 3, state.Get().Score)

	var missing *Health
	assert.False(t, storage.ReadSingleton(&missing))
}
