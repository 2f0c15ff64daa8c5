package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/vortex/audio"
	"github.com/plus3/vortex/ecs"
	"github.com/plus3/vortex/game"
	"github.com/plus3/vortex/internal/sim"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Duration:  time.Minute,
		Seed:      7,
		FireEvery: 250 * time.Millisecond,
		Arena:     game.Arena{Width: 800, Height: 600},
		Result: &sim.Result{
			Games: []sim.Game{
				{Score: 300, Shots: 12, Ticks: 400, Duration: 8 * time.Second, Finished: true},
				{Score: 100, Shots: 3, Ticks: 90, Duration: 2 * time.Second},
			},
			Pumps:  3750,
			Sounds: audio.Counter{AmbientStarts: 2, AmbientStops: 1, Hits: 4, GameOvers: 1},
			Scheduler: &ecs.SchedulerStats{
				Steps:   490,
				Systems: []ecs.SystemStats{{Name: "MovementSystem", ExecutionCount: 490}},
			},
			Storage:   &ecs.StorageStats{TotalEntityCount: 6, ArchetypeCount: 2},
			Remaining: map[game.Kind]int{game.KindPlayer: 1, game.KindEnemy: 5},
		},
	}

	var out strings.Builder
	require.NoError(t, report.Generate(&out))
	text := out.String()

	assert.Contains(t, text, "- Game 1: score 300, 12 shots, 400 ticks, 8s\n")
	assert.Contains(t, text, "- Game 2: score 100, 3 shots, 90 ticks, 2s (unfinished)")
	assert.Contains(t, text, "- Hits: 4")
	assert.Contains(t, text, "- MovementSystem: 490 runs")
	assert.Contains(t, text, "- player: 1")
	assert.Contains(t, text, "- enemy: 5")
	assert.NotContains(t, text, "GC Pause")
}
