package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/vortex/game"
	"github.com/plus3/vortex/internal/sim"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	Seed      uint64
	FireEvery time.Duration
	Script    string
	Arena     game.Arena

	// Results
	Result         *sim.Result
	TotalTime      time.Duration
	PumpTime       Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Vortex Headless Report

## Run Configuration
- **Simulated Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Fire Every:** {{.FireEvery}}
- **Targeting:** {{if .Script}}{{.Script}}{{else}}nearest enemy{{end}}
- **Arena:** {{.Arena.Width}}x{{.Arena.Height}}

## Games
{{range $i, $g := .Result.Games}}- Game {{inc $i}}: score {{$g.Score}}, {{$g.Shots}} shots, {{$g.Ticks}} ticks, {{$g.Duration}}{{if not $g.Finished}} (unfinished){{end}}
{{end}}
## Audio Cues
- Ambient: {{.Result.Sounds.AmbientStarts}} starts, {{.Result.Sounds.AmbientStops}} stops
- Hits: {{.Result.Sounds.Hits}}
- Game Overs: {{.Result.Sounds.GameOvers}}

## Scheduler
- **Steps:** {{.Result.Scheduler.Steps}}
- **Pumps:** {{.Result.Pumps}} (avg {{.PumpTime.Avg}}, min {{.PumpTime.Min}}, max {{.PumpTime.Max}})
{{range .Result.Scheduler.Systems}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Storage
- **Live Entities:** {{.Result.Storage.TotalEntityCount}} in {{.Result.Storage.ArchetypeCount}} archetypes
{{range $kind, $n := .Result.Remaining}}- {{$kind}}: {{$n}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- **Wall Time:** {{.TotalTime}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
