package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/plus3/vortex/ecs"
	"github.com/plus3/vortex/game"
)

// EntityRow is one line of the entity browser.
type EntityRow struct {
	ID       ecs.EntityId
	Kind     game.Kind
	Position game.Position
	Radius   float64
}

func (r EntityRow) matches(filter string) bool {
	if filter == "" {
		return true
	}
	filter = strings.ToLower(filter)
	return strings.Contains(fmt.Sprintf("%d", r.ID), filter) ||
		strings.Contains(strings.ToLower(r.Kind.String()), filter)
}

// entityRows lists the live entities of the selected kinds that match filter,
// in insertion order.
func entityRows(storage *ecs.Storage, kinds map[game.Kind]bool, filter string) []EntityRow {
	var rows []EntityRow
	for _, kind := range game.Kinds {
		if !kinds[kind] {
			continue
		}
		for _, e := range game.Entities(storage, kind) {
			row := EntityRow{ID: e.ID, Kind: e.Kind, Position: e.Position, Radius: e.Body.Radius}
			if row.matches(filter) {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// sortRows orders rows by a browser column: id, kind, x, y or radius.
func sortRows(rows []EntityRow, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b EntityRow) int {
		var c int
		switch column {
		case 1:
			c = cmp.Compare(a.Kind, b.Kind)
		case 2:
			c = cmp.Compare(a.Position.X, b.Position.X)
		case 3:
			c = cmp.Compare(a.Position.Y, b.Position.Y)
		case 4:
			c = cmp.Compare(a.Radius, b.Radius)
		default:
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// page returns the rows shown on page n and the page count.
func page[T any](rows []T, n, perPage int) ([]T, int) {
	if perPage <= 0 || len(rows) == 0 {
		return rows, 1
	}
	pages := (len(rows) + perPage - 1) / perPage
	n = min(max(n, 0), pages-1)
	return rows[n*perPage : min((n+1)*perPage, len(rows))], pages
}

// History is a fixed-size ring of samples.
type History struct {
	samples []float32
	next    int
	filled  bool
}

func NewHistory(size int) *History {
	return &History{samples: make([]float32, size)}
}

func (h *History) Add(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.filled = true
	}
}

// Ordered returns the recorded samples oldest first.
func (h *History) Ordered() []float32 {
	if !h.filled {
		return slices.Clone(h.samples[:h.next])
	}
	return slices.Concat(h.samples[h.next:], h.samples[:h.next])
}

// Mean is the average of the recorded samples, or zero before the first one.
func (h *History) Mean() float32 {
	ordered := h.Ordered()
	if len(ordered) == 0 {
		return 0
	}
	var total float32
	for _, v := range ordered {
		total += v
	}
	return total / float32(len(ordered))
}

// systemRows sorts scheduler stats by a column: name, avg, min or max.
func systemRows(stats *ecs.SchedulerStats, column int, ascending bool) []ecs.SystemStats {
	rows := slices.Clone(stats.Systems)
	slices.SortStableFunc(rows, func(a, b ecs.SystemStats) int {
		var c int
		switch column {
		case 1:
			c = cmp.Compare(a.AvgDuration, b.AvgDuration)
		case 2:
			c = cmp.Compare(a.MinDuration, b.MinDuration)
		case 3:
			c = cmp.Compare(a.MaxDuration, b.MaxDuration)
		default:
			c = cmp.Compare(a.Name, b.Name)
		}
		if !ascending {
			return -c
		}
		return c
	})
	return rows
}
