package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/vortex/ecs"
	"github.com/plus3/vortex/game"
)

// Spawn adds the session windows to storage. restart backs the panel's
// Restart button and defaults to session.Start.
func Spawn(storage *ecs.Storage, session *game.Session, restart func()) {
	if restart == nil {
		restart = session.Start
	}
	browser := NewEntityBrowser(session, 50)
	perf := NewPerformanceStats(session, 120)
	panel := &SessionPanel{session: session, restart: restart}

	storage.Spawn(ImguiItem{Render: browser.Render})
	storage.Spawn(ImguiItem{Render: perf.Render})
	storage.Spawn(ImguiItem{Render: panel.Render})
}

// EntityBrowser lists game entities by kind and inspects the selected one.
type EntityBrowser struct {
	session       *game.Session
	kinds         map[game.Kind]bool
	filterText    string
	selected      ecs.EntityId
	perPage       int
	currentPage   int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowser(session *game.Session, perPage int) *EntityBrowser {
	kinds := make(map[game.Kind]bool, len(game.Kinds))
	for _, k := range game.Kinds {
		kinds[k] = true
	}
	return &EntityBrowser{
		session:       session,
		kinds:         kinds,
		perPage:       perPage,
		sortAscending: true,
	}
}

func (eb *EntityBrowser) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(380, 420), imgui.CondOnce)
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	storage := eb.session.Storage()
	counts := game.Count(storage)
	for i, kind := range game.Kinds {
		if i > 0 {
			imgui.SameLine()
		}
		label := fmt.Sprintf("%s (%d)", kind, counts[kind])
		if eb.kinds[kind] {
			label = "[x] " + label
		} else {
			label = "[ ] " + label
		}
		if imgui.Button(label) {
			eb.kinds[kind] = !eb.kinds[kind]
		}
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	rows := entityRows(storage, eb.kinds, eb.filterText)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, 240), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("X")
		imgui.TableSetupColumn("Y")
		imgui.TableSetupColumn("Radius")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		sortRows(rows, eb.sortColumn, eb.sortAscending)

		visible, _ := page(rows, eb.currentPage, eb.perPage)
		for _, row := range visible {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), eb.selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = row.ID
			}
			imgui.TableNextColumn()
			imgui.Text(row.Kind.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f", row.Position.X))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f", row.Position.Y))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f", row.Radius))
		}

		imgui.EndTable()
	}

	if _, pages := page(rows, eb.currentPage, eb.perPage); pages > 1 {
		eb.currentPage = min(eb.currentPage, pages-1)
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, pages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < pages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))
	}

	imgui.Separator()
	eb.renderInspector(storage)
	imgui.End()
}

func (eb *EntityBrowser) renderInspector(storage *ecs.Storage) {
	entity, ok := game.Lookup(storage, eb.selected).Get()
	if !ok {
		imgui.Text("No entity selected")
		return
	}

	c := entity.Body.Color
	imgui.PushStyleColorVec4(imgui.ColText, imgui.NewVec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1))
	imgui.Text(fmt.Sprintf("■ %s %d", entity.Kind, entity.ID))
	imgui.PopStyleColor()

	imgui.Indent()
	imgui.Text(fmt.Sprintf("Position: %.2f, %.2f", entity.Position.X, entity.Position.Y))
	imgui.Text(fmt.Sprintf("Velocity: %.2f, %.2f", entity.Velocity.X, entity.Velocity.Y))
	imgui.Text(fmt.Sprintf("Radius: %.2f", entity.Body.Radius))
	if entity.Kind == game.KindFragment {
		imgui.Text(fmt.Sprintf("Age: %s", eb.session.Now().Sub(entity.Created).Round(time.Millisecond)))
	}
	imgui.Unindent()
}

// PerformanceStats shows frame times, storage shape and per-system timings.
type PerformanceStats struct {
	session    *game.Session
	frames     *History
	lastFrame  time.Time
	sortColumn int
	ascending  bool
}

func NewPerformanceStats(session *game.Session, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		session:   session,
		frames:    NewHistory(historyFrames),
		ascending: true,
	}
}

func (ps *PerformanceStats) Render() {
	now := time.Now()
	if !ps.lastFrame.IsZero() {
		ps.frames.Add(float32(now.Sub(ps.lastFrame).Seconds() * 1000))
	}
	ps.lastFrame = now

	imgui.SetNextWindowPosV(imgui.NewVec2(400, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(380, 360), imgui.CondOnce)
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.session.Storage().CollectStats()
	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if avg := ps.frames.Mean(); avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	if samples := ps.frames.Ordered(); len(samples) > 0 {
		imgui.Text("Frame Time Graph (ms)")
		imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
	}

	imgui.Separator()
	scheduler := ps.session.Scheduler().GetStats()
	imgui.Text(fmt.Sprintf("Steps: %d  Ticks: %d", scheduler.Steps, ps.session.Driver().Ticks()))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsSizingFixedFit
	if imgui.BeginTableV("Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Avg (ms)")
		imgui.TableSetupColumn("Min (ms)")
		imgui.TableSetupColumn("Max (ms)")
		imgui.TableHeadersRow()

		if sortSpecs := imgui.TableGetSortSpecs(); sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			ps.sortColumn = int(spec.ColumnIndex())
			ps.ascending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		for _, sys := range systemRows(scheduler, ps.sortColumn, ps.ascending) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", float64(sys.AvgDuration.Microseconds())/1000.0))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", float64(sys.MinDuration.Microseconds())/1000.0))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", float64(sys.MaxDuration.Microseconds())/1000.0))
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Archetype Details") {
		for _, arch := range stats.ArchetypeBreakdown {
			imgui.BulletText(fmt.Sprintf("0x%X: %d entities, %d components", arch.ID, arch.EntityCount, len(arch.ComponentTypes)))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// SessionPanel shows the game state and pokes the session.
type SessionPanel struct {
	session *game.Session
	restart func()
}

func (sp *SessionPanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 440), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 160), imgui.CondOnce)
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := sp.session
	imgui.Text(fmt.Sprintf("Score: %d", s.Score()))
	imgui.Text(fmt.Sprintf("Driver: %s", s.Driver().State()))
	imgui.Text(fmt.Sprintf("Game Over: %t", s.GameOver()))

	if imgui.Button("Spawn Enemy") {
		s.SpawnEnemy()
	}
	imgui.SameLine()
	if imgui.Button("Restart") {
		sp.restart()
	}

	imgui.End()
}
