// Package ebitenui runs the debug windows on cimgui-go's ebiten backend.
package ebitenui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/vortex/debugui"
	"github.com/plus3/vortex/ecs"
	"github.com/plus3/vortex/game"
)

// Overlay owns the ImGui backend and the storage holding the debug windows.
// Call Update from the game's Update, and Draw after the game has drawn.
type Overlay struct {
	backend   *ebitenbackend.EbitenBackend
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[debugui.ImguiInputState]
}

// New creates the backend window. It must run before ebiten.RunGame.
func New(title string, width, height int, session *game.Session, restart func()) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	storage := debugui.NewStorage()
	debugui.Spawn(storage, session, restart)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})

	return &Overlay{
		backend:   backend,
		scheduler: scheduler,
		input:     ecs.NewSingleton[debugui.ImguiInputState](storage),
	}
}

// Update builds this frame's windows.
func (o *Overlay) Update(dt float64) {
	o.backend.BeginFrame()
	o.scheduler.Once(dt)
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}

// WantsMouse reports whether the last frame's windows claimed the mouse.
func (o *Overlay) WantsMouse() bool {
	return o.input.Get().WantCaptureMouse
}

// WantsKeyboard reports whether a debug text field has focus.
func (o *Overlay) WantsKeyboard() bool {
	return o.input.Get().WantCaptureKeyboard
}
