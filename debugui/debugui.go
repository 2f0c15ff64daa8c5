// Package debugui provides Dear ImGui debug windows for a running session.
// The windows live as ImguiItem entities in their own storage, so restarting a
// game never clears them.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/vortex/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui wants the mouse or keyboard.
// Hosts check it before treating a click as a shot.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates ImguiInputState and defers every item's render function
// to the flush that follows it.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// NewStorage returns the storage the debug windows are spawned into.
func NewStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[ImguiItem](registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[ImguiInputState](storage)
	return storage
}
