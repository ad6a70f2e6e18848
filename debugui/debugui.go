// Package debugui provides Dear ImGui panels for inspecting element trees at runtime.
// Panels are registered as ImguiItem components and drawn by ImguiSystem, which
// defers their render functions to the end of the frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sprout/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// It is stored as a singleton.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// RegisterComponents registers the debug UI components.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// ImguiSystem defers every ImguiItem render function and refreshes ImguiInputState.
type ImguiSystem struct {
	items *ecs.View[struct{ *ImguiItem }]
	input *ecs.Singleton[ImguiInputState]
}

// NewImguiSystem creates the system for world.
func NewImguiSystem(world *ecs.World) *ImguiSystem {
	return &ImguiSystem{
		items: ecs.NewView[struct{ *ImguiItem }](world),
		input: ecs.NewSingleton[ImguiInputState](world),
	}
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.input.Get()
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for item := range i.items.Values() {
		frame.Commands.Defer(item.Render)
	}
}
