package ui_test

import (
	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/ui"
	"github.com/plus3/sprout/view"
)

type Tag string

func newTestWorld() *ecs.World {
	w := ui.NewWorld()
	ecs.RegisterComponent[Tag](w.Registry())
	return w
}

func newTestCx(w *ecs.World) *view.Cx {
	return view.NewCx(w, w.Spawn(view.Owner{}), nil)
}

// calls records effect invocations in order.
type calls []string

type traceEffect struct {
	name string
	log  *calls
}

func (e traceEffect) Apply(*view.Cx, ecs.Entity) any {
	*e.log = append(*e.log, "apply "+e.name)
	return nil
}

func (e traceEffect) Reapply(*view.Cx, ecs.Entity, any) {
	*e.log = append(*e.log, "reapply "+e.name)
}

// swapView builds two tagged entities and reports them in the order selected by *swapped.
type swapView struct {
	swapped *bool
}

type swapState struct {
	a, b    ecs.Entity
	swapped bool
}

func (v swapView) Build(cx *view.Cx) view.State {
	return &swapState{
		a:       cx.World().Spawn(Tag("a")),
		b:       cx.World().Spawn(Tag("b")),
		swapped: *v.swapped,
	}
}

func (v swapView) Rebuild(_ *view.Cx, state view.State) bool {
	s := state.(*swapState)
	if s.swapped == *v.swapped {
		return false
	}
	s.swapped = *v.swapped
	return true
}

func (v swapView) Nodes(state view.State) view.NodeSpan {
	s := state.(*swapState)
	if s.swapped {
		return view.List(view.Node(s.b), view.Node(s.a))
	}
	return view.List(view.Node(s.a), view.Node(s.b))
}

func (v swapView) Raze(world *ecs.World, state view.State) {
	s := state.(*swapState)
	world.Despawn(s.a)
	world.Despawn(s.b)
}
