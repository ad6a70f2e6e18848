package view_test

import (
	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/view"
)

type Label string

type Counter int

func newTestWorld() *ecs.World {
	registry := ecs.NewComponentRegistry()
	view.RegisterComponents(registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Counter](registry)
	return ecs.NewWorld(registry)
}

func newTestCx(w *ecs.World) *view.Cx {
	return view.NewCx(w, w.Spawn(view.Owner{}), nil)
}

// recorder collects the calls made by recordingEffect and spanView.
type recorder struct {
	calls []string
}

func (r *recorder) record(s string) {
	r.calls = append(r.calls, s)
}

// recordingEffect logs every apply and reapply under its name.
type recordingEffect struct {
	name string
	rec  *recorder
}

func (e recordingEffect) Apply(cx *view.Cx, target ecs.Entity) any {
	e.rec.record("apply " + e.name)
	return new(int)
}

func (e recordingEffect) Reapply(cx *view.Cx, target ecs.Entity, state any) {
	*state.(*int)++
	e.rec.record("reapply " + e.name)
}

// spanView spawns a fixed set of entities and exposes them in the order given
// by a shared permutation, so tests can reorder the span between rebuilds.
type spanView struct {
	labels []string
	order  *[]int
}

type spanViewState struct {
	entities []ecs.Entity
	last     []int
}

func (v spanView) Build(cx *view.Cx) view.State {
	s := &spanViewState{}
	for _, l := range v.labels {
		s.entities = append(s.entities, cx.World().Spawn(Label(l)))
	}
	s.last = append([]int(nil), (*v.order)...)
	return s
}

func (v spanView) Rebuild(cx *view.Cx, state view.State) bool {
	s := state.(*spanViewState)
	changed := len(s.last) != len(*v.order)
	for i := range s.last {
		if changed || s.last[i] != (*v.order)[i] {
			changed = true
			break
		}
	}
	s.last = append(s.last[:0], (*v.order)...)
	return changed
}

func (v spanView) Nodes(state view.State) view.NodeSpan {
	s := state.(*spanViewState)
	spans := make([]view.NodeSpan, 0, len(s.last))
	for _, i := range s.last {
		spans = append(spans, view.Node(s.entities[i]))
	}
	return view.List(spans...)
}

func (v spanView) Raze(world *ecs.World, state view.State) {
	for _, e := range state.(*spanViewState).entities {
		world.Despawn(e)
	}
}
