package view

import (
	"fmt"
	"slices"

	"github.com/plus3/sprout/ecs"
)

// Views is an ordered, immutable tuple of child views.
// The zero value is the empty tuple.
type Views struct {
	items []View
}

// ViewsState holds the per-child states of a Views tuple together with the
// owner entity spawned for each child.
type ViewsState struct {
	states []State
	owners []ecs.Entity
}

// Tuple returns a tuple of the given views.
func Tuple(views ...View) Views {
	for _, v := range views {
		if v == nil {
			panic("view: nil child view")
		}
	}
	return Views{items: slices.Clone(views)}
}

// Len returns the number of child views
func (vs Views) Len() int {
	return len(vs.items)
}

// BuildSpans builds every child in declaration order. Each child gets its own
// owner entity, so children never write to the owner of the view that holds them.
func (vs Views) BuildSpans(cx *Cx) *ViewsState {
	state := &ViewsState{
		states: make([]State, len(vs.items)),
		owners: make([]ecs.Entity, len(vs.items)),
	}
	for i, v := range vs.items {
		state.owners[i] = cx.World().Spawn(Owner{})
		state.states[i] = v.Build(cx.child(state.owners[i]))
	}
	return state
}

// RebuildSpans rebuilds every child and reports whether any child's span changed.
func (vs Views) RebuildSpans(cx *Cx, state *ViewsState) bool {
	vs.check(state)
	changed := false
	for i, v := range vs.items {
		if v.Rebuild(cx.child(state.owners[i]), state.states[i]) {
			changed = true
		}
	}
	return changed
}

// SpanNodes returns the current span of the tuple without rebuilding.
func (vs Views) SpanNodes(state *ViewsState) NodeSpan {
	vs.check(state)
	spans := make([]NodeSpan, len(vs.items))
	for i, v := range vs.items {
		spans[i] = v.Nodes(state.states[i])
	}
	return NodeSpan{kind: SpanList, list: spans}
}

// RazeSpans razes every child in declaration order.
func (vs Views) RazeSpans(world *ecs.World, state *ViewsState) {
	vs.check(state)
	for i, v := range vs.items {
		v.Raze(world, state.states[i])
		if world.IsAlive(state.owners[i]) {
			world.Despawn(state.owners[i])
		}
	}
}

// Owners returns the owner entities of the children, in declaration order.
func (s *ViewsState) Owners() []ecs.Entity {
	return slices.Clone(s.owners)
}

func (vs Views) check(state *ViewsState) {
	if state == nil {
		panic("view: children used before build")
	}
	if len(state.states) != len(vs.items) {
		panic(fmt.Sprintf("view: children state has %d slots, tuple has %d views", len(state.states), len(vs.items)))
	}
}

type fragment struct {
	children Views
}

// Fragment groups views without creating an entity of its own.
// Its span is the list of its children's spans.
func Fragment(children ...View) View {
	return fragment{children: Tuple(children...)}
}

func (f fragment) Nodes(state State) NodeSpan {
	return f.children.SpanNodes(mustState[*ViewsState](state, "Fragment"))
}

func (f fragment) Build(cx *Cx) State {
	return f.children.BuildSpans(cx)
}

func (f fragment) Rebuild(cx *Cx, state State) bool {
	return f.children.RebuildSpans(cx, mustState[*ViewsState](state, "Fragment"))
}

func (f fragment) Raze(world *ecs.World, state State) {
	f.children.RazeSpans(world, mustState[*ViewsState](state, "Fragment"))
}

// mustState asserts the concrete type of a view state.
func mustState[S any](state State, viewName string) S {
	s, ok := state.(S)
	if !ok {
		panic(fmt.Sprintf("view: %s given foreign state %T", viewName, state))
	}
	return s
}
