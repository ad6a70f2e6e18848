// Package ui provides Element, the view that materializes a single UI node:
// a display entity carrying a component bundle, an ordered list of effects
// such as styles, and a tuple of child views attached beneath it.
package ui

import (
	"fmt"
	"slices"

	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/style"
	"github.com/plus3/sprout/view"
)

// Element is a view that generates an entity bundle.
//
// Element values are immutable: every builder method returns a new value and
// none of them touch the world.
type Element[B Bundle] struct {
	debugName string
	display   ecs.Entity
	children  view.Views
	effects   view.Effects
}

// NewElement returns an element with no name, children or effects.
// A display entity is spawned when it is built.
func NewElement[B Bundle]() Element[B] {
	return Element[B]{}
}

// ForEntity returns an element that adopts an existing entity as its display.
// The element inserts the bundle on it and despawns it when razed, so the
// caller surrenders the entity and must not reuse it.
func ForEntity[B Bundle](e ecs.Entity) Element[B] {
	if e == ecs.NoEntity {
		panic("ui: ForEntity called with NoEntity")
	}
	return Element[B]{display: e}
}

// Named sets the debug name of the element.
func (el Element[B]) Named(name string) Element[B] {
	el.debugName = name
	return el
}

// Children replaces the child views of the element.
func (el Element[B]) Children(children ...view.View) Element[B] {
	el.children = view.Tuple(children...)
	return el
}

// AddEffect appends an effect. Effects run in the order they were added.
func (el Element[B]) AddEffect(effect view.Effect) Element[B] {
	el.effects = el.effects.Append(effect)
	return el
}

// Style appends an effect that applies the given styles.
func (el Element[B]) Style(styles ...style.Style) Element[B] {
	return el.AddEffect(style.ApplyStylesEffect{Styles: style.Styles(styles...)})
}

// DebugName returns the debug name of the element
func (el Element[B]) DebugName() string {
	return el.debugName
}

// ownerName is the Name given to the reactive owner entity.
func (el Element[B]) ownerName() ecs.Name {
	if el.debugName == "" {
		return "Element"
	}
	return ecs.Name("Element::" + el.debugName)
}

type elementState struct {
	display  ecs.Entity
	children *view.ViewsState
	effects  view.EffectsState
	razed    bool
}

// DisplayEntity returns the display entity of a built element, or ecs.NoEntity
// if state did not come from an element.
func DisplayEntity(state view.State) ecs.Entity {
	s, ok := state.(*elementState)
	if !ok {
		return ecs.NoEntity
	}
	return s.display
}

func (el Element[B]) state(state view.State, op string) *elementState {
	s, ok := state.(*elementState)
	if !ok || s == nil {
		panic(fmt.Sprintf("ui: element %q: %s with foreign state %T", el.debugName, op, state))
	}
	if s.razed {
		panic(fmt.Sprintf("ui: element %q: %s after raze", el.debugName, op))
	}
	return s
}

// Nodes returns the span of a built element: its display entity.
func (el Element[B]) Nodes(state view.State) view.NodeSpan {
	return view.Node(el.state(state, "nodes").display)
}

// Build names the owner, creates or adopts the display entity, applies the
// effects and attaches the built children beneath the display.
func (el Element[B]) Build(cx *view.Cx) view.State {
	world := cx.World()
	world.Insert(cx.Owner, el.ownerName())

	components := slices.Concat(defaultBundle[B]().Components(), []any{ecs.Name(el.debugName), Display{Owner: cx.Owner}})

	display := el.display
	if display != ecs.NoEntity {
		if ecs.HasComponent[Display](world, display) {
			panic(fmt.Sprintf("ui: element %q: entity %s is already the display of another element", el.debugName, display))
		}
		world.Insert(display, components...)
	} else {
		display = world.Spawn(components...)
	}

	s := &elementState{display: display}
	s.effects = el.effects.Apply(cx, display)

	s.children = el.children.BuildSpans(cx)
	world.ReplaceChildren(display, el.children.SpanNodes(s.children).Flatten())
	return s
}

// Rebuild reapplies the effects and replaces the display's children when a
// child span changed. The element's own span never changes, so it returns false.
func (el Element[B]) Rebuild(cx *view.Cx, state view.State) bool {
	s := el.state(state, "rebuild")
	el.effects.Reapply(cx, s.display, s.effects)
	if el.children.RebuildSpans(cx, s.children) {
		cx.World().ReplaceChildren(s.display, el.children.SpanNodes(s.children).Flatten())
	}
	return false
}

// Raze detaches and despawns the display entity, then razes the children.
func (el Element[B]) Raze(world *ecs.World, state view.State) {
	s := el.state(state, "raze")
	s.razed = true

	// Remove the display first so child teardown never observes a dangling edge.
	world.RemoveParent(s.display)
	world.Despawn(s.display)
	el.children.RazeSpans(world, s.children)
}
