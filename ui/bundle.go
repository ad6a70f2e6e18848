package ui

import (
	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/style"
	"github.com/plus3/sprout/view"
)

// Bundle is a statically known set of components inserted together.
// An element inserts the default instance of its bundle type on the display
// entity: the zero value, or the result of Default() when the type has one.
type Bundle interface {
	Components() []any
}

// Node marks an entity as a UI node.
type Node struct{}

// Visibility controls whether a node and its descendants are drawn.
type Visibility uint8

const (
	VisibilityInherited Visibility = iota
	VisibilityVisible
	VisibilityHidden
)

// Display marks an entity as the display entity of an element and records
// the reactive owner that built it.
type Display struct {
	Owner ecs.Entity
}

// NodeBundle is the default element bundle: a UI node with a layout.
type NodeBundle struct {
	Node       Node
	Layout     style.Layout
	Visibility Visibility
}

// Components returns the node marker, layout and visibility.
func (b NodeBundle) Components() []any {
	return []any{b.Node, b.Layout, b.Visibility}
}

// Default returns a visible-by-inheritance node with a flex layout.
func (NodeBundle) Default() NodeBundle {
	return NodeBundle{Visibility: VisibilityInherited}
}

// Empty is a bundle with no components, for elements that only group children.
type Empty struct{}

// Components returns nil.
func (Empty) Components() []any {
	return nil
}

func defaultBundle[B Bundle]() B {
	var b B
	if d, ok := any(b).(interface{ Default() B }); ok {
		return d.Default()
	}
	return b
}

// RegisterComponents registers every component used by elements, views and styles.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	view.RegisterComponents(registry)
	style.RegisterComponents(registry)
	ecs.RegisterComponent[Node](registry)
	ecs.RegisterComponent[Visibility](registry)
	ecs.RegisterComponent[Display](registry)
}

// NewWorld creates a world whose registry knows every UI component.
func NewWorld() *ecs.World {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	return ecs.NewWorld(registry)
}
