package ecs

import (
	"fmt"
	"reflect"
	"slices"
)

// Name is a human readable label used by diagnostics.
type Name string

func (n Name) String() string {
	return string(n)
}

// Parent points from a child entity to the entity it is attached to.
type Parent struct {
	Entity Entity
}

// Children lists the entities attached to a parent, in order.
type Children struct {
	Entities []Entity
}

var (
	parentType   = reflect.TypeFor[Parent]()
	childrenType = reflect.TypeFor[Children]()
)

// ParentOf returns the parent of e, if it has one.
func (w *World) ParentOf(e Entity) (Entity, bool) {
	p := ReadComponent[Parent](w, e)
	if p == nil {
		return NoEntity, false
	}
	return p.Entity, true
}

// ChildrenOf returns a copy of the ordered children of e.
func (w *World) ChildrenOf(e Entity) []Entity {
	c := ReadComponent[Children](w, e)
	if c == nil {
		return nil
	}
	return slices.Clone(c.Entities)
}

// NameOf returns the Name of e, or the empty string.
func (w *World) NameOf(e Entity) string {
	n := ReadComponent[Name](w, e)
	if n == nil {
		return ""
	}
	return string(*n)
}

// ReplaceChildren makes children the exact, ordered child list of parent.
// Former children that are not in the new list are detached; new children are
// detached from any previous parent first. Replacing the list with an identical
// one performs no write.
func (w *World) ReplaceChildren(parent Entity, children []Entity) {
	w.mustLocate(parent, "replace children of")

	seen := make(map[Entity]struct{}, len(children))
	for _, child := range children {
		if child == parent {
			panic(fmt.Sprintf("entity %s cannot be its own child", parent))
		}
		if _, dup := seen[child]; dup {
			panic(fmt.Sprintf("entity %s appears twice in the children of %s", child, parent))
		}
		seen[child] = struct{}{}
		w.mustLocate(child, "attach")
	}

	current := w.ChildrenOf(parent)
	if slices.Equal(current, children) {
		return
	}

	for _, old := range current {
		if _, keep := seen[old]; keep {
			continue
		}
		if w.IsAlive(old) {
			w.Remove(old, parentType)
		}
	}

	for _, child := range children {
		if p, ok := w.ParentOf(child); ok && p == parent {
			continue
		}
		w.RemoveParent(child)
		w.Insert(child, Parent{Entity: parent})
	}

	if len(children) == 0 {
		w.Remove(parent, childrenType)
		return
	}
	w.Insert(parent, Children{Entities: slices.Clone(children)})
}

// AddChild appends child to the children of parent.
func (w *World) AddChild(parent, child Entity) {
	children := w.ChildrenOf(parent)
	if slices.Contains(children, child) {
		return
	}
	w.ReplaceChildren(parent, append(children, child))
}

// RemoveParent detaches e from its parent, if any.
func (w *World) RemoveParent(e Entity) {
	w.mustLocate(e, "detach")

	parent, ok := w.ParentOf(e)
	if !ok {
		return
	}
	if w.IsAlive(parent) {
		siblings := w.ChildrenOf(parent)
		if idx := slices.Index(siblings, e); idx >= 0 {
			siblings = slices.Delete(siblings, idx, idx+1)
			if len(siblings) == 0 {
				w.Remove(parent, childrenType)
			} else {
				w.Insert(parent, Children{Entities: siblings})
			}
		}
	}
	w.Remove(e, parentType)
}

// DespawnRecursive despawns e and every entity below it in the hierarchy.
func (w *World) DespawnRecursive(e Entity) {
	for _, child := range w.ChildrenOf(e) {
		if w.IsAlive(child) {
			w.DespawnRecursive(child)
		}
	}
	w.Despawn(e)
}
