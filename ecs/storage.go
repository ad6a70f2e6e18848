package ecs

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/kamstrup/intmap"
)

type location struct {
	archetype *Archetype
	row       int
	changed   uint64
}

// World owns entities and their components.
// A World is not safe for concurrent use; every call must come from the
// goroutine that drives it.
type World struct {
	registry   *ComponentRegistry
	allocator  entityAllocator
	locations  *intmap.Map[Entity, location]
	archetypes *intmap.Map[uint32, *Archetype]
	ordered    []*Archetype
	singletons map[reflect.Type]any
	tick       uint64
}

// NewWorld creates an empty world backed by the given component registry.
func NewWorld(registry *ComponentRegistry) *World {
	return &World{
		registry:   registry,
		locations:  intmap.New[Entity, location](256),
		archetypes: intmap.New[uint32, *Archetype](32),
	}
}

// Registry returns the component registry of the world
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// ChangeTick returns a counter that advances on every mutation of the world.
// Two equal readings mean nothing was spawned, written, removed or despawned in between.
func (w *World) ChangeTick() uint64 {
	return w.tick
}

// LastChanged returns the change tick of the most recent mutation that touched e.
func (w *World) LastChanged(e Entity) uint64 {
	loc, ok := w.locations.Get(e)
	if !ok {
		return 0
	}
	return loc.changed
}

// Len returns the number of live entities
func (w *World) Len() int {
	return w.locations.Len()
}

// IsAlive reports whether e refers to a live entity
func (w *World) IsAlive(e Entity) bool {
	return e != NoEntity && w.locations.Has(e)
}

// Spawn creates a new entity carrying the given components.
// An entity may be spawned without components.
func (w *World) Spawn(components ...any) Entity {
	components = dedupeComponents(components)
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		types = append(types, componentType(comp))
	}

	e := w.allocator.alloc()
	archetype := w.archetypeFor(sortTypes(types))
	row := archetype.insert(e, components)

	w.tick++
	w.locations.Put(e, location{archetype: archetype, row: row, changed: w.tick})
	return e
}

// Insert adds components to e, replacing any existing component of the same type.
// Panics if e is not alive.
func (w *World) Insert(e Entity, components ...any) {
	loc := w.mustLocate(e, "insert into")
	if len(components) == 0 {
		return
	}
	components = dedupeComponents(components)

	var added []any
	for _, comp := range components {
		if ptr := loc.archetype.get(loc.row, componentType(comp)); ptr != nil {
			reflect.ValueOf(ptr).Elem().Set(componentValue(comp))
			continue
		}
		added = append(added, comp)
	}

	w.tick++
	if len(added) > 0 {
		loc = w.move(e, loc, added, nil)
	}
	loc.changed = w.tick
	w.locations.Put(e, loc)
}

// Remove removes the components of the given types from e. Missing types are ignored.
// Panics if e is not alive.
func (w *World) Remove(e Entity, types ...reflect.Type) {
	loc := w.mustLocate(e, "remove from")

	var dropped []reflect.Type
	for _, t := range types {
		if loc.archetype.HasComponent(t) {
			dropped = append(dropped, t)
		}
	}
	if len(dropped) == 0 {
		return
	}

	w.tick++
	loc = w.move(e, loc, nil, dropped)
	loc.changed = w.tick
	w.locations.Put(e, loc)
}

// Despawn removes e from the world. The entity is detached from its parent and
// its children are orphaned, so no hierarchy edge refers to it afterwards.
// Panics if e is not alive.
func (w *World) Despawn(e Entity) {
	w.mustLocate(e, "despawn")

	w.RemoveParent(e)
	for _, child := range w.ChildrenOf(e) {
		if w.IsAlive(child) {
			w.Remove(child, parentType)
		}
	}

	loc, _ := w.locations.Get(e)
	loc.archetype.remove(loc.row)
	w.locations.Del(e)
	w.allocator.release(e)
	w.tick++
}

// Get returns a pointer to the component of type t on e, or nil.
func (w *World) Get(e Entity, t reflect.Type) any {
	loc, ok := w.locations.Get(e)
	if !ok {
		return nil
	}
	return loc.archetype.get(loc.row, t)
}

// Has reports whether e is alive and carries a component of type t.
func (w *World) Has(e Entity, t reflect.Type) bool {
	loc, ok := w.locations.Get(e)
	return ok && loc.archetype.HasComponent(t)
}

// Types returns the component types carried by e.
func (w *World) Types(e Entity) []reflect.Type {
	loc, ok := w.locations.Get(e)
	if !ok {
		return nil
	}
	return loc.archetype.Types()
}

// Archetypes returns an iterator over the archetypes created so far
func (w *World) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, a := range w.ordered {
			if !yield(a) {
				return
			}
		}
	}
}

// Entities returns an iterator over every live entity
func (w *World) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, a := range w.ordered {
			for e := range a.Entities() {
				if !yield(e) {
					return
				}
			}
		}
	}
}

func (w *World) mustLocate(e Entity, op string) location {
	loc, ok := w.locations.Get(e)
	if !ok {
		panic(fmt.Sprintf("cannot %s entity %s: entity does not exist", op, e))
	}
	return loc
}

// move rebuilds e in the archetype obtained by adding and dropping component types.
func (w *World) move(e Entity, loc location, added []any, dropped []reflect.Type) location {
	old := loc.archetype

	types := make([]reflect.Type, 0, len(old.types)+len(added))
	components := make([]any, 0, len(old.types)+len(added))
	for _, t := range old.types {
		if containsType(dropped, t) {
			continue
		}
		types = append(types, t)
		components = append(components, reflect.ValueOf(old.get(loc.row, t)).Elem().Interface())
	}
	for _, comp := range added {
		types = append(types, componentType(comp))
		components = append(components, comp)
	}

	archetype := w.archetypeFor(sortTypes(types))
	row := archetype.insert(e, components)
	old.remove(loc.row)
	return location{archetype: archetype, row: row, changed: loc.changed}
}

func (w *World) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	for {
		a, ok := w.archetypes.Get(id)
		if !ok {
			a = newArchetype(id, types, w.registry)
			w.archetypes.Put(id, a)
			w.ordered = append(w.ordered, a)
			return a
		}
		if a.sameTypes(types) {
			return a
		}
		// hash collision: probe the next id
		id++
	}
}

func containsType(types []reflect.Type, t reflect.Type) bool {
	for _, typ := range types {
		if typ == t {
			return true
		}
	}
	return false
}

// componentValue returns the addressable-free value of a component, dereferencing pointers.
func componentValue(component any) reflect.Value {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return v
}

// dedupeComponents keeps the last component given for each type.
func dedupeComponents(components []any) []any {
	seen := make(map[reflect.Type]int, len(components))
	out := make([]any, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		if idx, ok := seen[t]; ok {
			out[idx] = comp
			continue
		}
		seen[t] = len(out)
		out = append(out, comp)
	}
	return out
}

// ComponentReader is implemented by anything that can look up components by type.
type ComponentReader interface {
	Get(Entity, reflect.Type) any
}

// ReadComponent returns a typed pointer to the component of type T on e, or nil.
func ReadComponent[T any](reader ComponentReader, e Entity) *T {
	comp := reader.Get(e, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}

// HasComponent reports whether e carries a component of type T.
func HasComponent[T any](w *World, e Entity) bool {
	return w.Has(e, reflect.TypeFor[T]())
}

// RemoveComponent removes the component of type T from e.
func RemoveComponent[T any](w *World, e Entity) {
	w.Remove(e, reflect.TypeFor[T]())
}
