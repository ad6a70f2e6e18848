package ecs

import (
	"iter"
	"reflect"
	"slices"
)

// Archetype holds every entity that carries exactly the same set of component types.
// Rows are stable: removing an entity frees its row for reuse instead of
// shifting the others.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	columns  []column
	entities []Entity
	free     []int
	count    int
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for idx, typ := range types {
		a.columns[idx] = registry.newColumn(typ)
	}
	return a
}

// ID returns the archetype's identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities stored in the archetype
func (a *Archetype) Len() int {
	return a.count
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.columnIndex(t) >= 0
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

func (a *Archetype) sameTypes(types []reflect.Type) bool {
	return slices.Equal(a.types, types)
}

// insert places the entity in a free row and writes its components.
// Every archetype column must receive exactly one component.
func (a *Archetype) insert(e Entity, components []any) int {
	var row int
	if n := len(a.free); n > 0 {
		row = a.free[n-1]
		a.free = a.free[:n-1]
		a.entities[row] = e
	} else {
		row = len(a.entities)
		a.entities = append(a.entities, e)
	}
	a.count++

	for _, comp := range components {
		idx := a.columnIndex(componentType(comp))
		if idx < 0 {
			panic("component " + componentType(comp).String() + " does not belong to archetype")
		}
		a.columns[idx].Set(row, comp)
	}
	return row
}

func (a *Archetype) get(row int, t reflect.Type) any {
	idx := a.columnIndex(t)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].Get(row)
}

// remove frees the row. The caller must have copied out anything it still needs.
func (a *Archetype) remove(row int) {
	for _, col := range a.columns {
		col.Free(row)
	}
	a.entities[row] = NoEntity
	a.free = append(a.free, row)
	a.count--
}

// rows yields every occupied row together with its entity.
func (a *Archetype) rows() iter.Seq2[int, Entity] {
	return func(yield func(int, Entity) bool) {
		for row, e := range a.entities {
			if e == NoEntity {
				continue
			}
			if !yield(row, e) {
				return
			}
		}
	}
}

// Entities returns an iterator over the entities stored in this archetype
func (a *Archetype) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range a.rows() {
			if !yield(e) {
				return
			}
		}
	}
}
