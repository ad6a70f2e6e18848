package ecs

import (
	"reflect"
	"sort"
	"unsafe"
)

// ComponentRegistry manages component type registration for a World.
// Each World has its own registry, so independent worlds never share
// column layouts.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates a registry that already knows the
// built-in Name, Parent and Children components.
func NewComponentRegistry() *ComponentRegistry {
	r := &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
	RegisterComponent[Name](r)
	RegisterComponent[Parent](r)
	RegisterComponent[Children](r)
	return r
}

// RegisterComponent registers a component type with the given registry.
// This must be called for each component type before it can be used.
// Registering a type twice is a no-op.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions: " + t.String())
	}
	if _, ok := r.factories[t]; ok {
		return
	}
	r.factories[t] = func() column {
		return &blockColumn[T]{typ: t}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory := r.factories[t]
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

const blockSize = 64

// blockColumn stores components of type T in fixed-size blocks, so growing
// the column never moves existing values.
type blockColumn[T any] struct {
	typ    reflect.Type
	blocks []*[blockSize]T
}

func (c *blockColumn[T]) Type() reflect.Type {
	return c.typ
}

func (c *blockColumn[T]) Set(slot int, value any) {
	var concrete T
	switch v := value.(type) {
	case *T:
		concrete = *v
	case T:
		concrete = v
	default:
		panic("component " + reflect.TypeOf(value).String() + " stored in column of " + c.typ.String())
	}

	blockIdx := slot / blockSize
	for blockIdx >= len(c.blocks) {
		c.blocks = append(c.blocks, new([blockSize]T))
	}
	c.blocks[blockIdx][slot%blockSize] = concrete
}

// Get returns a pointer to the component in the slot.
func (c *blockColumn[T]) Get(slot int) any {
	blockIdx := slot / blockSize
	if slot < 0 || blockIdx >= len(c.blocks) {
		return nil
	}
	return &c.blocks[blockIdx][slot%blockSize]
}

// Free zeroes the slot so the column does not pin anything the component referenced.
func (c *blockColumn[T]) Free(slot int) {
	blockIdx := slot / blockSize
	if slot < 0 || blockIdx >= len(c.blocks) {
		return
	}
	var zero T
	c.blocks[blockIdx][slot%blockSize] = zero
}

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// componentType returns the storage type of a component value.
// Pointers are accepted and dereferenced.
func componentType(component any) reflect.Type {
	if component == nil {
		panic("nil component")
	}
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func sortTypes(types []reflect.Type) []reflect.Type {
	sort.Sort(byTypeName(types))
	return types
}

// hashTypes generates an FNV-1a hash over a sorted type set.
func hashTypes(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr(dataPointer(t))
		val := uint32(ptr)
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}
	return h
}
