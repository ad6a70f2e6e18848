package ecs

import "reflect"

// Singleton provides access to a single value owned by the world but not
// attached to any entity. Use it for global state such as backends or
// frame-wide input flags.
type Singleton[T any] struct {
	world *World
	value *T
}

// NewSingleton returns an accessor for the world's T singleton, creating it
// from the initializer (or the zero value) if it does not exist yet.
func NewSingleton[T any](world *World, initializer ...T) *Singleton[T] {
	s := &Singleton[T]{world: world}
	if s.lookup() == nil {
		value := new(T)
		if len(initializer) > 0 {
			*value = initializer[0]
		}
		if world.singletons == nil {
			world.singletons = make(map[reflect.Type]any)
		}
		world.singletons[reflect.TypeFor[T]()] = value
	}
	return s
}

// Get returns a pointer to the singleton value.
func (s *Singleton[T]) Get() *T {
	if s.value == nil {
		s.value = s.lookup()
	}
	return s.value
}

// Exists reports whether the singleton has been created in the world.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) lookup() *T {
	if s.world == nil {
		return nil
	}
	v, ok := s.world.singletons[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return v.(*T)
}
