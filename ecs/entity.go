package ecs

import "fmt"

// Entity is a stable handle to an entity in a World.
// The lower 32 bits hold the slot index and the upper 32 bits the generation,
// so a handle to a despawned entity never aliases a newer one.
type Entity uint64

// NoEntity is the zero handle. It never refers to a live entity.
const NoEntity Entity = 0

func newEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the handle
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the generation from the handle
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

func (e Entity) String() string {
	if e == NoEntity {
		return "Entity(none)"
	}
	return fmt.Sprintf("%dv%d", e.Index(), e.Generation())
}

// entityAllocator hands out entity handles and recycles despawned slots.
type entityAllocator struct {
	generations []uint32
	free        []uint32
}

func (a *entityAllocator) alloc() Entity {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		return newEntity(index, a.generations[index])
	}

	// generation starts at 1 so that index 0 never produces NoEntity
	index := uint32(len(a.generations))
	a.generations = append(a.generations, 1)
	return newEntity(index, 1)
}

func (a *entityAllocator) release(e Entity) {
	index := e.Index()
	a.generations[index]++
	if a.generations[index] == 0 {
		a.generations[index] = 1
	}
	a.free = append(a.free, index)
}
