package ecs

import "reflect"

// column is a type-erased component column of an archetype.
// Slots are addressed by the archetype row and stay stable until freed.
type column interface {
	Type() reflect.Type
	Set(slot int, value any)
	Get(slot int) any
	Free(slot int)
}
