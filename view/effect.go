package view

import (
	"fmt"
	"slices"

	"github.com/plus3/sprout/ecs"
)

// Effect is a side-effecting hook bound to an entity.
//
// Apply runs when the entity is first built and returns the effect's private
// state. Reapply runs on every rebuild and receives that state back; effects
// that need to update their state should return a pointer from Apply.
// Effects must not keep the target after the call returns.
type Effect interface {
	Apply(cx *Cx, target ecs.Entity) any
	Reapply(cx *Cx, target ecs.Entity, state any)
}

// EffectFunc is a stateless effect that runs the same function on apply and reapply.
type EffectFunc func(cx *Cx, target ecs.Entity)

func (f EffectFunc) Apply(cx *Cx, target ecs.Entity) any {
	f(cx, target)
	return nil
}

func (f EffectFunc) Reapply(cx *Cx, target ecs.Entity, _ any) {
	f(cx, target)
}

type statefulEffect[S any] struct {
	apply   func(cx *Cx, target ecs.Entity) S
	reapply func(cx *Cx, target ecs.Entity, state *S)
}

// Stateful builds an effect with typed state. The state returned by apply is
// stored by the element and handed to reapply by pointer.
func Stateful[S any](apply func(cx *Cx, target ecs.Entity) S, reapply func(cx *Cx, target ecs.Entity, state *S)) Effect {
	return statefulEffect[S]{apply: apply, reapply: reapply}
}

func (e statefulEffect[S]) Apply(cx *Cx, target ecs.Entity) any {
	state := new(S)
	if e.apply != nil {
		*state = e.apply(cx, target)
	}
	return state
}

func (e statefulEffect[S]) Reapply(cx *Cx, target ecs.Entity, state any) {
	if e.reapply != nil {
		e.reapply(cx, target, state.(*S))
	}
}

// Effects is an ordered, immutable list of effects.
// The zero value is the empty list.
type Effects struct {
	list []Effect
}

// EffectsState holds one state slot per effect, in declaration order.
type EffectsState []any

// NewEffects returns a list of the given effects.
func NewEffects(effects ...Effect) Effects {
	return Effects{list: slices.Clone(effects)}
}

// Len returns the number of effects
func (es Effects) Len() int {
	return len(es.list)
}

// Append returns a new list extended by e. The receiver is left unchanged.
func (es Effects) Append(e Effect) Effects {
	if e == nil {
		panic("view: nil effect")
	}
	return Effects{list: append(slices.Clip(es.list), e)}
}

// Apply applies every effect to target in declaration order.
func (es Effects) Apply(cx *Cx, target ecs.Entity) EffectsState {
	state := make(EffectsState, len(es.list))
	for i, e := range es.list {
		state[i] = e.Apply(cx, target)
	}
	return state
}

// Reapply reapplies every effect to target in declaration order.
// The state must have been produced by Apply on a list of the same shape.
func (es Effects) Reapply(cx *Cx, target ecs.Entity, state EffectsState) {
	if len(state) != len(es.list) {
		panic(fmt.Sprintf("view: effect state has %d slots, list has %d effects", len(state), len(es.list)))
	}
	for i, e := range es.list {
		e.Reapply(cx, target, state[i])
	}
}
