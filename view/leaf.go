package view

import (
	"github.com/plus3/sprout/ecs"
)

type leafState struct {
	entity ecs.Entity
	razed  bool
}

type leaf struct {
	components []any
}

// Leaf is a view that spawns one entity carrying the given components.
// The entity is despawned when the view is razed.
func Leaf(components ...any) View {
	return leaf{components: components}
}

func (l leaf) Nodes(state State) NodeSpan {
	return Node(mustState[*leafState](state, "Leaf").entity)
}

func (l leaf) Build(cx *Cx) State {
	return &leafState{entity: cx.World().Spawn(l.components...)}
}

func (l leaf) Rebuild(_ *Cx, state State) bool {
	s := mustState[*leafState](state, "Leaf")
	if s.razed {
		panic("view: Leaf rebuilt after raze")
	}
	return false
}

func (l leaf) Raze(world *ecs.World, state State) {
	s := mustState[*leafState](state, "Leaf")
	if s.razed {
		panic("view: Leaf razed twice")
	}
	s.razed = true
	if world.IsAlive(s.entity) {
		world.Despawn(s.entity)
	}
}

type condState struct {
	branch bool
	state  State
}

type cond struct {
	test func(cx *Cx) bool
	then View
	els  View
}

// Cond shows then while test returns true and els otherwise. A nil branch shows nothing.
// The test is evaluated on build and on every rebuild; switching branches razes the
// old branch and reports a span change.
func Cond(test func(cx *Cx) bool, then, els View) View {
	return cond{test: test, then: then, els: els}
}

func (c cond) pick(branch bool) View {
	if branch {
		return c.then
	}
	return c.els
}

func (c cond) Nodes(state State) NodeSpan {
	s := mustState[*condState](state, "Cond")
	v := c.pick(s.branch)
	if v == nil {
		return Empty()
	}
	return v.Nodes(s.state)
}

func (c cond) Build(cx *Cx) State {
	s := &condState{branch: c.test(cx)}
	if v := c.pick(s.branch); v != nil {
		s.state = v.Build(cx)
	}
	return s
}

func (c cond) Rebuild(cx *Cx, state State) bool {
	s := mustState[*condState](state, "Cond")
	branch := c.test(cx)
	if branch == s.branch {
		if v := c.pick(branch); v != nil {
			return v.Rebuild(cx, s.state)
		}
		return false
	}

	if v := c.pick(s.branch); v != nil {
		v.Raze(cx.World(), s.state)
	}
	s.branch = branch
	s.state = nil
	if v := c.pick(branch); v != nil {
		s.state = v.Build(cx)
	}
	return true
}

func (c cond) Raze(world *ecs.World, state State) {
	s := mustState[*condState](state, "Cond")
	if v := c.pick(s.branch); v != nil {
		v.Raze(world, s.state)
	}
}
