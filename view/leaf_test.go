package view_test

import (
	"testing"

	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaf(t *testing.T) {
	w := newTestWorld()
	cx := newTestCx(w)

	leaf := view.Leaf(Label("leaf"), Counter(3))
	state := leaf.Build(cx)
	e := leaf.Nodes(state).Entity()

	require.True(t, w.IsAlive(e))
	assert.Equal(t, Counter(3), *ecs.ReadComponent[Counter](w, e))

	tick := w.ChangeTick()
	assert.False(t, leaf.Rebuild(cx, state))
	assert.Equal(t, tick, w.ChangeTick())

	leaf.Raze(w, state)
	assert.False(t, w.IsAlive(e))
	assert.Panics(t, func() { leaf.Raze(w, state) })
	assert.Panics(t, func() { leaf.Rebuild(cx, state) })
}

func TestCond(t *testing.T) {
	w := newTestWorld()
	cx := newTestCx(w)

	show := true
	v := view.Cond(
		func(*view.Cx) bool { return show },
		view.Leaf(Label("yes")),
		view.Leaf(Label("no")),
	)

	state := v.Build(cx)
	yes := v.Nodes(state).Entity()
	assert.Equal(t, Label("yes"), *ecs.ReadComponent[Label](w, yes))

	assert.False(t, v.Rebuild(cx, state))

	show = false
	assert.True(t, v.Rebuild(cx, state))
	no := v.Nodes(state).Entity()
	assert.False(t, w.IsAlive(yes), "old branch is razed")
	assert.Equal(t, Label("no"), *ecs.ReadComponent[Label](w, no))

	v.Raze(w, state)
	assert.False(t, w.IsAlive(no))
}

func TestCondWithoutElse(t *testing.T) {
	w := newTestWorld()
	cx := newTestCx(w)

	show := false
	v := view.Cond(func(*view.Cx) bool { return show }, view.Leaf(Label("x")), nil)

	state := v.Build(cx)
	assert.Equal(t, view.SpanEmpty, v.Nodes(state).Kind())

	show = true
	assert.True(t, v.Rebuild(cx, state))
	assert.Equal(t, view.SpanNode, v.Nodes(state).Kind())

	v.Raze(w, state)
	assert.Equal(t, 1, w.Len(), "only the owner entity remains")
}
