package view_test

import (
	"testing"

	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectsApplyAndReapplyInOrder(t *testing.T) {
	w := newTestWorld()
	cx := newTestCx(w)
	target := w.Spawn()
	rec := &recorder{}

	effects := view.Effects{}.
		Append(recordingEffect{"a", rec}).
		Append(recordingEffect{"b", rec}).
		Append(recordingEffect{"c", rec})

	state := effects.Apply(cx, target)
	require.Len(t, state, 3)
	effects.Reapply(cx, target, state)
	effects.Reapply(cx, target, state)

	assert.Equal(t, []string{
		"apply a", "apply b", "apply c",
		"reapply a", "reapply b", "reapply c",
		"reapply a", "reapply b", "reapply c",
	}, rec.calls)
	for _, slot := range state {
		assert.Equal(t, 2, *slot.(*int), "each effect keeps its own state slot")
	}
}

func TestEffectsAppendDoesNotShareStorage(t *testing.T) {
	w := newTestWorld()
	cx := newTestCx(w)
	rec := &recorder{}

	base := view.NewEffects(recordingEffect{"base", rec})
	left := base.Append(recordingEffect{"left", rec})
	right := base.Append(recordingEffect{"right", rec})

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, left.Len())

	left.Apply(cx, w.Spawn())
	right.Apply(cx, w.Spawn())
	assert.Equal(t, []string{"apply base", "apply left", "apply base", "apply right"}, rec.calls)
}

func TestEffectsReapplyRejectsForeignState(t *testing.T) {
	w := newTestWorld()
	cx := newTestCx(w)
	rec := &recorder{}
	target := w.Spawn()

	one := view.NewEffects(recordingEffect{"a", rec})
	two := one.Append(recordingEffect{"b", rec})

	state := one.Apply(cx, target)
	assert.Panics(t, func() { two.Reapply(cx, target, state) })
}

func TestEffectsAppendNilPanics(t *testing.T) {
	assert.Panics(t, func() { view.Effects{}.Append(nil) })
}

func TestEffectFunc(t *testing.T) {
	w := newTestWorld()
	cx := newTestCx(w)
	target := w.Spawn(Counter(0))

	bump := view.EffectFunc(func(cx *view.Cx, target ecs.Entity) {
		*ecs.ReadComponent[Counter](cx.World(), target)++
	})

	effects := view.NewEffects(bump)
	state := effects.Apply(cx, target)
	effects.Reapply(cx, target, state)

	assert.Equal(t, Counter(2), *ecs.ReadComponent[Counter](w, target))
}

func TestStatefulEffect(t *testing.T) {
	w := newTestWorld()
	cx := newTestCx(w)
	target := w.Spawn()

	var seen []int
	effect := view.Stateful(
		func(cx *view.Cx, target ecs.Entity) int {
			return 10
		},
		func(cx *view.Cx, target ecs.Entity, n *int) {
			*n++
			seen = append(seen, *n)
		},
	)

	effects := view.NewEffects(effect)
	state := effects.Apply(cx, target)
	effects.Reapply(cx, target, state)
	effects.Reapply(cx, target, state)

	assert.Equal(t, []int{11, 12}, seen)
}
