package view_test

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panicView panics in the phases selected by its flags.
type panicView struct {
	onBuild   bool
	onRebuild *bool
	err       error
}

func (p panicView) fail() {
	if p.err != nil {
		panic(p.err)
	}
	panic("boom")
}

func (p panicView) Nodes(view.State) view.NodeSpan { return view.Empty() }

func (p panicView) Build(cx *view.Cx) view.State {
	cx.World().Spawn(Label("partial"))
	if p.onBuild {
		p.fail()
	}
	return struct{}{}
}

func (p panicView) Rebuild(*view.Cx, view.State) bool {
	if p.onRebuild != nil && *p.onRebuild {
		p.fail()
	}
	return false
}

func (p panicView) Raze(*ecs.World, view.State) {}

func TestRootLifecycle(t *testing.T) {
	w := newTestWorld()

	show := true
	root, err := view.Mount(w, view.Cond(
		func(*view.Cx) bool { return show },
		view.Leaf(Label("shown")),
		nil,
	))
	require.NoError(t, err)
	require.True(t, root.Mounted())
	assert.True(t, w.IsAlive(root.Owner()))

	leaf := root.Nodes().Entity()
	assert.Equal(t, Label("shown"), *ecs.ReadComponent[Label](w, leaf))

	changed, err := root.Rebuild()
	require.NoError(t, err)
	assert.False(t, changed)

	show = false
	changed, err = root.Rebuild()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, view.SpanEmpty, root.Nodes().Kind())

	owner := root.Owner()
	require.NoError(t, root.Unmount())
	assert.False(t, root.Mounted())
	assert.False(t, w.IsAlive(owner))
	assert.Equal(t, 0, w.Len())

	_, err = root.Rebuild()
	assert.ErrorIs(t, err, view.ErrNotMounted)
	assert.ErrorIs(t, root.Unmount(), view.ErrNotMounted)
	assert.Equal(t, view.SpanEmpty, root.Nodes().Kind())
}

func TestMountRecoversBuildPanic(t *testing.T) {
	w := newTestWorld()
	var logs bytes.Buffer

	root, err := view.Mount(w, panicView{onBuild: true}, view.WithLogger(log.New(&logs, "", 0)))
	assert.Nil(t, root)

	var lerr *view.LifecycleError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "build", lerr.Op)
	assert.Equal(t, "boom", lerr.Recovered)
	assert.Contains(t, lerr.View, "panicView")
	assert.NotEmpty(t, lerr.StackTrace)
	assert.False(t, lerr.Timestamp.IsZero())
	assert.Contains(t, logs.String(), "mount failed")

	// The owner is gone but whatever the view spawned before panicking remains.
	assert.Equal(t, 1, w.Len())
}

func TestRebuildPanicKeepsRootMounted(t *testing.T) {
	w := newTestWorld()
	sentinel := errors.New("rebuild exploded")
	fail := false

	root, err := view.Mount(w, panicView{onRebuild: &fail, err: sentinel})
	require.NoError(t, err)

	fail = true
	_, err = root.Rebuild()
	assert.ErrorIs(t, err, sentinel)
	assert.True(t, root.Mounted())

	require.NoError(t, root.Unmount())
}

func TestRebuildSystem(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)

	label := "a"
	v := view.Cond(func(*view.Cx) bool { return label == "a" }, view.Leaf(Label("a")), view.Leaf(Label("b")))

	first, err := view.Mount(w, v)
	require.NoError(t, err)
	second, err := view.Mount(w, view.Leaf(Label("static")))
	require.NoError(t, err)

	system := &view.RebuildSystem{}
	system.Add(first)
	system.Add(second)
	scheduler.Register(system)

	scheduler.Once(0.016)
	assert.Equal(t, Label("a"), *ecs.ReadComponent[Label](w, first.Nodes().Entity()))

	label = "b"
	scheduler.Once(0.016)
	assert.Equal(t, Label("b"), *ecs.ReadComponent[Label](w, first.Nodes().Entity()))

	require.NoError(t, second.Unmount())
	scheduler.Once(0.016)
	assert.Len(t, system.Roots, 1)
}
