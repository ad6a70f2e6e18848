package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/sprout/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityEncoding(t *testing.T) {
	w := newTestWorld()
	e := w.Spawn(Position{})

	assert.NotEqual(t, ecs.NoEntity, e)
	assert.Equal(t, uint32(0), e.Index())
	assert.Equal(t, uint32(1), e.Generation())
	assert.Equal(t, "0v1", e.String())
	assert.Equal(t, "Entity(none)", ecs.NoEntity.String())
}

func TestSpawnAndGet(t *testing.T) {
	w := newTestWorld()

	e := w.Spawn(&Position{X: 1, Y: 2}, Velocity{DX: 0.5}, Score(32))
	require.True(t, w.IsAlive(e))

	pos := ecs.ReadComponent[Position](w, e)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 1, Y: 2}, *pos)
	assert.Equal(t, Score(32), *ecs.ReadComponent[Score](w, e))
	assert.Nil(t, ecs.ReadComponent[Health](w, e))

	assert.True(t, ecs.HasComponent[Velocity](w, e))
	assert.False(t, ecs.HasComponent[Health](w, e))
	assert.Len(t, w.Types(e), 3)
}

func TestSpawnWithoutComponents(t *testing.T) {
	w := newTestWorld()

	e := w.Spawn()
	assert.True(t, w.IsAlive(e))
	assert.Empty(t, w.Types(e))

	w.Insert(e, Tag("late"))
	assert.Equal(t, Tag("late"), *ecs.ReadComponent[Tag](w, e))
}

func TestSpawnDuplicateTypesKeepsLast(t *testing.T) {
	w := newTestWorld()

	e := w.Spawn(Score(1), Score(2))
	assert.Equal(t, Score(2), *ecs.ReadComponent[Score](w, e))
	assert.Len(t, w.Types(e), 1)
}

func TestUnregisteredComponentPanics(t *testing.T) {
	w := newTestWorld()
	type unknown struct{}

	assert.PanicsWithValue(t, "component type ecs_test.unknown not registered", func() {
		w.Spawn(unknown{})
	})
}

func TestRegisterRejectsReferenceKinds(t *testing.T) {
	assert.Panics(t, func() {
		ecs.RegisterComponent[map[string]int](ecs.NewComponentRegistry())
	})
	assert.Panics(t, func() {
		ecs.RegisterComponent[*Position](ecs.NewComponentRegistry())
	})
}

func TestInsertReplacesInPlace(t *testing.T) {
	w := newTestWorld()
	e := w.Spawn(Position{X: 1})

	w.Insert(e, Position{X: 9, Y: 9})

	assert.Equal(t, Position{X: 9, Y: 9}, *ecs.ReadComponent[Position](w, e))
	assert.Len(t, w.Types(e), 1, "insert must not duplicate a component type")
}

func TestInsertMovesArchetypeKeepingHandle(t *testing.T) {
	w := newTestWorld()
	e := w.Spawn(Position{X: 3, Y: 4})
	other := w.Spawn(Position{X: 5, Y: 6})

	w.Insert(e, Velocity{DX: 1}, Health{Current: 10, Max: 10})

	require.True(t, w.IsAlive(e))
	assert.Equal(t, Position{X: 3, Y: 4}, *ecs.ReadComponent[Position](w, e))
	assert.Equal(t, Velocity{DX: 1}, *ecs.ReadComponent[Velocity](w, e))
	assert.Equal(t, Health{Current: 10, Max: 10}, *ecs.ReadComponent[Health](w, e))
	assert.Equal(t, Position{X: 5, Y: 6}, *ecs.ReadComponent[Position](w, other))
}

func TestRemoveComponent(t *testing.T) {
	w := newTestWorld()
	e := w.Spawn(Position{X: 1}, Velocity{DX: 2})

	ecs.RemoveComponent[Velocity](w, e)
	assert.False(t, ecs.HasComponent[Velocity](w, e))
	assert.Equal(t, Position{X: 1}, *ecs.ReadComponent[Position](w, e))

	// removing every component keeps the entity alive
	w.Remove(e, reflect.TypeFor[Position]())
	assert.True(t, w.IsAlive(e))
	assert.Empty(t, w.Types(e))

	tick := w.ChangeTick()
	w.Remove(e, reflect.TypeFor[Health]())
	assert.Equal(t, tick, w.ChangeTick(), "removing a missing type is not a write")
}

func TestDespawnRecyclesIndexWithNewGeneration(t *testing.T) {
	w := newTestWorld()
	e := w.Spawn(Position{})

	w.Despawn(e)
	assert.False(t, w.IsAlive(e))
	assert.Nil(t, w.Get(e, reflect.TypeFor[Position]()))

	reused := w.Spawn(Position{X: 7})
	assert.Equal(t, e.Index(), reused.Index())
	assert.NotEqual(t, e, reused)
	assert.False(t, w.IsAlive(e), "stale handle must not resolve to the new entity")
}

func TestWorldAccessFailuresPanic(t *testing.T) {
	w := newTestWorld()
	e := w.Spawn(Position{})
	w.Despawn(e)

	assert.Panics(t, func() { w.Despawn(e) })
	assert.Panics(t, func() { w.Insert(e, Score(1)) })
	assert.Panics(t, func() { w.Remove(e, reflect.TypeFor[Position]()) })
}

func TestChangeTick(t *testing.T) {
	w := newTestWorld()

	t0 := w.ChangeTick()
	e := w.Spawn(Position{})
	t1 := w.ChangeTick()
	assert.Greater(t, t1, t0)
	assert.Equal(t, t1, w.LastChanged(e))

	w.Insert(e, Position{X: 1})
	assert.Greater(t, w.ChangeTick(), t1)
	assert.Equal(t, w.ChangeTick(), w.LastChanged(e))

	_ = ecs.ReadComponent[Position](w, e)
	assert.Equal(t, w.LastChanged(e), w.ChangeTick(), "reads are not writes")
}

func TestEntitiesIteration(t *testing.T) {
	w := newTestWorld()
	spawned := map[ecs.Entity]bool{}
	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			spawned[w.Spawn(Score(i))] = true
		} else {
			spawned[w.Spawn(Score(i), Tag(fmt.Sprint(i)))] = true
		}
	}

	seen := map[ecs.Entity]bool{}
	for e := range w.Entities() {
		seen[e] = true
	}
	assert.Equal(t, spawned, seen)
	assert.Equal(t, 100, w.Len())

	archetypes := 0
	for range w.Archetypes() {
		archetypes++
	}
	assert.Equal(t, 2, archetypes)
}

func TestManyEntitiesAcrossBlocks(t *testing.T) {
	w := newTestWorld()
	var ids []ecs.Entity
	for i := 0; i < 300; i++ {
		ids = append(ids, w.Spawn(Health{Current: i, Max: 300}))
	}
	for i, e := range ids {
		assert.Equal(t, i, ecs.ReadComponent[Health](w, e).Current)
	}
}

func TestSliceComponentIsCopiedOnMove(t *testing.T) {
	w := newTestWorld()
	e := w.Spawn(Inventory{Items: []string{"sword"}})

	w.Insert(e, Score(1))

	inv := ecs.ReadComponent[Inventory](w, e)
	require.NotNil(t, inv)
	assert.Equal(t, []string{"sword"}, inv.Items)
}
