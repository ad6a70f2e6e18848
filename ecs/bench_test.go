package ecs_test

import (
	"testing"

	"github.com/plus3/sprout/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	world := newTestWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkDespawn(b *testing.B) {
	world := newTestWorld()

	entities := make([]ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		entities[i] = world.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Despawn(entities[i])
	}
}

func BenchmarkInsertInPlace(b *testing.B) {
	world := newTestWorld()
	e := world.Spawn(Position{}, Velocity{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Insert(e, Position{X: float32(i)})
	}
}

func BenchmarkInsertMove(b *testing.B) {
	world := newTestWorld()
	e := world.Spawn(Position{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Insert(e, Health{Current: i})
		ecs.RemoveComponent[Health](world, e)
	}
}

func BenchmarkReadComponent(b *testing.B) {
	world := newTestWorld()
	e := world.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.ReadComponent[Position](world, e)
	}
}

func BenchmarkViewIter(b *testing.B) {
	world := newTestWorld()
	for i := 0; i < 10000; i++ {
		world.Spawn(Position{}, Velocity{DX: 1})
	}
	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for item := range view.Values() {
			item.Position.X += item.Velocity.DX
		}
	}
}

func BenchmarkReplaceChildren(b *testing.B) {
	world := newTestWorld()
	parent := world.Spawn()
	children := make([]ecs.Entity, 64)
	for i := range children {
		children[i] = world.Spawn()
	}
	reversed := make([]ecs.Entity, len(children))
	for i, c := range children {
		reversed[len(children)-1-i] = c
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			world.ReplaceChildren(parent, children)
		} else {
			world.ReplaceChildren(parent, reversed)
		}
	}
}
