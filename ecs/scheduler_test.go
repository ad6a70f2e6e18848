package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/sprout/ecs"
	"github.com/stretchr/testify/assert"
)

type orderSystem struct {
	name string
	log  *[]string
}

func (s *orderSystem) Execute(frame *ecs.UpdateFrame) {
	*s.log = append(*s.log, s.name)
}

type spawnSystem struct {
	executed int
}

func (s *spawnSystem) Execute(frame *ecs.UpdateFrame) {
	s.executed++
	frame.Commands.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5})
	frame.Commands.Spawn(Position{X: 3, Y: 4})
}

type countSystem struct {
	seen []int
}

func (s *countSystem) Execute(frame *ecs.UpdateFrame) {
	s.seen = append(s.seen, frame.World.Len())
}

func TestSchedulerRunsInRegistrationOrder(t *testing.T) {
	var log []string
	scheduler := ecs.NewScheduler(newTestWorld())
	scheduler.Register(&orderSystem{name: "a", log: &log})
	scheduler.Register(&orderSystem{name: "b", log: &log})
	scheduler.Register(&orderSystem{name: "c", log: &log})

	scheduler.Once(1.0 / 60.0)
	scheduler.Once(1.0 / 60.0)

	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, log)
}

func TestSchedulerFlushesCommandsAfterFrame(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)
	spawner := &spawnSystem{}
	counter := &countSystem{}
	scheduler.Register(spawner)
	scheduler.Register(counter)

	scheduler.Once(1.0)
	scheduler.Once(1.0)

	assert.Equal(t, 2, spawner.executed)
	assert.Equal(t, []int{0, 2}, counter.seen, "commands must not apply mid-frame")
	assert.Equal(t, 4, w.Len())
}

func TestSchedulerStats(t *testing.T) {
	scheduler := ecs.NewScheduler(newTestWorld())
	scheduler.Register(&spawnSystem{})
	scheduler.Register(&countSystem{})

	for i := 0; i < 3; i++ {
		scheduler.Once(1.0)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, "spawnSystem", stats.Systems[0].Name)
	assert.Equal(t, "countSystem", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
		assert.Equal(t, s.TotalDuration/3, s.AvgDuration)
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)
	counter := &countSystem{}
	scheduler.Register(counter)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
	assert.NotEmpty(t, counter.seen)
}
