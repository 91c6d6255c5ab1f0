package loop_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/tetris/loop"
	"github.com/plus3/tetris/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordStage struct {
	name  string
	order *[]string
	count int
}

func (s *recordStage) Step(frame *loop.Frame) {
	s.count++
	*s.order = append(*s.order, s.name)
}

type gameStage struct {
	game *tetris.Game
}

func (s *gameStage) Step(frame *loop.Frame) {
	s.game.Tick()
	if s.game.Over() {
		frame.Stop()
	}
}

func TestScheduler(t *testing.T) {
	t.Run("stage execution order", func(t *testing.T) {
		var order []string
		scheduler := loop.NewScheduler()
		first := &recordStage{name: "input", order: &order}
		second := &recordStage{name: "tick", order: &order}
		scheduler.Register(first)
		scheduler.Register(second)

		require.True(t, scheduler.Once(1.0/60))
		require.True(t, scheduler.Once(1.0/60))

		assert.Equal(t, []string{"input", "tick", "input", "tick"}, order)
		assert.Equal(t, 2, first.count)
		assert.Equal(t, 2, second.count)
	})

	t.Run("frame index and delta time", func(t *testing.T) {
		var seen []loop.Frame
		scheduler := loop.NewScheduler()
		scheduler.RegisterNamed("probe", loop.StageFunc(func(frame *loop.Frame) {
			seen = append(seen, *frame)
		}))

		scheduler.Once(0.5)
		scheduler.Once(0.25)

		require.Len(t, seen, 2)
		assert.Equal(t, int64(0), seen[0].Index)
		assert.Equal(t, 0.5, seen[0].DeltaTime)
		assert.Equal(t, int64(1), seen[1].Index)
		assert.Equal(t, 0.25, seen[1].DeltaTime)
	})

	t.Run("stop finishes the frame", func(t *testing.T) {
		var order []string
		scheduler := loop.NewScheduler()
		scheduler.RegisterNamed("stopper", loop.StageFunc(func(frame *loop.Frame) {
			frame.Stop()
		}))
		after := &recordStage{name: "after", order: &order}
		scheduler.Register(after)

		assert.False(t, scheduler.Once(1))
		assert.True(t, scheduler.Stopped())
		assert.Equal(t, 1, after.count)

		assert.False(t, scheduler.Once(1))
		assert.Equal(t, 1, after.count, "no frames after stop")
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		var order []string
		scheduler := loop.NewScheduler()
		stage := &recordStage{name: "tick", order: &order}
		scheduler.Register(stage)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		assert.NotZero(t, stage.count)
	})

	t.Run("game runs until over", func(t *testing.T) {
		game := tetris.New(tetris.WithSeed(1), tetris.WithLockdownMode(tetris.Classic))
		scheduler := loop.NewScheduler()
		scheduler.Register(&gameStage{game: game})
		scheduler.RegisterNamed("drop", loop.StageFunc(func(frame *loop.Frame) {
			if frame.Index%2 == 0 {
				game.HardDrop()
			}
		}))

		for scheduler.Once(1.0 / 60) {
			require.Less(t, scheduler.GetStats().Frames, int64(10000))
		}

		assert.True(t, game.Over())
		assert.Greater(t, game.Stats().Pieces, 0)
	})
}

func TestSchedulerStats(t *testing.T) {
	var order []string
	scheduler := loop.NewScheduler()
	scheduler.Register(&recordStage{name: "a", order: &order})
	scheduler.RegisterNamed("sleepy", loop.StageFunc(func(frame *loop.Frame) {
		time.Sleep(time.Millisecond)
	}))

	empty := scheduler.GetStats()
	assert.Equal(t, 2, empty.StageCount)
	assert.Zero(t, empty.Stages[0].MinDuration)

	for range 3 {
		scheduler.Once(1)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, int64(3), stats.Frames)
	require.Len(t, stats.Stages, 2)
	assert.Equal(t, "recordStage", stats.Stages[0].Name)
	assert.Equal(t, "sleepy", stats.Stages[1].Name)
	for _, s := range stats.Stages {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
		assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
	}
	assert.GreaterOrEqual(t, stats.Stages[1].MinDuration, time.Millisecond)
}
