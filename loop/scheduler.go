// Package loop drives a game at a fixed step. The host owns the clock; a
// Scheduler runs its registered stages once per frame, in order, and keeps
// timing statistics for each of them.
package loop

import (
	"context"
	"reflect"
	"time"
)

// Stage is one step of a frame, such as advancing the game or feeding it
// input.
type Stage interface {
	Step(frame *Frame)
}

// StageFunc adapts a function to a Stage.
type StageFunc func(frame *Frame)

func (f StageFunc) Step(frame *Frame) { f(frame) }

// Frame is handed to every stage of one scheduler pass.
type Frame struct {
	Index     int64
	DeltaTime float64

	stopped bool
}

// Stop ends the run after the current frame. Remaining stages of the frame
// still execute.
func (f *Frame) Stop() {
	f.stopped = true
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	StageCount int
	Frames     int64
	Stages     []StageStats
}

// StageStats provides execution statistics for a single stage.
type StageStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type stageStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs stages in registration order.
type Scheduler struct {
	stages     []Stage
	stageStats []*stageStatsInternal
	frames     int64
	stopped    bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		stages: make([]Stage, 0),
	}
}

// Register appends a stage, naming it after its type.
func (s *Scheduler) Register(stage Stage) {
	stageType := reflect.TypeOf(stage)
	if stageType.Kind() == reflect.Ptr {
		stageType = stageType.Elem()
	}
	s.RegisterNamed(stageType.Name(), stage)
}

// RegisterNamed appends a stage under an explicit name, which is useful
// for StageFunc values.
func (s *Scheduler) RegisterNamed(name string, stage Stage) {
	s.stages = append(s.stages, stage)
	s.stageStats = append(s.stageStats, &stageStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes all registered stages once with the given delta time. It
// returns false once any stage has called Frame.Stop, and does nothing
// after that.
func (s *Scheduler) Once(dt float64) bool {
	if s.stopped {
		return false
	}

	frame := &Frame{Index: s.frames, DeltaTime: dt}
	s.frames++

	for i, stage := range s.stages {
		start := time.Now()
		stage.Step(frame)
		duration := time.Since(start)

		stats := s.stageStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.stopped = frame.stopped
	return !s.stopped
}

// Run executes all stages at the given interval until the context is
// cancelled or a stage stops the run.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if !s.Once(dt) {
				return
			}
		}
	}
}

// Stopped reports whether a stage has ended the run.
func (s *Scheduler) Stopped() bool {
	return s.stopped
}

// GetStats returns statistics about stage execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		StageCount: len(s.stages),
		Frames:     s.frames,
		Stages:     make([]StageStats, len(s.stageStats)),
	}

	for i, internal := range s.stageStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Stages[i] = StageStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}

	return stats
}
