package sim

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          int64
	Overruns        int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler executes systems in registration order, once per frame.
type Scheduler struct {
	resources   *Resources
	clock       Clock
	systems     []System
	systemStats []*systemStatsInternal

	lastFrame time.Time
	frames    int64
	overruns  int64
}

// NewScheduler creates a scheduler sharing resources between its systems.
// A nil clock means SystemClock.
func NewScheduler(resources *Resources, clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		resources: resources,
		clock:     clock,
		systems:   make([]System, 0),
	}
}

// Resources returns the store shared by the systems.
func (s *Scheduler) Resources() *Resources {
	return s.resources
}

// Register appends a system and initializes its Resource fields.
func (s *Scheduler) Register(system System) {
	s.initializeResources(system)
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) initializeResources(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		if !strings.HasPrefix(field.Type().Name(), "Resource[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on Resource field: " + fieldType.Name)
		}

		initMethod.Call([]reflect.Value{
			reflect.ValueOf(s.resources),
		})
	}
}

// Once executes the systems in order for a frame starting at now. The first
// system error ends the frame early; deferred commands are flushed either way.
func (s *Scheduler) Once(now time.Time) error {
	var delta time.Duration
	if !s.lastFrame.IsZero() {
		delta = now.Sub(s.lastFrame)
	}
	s.lastFrame = now
	s.frames++

	frame := newFrame(now, delta, s.resources)
	defer frame.Commands.Flush()

	for i, system := range s.systems {
		start := s.clock.Now()
		err := system.Execute(frame)
		duration := s.clock.Now().Sub(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}

		if err != nil {
			return fmt.Errorf("%s: %w", stats.name, err)
		}
	}

	return nil
}

// Run executes frames every period until done reports true, a system fails,
// or ctx is cancelled. After each frame it sleeps only what is left of the
// period; a frame that took longer is counted as an overrun and the next one
// starts immediately.
func (s *Scheduler) Run(ctx context.Context, period time.Duration, done func() bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := s.clock.Now()
		if err := s.Once(start); err != nil {
			return err
		}
		if done != nil && done() {
			return nil
		}

		elapsed := s.clock.Now().Sub(start)
		if elapsed >= period {
			s.overruns++
			continue
		}
		s.clock.Sleep(period - elapsed)
	}
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Overruns:    s.overruns,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
