package engine

import (
	"context"
	"time"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
)

// Loop drives a tick function at a fixed step from a wall clock
// Elapsed time accumulates; each full step runs one tick with the step length
// A stall longer than MaxDelta is dropped instead of replayed
type Loop struct {
	Step     time.Duration
	MaxDelta time.Duration
	Clock    Clock
	Tick     func(dt float64)
	// AfterTicks runs once per wake-up that ran at least one tick
	AfterTicks func()

	last        time.Time
	accumulated time.Duration
	started     bool
}

// NewLoop creates a loop with the default step and the real clock
func NewLoop(tick func(dt float64)) *Loop {
	return &Loop{
		Step:     parameter.TickInterval,
		MaxDelta: parameter.MaxTickDelta,
		Clock:    NewTimeProvider(),
		Tick:     tick,
	}
}

// Pump reads the clock and runs every whole step elapsed since the last call
// Returns the number of ticks run
func (l *Loop) Pump() int {
	now := l.Clock.Now()
	if !l.started {
		l.started = true
		l.last = now
		return 0
	}

	elapsed := now.Sub(l.last)
	l.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > l.MaxDelta {
		elapsed = l.MaxDelta
	}
	l.accumulated += elapsed

	ticks := 0
	dt := l.Step.Seconds()
	for l.accumulated >= l.Step {
		l.accumulated -= l.Step
		l.Tick(dt)
		ticks++
	}
	if ticks > 0 && l.AfterTicks != nil {
		l.AfterTicks()
	}
	return ticks
}

// Run pumps on a ticker until ctx is cancelled
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.Step)
	defer ticker.Stop()

	l.Pump()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Pump()
		}
	}
}
