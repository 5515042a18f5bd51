package command

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Instant runs a closure once on Initialize and finishes immediately. Ported
// from InstantCommand.java.
type Instant struct {
	Base
	Func func()
	Reqs Requirements
}

// NewInstant builds an Instant command requiring the given subsystems.
func NewInstant(fn func(), reqs ...Subsystem) *Instant {
	return &Instant{Func: fn, Reqs: NewRequirements(reqs...)}
}

// Initialize runs the closure.
func (c *Instant) Initialize(context.Context) {
	if c.Func != nil {
		c.Func()
	}
}

// IsFinished always reports true; an Instant never outlives its own tick.
func (c *Instant) IsFinished(context.Context) bool { return true }

// Requirements returns the configured requirement set.
func (c *Instant) Requirements() Requirements { return c.Reqs }

// Run executes a closure every tick until externally cancelled. Ported from
// RunCommand.java.
type Run struct {
	Base
	Func func()
	Reqs Requirements
}

// NewRun builds a Run command requiring the given subsystems.
func NewRun(fn func(), reqs ...Subsystem) *Run {
	return &Run{Func: fn, Reqs: NewRequirements(reqs...)}
}

// Execute runs the closure.
func (c *Run) Execute(context.Context) {
	if c.Func != nil {
		c.Func()
	}
}

// Requirements returns the configured requirement set.
func (c *Run) Requirements() Requirements { return c.Reqs }

// Wait finishes once Duration has elapsed since Initialize. A Duration <= 0
// finishes on the first IsFinished check after initialization. A Wait that
// has not yet been initialized reports IsFinished=false, per spec.
//
// Clock defaults to the real wall clock; tests may inject clock.NewMock() to
// avoid sleeping.
type Wait struct {
	Base
	Duration time.Duration
	Clock    clock.Clock

	started   bool
	startTime time.Time
}

// NewWait builds a Wait command for the given duration using the real clock.
func NewWait(d time.Duration) *Wait {
	return &Wait{Duration: d, Clock: clock.New()}
}

// Initialize records the start time.
func (c *Wait) Initialize(context.Context) {
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	c.started = true
	c.startTime = c.Clock.Now()
}

// IsFinished reports whether Duration has elapsed.
func (c *Wait) IsFinished(context.Context) bool {
	if !c.started {
		return false
	}
	if c.Duration <= 0 {
		return true
	}
	return c.Clock.Now().Sub(c.startTime) >= c.Duration
}

// End resets the started flag so the command can be rescheduled cleanly.
func (c *Wait) End(context.Context, bool) {
	c.started = false
}

// WaitUntil finishes the tick its Predicate first returns true. Ported from
// WaitUntilCommand.java.
type WaitUntil struct {
	Base
	Predicate func() bool
}

// NewWaitUntil builds a WaitUntil command from a predicate.
func NewWaitUntil(pred func() bool) *WaitUntil {
	return &WaitUntil{Predicate: pred}
}

// IsFinished evaluates the predicate.
func (c *WaitUntil) IsFinished(context.Context) bool {
	if c.Predicate == nil {
		return true
	}
	return c.Predicate()
}
