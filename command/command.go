// Package command defines the lifecycle contract shared by every action the
// scheduler can run, along with the handful of leaf commands and composition
// groups built directly on top of it.
package command

import "context"

// Subsystem is an opaque handle identifying a shared hardware resource.
// Identity is by interface equality: two Subsystem values are the same
// subsystem iff they compare equal, so pointer handles match by address and
// value handles such as NamedSubsystem match by value.
type Subsystem interface {
	// Name returns a human-readable label for logging and telemetry; it is
	// not used for identity.
	Name() string
}

// PeriodicSubsystem is implemented by subsystems that want a callback once
// per scheduler tick, independent of which command currently owns them.
type PeriodicSubsystem interface {
	Subsystem
	Periodic(ctx context.Context)
}

// NamedSubsystem is a minimal Subsystem implementation for application code
// that just needs a handle with a label.
type NamedSubsystem string

// Name implements Subsystem.
func (n NamedSubsystem) Name() string { return string(n) }

// Requirements is the set of subsystems a command needs for its lifetime.
type Requirements map[Subsystem]struct{}

// NewRequirements builds a Requirements set from a list of subsystems.
func NewRequirements(subsystems ...Subsystem) Requirements {
	reqs := make(Requirements, len(subsystems))
	for _, s := range subsystems {
		reqs[s] = struct{}{}
	}
	return reqs
}

// Union returns a new Requirements set containing every subsystem in any of
// the given sets.
func Union(sets ...Requirements) Requirements {
	out := make(Requirements)
	for _, s := range sets {
		for sub := range s {
			out[sub] = struct{}{}
		}
	}
	return out
}

// Overlaps reports whether r and other share any subsystem.
func (r Requirements) Overlaps(other Requirements) bool {
	small, big := r, other
	if len(big) < len(small) {
		small, big = big, small
	}
	for sub := range small {
		if _, ok := big[sub]; ok {
			return true
		}
	}
	return false
}

// Command is a state machine: Initialize runs once on admission, Execute
// runs once per tick while running, IsFinished is polled after Execute, and
// End runs exactly once when the command leaves the running set.
//
// Implementations must not call their own lifecycle methods; the scheduler
// owns sequencing. Requirements must be fixed for the command's lifetime.
type Command interface {
	Initialize(ctx context.Context)
	Execute(ctx context.Context)
	IsFinished(ctx context.Context) bool
	End(ctx context.Context, interrupted bool)
	Requirements() Requirements
}

// Base embeds zero-value implementations of every Command method so that
// leaf commands only need to override what they care about.
type Base struct{}

// Initialize is a no-op.
func (Base) Initialize(context.Context) {}

// Execute is a no-op.
func (Base) Execute(context.Context) {}

// IsFinished never finishes on its own.
func (Base) IsFinished(context.Context) bool { return false }

// End is a no-op.
func (Base) End(context.Context, bool) {}

// Requirements has no requirements.
func (Base) Requirements() Requirements { return nil }
