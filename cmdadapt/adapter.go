// Package cmdadapt admits foreign objects into the command model: bare
// closures, objects exposing some subset of the lifecycle methods by
// implementing narrow optional interfaces, and objects that only know how
// to schedule themselves.
//
// The source (ReflectiveCommandAdapter.java) used reflection to probe method
// names at runtime. Go has no such ad-hoc dispatch; per §9's design note,
// this is instead modeled as a tagged-variant capability: a type switch over
// a small set of optional interfaces (Initializer, Executor, Finisher,
// InterruptibleFinisher, Requirer), each independently satisfiable. Methods
// an object does not implement become no-ops, exactly matching the source's
// behavior for methods reflection did not find.
package cmdadapt

import (
	"context"

	"github.com/pkg/errors"

	"go.pedropathing.dev/plus/command"
)

// ErrNilObject is returned by Adapt when given a nil object.
var ErrNilObject = errors.New("cmdadapt: object must not be nil")

// Initializer is implemented by objects with an Initialize method.
type Initializer interface {
	Initialize()
}

// Executor is implemented by objects with an Execute method.
type Executor interface {
	Execute()
}

// Finisher is implemented by objects with an IsFinished method.
type Finisher interface {
	IsFinished() bool
}

// InterruptibleFinisher is implemented by objects whose End takes the
// interrupted flag, mirroring end(boolean) in the source. Objects that only
// implement PlainFinisher (End()) are also supported.
type InterruptibleFinisher interface {
	End(interrupted bool)
}

// PlainFinisher is implemented by objects whose End takes no arguments,
// mirroring the source's end() fallback.
type PlainFinisher interface {
	End()
}

// Requirer is implemented by objects that can report their own
// requirements.
type Requirer interface {
	GetRequirements() command.Requirements
}

// Schedulable is implemented by objects that only expose a Schedule method;
// Adapt wraps such objects in an Instant whose Initialize invokes Schedule.
type Schedulable interface {
	Schedule()
}

// FromFunc wraps a bare closure in an Instant command with the given
// requirements, mirroring the Runnable -> InstantCommand path.
func FromFunc(fn func(), reqs ...command.Subsystem) command.Command {
	return command.NewInstant(fn, reqs...)
}

// structural wraps an arbitrary object by dispatching through whichever of
// the optional lifecycle interfaces it implements.
type structural struct {
	command.Base
	target any
}

func (s *structural) Initialize(ctx context.Context) {
	if i, ok := s.target.(Initializer); ok {
		i.Initialize()
	}
}

func (s *structural) Execute(ctx context.Context) {
	if e, ok := s.target.(Executor); ok {
		e.Execute()
	}
}

func (s *structural) IsFinished(ctx context.Context) bool {
	if f, ok := s.target.(Finisher); ok {
		return f.IsFinished()
	}
	return false
}

func (s *structural) End(ctx context.Context, interrupted bool) {
	if f, ok := s.target.(InterruptibleFinisher); ok {
		f.End(interrupted)
		return
	}
	if f, ok := s.target.(PlainFinisher); ok {
		f.End()
	}
}

func (s *structural) Requirements() command.Requirements {
	if r, ok := s.target.(Requirer); ok {
		return r.GetRequirements()
	}
	return nil
}

// FromStructural wraps an arbitrary object as a Command by dispatching
// through whichever lifecycle interfaces it implements. Missing interfaces
// become no-ops, with IsFinished defaulting to false.
func FromStructural(obj any) command.Command {
	return &structural{target: obj}
}

type scheduleWrapper struct {
	command.Base
	target Schedulable
}

func (s *scheduleWrapper) Initialize(context.Context) { s.target.Schedule() }
func (s *scheduleWrapper) IsFinished(context.Context) bool { return true }

// FromScheduler wraps an object whose only hook into our model is a
// Schedule method, synthesizing an Instant whose Initialize invokes it. This
// admits foreign command libraries whose own lifecycle stays opaque to us.
func FromScheduler(obj Schedulable) command.Command {
	return &scheduleWrapper{target: obj}
}

// Adapt converts an arbitrary value into a Command:
//   - a command.Command is returned as-is;
//   - a bare func() is wrapped via FromFunc;
//   - a Schedulable (and nothing more specific) is wrapped via FromScheduler;
//   - anything else is wrapped via FromStructural.
func Adapt(obj any) (command.Command, error) {
	if obj == nil {
		return nil, ErrNilObject
	}
	switch v := obj.(type) {
	case command.Command:
		return v, nil
	case func():
		return FromFunc(v), nil
	}
	if isStructuralCandidate(obj) {
		return FromStructural(obj), nil
	}
	if s, ok := obj.(Schedulable); ok {
		return FromScheduler(s), nil
	}
	return FromStructural(obj), nil
}

func isStructuralCandidate(obj any) bool {
	switch obj.(type) {
	case Initializer, Executor, Finisher, InterruptibleFinisher, PlainFinisher, Requirer:
		return true
	default:
		return false
	}
}
