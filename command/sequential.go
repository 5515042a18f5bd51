package command

import "context"

// Sequential runs its children one at a time, in order. It finishes once the
// last child has finished. On interruption, only the currently active child
// is interrupted. Ported from SequentialCommandGroup.java.
type Sequential struct {
	group
	children []Command
	index    int
}

// NewSequential builds a Sequential group. Children may share requirements
// since they never run concurrently.
func NewSequential(children ...Command) *Sequential {
	s := &Sequential{children: children, index: -1}
	s.addRequirements(children...)
	return s
}

// Initialize starts the first child, if any.
func (s *Sequential) Initialize(ctx context.Context) {
	s.index = 0
	if len(s.children) > 0 {
		s.children[0].Initialize(ctx)
	}
}

// Execute advances the currently active child, moving to the next one if it
// finished.
func (s *Sequential) Execute(ctx context.Context) {
	if s.index < 0 || s.index >= len(s.children) {
		return
	}
	current := s.children[s.index]
	current.Execute(ctx)
	if current.IsFinished(ctx) {
		current.End(ctx, false)
		s.index++
		if s.index < len(s.children) {
			s.children[s.index].Initialize(ctx)
		}
	}
}

// IsFinished reports whether every child has run to completion.
func (s *Sequential) IsFinished(context.Context) bool {
	return s.index >= len(s.children)
}

// End interrupts the currently active child, if the group itself was
// interrupted.
func (s *Sequential) End(ctx context.Context, interrupted bool) {
	if interrupted && s.index >= 0 && s.index < len(s.children) {
		s.children[s.index].End(ctx, true)
	}
	s.index = -1
}
