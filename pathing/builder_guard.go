package pathing

import "sync"

// BuilderGuard wraps a Builder so that any segment-adding mutation funneled
// through Mutate is rejected once the chain has been materialized. Concrete
// segment-adding operations belong to the geometry library driving the
// wrapped Builder; BuilderGuard only enforces the freeze-after-build
// invariant FollowPathCommand relies on in builder mode.
type BuilderGuard struct {
	mu     sync.Mutex
	inner  Builder
	frozen bool
}

// NewBuilderGuard wraps inner.
func NewBuilderGuard(inner Builder) *BuilderGuard {
	return &BuilderGuard{inner: inner}
}

// Mutate runs fn if the guard has not yet been frozen by a Build call;
// otherwise it returns ErrBuilderFrozen without running fn.
func (g *BuilderGuard) Mutate(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.frozen {
		return ErrBuilderFrozen
	}
	return fn()
}

// Build freezes the guard and delegates to the wrapped Builder. Safe to call
// more than once: subsequent calls are no-ops on the freeze state and simply
// redelegate.
func (g *BuilderGuard) Build() (PathChain, error) {
	g.mu.Lock()
	g.frozen = true
	g.mu.Unlock()
	return g.inner.Build()
}

// Frozen reports whether Build has already been called.
func (g *BuilderGuard) Frozen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frozen
}
