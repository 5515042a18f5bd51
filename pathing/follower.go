// Package pathing glues the scheduler's command model to an external
// motion-control collaborator (a Follower) that actually tracks geometric
// paths. The core never looks inside a Follower's PID/feedforward
// internals; it only calls the narrow capability below.
package pathing

// Pose is a 2D robot pose: field-relative x, y, and heading in radians.
type Pose struct {
	X, Y, Heading float64
}

// PathChain is an opaque, already-built sequence of path segments that a
// Follower knows how to execute. The geometry library that produces one is
// outside this module's scope; pathfile constructs chains via a Follower's
// own PathBuilder.
type PathChain interface {
	// Len reports how many path segments the chain contains.
	Len() int
}

// Follower is the narrow capability the core requires from the
// motion-control collaborator. Implementations typically wrap a PID/
// feedforward-driven path follower; none of that is visible here.
type Follower interface {
	// Follow begins tracking chain. maxPower is clamped to [0,1] by the
	// caller's convention (callers should pass already-valid values;
	// Follower implementations are free to clamp defensively).
	Follow(chain PathChain, maxPower float64, holdEnd bool)
	// IsBusy reports whether the follower is still actively tracking.
	IsBusy() bool
	// BreakFollowing requests an immediate stop.
	BreakFollowing()
	// Pose returns the current robot pose.
	Pose() Pose
}

// Turner is an optional Follower capability for heading-only moves.
type Turner interface {
	IsTurning() bool
	TurnTo(targetRad float64)
}

// ChainIndexer is an optional Follower capability reporting which segment of
// the current chain is active.
type ChainIndexer interface {
	ChainIndex() int
}

// TValuer is an optional Follower capability reporting normalized progress
// (0..1) along the currently active path segment.
type TValuer interface {
	CurrentTValue() float64
}

// CurrentPather is an optional Follower capability exposing the path
// segment currently being tracked, for progress bookkeeping.
type CurrentPather interface {
	CurrentPath() any
}

// Builder is the fluent path-construction capability a Follower exposes for
// building chains incrementally (mirrors PathBuilder in the source). It is
// intentionally minimal: concrete segment-adding operations are supplied by
// the geometry library and are out of this module's scope; Builder only
// captures the contract FollowPathCommand needs (build a chain, eventually).
type Builder interface {
	Build() (PathChain, error)
}

// PathBuilderProvider is implemented by Followers that can hand out a fresh
// Builder, mirroring follower.pathBuilder() in the source.
type PathBuilderProvider interface {
	PathBuilder() Builder
}
