package pathing

import (
	"context"

	"github.com/pkg/errors"

	"go.pedropathing.dev/plus/command"
)

// ErrFollowerUnavailable is returned when a FollowPathCommand has no
// Follower to drive.
var ErrFollowerUnavailable = errors.New("pathing: no follower configured")

// ErrChainUnbuilt is returned by Initialize when neither a pre-built chain
// nor a builder was ever supplied.
var ErrChainUnbuilt = errors.New("pathing: no path chain provided or built")

// ErrBuilderFrozen is returned by builder-mutation methods once the chain
// has already been materialized by a first Initialize call.
var ErrBuilderFrozen = errors.New("pathing: cannot mutate builder after first initialize")

// FollowPathCommand commands a Follower to track a PathChain. It requires
// the follower as its sole subsystem. Execute is a no-op: the host loop
// ticks the Follower directly, outside the command model (§4.6).
type FollowPathCommand struct {
	command.Base

	follower Follower
	sub      command.Subsystem

	chain      PathChain
	builder    Builder
	frozen     bool
	initErr    error

	holdEnd  bool
	maxPower float64
}

// Option configures a FollowPathCommand at construction time.
type Option func(*FollowPathCommand)

// WithHoldEnd sets whether the follower should hold position at the end of
// the chain. Defaults to true.
func WithHoldEnd(hold bool) Option {
	return func(c *FollowPathCommand) { c.holdEnd = hold }
}

// WithMaxPower sets the maximum power scaling, in [0,1]. Defaults to 1.0.
func WithMaxPower(p float64) Option {
	return func(c *FollowPathCommand) { c.maxPower = p }
}

// followerSubsystem wraps a Follower as a command.Subsystem for requirement
// bookkeeping; the Follower's own identity is the subsystem's identity.
type followerSubsystem struct {
	follower Follower
}

func (f followerSubsystem) Name() string { return "follower" }

// NewFollowPathChain builds a FollowPathCommand for a pre-built PathChain.
func NewFollowPathChain(follower Follower, chain PathChain, opts ...Option) *FollowPathCommand {
	c := &FollowPathCommand{
		follower: follower,
		sub:      followerSubsystem{follower: follower},
		chain:    chain,
		holdEnd:  true,
		maxPower: 1.0,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFollowPathBuilder builds a FollowPathCommand in fluent-builder mode:
// the chain is materialized lazily on first Initialize via builder.Build,
// which is not called again once a chain has been built successfully.
func NewFollowPathBuilder(follower Follower, builder Builder, opts ...Option) *FollowPathCommand {
	c := &FollowPathCommand{
		follower: follower,
		sub:      followerSubsystem{follower: follower},
		builder:  builder,
		holdEnd:  true,
		maxPower: 1.0,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Requirements reports the follower as the sole requirement.
func (c *FollowPathCommand) Requirements() command.Requirements {
	return command.NewRequirements(c.sub)
}

// Initialize materializes the chain (if using builder mode, on first call
// only) and begins following it.
func (c *FollowPathCommand) Initialize(ctx context.Context) {
	if c.follower == nil {
		c.initErr = ErrFollowerUnavailable
		return
	}
	if c.chain == nil {
		if c.builder == nil {
			c.initErr = ErrChainUnbuilt
			return
		}
		chain, err := c.builder.Build()
		if err != nil {
			c.initErr = errors.Wrap(err, "pathing: building path chain")
			return
		}
		c.chain = chain
		c.frozen = true
	}
	c.initErr = nil
	c.follower.Follow(c.chain, c.maxPower, c.holdEnd)
}

// IsFinished reports whether the follower is no longer busy. A command that
// failed to initialize (ErrFollowerUnavailable/ErrChainUnbuilt) is
// considered immediately finished so the scheduler does not hold a
// subsystem forever on a configuration error; callers should check Err()
// after scheduling if they need to detect this.
func (c *FollowPathCommand) IsFinished(context.Context) bool {
	if c.initErr != nil {
		return true
	}
	return !c.follower.IsBusy()
}

// End stops the follower if this command was interrupted before finishing
// naturally.
func (c *FollowPathCommand) End(_ context.Context, interrupted bool) {
	if interrupted && c.initErr == nil && c.follower != nil {
		c.follower.BreakFollowing()
	}
}

// Err returns the error (if any) encountered during the most recent
// Initialize call.
func (c *FollowPathCommand) Err() error { return c.initErr }

// IsFrozen reports whether the builder has already materialized a chain and
// further mutation would fail.
func (c *FollowPathCommand) IsFrozen() bool { return c.frozen }
