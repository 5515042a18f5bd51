package pathing_test

import (
	"math"
	"testing"

	"go.viam.com/test"

	"go.pedropathing.dev/plus/pathing"
)

type fakeChain struct{ length int }

func (c *fakeChain) Len() int { return c.length }

type fakeFollower struct {
	pose       pathing.Pose
	busy       bool
	tValue     float64
	chainIndex int
	turning    bool
}

func (f *fakeFollower) Follow(pathing.PathChain, float64, bool) {}
func (f *fakeFollower) IsBusy() bool                            { return f.busy }
func (f *fakeFollower) BreakFollowing()                         { f.busy = false }
func (f *fakeFollower) Pose() pathing.Pose                      { return f.pose }
func (f *fakeFollower) CurrentTValue() float64                  { return f.tValue }
func (f *fakeFollower) ChainIndex() int                         { return f.chainIndex }
func (f *fakeFollower) IsTurning() bool                         { return f.turning }
func (f *fakeFollower) TurnTo(target float64)                   { f.turning = true }

func TestShouldTriggerFiresOnceAtThreshold(t *testing.T) {
	follower := &fakeFollower{}
	tracker := pathing.NewProgressTracker(follower)
	tracker.SetChain(&fakeChain{length: 1})
	tracker.RegisterEvent("marker", 0.5)

	follower.tValue = 0.2
	test.That(t, tracker.ShouldTrigger("marker"), test.ShouldBeFalse)

	follower.tValue = 0.6
	test.That(t, tracker.ShouldTrigger("marker"), test.ShouldBeTrue)

	// Already fired; must not trigger again even though still past threshold.
	test.That(t, tracker.ShouldTrigger("marker"), test.ShouldBeFalse)
}

func TestShouldTriggerUnregisteredNameNeverFires(t *testing.T) {
	follower := &fakeFollower{tValue: 1.0}
	tracker := pathing.NewProgressTracker(follower)
	tracker.SetChain(&fakeChain{length: 1})
	test.That(t, tracker.ShouldTrigger("unknown"), test.ShouldBeFalse)
}

func TestChainProgressAccountsForCompletedSegments(t *testing.T) {
	follower := &fakeFollower{tValue: 0.5, chainIndex: 1}
	tracker := pathing.NewProgressTracker(follower)
	tracker.SetChain(&fakeChain{length: 4})

	progress := tracker.ChainProgress()
	test.That(t, progress, test.ShouldEqual, (1.0+0.5)/4.0)
}

func TestTurnProgressUsesShortestAngularDelta(t *testing.T) {
	follower := &fakeFollower{pose: pathing.Pose{Heading: math.Pi - 0.1}, turning: true}
	tracker := pathing.NewProgressTracker(follower)

	tracker.Turn(follower, -math.Pi+0.1, "turnDone", 0.9)
	test.That(t, tracker.PathProgress(), test.ShouldEqual, 0.0)

	// Half way through the turn.
	follower.pose.Heading = math.Pi
	test.That(t, math.Abs(tracker.PathProgress()-0.5) < 0.05, test.ShouldBeTrue)

	// Turn reports done: tracker must report full completion even without
	// reaching the exact target heading.
	follower.turning = false
	test.That(t, tracker.PathProgress(), test.ShouldEqual, 1.0)
}
