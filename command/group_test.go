package command_test

import (
	"context"
	"testing"

	"go.viam.com/test"

	"go.pedropathing.dev/plus/command"
)

// fakeCommand is a hand-rolled Command double for composition-group tests:
// it finishes on the Nth Execute call and records its lifecycle calls.
type fakeCommand struct {
	command.Base
	name           string
	reqs           command.Requirements
	finishAfter    int
	execCount      int
	initialized    bool
	ended          bool
	endInterrupted bool
}

func newFake(name string, finishAfter int, reqs ...command.Subsystem) *fakeCommand {
	return &fakeCommand{name: name, finishAfter: finishAfter, reqs: command.NewRequirements(reqs...)}
}

func (f *fakeCommand) Initialize(context.Context) { f.initialized = true }
func (f *fakeCommand) Execute(context.Context)     { f.execCount++ }
func (f *fakeCommand) IsFinished(context.Context) bool {
	return f.execCount >= f.finishAfter
}
func (f *fakeCommand) End(_ context.Context, interrupted bool) {
	f.ended = true
	f.endInterrupted = interrupted
}
func (f *fakeCommand) Requirements() command.Requirements { return f.reqs }

func TestSequentialRunsChildrenInOrder(t *testing.T) {
	ctx := context.Background()
	a := newFake("a", 1)
	b := newFake("b", 1)
	seq := command.NewSequential(a, b)

	seq.Initialize(ctx)
	test.That(t, a.initialized, test.ShouldBeTrue)
	test.That(t, b.initialized, test.ShouldBeFalse)

	seq.Execute(ctx)
	test.That(t, a.ended, test.ShouldBeTrue)
	test.That(t, b.initialized, test.ShouldBeTrue)
	test.That(t, seq.IsFinished(ctx), test.ShouldBeFalse)

	seq.Execute(ctx)
	test.That(t, b.ended, test.ShouldBeTrue)
	test.That(t, seq.IsFinished(ctx), test.ShouldBeTrue)
}

func TestSequentialEmptyFinishesImmediately(t *testing.T) {
	ctx := context.Background()
	seq := command.NewSequential()
	seq.Initialize(ctx)
	test.That(t, seq.IsFinished(ctx), test.ShouldBeTrue)
}

func TestSequentialInterruptOnlyEndsActiveChild(t *testing.T) {
	ctx := context.Background()
	a := newFake("a", 5)
	b := newFake("b", 5)
	seq := command.NewSequential(a, b)
	seq.Initialize(ctx)
	seq.End(ctx, true)
	test.That(t, a.ended, test.ShouldBeTrue)
	test.That(t, a.endInterrupted, test.ShouldBeTrue)
	test.That(t, b.ended, test.ShouldBeFalse)
}

func TestParallelAllRejectsOverlappingRequirements(t *testing.T) {
	sub := command.NamedSubsystem("shared")
	a := newFake("a", 1, sub)
	b := newFake("b", 1, sub)
	_, err := command.NewParallelAll(a, b)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestParallelAllFinishesWhenAllChildrenFinish(t *testing.T) {
	ctx := context.Background()
	a := newFake("a", 1)
	b := newFake("b", 2)
	group, err := command.NewParallelAll(a, b)
	test.That(t, err, test.ShouldBeNil)

	group.Initialize(ctx)
	group.Execute(ctx)
	test.That(t, group.IsFinished(ctx), test.ShouldBeFalse)
	test.That(t, a.ended, test.ShouldBeTrue)

	group.Execute(ctx)
	test.That(t, group.IsFinished(ctx), test.ShouldBeTrue)
	test.That(t, b.ended, test.ShouldBeTrue)
}

func TestParallelRaceEndsFirstFinisherAsUninterrupted(t *testing.T) {
	ctx := context.Background()
	winner := newFake("winner", 1)
	loser := newFake("loser", 5)
	race, err := command.NewParallelRace(winner, loser)
	test.That(t, err, test.ShouldBeNil)

	race.Initialize(ctx)
	race.Execute(ctx)

	test.That(t, race.IsFinished(ctx), test.ShouldBeTrue)
	test.That(t, winner.ended, test.ShouldBeTrue)
	test.That(t, winner.endInterrupted, test.ShouldBeFalse)
	test.That(t, loser.ended, test.ShouldBeTrue)
	test.That(t, loser.endInterrupted, test.ShouldBeTrue)
}

func TestParallelRaceEmptyFinishesWithoutInitializing(t *testing.T) {
	ctx := context.Background()
	race, err := command.NewParallelRace()
	test.That(t, err, test.ShouldBeNil)
	race.Initialize(ctx)
	test.That(t, race.IsFinished(ctx), test.ShouldBeTrue)
}

func TestParallelDeadlineEndsCompanionsWhenDeadlineFinishes(t *testing.T) {
	ctx := context.Background()
	deadline := newFake("deadline", 1)
	companion := newFake("companion", 100)
	group, err := command.NewParallelDeadline(deadline, companion)
	test.That(t, err, test.ShouldBeNil)

	group.Initialize(ctx)
	group.Execute(ctx)
	test.That(t, group.IsFinished(ctx), test.ShouldBeTrue)

	group.End(ctx, false)
	test.That(t, companion.ended, test.ShouldBeTrue)
	test.That(t, companion.endInterrupted, test.ShouldBeTrue)
	test.That(t, deadline.endInterrupted, test.ShouldBeFalse)
}

func TestParallelDeadlineCompanionsRunEveryTickRegardlessOfDeadline(t *testing.T) {
	ctx := context.Background()
	deadline := newFake("deadline", 100)
	companion := newFake("companion", 100)
	group, err := command.NewParallelDeadline(deadline, companion)
	test.That(t, err, test.ShouldBeNil)

	group.Initialize(ctx)
	group.Execute(ctx)
	group.Execute(ctx)
	test.That(t, companion.execCount, test.ShouldEqual, 2)
	test.That(t, deadline.execCount, test.ShouldEqual, 2)
}
