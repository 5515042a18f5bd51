package command_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"go.pedropathing.dev/plus/command"
)

func TestWaitUsesInjectedClock(t *testing.T) {
	mock := clock.NewMock()
	cmd := &command.Wait{Duration: 5 * time.Second, Clock: mock}
	ctx := context.Background()

	test.That(t, cmd.IsFinished(ctx), test.ShouldBeFalse)

	cmd.Initialize(ctx)
	test.That(t, cmd.IsFinished(ctx), test.ShouldBeFalse)

	mock.Add(4 * time.Second)
	test.That(t, cmd.IsFinished(ctx), test.ShouldBeFalse)

	mock.Add(time.Second)
	test.That(t, cmd.IsFinished(ctx), test.ShouldBeTrue)
}

func TestWaitZeroDurationFinishesImmediately(t *testing.T) {
	cmd := command.NewWait(0)
	ctx := context.Background()
	cmd.Initialize(ctx)
	test.That(t, cmd.IsFinished(ctx), test.ShouldBeTrue)
}

func TestWaitEndResetsForRescheduling(t *testing.T) {
	mock := clock.NewMock()
	cmd := &command.Wait{Duration: time.Second, Clock: mock}
	ctx := context.Background()

	cmd.Initialize(ctx)
	mock.Add(2 * time.Second)
	test.That(t, cmd.IsFinished(ctx), test.ShouldBeTrue)

	cmd.End(ctx, false)
	test.That(t, cmd.IsFinished(ctx), test.ShouldBeFalse)

	cmd.Initialize(ctx)
	test.That(t, cmd.IsFinished(ctx), test.ShouldBeFalse)
}
