package cmdadapt_test

import (
	"context"
	"testing"

	"go.viam.com/test"

	"go.pedropathing.dev/plus/cmdadapt"
	"go.pedropathing.dev/plus/command"
)

func TestAdaptReturnsCommandUnchanged(t *testing.T) {
	cmd := command.NewInstant(func() {})
	adapted, err := cmdadapt.Adapt(cmd)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, adapted, test.ShouldEqual, cmd)
}

func TestAdaptWrapsBareFunc(t *testing.T) {
	ran := false
	adapted, err := cmdadapt.Adapt(func() { ran = true })
	test.That(t, err, test.ShouldBeNil)
	adapted.Initialize(context.Background())
	test.That(t, ran, test.ShouldBeTrue)
	test.That(t, adapted.IsFinished(context.Background()), test.ShouldBeTrue)
}

func TestAdaptRejectsNil(t *testing.T) {
	_, err := cmdadapt.Adapt(nil)
	test.That(t, err, test.ShouldEqual, cmdadapt.ErrNilObject)
}

// partialObject implements only Initialize and IsFinished, exercising the
// tagged-variant dispatch's no-op fallback for the rest.
type partialObject struct {
	initialized bool
	finished    bool
}

func (p *partialObject) Initialize() { p.initialized = true }
func (p *partialObject) IsFinished() bool { return p.finished }

func TestAdaptStructuralDispatchesImplementedMethodsOnly(t *testing.T) {
	obj := &partialObject{}
	cmd, err := cmdadapt.Adapt(obj)
	test.That(t, err, test.ShouldBeNil)

	ctx := context.Background()
	cmd.Execute(ctx) // no Executor implemented; must not panic
	test.That(t, cmd.IsFinished(ctx), test.ShouldBeFalse)

	cmd.Initialize(ctx)
	test.That(t, obj.initialized, test.ShouldBeTrue)

	obj.finished = true
	test.That(t, cmd.IsFinished(ctx), test.ShouldBeTrue)

	cmd.End(ctx, true) // no End method implemented; must not panic
}

type schedulableObject struct {
	scheduled bool
}

func (s *schedulableObject) Schedule() { s.scheduled = true }

func TestAdaptWrapsSchedulableAsInstant(t *testing.T) {
	obj := &schedulableObject{}
	cmd, err := cmdadapt.Adapt(obj)
	test.That(t, err, test.ShouldBeNil)

	ctx := context.Background()
	cmd.Initialize(ctx)
	test.That(t, obj.scheduled, test.ShouldBeTrue)
	test.That(t, cmd.IsFinished(ctx), test.ShouldBeTrue)
}

type requiringObject struct{}

func (requiringObject) Initialize() {}
func (requiringObject) GetRequirements() command.Requirements {
	return command.NewRequirements(command.NamedSubsystem("sub"))
}

func TestAdaptStructuralReportsRequirements(t *testing.T) {
	cmd, err := cmdadapt.Adapt(requiringObject{})
	test.That(t, err, test.ShouldBeNil)
	reqs := cmd.Requirements()
	test.That(t, len(reqs), test.ShouldEqual, 1)
}
