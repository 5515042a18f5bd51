package autochooser_test

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"go.pedropathing.dev/plus/autochooser"
	"go.pedropathing.dev/plus/logging"
	"go.pedropathing.dev/plus/scheduler"
)

type fakeInput struct {
	next, prev bool
}

func (f *fakeInput) Next() bool     { return f.next }
func (f *fakeInput) Previous() bool { return f.prev }

type fakeDisplay struct {
	lines   []string
	updates int
}

func (d *fakeDisplay) AddLine(s string) { d.lines = append(d.lines, s) }
func (d *fakeDisplay) Update()          { d.updates++; d.lines = nil }

func TestChooserCyclesOptionsWithDebounce(t *testing.T) {
	sched := scheduler.New(logging.NewTestLogger(t))
	chooser := autochooser.New(sched)
	mock := clock.NewMock()
	chooser.Clock = mock

	test.That(t, chooser.Add("Red Left", func() {}), test.ShouldBeNil)
	test.That(t, chooser.Add("Blue Right", func() {}), test.ShouldBeNil)

	input := &fakeInput{}
	display := &fakeDisplay{}
	chooser.Start(input, display)

	name, ok := chooser.Selected()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, name, test.ShouldEqual, "Red Left")

	input.next = true
	chooser.Update()
	name, _ = chooser.Selected()
	test.That(t, name, test.ShouldEqual, "Blue Right")

	// Within the debounce window: a second press is ignored.
	chooser.Update()
	name, _ = chooser.Selected()
	test.That(t, name, test.ShouldEqual, "Blue Right")

	mock.Add(autochooser.DebounceInterval + time.Millisecond)
	input.next = false
	input.prev = true
	chooser.Update()
	name, _ = chooser.Selected()
	test.That(t, name, test.ShouldEqual, "Red Left")
}

func TestChooserEnableSchedulesSelectedRoutine(t *testing.T) {
	sched := scheduler.New(logging.NewTestLogger(t))
	chooser := autochooser.New(sched)
	ran := false
	test.That(t, chooser.Add("Only", func() { ran = true }), test.ShouldBeNil)

	display := &fakeDisplay{}
	chooser.Start(&fakeInput{}, display)
	chooser.Enable()

	test.That(t, ran, test.ShouldBeTrue)
}

func TestChooserUpdateWithNoOptionsReportsEmpty(t *testing.T) {
	sched := scheduler.New(logging.NewTestLogger(t))
	chooser := autochooser.New(sched)
	display := &fakeDisplay{}
	chooser.Start(&fakeInput{}, display)
	chooser.Update()
	test.That(t, display.updates, test.ShouldBeGreaterThan, 0)
}
