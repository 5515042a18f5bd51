// Package autochooser implements a pre-match selection menu for autonomous
// routines, driven by directional input and rendered to a display, ported
// from AutoChooser.java. Unlike the source's static singleton, Chooser is an
// ordinary value so a program can run more than one (or none, in tests)
// without shared global state.
package autochooser

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"go.pedropathing.dev/plus/cmdadapt"
	"go.pedropathing.dev/plus/command"
	"go.pedropathing.dev/plus/scheduler"
)

// DebounceInterval is the minimum time between accepted input edges,
// matching the source's 300ms debounce.
const DebounceInterval = 300 * time.Millisecond

// Input is the directional control surface the chooser reads, mirroring
// Gamepad's dpad_left/dpad_right.
type Input interface {
	Next() bool
	Previous() bool
}

// Display is the narrow telemetry surface the chooser writes menu state to.
type Display interface {
	AddLine(string)
	Update()
}

type option struct {
	name string
	cmd  command.Command
}

// Chooser lets a driver page through named autonomous routines before the
// match starts and schedules the selected one.
type Chooser struct {
	Clock clock.Clock

	options       []option
	selectedIndex int

	input    Input
	display  Display
	sched    *scheduler.Scheduler
	lastEdge time.Time

	selectionCmd command.Command
}

// New builds an empty Chooser bound to sched, the scheduler the selection
// command and eventual chosen routine are scheduled on.
func New(sched *scheduler.Scheduler) *Chooser {
	return &Chooser{Clock: clock.New(), sched: sched}
}

// Add registers an autonomous routine under name. obj may be a
// command.Command, a bare func(), or any object cmdadapt.Adapt can admit.
func (c *Chooser) Add(name string, obj any) error {
	cmd, err := cmdadapt.Adapt(obj)
	if err != nil {
		return err
	}
	c.options = append(c.options, option{name: name, cmd: cmd})
	return nil
}

// Clear resets every registered option and input/display binding, for reuse
// across OpModes/matches.
func (c *Chooser) Clear() {
	c.options = nil
	c.selectedIndex = 0
	c.input = nil
	c.display = nil
	c.selectionCmd = nil
}

// Start binds input/display and schedules the background selection command
// that updates the menu every tick. If the scheduler's Tick loop is not
// running yet (e.g. init phase), call Update directly instead.
func (c *Chooser) Start(input Input, display Display) {
	c.input = input
	c.display = display
	c.selectionCmd = command.NewRun(c.Update)
	c.sched.Schedule(context.Background(), c.selectionCmd)
}

// Update advances the selection in response to input and redraws the menu.
// Call this directly from an init loop if not running the scheduler yet.
func (c *Chooser) Update() {
	if c.input == nil || c.display == nil {
		return
	}
	if len(c.options) == 0 {
		c.display.AddLine("AutoChooser: No commands registered.")
		c.display.Update()
		return
	}

	now := c.Clock.Now()
	if now.Sub(c.lastEdge) > DebounceInterval {
		switch {
		case c.input.Next():
			c.selectedIndex = (c.selectedIndex + 1) % len(c.options)
			c.lastEdge = now
		case c.input.Previous():
			c.selectedIndex = (c.selectedIndex - 1 + len(c.options)) % len(c.options)
			c.lastEdge = now
		}
	}

	c.display.AddLine("=== AUTONOMOUS SELECTION ===")
	c.display.AddLine("Use Next/Previous to choose")
	c.display.AddLine("")
	for i, opt := range c.options {
		if i == c.selectedIndex {
			c.display.AddLine(">>> " + opt.name + " <<<")
		} else {
			c.display.AddLine("    " + opt.name)
		}
	}
	c.display.Update()
}

// Enable stops the selection menu and schedules the chosen routine. Call
// this once the match actually starts.
func (c *Chooser) Enable() {
	if c.selectionCmd != nil {
		c.sched.Cancel(context.Background(), c.selectionCmd)
		c.selectionCmd = nil
	}
	if c.display != nil {
		c.display.Update()
	}
	if len(c.options) == 0 {
		return
	}
	selected := c.options[c.selectedIndex]
	if selected.cmd != nil {
		c.sched.Schedule(context.Background(), selected.cmd)
		if c.display != nil {
			c.display.AddLine("AutoChooser: Starting " + selected.name)
			c.display.Update()
		}
	}
}

// Selected returns the name of the currently highlighted option, and
// whether any option is registered.
func (c *Chooser) Selected() (string, bool) {
	if len(c.options) == 0 {
		return "", false
	}
	return c.options[c.selectedIndex].name, true
}
