// Package scheduler implements the single-threaded cooperative executor that
// arbitrates subsystem ownership between commands and ticks them once per
// control period.
package scheduler

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"go.pedropathing.dev/plus/command"
	"go.pedropathing.dev/plus/logging"
)

// ErrRequirementMismatch is returned by SetDefaultCommand when the proposed
// default command does not require the subsystem it is being bound to.
var ErrRequirementMismatch = errors.New("scheduler: default command does not require its subsystem")

// Scheduler owns the set of currently running commands, the ownership map
// from subsystem to holder, the default-command map, and the deferred
// mutation queues that let commands safely schedule or cancel other commands
// from inside a tick. A Scheduler is not safe for concurrent use; it is
// meant to run entirely on one control-loop goroutine, per §5.
type Scheduler struct {
	logger logging.Logger

	subsystems       []command.Subsystem
	defaultCommands  map[command.Subsystem]command.Command
	ownership        map[command.Subsystem]command.Command
	scheduled        []command.Command
	scheduledLookup  map[command.Command]struct{}
	toSchedule       []command.Command
	toCancel         []command.Command
	inTick           bool
}

// New builds an empty Scheduler. A nil logger falls back to logging.Global().
func New(logger logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Global()
	}
	return &Scheduler{
		logger:          logger,
		defaultCommands: make(map[command.Subsystem]command.Command),
		ownership:       make(map[command.Subsystem]command.Command),
		scheduledLookup: make(map[command.Command]struct{}),
	}
}

// RegisterSubsystem adds s to the periodic-callback list. Idempotent.
func (s *Scheduler) RegisterSubsystem(sub command.Subsystem) {
	for _, existing := range s.subsystems {
		if existing == sub {
			return
		}
	}
	s.subsystems = append(s.subsystems, sub)
}

// SetDefaultCommand registers cmd as the command to re-run whenever sub is
// idle. cmd must require sub.
func (s *Scheduler) SetDefaultCommand(sub command.Subsystem, cmd command.Command) error {
	if _, ok := cmd.Requirements()[sub]; !ok {
		return errors.Wrapf(ErrRequirementMismatch, "subsystem %q", sub.Name())
	}
	s.defaultCommands[sub] = cmd
	return nil
}

// IsScheduled reports whether cmd is currently in the running set.
func (s *Scheduler) IsScheduled(cmd command.Command) bool {
	_, ok := s.scheduledLookup[cmd]
	return ok
}

// Schedule admits cmd into the running set, interrupting any current holders
// of its requirements. If called from inside Tick, the admission is
// deferred until the end of that tick, where deferred admissions are applied
// before deferred cancellations (see Tick).
func (s *Scheduler) Schedule(ctx context.Context, cmd command.Command) {
	if cmd == nil {
		return
	}
	if s.inTick {
		s.toSchedule = append(s.toSchedule, cmd)
		return
	}
	s.admit(ctx, cmd)
}

func (s *Scheduler) admit(ctx context.Context, cmd command.Command) {
	if s.IsScheduled(cmd) {
		return
	}

	reqs := cmd.Requirements()
	for sub := range reqs {
		if holder, ok := s.ownership[sub]; ok && holder != cmd {
			s.doCancel(ctx, holder)
		}
	}

	s.scheduled = append(s.scheduled, cmd)
	s.scheduledLookup[cmd] = struct{}{}
	for sub := range reqs {
		s.ownership[sub] = cmd
	}
	s.safeCall(ctx, cmd, "initialize", func() { cmd.Initialize(ctx) })
}

// Cancel removes cmd from the running set, calling End(true). If called from
// inside Tick, the cancellation is deferred.
func (s *Scheduler) Cancel(ctx context.Context, cmd command.Command) {
	if cmd == nil {
		return
	}
	if s.inTick {
		s.toCancel = append(s.toCancel, cmd)
		return
	}
	s.doCancel(ctx, cmd)
}

func (s *Scheduler) doCancel(ctx context.Context, cmd command.Command) {
	if !s.IsScheduled(cmd) {
		return
	}
	s.safeCall(ctx, cmd, "end", func() { cmd.End(ctx, true) })
	s.remove(cmd)
}

// remove drops cmd from the scheduled set and clears any ownership entries
// pointing at it. It does not call End; callers are responsible for that.
func (s *Scheduler) remove(cmd command.Command) {
	delete(s.scheduledLookup, cmd)
	for i, c := range s.scheduled {
		if c == cmd {
			s.scheduled = append(s.scheduled[:i], s.scheduled[i+1:]...)
			break
		}
	}
	for sub, holder := range s.ownership {
		if holder == cmd {
			delete(s.ownership, sub)
		}
	}
}

// Tick advances the scheduler by one control period: runs subsystem periodic
// callbacks, executes every running command once, applies deferred
// mutations, and re-seeds default commands for subsystems left idle.
func (s *Scheduler) Tick(ctx context.Context) {
	s.inTick = true

	for _, sub := range s.subsystems {
		if periodic, ok := sub.(command.PeriodicSubsystem); ok {
			s.safeCallSubsystem(ctx, sub, func() { periodic.Periodic(ctx) })
		}
	}

	// Iterate over a snapshot: commands may be removed mid-walk as they
	// finish, but nothing added here (additions are always deferred while
	// inTick is true).
	running := append([]command.Command(nil), s.scheduled...)
	for _, cmd := range running {
		if !s.IsScheduled(cmd) {
			// Already removed by an earlier failure this tick.
			continue
		}
		finished := false
		s.safeCall(ctx, cmd, "execute", func() { cmd.Execute(ctx) })
		if !s.IsScheduled(cmd) {
			continue
		}
		s.safeCall(ctx, cmd, "isFinished", func() { finished = cmd.IsFinished(ctx) })
		if finished {
			s.safeCall(ctx, cmd, "end", func() { cmd.End(ctx, false) })
			s.remove(cmd)
		}
	}

	s.inTick = false

	toSchedule := s.toSchedule
	s.toSchedule = nil
	for _, cmd := range toSchedule {
		s.admit(ctx, cmd)
	}

	toCancel := s.toCancel
	s.toCancel = nil
	for _, cmd := range toCancel {
		s.doCancel(ctx, cmd)
	}

	for _, sub := range s.subsystems {
		if _, held := s.ownership[sub]; held {
			continue
		}
		if def, ok := s.defaultCommands[sub]; ok {
			s.admit(ctx, def)
		}
	}
}

// Reset clears all scheduler state: running commands are dropped without
// calling End (mirroring the source's reset(), which is meant for a clean
// slate between tests/opmodes, not a graceful shutdown).
func (s *Scheduler) Reset() {
	s.subsystems = nil
	s.defaultCommands = make(map[command.Subsystem]command.Command)
	s.ownership = make(map[command.Subsystem]command.Command)
	s.scheduled = nil
	s.scheduledLookup = make(map[command.Command]struct{})
	s.toSchedule = nil
	s.toCancel = nil
	s.inTick = false
}

// safeCall recovers a panic from a command lifecycle method, forcibly
// removes the offending command, and surfaces the error through the logger
// (the error sink of §7). It does not call End again for a command whose
// failure occurred inside End.
func (s *Scheduler) safeCall(ctx context.Context, cmd command.Command, phase string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("command lifecycle callback panicked; removing command",
				"phase", phase, "error", fmt.Sprintf("%v", r))
			s.remove(cmd)
		}
	}()
	fn()
}

func (s *Scheduler) safeCallSubsystem(ctx context.Context, sub command.Subsystem, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("subsystem periodic callback panicked",
				"subsystem", sub.Name(), "error", fmt.Sprintf("%v", r))
		}
	}()
	fn()
}
