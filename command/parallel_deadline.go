package command

import "context"

// ParallelDeadline behaves like ParallelAll except that the group finishes
// exactly when Deadline finishes; every other still-running companion then
// receives End(true). Ported from ParallelDeadlineGroup.java.
type ParallelDeadline struct {
	group
	deadline       Command
	others         []Command
	deadlineActive bool
	running        []bool
}

// NewParallelDeadline builds a ParallelDeadline group from a deadline
// command and zero or more companions.
func NewParallelDeadline(deadline Command, others ...Command) (*ParallelDeadline, error) {
	all := append([]Command{deadline}, others...)
	if err := checkDisjoint(all...); err != nil {
		return nil, err
	}
	p := &ParallelDeadline{deadline: deadline, others: others, running: make([]bool, len(others))}
	p.addRequirements(all...)
	return p, nil
}

// Initialize starts the deadline and every companion.
func (p *ParallelDeadline) Initialize(ctx context.Context) {
	p.deadline.Initialize(ctx)
	p.deadlineActive = true
	for i, c := range p.others {
		c.Initialize(ctx)
		p.running[i] = true
	}
}

// Execute ticks the deadline and every still-running companion. Companions
// run every tick regardless of the deadline's state so that simultaneous
// completions are observed in the same tick.
func (p *ParallelDeadline) Execute(ctx context.Context) {
	if !p.deadlineActive {
		return
	}
	p.deadline.Execute(ctx)
	for i, c := range p.others {
		if !p.running[i] {
			continue
		}
		c.Execute(ctx)
		if c.IsFinished(ctx) {
			c.End(ctx, false)
			p.running[i] = false
		}
	}
}

// IsFinished mirrors the deadline command's own IsFinished.
func (p *ParallelDeadline) IsFinished(ctx context.Context) bool {
	return p.deadline.IsFinished(ctx)
}

// End closes the deadline (if still active) and interrupts every companion
// still running; companions are always interrupted here since the group
// only ends when the deadline finished, or the group itself was cancelled.
func (p *ParallelDeadline) End(ctx context.Context, interrupted bool) {
	if p.deadlineActive {
		p.deadline.End(ctx, interrupted)
		p.deadlineActive = false
	}
	for i, c := range p.others {
		if p.running[i] {
			c.End(ctx, true)
			p.running[i] = false
		}
	}
}
