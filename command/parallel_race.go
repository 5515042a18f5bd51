package command

import "context"

// ParallelRace runs every child concurrently until any one finishes. All
// children that finished in that same tick receive End(false); every other
// still-running child receives End(true). A race with zero children
// finishes immediately without ever initializing anything. Ported from
// ParallelRaceGroup.java, with the tie-break handled via explicit per-child
// running state rather than a stale re-check of IsFinished (§9 open
// question).
type ParallelRace struct {
	group
	children []Command
	running  []bool
	finished bool
}

// NewParallelRace builds a ParallelRace group.
func NewParallelRace(children ...Command) (*ParallelRace, error) {
	if err := checkDisjoint(children...); err != nil {
		return nil, err
	}
	p := &ParallelRace{children: children, running: make([]bool, len(children))}
	p.addRequirements(children...)
	return p, nil
}

// Initialize starts every child, unless there are none.
func (p *ParallelRace) Initialize(ctx context.Context) {
	p.finished = len(p.children) == 0
	for i, c := range p.children {
		c.Initialize(ctx)
		p.running[i] = true
	}
}

// Execute ticks every still-running child and ends the race if any of them
// finished this tick.
func (p *ParallelRace) Execute(ctx context.Context) {
	if p.finished {
		return
	}
	anyFinished := false
	finishedNow := make([]bool, len(p.children))
	for i, c := range p.children {
		if !p.running[i] {
			continue
		}
		c.Execute(ctx)
		if c.IsFinished(ctx) {
			finishedNow[i] = true
			anyFinished = true
		}
	}
	if !anyFinished {
		return
	}
	for i, c := range p.children {
		if !p.running[i] {
			continue
		}
		if finishedNow[i] {
			c.End(ctx, false)
		} else {
			c.End(ctx, true)
		}
		p.running[i] = false
	}
	p.finished = true
}

// IsFinished reports whether the race has been decided.
func (p *ParallelRace) IsFinished(context.Context) bool { return p.finished }

// End interrupts any child still running, if the group itself was
// interrupted before the race was decided.
func (p *ParallelRace) End(ctx context.Context, interrupted bool) {
	if !interrupted {
		return
	}
	for i, c := range p.children {
		if p.running[i] {
			c.End(ctx, true)
			p.running[i] = false
		}
	}
}
