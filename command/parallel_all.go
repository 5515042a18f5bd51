package command

import "context"

// ParallelAll runs every child concurrently (within a single tick's
// interleaving) and finishes once all children have finished. On
// interruption, every still-running child is interrupted. Ported from
// ParallelCommandGroup.java.
type ParallelAll struct {
	group
	children []Command
	running  []bool
}

// NewParallelAll builds a ParallelAll group. Panics-as-error via the returned
// error if two children share a requirement; see checkDisjoint.
func NewParallelAll(children ...Command) (*ParallelAll, error) {
	if err := checkDisjoint(children...); err != nil {
		return nil, err
	}
	p := &ParallelAll{children: children, running: make([]bool, len(children))}
	p.addRequirements(children...)
	return p, nil
}

// Initialize starts every child.
func (p *ParallelAll) Initialize(ctx context.Context) {
	for i, c := range p.children {
		c.Initialize(ctx)
		p.running[i] = true
	}
}

// Execute advances every still-running child, ending those that finish.
func (p *ParallelAll) Execute(ctx context.Context) {
	for i, c := range p.children {
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

// IsFinished reports whether every child has finished.
func (p *ParallelAll) IsFinished(context.Context) bool {
	for _, r := range p.running {
		if r {
			return false
		}
	}
	return true
}

// End interrupts every still-running child when the group itself was
// interrupted.
func (p *ParallelAll) End(ctx context.Context, interrupted bool) {
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
