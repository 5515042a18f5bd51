package command

import "github.com/pkg/errors"

// ErrRequirementConflict is returned at construction time when a group would
// run two children with overlapping requirements concurrently. Sequential
// groups are exempt because their children never overlap in time.
var ErrRequirementConflict = errors.New("command group: children have overlapping requirements")

// group aggregates requirements across its children. It is embedded by every
// composition group; it does not itself implement Command.
type group struct {
	reqs Requirements
}

func (g *group) addRequirements(children ...Command) {
	if g.reqs == nil {
		g.reqs = make(Requirements)
	}
	for _, c := range children {
		for sub := range c.Requirements() {
			g.reqs[sub] = struct{}{}
		}
	}
}

// Requirements returns the aggregated requirement set.
func (g *group) Requirements() Requirements { return g.reqs }

// checkDisjoint verifies that no two children share a requirement. Used by
// the concurrent groups (ParallelAll, ParallelRace, ParallelDeadline); the
// source's original behavior did not enforce this and would silently let two
// commands share a subsystem at runtime, which violates holder uniqueness.
// This module enforces it at construction time (§9, intentional
// strengthening).
func checkDisjoint(children ...Command) error {
	seen := make(Requirements)
	for _, c := range children {
		for sub := range c.Requirements() {
			if _, ok := seen[sub]; ok {
				return errors.Wrapf(ErrRequirementConflict, "subsystem %q claimed by multiple children", sub.Name())
			}
			seen[sub] = struct{}{}
		}
	}
	return nil
}
