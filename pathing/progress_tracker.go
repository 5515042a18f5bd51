package pathing

import (
	"math"
	"sync"
)

// ProgressTracker is not itself a command; it is a helper bound to a
// Follower that reports normalized progress along a chain or a turn, and
// triggers named events once progress crosses a registered threshold.
// Ported from ProgressTracker.java.
type ProgressTracker struct {
	follower Follower

	mu        sync.Mutex
	chain     PathChain
	pathProg  float64
	chainProg float64

	thresholds map[string]float64
	fired      map[string]bool

	trackingTurn  bool
	startHeading  float64
	targetHeading float64
	totalTurnRad  float64

	currentPathName string
}

// NewProgressTracker builds a tracker bound to follower.
func NewProgressTracker(follower Follower) *ProgressTracker {
	return &ProgressTracker{
		follower:   follower,
		thresholds: make(map[string]float64),
		fired:      make(map[string]bool),
	}
}

// SetChain points the tracker at a new chain and clears all registered
// events, since thresholds are chain-relative.
func (p *ProgressTracker) SetChain(chain PathChain) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chain = chain
	p.trackingTurn = false
	p.clearEventsLocked()
}

// RegisterEvent arms name to fire once progress reaches threshold (a
// fraction in [0,1]).
func (p *ProgressTracker) RegisterEvent(name string, threshold float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.thresholds[name] = threshold
	p.fired[name] = false
}

// ClearEvents removes every registered event and its fired state.
func (p *ProgressTracker) ClearEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearEventsLocked()
}

func (p *ProgressTracker) clearEventsLocked() {
	p.thresholds = make(map[string]float64)
	p.fired = make(map[string]bool)
}

// ShouldTrigger reports true exactly once per arming: the first tick after
// pathProgress reaches the registered threshold for name, provided the event
// has not already fired.
func (p *ProgressTracker) ShouldTrigger(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	threshold, ok := p.thresholds[name]
	if !ok || p.fired[name] {
		return false
	}

	p.updateProgressLocked()
	if p.pathProg >= threshold {
		p.fired[name] = true
		return true
	}
	return false
}

// Turn instructs the follower to turn toward targetRad and switches the
// tracker into turn-tracking mode: progress is computed from the signed
// shortest angular delta between the robot's heading at Turn-time and
// targetRad, rather than from path t-values.
func (p *ProgressTracker) Turn(follower Turner, targetRad float64, eventName string, threshold float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	follower.TurnTo(targetRad)
	p.startHeading = p.follower.Pose().Heading
	p.targetHeading = targetRad
	p.totalTurnRad = math.Abs(angleDiff(targetRad, p.startHeading))
	p.trackingTurn = true
	p.clearEventsLocked()
	p.thresholds[eventName] = threshold
	p.fired[eventName] = false
}

// angleDiff returns the signed difference angle1-angle2, reduced to
// [-pi, pi].
func angleDiff(angle1, angle2 float64) float64 {
	diff := angle1 - angle2
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return diff
}

func (p *ProgressTracker) updateProgressLocked() {
	if p.trackingTurn {
		turner, ok := p.follower.(Turner)
		if ok && turner.IsTurning() {
			remaining := math.Abs(angleDiff(p.targetHeading, p.follower.Pose().Heading))
			var progress float64
			if p.totalTurnRad < 1e-6 {
				progress = 1.0
			} else {
				progress = 1.0 - remaining/p.totalTurnRad
			}
			p.pathProg = clamp01(progress)
			p.chainProg = p.pathProg
		} else {
			p.trackingTurn = false
			p.pathProg = 1.0
			p.chainProg = 1.0
		}
		return
	}

	if p.chain == nil {
		return
	}
	tv, ok := p.follower.(TValuer)
	if !ok {
		return
	}
	p.pathProg = math.Min(tv.CurrentTValue(), 1.0)

	total := float64(p.chain.Len())
	if total <= 0 {
		p.chainProg = 0
		return
	}
	idx := 0
	if indexer, ok := p.follower.(ChainIndexer); ok {
		idx = indexer.ChainIndex()
	}
	completed := math.Min(float64(idx), total)
	p.chainProg = (completed + p.pathProg) / total
	if p.chainProg > 1.0 {
		p.chainProg = 1.0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PathProgress returns progress along the current path segment, in [0,1].
func (p *ProgressTracker) PathProgress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updateProgressLocked()
	return p.pathProg
}

// ChainProgress returns progress along the entire chain, in [0,1].
func (p *ProgressTracker) ChainProgress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updateProgressLocked()
	return p.chainProg
}

// SetCurrentPathName records a human-readable label for the path segment
// currently active, for telemetry/dashboard display only; it has no effect
// on progress computation.
func (p *ProgressTracker) SetCurrentPathName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentPathName = name
}

// CurrentPathName returns the label set by SetCurrentPathName.
func (p *ProgressTracker) CurrentPathName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentPathName
}

// IsBusy delegates to the bound Follower.
func (p *ProgressTracker) IsBusy() bool { return p.follower.IsBusy() }

// BreakFollowing delegates to the bound Follower.
func (p *ProgressTracker) BreakFollowing() { p.follower.BreakFollowing() }
