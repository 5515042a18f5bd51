package pathfile

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"go.pedropathing.dev/plus/cmdreg"
	"go.pedropathing.dev/plus/command"
	"go.pedropathing.dev/plus/pathing"
	"go.pedropathing.dev/plus/scheduler"
)

// ErrNoPathBuilder is returned when follower does not supply a Builder at
// all.
var ErrNoPathBuilder = errors.New("pathfile: follower does not provide a path builder")

// ErrNoSegmentBuilder is returned when follower's Builder cannot accept
// segments (it only satisfies the minimal Build() contract).
var ErrNoSegmentBuilder = errors.New("pathfile: follower's builder does not implement SegmentBuilder")

// BuildAuto loads a path file and composes it into a single Command,
// mirroring AutoBuilder.buildAuto. Event markers are resolved by name
// against registry (cmdreg.Default() if nil) and scheduled on sched the
// instant their segment reaches the marker's position.
func BuildAuto(filePath string, follower pathing.Follower, sched *scheduler.Scheduler, registry *cmdreg.Registry) (command.Command, error) {
	reader, err := Load(filePath)
	if err != nil {
		return nil, err
	}
	if registry == nil {
		registry = cmdreg.Default()
	}
	return build(reader, follower, sched, registry)
}

func build(reader *Reader, follower pathing.Follower, sched *scheduler.Scheduler, registry *cmdreg.Registry) (command.Command, error) {
	provider, ok := follower.(pathing.PathBuilderProvider)
	if !ok {
		return nil, ErrNoPathBuilder
	}

	tracker := pathing.NewProgressTracker(follower)

	var main []command.Command

	currentPose, hasStart := reader.Pose("startPoint")
	if hasStart {
		sp := currentPose
		if setter, ok := follower.(pathing.StartingPoseSetter); ok {
			main = append(main, command.NewInstant(func() { setter.SetStartingPose(sp) }))
		}
	}

	lineMap := make(map[string]Line, len(reader.Doc.Lines))
	for _, line := range reader.Doc.Lines {
		if line.ID != "" {
			lineMap[line.ID] = line
		}
	}

	currentBuilder := provider.PathBuilder()
	segBuilder, ok := currentBuilder.(pathing.SegmentBuilder)
	if !ok {
		return nil, ErrNoSegmentBuilder
	}

	var listeners []command.Command
	buildingChain := false
	chainIndex := 0

	resetBuilder := func() error {
		currentBuilder = provider.PathBuilder()
		segBuilder, ok = currentBuilder.(pathing.SegmentBuilder)
		if !ok {
			return ErrNoSegmentBuilder
		}
		chainIndex = 0
		return nil
	}

	finishChain := func() {
		if !buildingChain {
			return
		}
		chain, err := segBuilder.Build()
		if err != nil {
			// An empty or otherwise invalid chain: skip it, matching the
			// source's catch-and-skip around PathBuilder.build().
			buildingChain = false
			listeners = nil
			return
		}

		pathCmd := pathing.NewFollowPathChain(follower, chain, pathing.WithHoldEnd(true))
		initTracker := command.NewInstant(func() { tracker.SetChain(chain) })

		if len(listeners) > 0 {
			main = append(main, initTracker)
			group, gerr := command.NewParallelDeadline(pathCmd, listeners...)
			if gerr != nil {
				// Listener requirements collided with the path command's
				// follower requirement; this cannot happen for well-formed
				// listeners (WaitUntil/Instant carry no requirements), so
				// degrade to running the path alone rather than abort the
				// whole auto.
				main = append(main, pathCmd)
			} else {
				main = append(main, group)
			}
		} else {
			main = append(main, initTracker, pathCmd)
		}

		buildingChain = false
		listeners = nil
	}

	for _, item := range reader.Doc.Sequence {
		if item.Kind != "path" {
			continue
		}
		line, ok := lineMap[item.LineID]
		if !ok {
			continue
		}
		cleanName := strings.ReplaceAll(line.Name, " ", "")
		endPose, ok := reader.Pose(cleanName)
		if !ok {
			continue
		}

		if line.WaitBeforeMs > 0 {
			if buildingChain {
				finishChain()
				if err := resetBuilder(); err != nil {
					return nil, err
				}
			}
			main = append(main, command.NewWait(time.Duration(line.WaitBeforeMs)*time.Millisecond))
		}

		control := make([]pathing.Pose, 0, len(line.ControlPoints))
		for _, cp := range line.ControlPoints {
			control = append(control, pathing.Pose{X: cp.X, Y: cp.Y})
		}

		mode := pathing.HeadingConstant
		switch line.EndPoint.Heading {
		case "linear":
			mode = pathing.HeadingLinear
		case "tangential":
			mode = pathing.HeadingTangential
		}

		from := currentPose
		to := endPose
		if err := segBuilder.AddSegment(from, to, control, mode); err != nil {
			return nil, errors.Wrapf(err, "pathfile: adding segment for line %q", line.Name)
		}
		buildingChain = true

		segmentIndex := chainIndex
		nameForTracker := cleanName
		listeners = append(listeners, command.NewSequential(
			command.NewWaitUntil(chainIndexReached(follower, segmentIndex)),
			command.NewInstant(func() { tracker.SetCurrentPathName(nameForTracker) }),
		))

		for _, marker := range line.EventMarkers {
			markerName := marker.Name
			listeners = append(listeners, command.NewSequential(
				command.NewWaitUntil(segmentAndTValueReached(follower, segmentIndex, marker.Position)),
				command.NewInstant(func() {
					if registry.Has(markerName) {
						sched.Schedule(context.Background(), registry.Get(markerName))
					}
				}),
			))
		}

		currentPose = endPose
		chainIndex++

		if line.WaitAfterMs > 0 {
			if buildingChain {
				finishChain()
				if err := resetBuilder(); err != nil {
					return nil, err
				}
			}
			main = append(main, command.NewWait(time.Duration(line.WaitAfterMs)*time.Millisecond))
		}
	}

	finishChain()

	return command.NewSequential(main...), nil
}

// chainIndexReached builds a predicate matching the Follower's active chain
// segment against idx. Followers that don't report a chain index are
// treated as always past the check, so listeners depending on it settle
// immediately rather than stall forever.
func chainIndexReached(follower pathing.Follower, idx int) func() bool {
	indexer, ok := follower.(pathing.ChainIndexer)
	return func() bool {
		if !ok {
			return true
		}
		return indexer.ChainIndex() == idx
	}
}

// segmentAndTValueReached builds a predicate matching both the active chain
// segment and its normalized progress against position.
func segmentAndTValueReached(follower pathing.Follower, idx int, position float64) func() bool {
	indexer, hasIndex := follower.(pathing.ChainIndexer)
	valuer, hasTValue := follower.(pathing.TValuer)
	return func() bool {
		if hasIndex && indexer.ChainIndex() != idx {
			return false
		}
		if hasTValue {
			return valuer.CurrentTValue() >= position
		}
		return true
	}
}
