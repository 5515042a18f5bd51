package pathfile

import (
	"encoding/json"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"

	"go.pedropathing.dev/plus/pathing"
	"go.pedropathing.dev/plus/utils"
)

// Reader parses a path file and resolves every named point to a field pose,
// mirroring PedroPathReader's loadAllPoints.
type Reader struct {
	Doc   *Document
	poses map[string]pathing.Pose
}

// Load reads and parses the path file at filePath.
func Load(filePath string) (*Reader, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "pathfile: reading %s", filePath)
	}
	return Parse(data)
}

// Parse decodes raw JSON into a Reader with every named point resolved.
func Parse(data []byte) (*Reader, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "pathfile: parsing path file")
	}
	r := &Reader{Doc: &doc, poses: make(map[string]pathing.Pose)}
	r.loadAllPoints()
	return r, nil
}

func (r *Reader) loadAllPoints() {
	x, y, deg := r.Doc.StartPoint.X, r.Doc.StartPoint.Y, r.Doc.StartPoint.StartDeg
	if math.IsNaN(deg) {
		deg = 0
	}
	lastX, lastY, lastDeg := x, y, deg
	r.poses["startPoint"] = toPose(lastX, lastY, lastDeg)

	for _, line := range r.Doc.Lines {
		lx, ly := line.EndPoint.X, line.EndPoint.Y
		heading := extractHeading(line.EndPoint.Heading, lastX, lastY, lx, ly, lastDeg)

		name := strings.ReplaceAll(line.Name, " ", "")
		r.poses[name] = toPose(lx, ly, heading)

		lastX, lastY, lastDeg = lx, ly, heading
	}
}

// Pose returns the resolved field pose for name, and whether it was found.
func (r *Reader) Pose(name string) (pathing.Pose, bool) {
	p, ok := r.poses[name]
	return p, ok
}

// toPose converts a path file's (x, y, deg) coordinate — field inches in a
// coordinate system with degrees measured from the file's reference axis —
// into a field pose in the robot's (x, y, heading-radians) convention.
func toPose(x, y, deg float64) pathing.Pose {
	return pathing.Pose{X: y, Y: 144 - x, Heading: utils.DegToRad(deg - 90)}
}

// extractHeading resolves a line's terminal heading from its mode string.
// "linear" and "tangential" both orient the robot along the travel
// direction at file-read time (a true linear interpolation happens later,
// tick by tick, inside the Follower); any other mode holds the prior
// heading, matching the source's fallback.
func extractHeading(mode string, lastX, lastY, x, y, lastDeg float64) float64 {
	dx := x - lastX
	dy := y - lastY
	if math.Abs(dx) < 1e-6 && math.Abs(dy) < 1e-6 {
		return lastDeg
	}

	linearDeg := utils.RadToDeg(math.Atan2(dy, dx))

	switch mode {
	case "linear", "tangential":
		return linearDeg
	default:
		return lastDeg
	}
}
