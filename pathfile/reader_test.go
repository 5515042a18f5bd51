package pathfile_test

import (
	"math"
	"testing"

	"go.viam.com/test"

	"go.pedropathing.dev/plus/pathfile"
)

const sampleDoc = `{
	"startPoint": {"x": 10, "y": 20, "startDeg": 90},
	"lines": [
		{"id": "l1", "name": "Score Preload", "endPoint": {"x": 10, "y": 40, "heading": "tangential"}}
	],
	"sequence": [
		{"kind": "path", "lineId": "l1"}
	]
}`

func TestParseResolvesNamedPoses(t *testing.T) {
	reader, err := pathfile.Parse([]byte(sampleDoc))
	test.That(t, err, test.ShouldBeNil)

	start, ok := reader.Pose("startPoint")
	test.That(t, ok, test.ShouldBeTrue)
	// toPose(10, 20, 90) = (20, 144-10, radians(0)) = (20, 134, 0)
	test.That(t, start.X, test.ShouldEqual, 20.0)
	test.That(t, start.Y, test.ShouldEqual, 134.0)
	test.That(t, math.Abs(start.Heading) < 1e-9, test.ShouldBeTrue)

	end, ok := reader.Pose("ScorePreload")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, end.X, test.ShouldEqual, 40.0)
	test.That(t, end.Y, test.ShouldEqual, 134.0)
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	_, err := pathfile.Parse([]byte("not json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLineNameStripsSpacesForLookup(t *testing.T) {
	reader, err := pathfile.Parse([]byte(sampleDoc))
	test.That(t, err, test.ShouldBeNil)
	_, ok := reader.Pose("Score Preload")
	test.That(t, ok, test.ShouldBeFalse)
}
