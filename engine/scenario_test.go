package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strskel/strskel/geom"
	"github.com/strskel/strskel/skeleton"
	"github.com/strskel/strskel/triio"
)

// runScenario triangulates ring, runs the simulator to completion, and
// returns the resulting skeleton plus the event loop's final time.
func runScenario(t *testing.T, ring []geom.Vec) (*skeleton.Skeleton, float64) {
	t.Helper()
	b := triio.NewPolygonBuilder()
	b.AddRing(ring, nil)
	cdt, err := b.Triangulate()
	require.NoError(t, err)

	tol := geom.DefaultTolerances()
	skel, err := skeleton.Init(cdt, tol)
	require.NoError(t, err)

	sim := NewSimulator(skel, tol, geom.Orient2D)
	require.NoError(t, sim.Init())
	now, err := sim.Run()
	require.NoError(t, err)
	return skel, now
}

func TestScenario_Rectangle_CollapsesToRidgeLine(t *testing.T) {
	// A non-square rectangle's straight skeleton is a single ridge segment
	// on its long axis, fed by 4 diagonal segments from the corners — 5
	// segments total, none of them ever un-stopping.
	skel, now := runScenario(t, []geom.Vec{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10}, {X: 0, Y: 10}})
	assert.Greater(t, now, 0.0)
	for _, v := range skel.Vertices {
		assert.True(t, v.IsStopped())
	}
	assert.Len(t, skel.Segments(), 5)
}

func TestScenario_EquilateralTriangle_CollapsesToIncenter(t *testing.T) {
	skel, now := runScenario(t, []geom.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8.660254}})
	assert.Greater(t, now, 0.0)
	assert.Len(t, skel.Segments(), 3)

	// THEN all three corners stop at the same node (the incenter, which for
	// an equilateral triangle coincides with the centroid).
	stops := map[*skeleton.Node]bool{}
	for _, v := range skel.Vertices {
		require.NotNil(t, v.StopNode)
		stops[v.StopNode] = true
	}
	assert.Len(t, stops, 1)
}

func TestScenario_RegularHexagon_CollapsesToCenterWithSixSegments(t *testing.T) {
	var ring []geom.Vec
	const n = 6
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, geom.Vec{X: 10 * math.Cos(theta), Y: 10 * math.Sin(theta)})
	}
	skel, now := runScenario(t, ring)
	assert.Greater(t, now, 0.0)
	assert.Len(t, skel.Segments(), n)
	for _, v := range skel.Vertices {
		assert.True(t, v.IsStopped())
	}

	// THEN all six corners collapse onto the single shared centre node (the
	// all-sides-collapse-simultaneously edge event of spec.md §8, exercising
	// handleThreeSideEdge rather than a chain of ordinary single-side events).
	stops := map[*skeleton.Node]bool{}
	for _, v := range skel.Vertices {
		require.NotNil(t, v.StopNode)
		stops[v.StopNode] = true
	}
	assert.Len(t, stops, 1)
}

// TestScenario_FourPointedStar_TwoSplitsTwelveSegments is spec.md §8's named
// star-polygon scenario: a 4-pointed star (4 convex tips alternating with 4
// reflex notches) resolves via two split events, for a total segment count
// of 4+4+4=12 — one of the few scenarios that actually drives the
// parallelFanFromVertex/shorter-leg path (spec.md §4.7), since the star's
// 4-fold symmetry makes several wavefront edges collapse in parallel.
func TestScenario_FourPointedStar_TwoSplitsTwelveSegments(t *testing.T) {
	const (
		outerR = 10.0
		innerR = 3.0
		points = 4
	)
	var ring []geom.Vec
	for i := 0; i < points; i++ {
		outerTheta := 2 * math.Pi * float64(i) / float64(points)
		ring = append(ring, geom.Vec{X: outerR * math.Cos(outerTheta), Y: outerR * math.Sin(outerTheta)})
		innerTheta := outerTheta + math.Pi/float64(points)
		ring = append(ring, geom.Vec{X: innerR * math.Cos(innerTheta), Y: innerR * math.Sin(innerTheta)})
	}

	skel, now := runScenario(t, ring)
	assert.Greater(t, now, 0.0)
	for _, v := range skel.Vertices {
		assert.True(t, v.IsStopped())
	}
	assert.Equal(t, 2, skel.Stats.SplitEvents)
	assert.Len(t, skel.Segments(), 12)
}

func TestScenario_LShape_ProducesAnInternalSplitEvent(t *testing.T) {
	// An L-shaped hexagon has one reflex corner; its straight skeleton
	// requires at least one split event to resolve the non-convexity.
	ring := []geom.Vec{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5},
		{X: 5, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 10},
	}
	skel, now := runScenario(t, ring)
	assert.Greater(t, now, 0.0)
	for _, v := range skel.Vertices {
		assert.True(t, v.IsStopped())
	}
	assert.GreaterOrEqual(t, len(skel.Segments()), 6)
}

func TestScenario_NeedleTriangle_StillTerminates(t *testing.T) {
	// A very thin (needle) triangle stresses the numeric tolerances; the
	// event loop must still terminate rather than stalling.
	skel, now := runScenario(t, []geom.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 0.5}})
	assert.GreaterOrEqual(t, now, 0.0)
	for _, v := range skel.Vertices {
		assert.True(t, v.IsStopped())
	}
}
