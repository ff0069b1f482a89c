package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineFromPoints_SignedDistanceIsZeroOnLine(t *testing.T) {
	// GIVEN a line through two points
	l := LineFromPoints(Vec{0, 0}, Vec{10, 0})

	// WHEN evaluating signed distance for points on the line
	// THEN it is (near) zero
	assert.InDelta(t, 0.0, l.SignedDistance(Vec{0, 0}), 1e-9)
	assert.InDelta(t, 0.0, l.SignedDistance(Vec{5, 0}), 1e-9)
}

func TestLine2_Translated_ShiftsOffset(t *testing.T) {
	// GIVEN a horizontal line y=0, i.e. w=(0,1), b=0
	l := NewLine2(Vec{0, 1}, 0)

	// WHEN translated upward by (0,1)
	got := l.Translated(Vec{0, 1})

	// THEN a point on the original line is now at signed distance -1
	assert.InDelta(t, -1.0, got.SignedDistance(Vec{0, 0}), 1e-9)
}

func TestLine2_AtTime_Zero_ReturnsSameLine(t *testing.T) {
	l := NewLine2(Vec{1, 0}, -5)
	got := l.AtTime(0)
	assert.Equal(t, l.W, got.W)
	assert.InDelta(t, l.B, got.B, 1e-12)
}

func TestIntersectLines_Crossing(t *testing.T) {
	// GIVEN the x-axis and the y-axis
	a := NewLine2(Vec{0, 1}, 0)
	b := NewLine2(Vec{1, 0}, 0)

	// WHEN intersected
	res := IntersectLines(a, b, DefaultTolerances())

	// THEN they cross at the origin
	assert.Equal(t, PointIntersection, res.Kind)
	assert.InDelta(t, 0.0, res.Point.X, 1e-9)
	assert.InDelta(t, 0.0, res.Point.Y, 1e-9)
}

func TestIntersectLines_Parallel_NoIntersection(t *testing.T) {
	a := NewLine2(Vec{0, 1}, 0)
	b := NewLine2(Vec{0, 1}, -5)
	res := IntersectLines(a, b, DefaultTolerances())
	assert.Equal(t, NoIntersection, res.Kind)
}

func TestIntersectLines_Coincident(t *testing.T) {
	a := NewLine2(Vec{0, 1}, 0)
	b := NewLine2(Vec{0, 1}, 0)
	res := IntersectLines(a, b, DefaultTolerances())
	assert.Equal(t, CoincidentLines, res.Kind)
}

func TestLine2_Bisector_OfPerpendicularLines_BisectsAt45Degrees(t *testing.T) {
	// GIVEN the positive x-axis direction and positive y-axis direction lines
	// through the origin
	a := NewLine2(Vec{0, 1}, 0)
	b := NewLine2(Vec{1, 0}, 0)

	bis := a.Bisector(b)

	// THEN the bisector also passes through the origin, and its normal makes
	// equal (45 degree) angles with both input normals
	assert.InDelta(t, 0.0, bis.SignedDistance(Vec{0, 0}), 1e-9)
	assert.InDelta(t, bis.W.X, bis.W.Y, 1e-9)
}
