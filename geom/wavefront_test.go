package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBisector_Point_PerpendicularWavefronts(t *testing.T) {
	// GIVEN two wavefronts both moving inward and meeting at a right angle
	tol := DefaultTolerances()
	wl := NewWaveFront(Vec{0, 10}, Vec{0, 0}).Line
	wr := NewWaveFront(Vec{0, 0}, Vec{10, 0}).Line

	// WHEN the bisector is computed
	bis := ComputeBisector(wl, wr, tol)

	// THEN it classifies as a point intersection and is not near-zero
	assert.Equal(t, BisectorPoint, bis.Kind)
	assert.False(t, bis.IsNearZero(tol))
}

func TestComputeBisector_Parallel_OppositeDirections_IsNearZero(t *testing.T) {
	// GIVEN two parallel wavefronts with opposite normals (y=0 moving up,
	// y=-10 moving down, away from each other)
	tol := DefaultTolerances()
	wl := NewLine2(Vec{0, 1}, 0)
	wr := NewLine2(Vec{0, -1}, -10)

	bis := ComputeBisector(wl, wr, tol)

	assert.Equal(t, BisectorParallel, bis.Kind)
	assert.True(t, bis.IsNearZero(tol))
}

func TestComputeBisector_Line_SameSupportingLine(t *testing.T) {
	tol := DefaultTolerances()
	wl := NewLine2(Vec{1, 0}, 0)
	wr := NewLine2(Vec{1, 0}, 0)

	bis := ComputeBisector(wl, wr, tol)

	assert.Equal(t, BisectorLine, bis.Kind)
}
