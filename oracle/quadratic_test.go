package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strskel/strskel/geom"
	"github.com/strskel/strskel/skeleton"
)

func TestSolveQuadratic_TwoRealRoots(t *testing.T) {
	// GIVEN x^2 - 5x + 6 = 0, roots 2 and 3
	roots := SolveQuadratic(1, -5, 6, geom.DefaultTolerances())
	assert.ElementsMatch(t, []float64{2, 3}, roundAll(roots))
}

func TestSolveQuadratic_NoRealRoots(t *testing.T) {
	roots := SolveQuadratic(1, 0, 1, geom.DefaultTolerances())
	assert.Empty(t, roots)
}

func TestSolveQuadratic_DegenerateToLinear(t *testing.T) {
	// GIVEN a near-zero leading coefficient: 2x - 4 = 0
	roots := SolveQuadratic(0, 2, -4, geom.DefaultTolerances())
	assert.Equal(t, []float64{2.0}, roots)
}

func TestSolveQuadratic_AllCoefficientsZero_NoRoots(t *testing.T) {
	roots := SolveQuadratic(0, 0, 0, geom.DefaultTolerances())
	assert.Empty(t, roots)
}

func roundAll(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = float64(int(v*1e6+0.5)) / 1e6
	}
	return out
}

func TestEdgeCollapseTime_ConvergingVertices(t *testing.T) {
	// GIVEN two vertices approaching each other along X
	v1 := &skeleton.KineticVertex{Origin: geom.Vec{X: 0, Y: 0}, Velocity: geom.Vec{X: 1, Y: 0}}
	v2 := &skeleton.KineticVertex{Origin: geom.Vec{X: 10, Y: 0}, Velocity: geom.Vec{X: -1, Y: 0}}

	tm, ok := EdgeCollapseTime(v1, v2)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, tm, 1e-9)
}

func TestEdgeCollapseTime_ParallelVelocities_NoSolution(t *testing.T) {
	v1 := &skeleton.KineticVertex{Origin: geom.Vec{X: 0, Y: 0}, Velocity: geom.Vec{X: 1, Y: 0}}
	v2 := &skeleton.KineticVertex{Origin: geom.Vec{X: 0, Y: 5}, Velocity: geom.Vec{X: 1, Y: 0}}

	_, ok := EdgeCollapseTime(v1, v2)
	assert.False(t, ok)
}

func TestSieve_PicksSmallestFutureValue(t *testing.T) {
	tol := geom.DefaultTolerances()
	best, ok := Sieve([]float64{5, 2, 8, 1}, 0, tol, true)
	assert.True(t, ok)
	assert.Equal(t, 1.0, best)
}

func TestSieve_ExcludesPastAndNearNowValues(t *testing.T) {
	tol := geom.DefaultTolerances()
	best, ok := Sieve([]float64{-1, 0, 3}, 0, tol, true)
	assert.True(t, ok)
	assert.Equal(t, 3.0, best)
}

func TestSieve_NoCandidates_ReturnsFalse(t *testing.T) {
	tol := geom.DefaultTolerances()
	_, ok := Sieve(nil, 0, tol, true)
	assert.False(t, ok)
}

func TestSieve_NonStrict_AllowsNowItself(t *testing.T) {
	tol := geom.DefaultTolerances()

	// GIVEN a value exactly at now: the strict (gt) sieve must exclude it
	_, ok := Sieve([]float64{0}, 0, tol, true)
	assert.False(t, ok, "strict sieve must exclude now")

	// WHEN/THEN the non-strict (gte) sieve keeps it and returns it as the
	// winning candidate (spec.md §4.3: values at now are kept, not dropped)
	best, ok := Sieve([]float64{0}, 0, tol, false)
	assert.True(t, ok, "non-strict sieve must keep now itself")
	assert.Equal(t, 0.0, best)
}

func TestSieve_NonStrict_ClampsNearNowValueToNowInsteadOfDropping(t *testing.T) {
	tol := geom.DefaultTolerances()
	nearNow := tol.Time / 2 // within tolerance of now, but not exactly now

	// a strict sieve still excludes a near-now value once clamped to now
	_, ok := Sieve([]float64{nearNow}, 0, tol, true)
	assert.False(t, ok)

	// a non-strict sieve keeps it, clamped to exactly now rather than
	// dropped or left at its raw (slightly-off) value
	best, ok := Sieve([]float64{nearNow}, 0, tol, false)
	assert.True(t, ok, "non-strict sieve must keep a near-now candidate")
	assert.Equal(t, 0.0, best)
}

func TestSieve_NonStrict_FarFutureValueIsUnaffected(t *testing.T) {
	tol := geom.DefaultTolerances()
	best, ok := Sieve([]float64{0.5}, 0, tol, false)
	assert.True(t, ok)
	assert.Equal(t, 0.5, best)
}

func TestAreaCollapseTimes_CollinearAtKnownTime(t *testing.T) {
	// GIVEN three vertices that become collinear at t=1
	a := &skeleton.KineticVertex{Origin: geom.Vec{X: 0, Y: 0}, Velocity: geom.Vec{X: 0, Y: 0}}
	b := &skeleton.KineticVertex{Origin: geom.Vec{X: 10, Y: 0}, Velocity: geom.Vec{X: 0, Y: 0}}
	c := &skeleton.KineticVertex{Origin: geom.Vec{X: 5, Y: 5}, Velocity: geom.Vec{X: 0, Y: -5}}

	times := AreaCollapseTimes(a, b, c, 0, geom.DefaultTolerances())
	assert.NotEmpty(t, times)
	assert.InDelta(t, 1.0, times[0], 1e-9)
}
