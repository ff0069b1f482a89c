// Package oracle is the collapse-time oracle (component C): given a
// kinetic triangle it produces at most one Event describing when and how
// the triangle next degenerates, using the quadratic area-collapse
// equation, linear edge-collapse times and the vertex-crash equation.
package oracle

import (
	"math"

	"github.com/strskel/strskel/geom"
	"github.com/strskel/strskel/skeleton"
)

// SolveQuadratic returns the real roots of A*x^2 + B*x + C = 0, using the
// eigenvalue-of-the-companion-matrix (centre ± sqrt(centre^2 - D)) form
// rather than the classical discriminant formula: it avoids the
// catastrophic cancellation the classical b±sqrt(b^2-4ac) form suffers
// from when b^2 >> 4ac, which happens routinely here since B and C carry
// plain (unscaled) coordinate magnitudes.
func SolveQuadratic(a, b, c float64, tol geom.Tolerances) []float64 {
	if tol.NearZero(a) && !tol.NearZero(b) {
		return []float64{-c / b}
	}
	if tol.NearZero(a) && tol.NearZero(b) {
		return nil
	}
	t := -b / a
	d := c / a
	centre := t * 0.5
	under := 0.25*t*t - d
	switch {
	case tol.NearZero(under):
		return []float64{centre}
	case under < 0:
		return nil
	default:
		pm := math.Sqrt(under)
		return []float64{centre - pm, centre + pm}
	}
}

// AreaCollapseTimeCoeff returns the (A,B,C) coefficients of the quadratic
// in t obtained by expanding the signed-area-as-function-of-time
// determinant of three moving points (twice the signed area) in powers of t
// (grassfire collapse.area_collapse_time_coeff).
func AreaCollapseTimeCoeff(a, b, c skeleton.Vertex, now float64) (float64, float64, float64) {
	pa, pb, pc := originVel(a, now), originVel(b, now), originVel(c, now)
	A := pa.dx*pb.dy - pb.dx*pa.dy + pb.dx*pc.dy - pc.dx*pb.dy + pc.dx*pa.dy - pa.dx*pc.dy
	B := pa.x*pb.dy - pb.x*pa.dy + pb.x*pc.dy - pc.x*pb.dy + pc.x*pa.dy - pa.x*pc.dy +
		pa.dx*pb.y - pb.dx*pa.y + pb.dx*pc.y - pc.dx*pb.y + pc.dx*pa.y - pa.dx*pc.y
	C := pa.x*pb.y - pb.x*pa.y + pb.x*pc.y - pc.x*pb.y + pc.x*pa.y - pa.x*pc.y
	return A, B, C
}

type posVel struct{ x, y, dx, dy float64 }

// originVel returns the origin and velocity the area-collapse quadratic uses
// for a vertex: a kinetic vertex obeys origin+t*velocity measured from t=0,
// so its raw fields are returned unchanged; stationary and
// inf_fast vertices contribute zero velocity (their position is frozen for
// the quadratic's duration, matching the original's treatment of the far
// vertex and a not-yet-formed kv as stationary within one event's
// timestep).
func originVel(v skeleton.Vertex, now float64) posVel {
	if kv, ok := v.(*skeleton.KineticVertex); ok && !kv.InfFast {
		return posVel{kv.Origin.X, kv.Origin.Y, kv.Velocity.X, kv.Velocity.Y}
	}
	p := v.PositionAt(now)
	return posVel{p.X, p.Y, 0, 0}
}

// AreaCollapseTimes returns the sorted times at which the signed area of
// the triangle (a,b,c) is zero, i.e. the times the three vertices become
// collinear.
func AreaCollapseTimes(a, b, c skeleton.Vertex, now float64, tol geom.Tolerances) []float64 {
	A, B, C := AreaCollapseTimeCoeff(a, b, c, now)
	roots := SolveQuadratic(A, B, C, tol)
	sorted := append([]float64(nil), roots...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return sorted
}

// EdgeCollapseTime returns the time minimizing |p1(t)-p2(t)|^2 between two
// kinetic vertices (a linear equation in t, since the squared distance of
// two uniformly-moving points is a quadratic with a single stationary
// point). It is returned even when the minimum distance at that time is
// nonzero; callers check the distance themselves.
func EdgeCollapseTime(v1, v2 *skeleton.KineticVertex) (float64, bool) {
	p1, p2 := v1.Origin, v2.Origin
	s1, s2 := v1.Velocity, v2.Velocity
	dp := p1.Sub(p2)
	ds := s1.Sub(s2)
	denom := ds.Dot(ds)
	if denom == 0 {
		return 0, false
	}
	t := -dp.Dot(ds) / denom
	return t, true
}

// VertexCrashTime returns the time at which vertex apx meets the
// supporting line of the wavefront incident to (org,dst), i.e.
// t = (n . (apx.origin - org.origin)) / (1 - s.n), where n is org.ur's
// normal and s is apx's velocity. The second return is false when the
// denominator is near zero (apx's velocity component along n is about 1, so
// it keeps pace with the wavefront and never reaches it).
func VertexCrashTime(org, dst, apx *skeleton.KineticVertex, tol geom.Tolerances) (float64, bool) {
	n := org.UR.W
	mv := apx.Origin.Sub(org.Origin)
	distVE := mv.Dot(n)
	sProj := apx.Velocity.Dot(n)
	denom := 1.0 - sProj
	if tol.NearZero(denom) {
		return 0, false
	}
	return distVE / denom, true
}

// Sieve filters out-of-range candidate times and returns the smallest
// remaining one, using either a strict (gt) or inclusive (gte) comparison
// against now (spec.md §4.3's two sieve variants). A value within tolerance
// of now is clamped to now rather than dropped: the gte variant needs it to
// survive as a legitimate "collapses right now" candidate so engine's
// recompute(t, false) call sites (fanReplace, promoteIfAlive, handleFlip,
// handleParallelFlipPair) can detect chained immediate events (spec.md
// §4.4); the gt variant still excludes it, since after clamping it equals
// now and v<=now is excluded there.
func Sieve(values []float64, now float64, tol geom.Tolerances, strict bool) (float64, bool) {
	best := math.Inf(1)
	found := false
	for _, v := range values {
		if tol.NearZeroTime(v - now) {
			v = now
		}
		if strict && v <= now {
			continue
		}
		if !strict && v < now {
			continue
		}
		if v < best {
			best, found = v, true
		}
	}
	return best, found
}
