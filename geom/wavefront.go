package geom

import "fmt"

// WaveFront is a line together with the original segment endpoints it was
// derived from; the endpoints are carried only to identify the edge, per
// spec.md §3 — the propagating geometry is Line itself.
type WaveFront struct {
	Line  Line2
	Start Vec
	End   Vec
}

// NewWaveFront builds a WaveFront from its two endpoints.
func NewWaveFront(start, end Vec) WaveFront {
	return WaveFront{Line: LineFromPoints(start, end), Start: start, End: end}
}

func (w WaveFront) String() string {
	return fmt.Sprintf("WF start: %v end: %v line: %v", w.Start, w.End, w.Line)
}

// BisectorKind classifies how two wavefront lines meeting at a kinetic
// vertex combine, per spec.md §4.2.
type BisectorKind int

const (
	// BisectorPoint: the two wavefronts are non-parallel.
	BisectorPoint BisectorKind = iota
	// BisectorLine: the two wavefronts are coincident at t=0.
	BisectorLine
	// BisectorParallel: the two wavefronts are parallel and distinct.
	BisectorParallel
)

// Bisector is the outcome of the bisector protocol (spec.md §4.2): the
// velocity a new kinetic vertex should move with, and which of the three
// classification cases produced it.
type Bisector struct {
	Kind     BisectorKind
	Velocity Vec
}

// ComputeBisector implements the bisector protocol of spec.md §4.2: given
// the two wavefront lines meeting at a vertex (left wl, right wr), classify
// their intersection and compute the resulting velocity.
func ComputeBisector(wl, wr Line2, tol Tolerances) Bisector {
	res := IntersectLines(wl, wr, tol)
	switch res.Kind {
	case CoincidentLines:
		return Bisector{Kind: BisectorLine, Velocity: wl.W.Add(wr.W).Scale(0.5)}
	case PointIntersection:
		leftT := wl.Translated(wl.W)
		rightT := wr.Translated(wr.W)
		innerRes := IntersectLines(leftT, rightT, tol)
		if innerRes.Kind != PointIntersection {
			// Degenerate numerically; treat as parallel.
			return Bisector{Kind: BisectorParallel, Velocity: wl.W.Add(wr.W)}
		}
		return Bisector{Kind: BisectorPoint, Velocity: innerRes.Point.Sub(res.Point)}
	default: // NoIntersection
		return Bisector{Kind: BisectorParallel, Velocity: wl.W.Add(wr.W)}
	}
}

// IsNearZero reports whether the bisector's velocity magnitude is below
// tol.Dist, meaning the forming kinetic vertex must be marked infinitely
// fast (spec.md §4.2).
func (b Bisector) IsNearZero(tol Tolerances) bool {
	return tol.NearZero(b.Velocity.Norm())
}
