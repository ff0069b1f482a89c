package geom

// IntersectionKind classifies how two Line2 values relate to each other,
// replacing the original's exception-based control flow (DESIGN NOTES:
// "Exceptions for control flow") with an explicit tagged result.
type IntersectionKind int

const (
	// NoIntersection: parallel, distinct lines.
	NoIntersection IntersectionKind = iota
	// PointIntersection: a unique crossing point.
	PointIntersection
	// CoincidentLines: the two lines overlap everywhere.
	CoincidentLines
)

// LineLineResult is the outcome of classifying the intersection of two
// lines: exactly one of Point (valid when Kind==PointIntersection) or the
// coincident line itself (valid when Kind==CoincidentLines) is meaningful.
type LineLineResult struct {
	Kind  IntersectionKind
	Point Vec
	Line  Line2
}

// IntersectLines classifies and, where applicable, computes the
// intersection of one and other, following line2d.py's
// LineLineIntersector.intersection_type.
func IntersectLines(one, other Line2, tol Tolerances) LineLineResult {
	a1, b1, c1 := one.W.X, one.W.Y, one.B
	a2, b2, c2 := other.W.X, other.W.Y, other.B
	denom := a1*b2 - a2*b1
	if tol.NearZero(denom) {
		x1 := a1*c2 - a2*c1
		x2 := b1*c2 - b2*c1
		if tol.NearZero(x1) && tol.NearZero(x2) {
			return LineLineResult{Kind: CoincidentLines, Line: one}
		}
		return LineLineResult{Kind: NoIntersection}
	}
	num1 := b1*c2 - b2*c1
	num2 := a2*c1 - a1*c2
	return LineLineResult{
		Kind:  PointIntersection,
		Point: Vec{num1 / denom, num2 / denom},
	}
}
