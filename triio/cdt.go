// Package triio defines the external collaborator contracts the kinetic
// triangulation simulator is built against (spec.md §6): an inbound
// constrained Delaunay triangulation and an inbound orientation predicate,
// plus a reference constrained triangulator good enough to drive tests,
// the CLI and examples end to end. It is explicitly not a production CDT —
// a real deployment supplies its own, conforming to the CDT interface.
package triio

import "github.com/strskel/strskel/geom"

// Cw and Ccw are the side-index rotations every triangle-side walk in the
// kinetic data structure is built on: side i is opposite vertex i, Cw(i) is
// the side clockwise from i, Ccw(i) counter-clockwise.
func Cw(i int) int  { return (i + 2) % 3 }
func Ccw(i int) int { return (i + 1) % 3 }

// InputVertex is one vertex of the inbound triangulation.
type InputVertex struct {
	Pos      geom.Vec
	Info     int
	IsFinite bool
}

// Triangle is one triangle of the inbound constrained Delaunay
// triangulation: three vertex indices into CDT.Vertices, three neighbour
// triangle indices (-1 if none), three per-side constrained flags, and the
// region depth assigned by the region-classification pass (odd depth means
// inside the polygon, per the standard even-odd flood used by CDT region
// tagging).
type Triangle struct {
	Vertices    [3]int
	Neighbours  [3]int
	Constrained [3]bool
	Depth       int
}

// CDT is the inbound triangulation contract (spec.md §6): vertices with
// finiteness/position/info, triangles with vertex/neighbour/constrained
// triples and a region depth. The cw/ccw side rotations are the package
// functions Cw and Ccw, not methods of the interface.
type CDT interface {
	Vertices() []InputVertex
	Triangles() []Triangle
}

// OrientFunc is the inbound predicate contract: a conforming implementation
// must be exact or at least monotone, returning exactly zero on truly
// collinear input (spec.md §6). geom.Orient2D serves the advisory checks
// the oracle runs, which never alter control flow; the reference
// triangulator also uses it for its ear and self-intersection tests.
type OrientFunc func(a, b, c geom.Vec) float64
