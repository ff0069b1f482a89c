// Package skeleton implements the kinetic data structure (KDS) component of
// the straight-skeleton simulator: kinetic vertices, kinetic triangles, the
// circular wavefront linked list, skeleton nodes, and the evolving topology.
package skeleton

import "github.com/strskel/strskel/geom"

// Node is a vertex of the output straight-skeleton graph: a point plus a
// creation step identifier. Created once when one or more kinetic vertices
// stop there; never destroyed; may later acquire more stopping vertices.
type Node struct {
	Pos  geom.Vec
	Step int
	Info int // info of the originating triangulation vertex, if any
}

// PositionAt returns Pos regardless of t, so Node satisfies the same
// "position at time" interface as a moving vertex — simplifies callers that
// treat segment endpoints uniformly.
func (n *Node) PositionAt(float64) geom.Vec {
	return n.Pos
}
