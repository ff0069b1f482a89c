package skeleton

import "github.com/strskel/strskel/geom"

// Vertex is the tagged-union replacement (DESIGN NOTES: "Polymorphism KV vs
// InfiniteVertex") for the original's KineticVertex/InfiniteVertex
// inheritance: a triangle corner is either a moving KineticVertex or the
// single stationary centroid vertex that closes the outer boundary. Most
// call sites only need PositionAt; the few that need kinetic-only state
// (velocity, wavefronts, the neighbour journal) type-assert to
// *KineticVertex explicitly.
type Vertex interface {
	PositionAt(t float64) geom.Vec
	IsStationary() bool
}

// StationaryVertex is the single "far" vertex every kinetic triangle on the
// outer boundary carries after the initializer collapses the three infinite
// hull corners into one stationary centroid (spec.md §4.1 step 1, step 5).
type StationaryVertex struct {
	Origin geom.Vec
	Info   int
}

func (s *StationaryVertex) PositionAt(float64) geom.Vec { return s.Origin }
func (s *StationaryVertex) IsStationary() bool          { return true }

// Dist2At returns the squared distance from s to other at time t.
func (s *StationaryVertex) Dist2At(other Vertex, t float64) float64 {
	return geom.Dist2(s.Origin, other.PositionAt(t))
}

// KineticVertex is a corner of the propagating wavefront: a point moving at
// constant velocity between events (spec.md §3).
type KineticVertex struct {
	Origin   geom.Vec
	Velocity geom.Vec
	InfFast  bool // moves infinitely fast (parallel/reflex degeneracy, spec.md §4.2)

	StartsAt float64
	StopsAt  *float64 // nil while alive; once set, never cleared (invariant 6)

	StartNode *Node
	StopNode  *Node

	// WFL, WFR are the two incident wavefront edges (left and right around
	// the vertex); UL, UR are the *lines* of those wavefronts at vertex
	// creation time, kept so that new KVs created later can re-derive
	// velocities via the bisector protocol (spec.md §3).
	WFL, WFR *geom.WaveFront
	UL, UR   geom.Line2

	left, right neighborJournal

	Info     int
	Internal bool  // lies on the interior side of the polygon boundary
	Turn     string // diagnostic: "LEFT - CONVEX" / "RIGHT - REFLEX" / "STRAIGHT"
}

func (v *KineticVertex) IsStationary() bool { return false }

// IsStopped reports whether this vertex has stopped (has a stop node).
func (v *KineticVertex) IsStopped() bool {
	return v.StopNode != nil
}

// PositionAt returns the vertex's position at time t: the straight-line
// trajectory origin+t*velocity, or its start (forming) node's position if
// the vertex is infinitely fast (spec.md §3).
func (v *KineticVertex) PositionAt(t float64) geom.Vec {
	if v.InfFast {
		return v.StartNode.Pos
	}
	return v.Origin.Add(v.Velocity.Scale(t))
}

// Dist2At returns the squared distance from v to other at time t.
func (v *KineticVertex) Dist2At(other Vertex, t float64) float64 {
	return geom.Dist2(v.PositionAt(t), other.PositionAt(t))
}

// Left returns the current left neighbour in the wavefront circular list.
func (v *KineticVertex) Left() *KineticVertex { return v.left.current() }

// Right returns the current right neighbour in the wavefront circular list.
func (v *KineticVertex) Right() *KineticVertex { return v.right.current() }

// LeftAt returns the left neighbour as of time t (history lookup).
func (v *KineticVertex) LeftAt(t float64) *KineticVertex { return v.left.at(t) }

// RightAt returns the right neighbour as of time t (history lookup).
func (v *KineticVertex) RightAt(t float64) *KineticVertex { return v.right.at(t) }

// SetLeft records that ref becomes v's left neighbour as of time now,
// closing the previous entry's validity interval.
func (v *KineticVertex) SetLeft(ref *KineticVertex, now float64) { v.left.set(ref, now) }

// SetRight records that ref becomes v's right neighbour as of time now,
// closing the previous entry's validity interval.
func (v *KineticVertex) SetRight(ref *KineticVertex, now float64) { v.right.set(ref, now) }

// Stop marks v as stopped at node at time t. A vertex is stopped at most
// once (invariant 6); calling Stop twice is a programmer error the caller
// must avoid by checking IsStopped first.
func (v *KineticVertex) Stop(node *Node, t float64) {
	v.StopNode = node
	v.StopsAt = &t
}

// UpdateCirc links vLeft and vRight as mutual left/right neighbours at time
// now, following events/lib.py's update_circ. Either side may be nil.
func UpdateCirc(vLeft, vRight *KineticVertex, now float64) {
	if vLeft != nil {
		vLeft.SetRight(vRight, now)
	}
	if vRight != nil {
		vRight.SetLeft(vLeft, now)
	}
}
