package skeleton

import "github.com/strskel/strskel/geom"

// EventKind distinguishes the event a triangle is cached as collapsing into
// (DESIGN NOTES: "Option<Event> cache instead of dynamic attribute
// mutation").
type EventKind int

const (
	NoEvent EventKind = iota
	EdgeEvent
	FlipEvent
	SplitEvent
)

func (k EventKind) String() string {
	switch k {
	case EdgeEvent:
		return "edge"
	case FlipEvent:
		return "flip"
	case SplitEvent:
		return "split"
	default:
		return "none"
	}
}

// Event is the oracle's verdict on a triangle: at Time, the sides listed in
// Side collapse (Kind EdgeEvent/FlipEvent), or the opposite-vertex-to-edge
// split happens (Kind SplitEvent). A triangle caches at most one Event,
// replacing the Python original's scattered "collapse time"/"event type"
// attributes glued onto the triangle.
type Event struct {
	Kind     EventKind
	Time     float64
	Triangle *Triangle
	Side     []int // indices (0,1,2) of the collapsing side(s), if any

	// Override marks an event the oracle resolved via the "sides-collapsing
	// override" (an ambiguous zero-length-side count treated as "all 3
	// collapse"), tallied by the simulator into Stats.SidesOverrideCount.
	Override bool
}

// Triangle is a kinetic triangle: three vertices (either moving
// KineticVertex or the StationaryVertex), up to three neighbouring
// triangles across sides 0,1,2 (opposite Vertices[i]), and up to three
// wavefront support lines on the sides that lie on the propagating front
// rather than against a neighbour (spec.md §2).
type Triangle struct {
	Vertices   [3]Vertex
	Neighbours [3]*Triangle

	// WavefrontSupportLines[i] is non-nil when side i (opposite
	// Vertices[i]) lies on the wavefront rather than against a triangle
	// neighbour; Neighbours[i] is nil in that case (spec.md invariant 1).
	WavefrontSupportLines [3]*geom.WaveFront

	Info     int
	Internal bool
	StopsAt  *float64

	cachedEvent *Event
}

// Type returns the number of wavefront (nil-neighbour) sides: 0 for an
// internal triangle with three triangle neighbours, up to 3 for an isolated
// triangle whose every side faces the wavefront (spec.md §2, §5 case
// analysis 0-3).
func (t *Triangle) Type() int {
	n := 0
	for _, nb := range t.Neighbours {
		if nb == nil {
			n++
		}
	}
	return n
}

// IsFinite reports whether all three vertices are kinetic (none is the
// stationary far vertex closing the hull).
func (t *Triangle) IsFinite() bool {
	for _, v := range t.Vertices {
		if v.IsStationary() {
			return false
		}
	}
	return true
}

// SideIndex returns the side index (0,1,2) opposite the given vertex
// pointer, or -1 if v is not one of the triangle's vertices.
func (t *Triangle) SideIndex(v Vertex) int {
	for i, u := range t.Vertices {
		if u == v {
			return i
		}
	}
	return -1
}

// cw returns the vertex index one step clockwise from i (i.e. i-1 mod 3).
func cw(i int) int { return (i + 2) % 3 }

// ccw returns the vertex index one step counter-clockwise from i (i.e. i+1
// mod 3).
func ccw(i int) int { return (i + 1) % 3 }

// Event returns the triangle's cached collapse verdict, or nil if none has
// been computed yet (or it was invalidated by a topology change).
func (t *Triangle) Event() *Event { return t.cachedEvent }

// SetEvent caches ev as the triangle's collapse verdict.
func (t *Triangle) SetEvent(ev *Event) { t.cachedEvent = ev }

// ClearEvent invalidates the cached collapse verdict, forcing the oracle to
// recompute it next time it's needed (spec.md invariant 7).
func (t *Triangle) ClearEvent() { t.cachedEvent = nil }

// Neighbour returns the neighbour across side i, or nil if side i is a
// wavefront side.
func (t *Triangle) Neighbour(i int) *Triangle { return t.Neighbours[i] }

// ReplaceNeighbour finds oldNb among Neighbours and replaces it with newNb,
// restoring invariant "neighbour symmetry" from the caller's side; the
// caller is responsible for updating newNb's reciprocal slot.
func (t *Triangle) ReplaceNeighbour(oldNb, newNb *Triangle) {
	for i, nb := range t.Neighbours {
		if nb == oldNb {
			t.Neighbours[i] = newNb
			return
		}
	}
}
