package skeleton

import "github.com/strskel/strskel/geom"

// Transform undoes a shrink-to-unit-box normalisation applied before
// triangulation (grassfire.transform.get_transform); Forward maps input
// coordinates into the normalised frame, Backward maps skeleton output back
// out. A nil *Transform means no normalisation was applied.
type Transform struct {
	Origin geom.Vec
	Scale  float64
}

func (tr *Transform) Forward(p geom.Vec) geom.Vec {
	return p.Sub(tr.Origin).Scale(1 / tr.Scale)
}

func (tr *Transform) Backward(p geom.Vec) geom.Vec {
	return p.Scale(tr.Scale).Add(tr.Origin)
}

// NewTransform builds the shrink-to-unit-box normalisation for the given
// bounding box (transform.get_transform): centered at the box's midpoint,
// scaled so the box's longer axis maps into [-1, 1].
func NewTransform(min, max geom.Vec) *Transform {
	center := geom.Vec{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2}
	scale := (max.X - min.X) / 2
	if dy := (max.Y - min.Y) / 2; dy > scale {
		scale = dy
	}
	if scale == 0 {
		scale = 1
	}
	return &Transform{Origin: center, Scale: scale}
}

// Stats accumulates run-time counters that don't belong on any single
// triangle or vertex: most importantly SidesOverrideCount, the resolution
// of Open Question 1 (the one documented tolerance override applied when a
// 3-triangle's sides are collapsing to a point faster than its vertices
// converge numerically suggests).
type Stats struct {
	Iterations        int
	SidesOverrideCount int
	EdgeEvents        int
	SplitEvents       int
	FlipEvents        int
}

// Skeleton is the arena owning every Node, Vertex and Triangle created
// during the simulation (DESIGN NOTES: arena ownership instead of a free
// scatter of cyclic references — here realised as Go slices of pointers,
// see DESIGN.md for why generation-counter indices were not needed).
type Skeleton struct {
	Nodes      []*Node
	Vertices   []*KineticVertex
	Stationary []*StationaryVertex
	Triangles  []*Triangle

	Transform *Transform
	Stats     Stats

	// RayHorizon bounds how far Offsets will project a vertex whose
	// velocity has grown numerically large (a near-parallel wavefront
	// pair approaching the InfFast case), rather than emitting an
	// arbitrarily distant point. Defaults to DefaultRayHorizon.
	RayHorizon float64
}

func NewSkeleton() *Skeleton {
	return &Skeleton{RayHorizon: DefaultRayHorizon}
}

func (s *Skeleton) NewNode(pos geom.Vec, step int, info int) *Node {
	n := &Node{Pos: pos, Step: step, Info: info}
	s.Nodes = append(s.Nodes, n)
	return n
}

func (s *Skeleton) NewKineticVertex() *KineticVertex {
	v := &KineticVertex{}
	s.Vertices = append(s.Vertices, v)
	return v
}

func (s *Skeleton) NewStationaryVertex(origin geom.Vec) *StationaryVertex {
	v := &StationaryVertex{Origin: origin}
	s.Stationary = append(s.Stationary, v)
	return v
}

func (s *Skeleton) NewTriangle() *Triangle {
	t := &Triangle{}
	s.Triangles = append(s.Triangles, t)
	return t
}

// Segment is one edge of the output skeleton: the straight-line piece a
// kinetic vertex traced out between its start node and its stop node.
type Segment struct {
	Start, End geom.Vec
}

// Segments returns every finished skeleton edge: for each kinetic vertex
// that has stopped, the straight segment from where it started to where it
// stopped (grassfire.calc_skel's final sk_nodes/edges extraction, spec.md
// §7 "the skeleton graph").
func (s *Skeleton) Segments() []Segment {
	var out []Segment
	for _, v := range s.Vertices {
		if v.StartNode == nil || v.StopNode == nil {
			continue
		}
		out = append(out, Segment{Start: v.StartNode.Pos, End: v.StopNode.Pos})
	}
	return out
}

// DefaultRayHorizon bounds how far an Offsets query projects a vertex whose
// velocity has grown numerically large, mirroring the 1000.0 distance
// line2d.py's perpendicular_through extends a ray by when drawing an
// unbounded line (SPEC_FULL §13 makes this a configurable run option rather
// than a hardcoded constant).
const DefaultRayHorizon = 1000.0

// Offset is one edge of the wavefront polygon at a fixed simulated time t.
type Offset struct {
	Start, End geom.Vec
	Time       float64
}

// Offsets samples the wavefront polygon at time t: for every kinetic vertex
// alive at t, the segment from it to its (time-indexed) right neighbour,
// following grassfire.calc_offsets and looking the neighbour up in the
// vertex's own time-indexed journal (RightAt). Positions
// are clamped to s.RayHorizon from the vertex's origin, so a near-parallel
// wavefront pair's large velocity doesn't produce an arbitrarily distant
// point.
func (s *Skeleton) Offsets(t float64) []Offset {
	horizon := s.RayHorizon
	if horizon <= 0 {
		horizon = DefaultRayHorizon
	}
	var out []Offset
	for _, v := range s.Vertices {
		if v.StartsAt > t {
			continue
		}
		if v.StopsAt != nil && *v.StopsAt <= t {
			continue
		}
		right := v.RightAt(t)
		if right == nil {
			continue
		}
		out = append(out, Offset{
			Start: clampToHorizon(v.Origin, v.PositionAt(t), horizon),
			End:   clampToHorizon(right.Origin, right.PositionAt(t), horizon),
			Time:  t,
		})
	}
	return out
}

// clampToHorizon returns pos unless it lies further than horizon from
// origin, in which case it returns the point at distance horizon from
// origin along the same direction.
func clampToHorizon(origin, pos geom.Vec, horizon float64) geom.Vec {
	d := geom.Dist(origin, pos)
	if d <= horizon || d == 0 {
		return pos
	}
	dir := pos.Sub(origin).Scale(1 / d)
	return origin.Add(dir.Scale(horizon))
}
