package engine

import (
	"github.com/strskel/strskel/geom"
	"github.com/strskel/strskel/skelerr"
	"github.com/strskel/strskel/skeleton"
)

func cw3(i int) int  { return (i + 2) % 3 }
func ccw3(i int) int { return (i + 1) % 3 }

func average(pts ...geom.Vec) geom.Vec {
	return geom.Centroid(pts)
}

// intersectWavefronts is the "stopping point" computation shared by every
// edge-event handler: the two wavefront support lines translated to time
// now, intersected; false if they're parallel.
func intersectWavefronts(a, b *geom.WaveFront, now float64, tol geom.Tolerances) (geom.Vec, bool) {
	if a == nil || b == nil {
		return geom.Vec{}, false
	}
	res := geom.IntersectLines(a.Line.AtTime(now), b.Line.AtTime(now), tol)
	if res.Kind != geom.PointIntersection {
		return geom.Vec{}, false
	}
	return res.Point, true
}

// fanReplace walks the fan of triangles incident to oldV starting at start
// (which must already contain oldV), replacing oldV with newV in each and
// re-running the oracle, until it hits a wavefront boundary (nil neighbour)
// or returns to its starting triangle. It never doubles back the way it
// came, so it continues in one rotational direction away from the
// triangle the caller is retiring.
func (s *Simulator) fanReplace(start *skeleton.Triangle, oldV, newV skeleton.Vertex) error {
	cur := start
	var came *skeleton.Triangle
	visited := map[*skeleton.Triangle]bool{}
	for cur != nil && !visited[cur] {
		visited[cur] = true
		li := cur.SideIndex(oldV)
		if li < 0 {
			break
		}
		cur.Vertices[li] = newV
		if err := s.recompute(cur, false); err != nil {
			return err
		}
		sideA, sideB := cw3(li), ccw3(li)
		nbA, nbB := cur.Neighbour(sideA), cur.Neighbour(sideB)
		var next *skeleton.Triangle
		switch {
		case nbA != nil && nbA != came:
			next = nbA
		case nbB != nil && nbB != came:
			next = nbB
		}
		came, cur = cur, next
	}
	return nil
}

// promoteIfAlive schedules a neighbour's cached event on the Immediate
// FIFO if it has one and hasn't stopped (spec.md §4.5.1 step 6: a
// neighbour about to collapse simultaneously is processed before the clock
// advances again).
func (s *Simulator) promoteIfAlive(t *skeleton.Triangle) error {
	if t == nil || t.StopsAt != nil {
		return nil
	}
	if ev := t.Event(); ev != nil {
		s.q.ScheduleImmediate(ev)
		return nil
	}
	if err := s.recompute(t, false); err != nil {
		return err
	}
	if ev := t.Event(); ev != nil {
		s.q.ScheduleImmediate(ev)
	}
	return nil
}

// handleSingleSideEdge is spec.md §4.5.1: one side of T collapses, either a
// wavefront edge or a spoke.
func (s *Simulator) handleSingleSideEdge(t *skeleton.Triangle, e int) error {
	v1, ok1 := t.Vertices[ccw3(e)].(*skeleton.KineticVertex)
	v2, ok2 := t.Vertices[cw3(e)].(*skeleton.KineticVertex)
	if !ok1 || !ok2 {
		return skelerr.NewImpossibleConfiguration(t.Info, s.now, "single-side edge event on non-kinetic endpoints")
	}
	a := t.Neighbours[ccw3(e)] // fan around v2
	b := t.Neighbours[cw3(e)]  // fan around v1
	n := t.Neighbours[e]

	pos, ok := intersectWavefronts(v1.WFL, v2.WFR, s.now, s.Tol)
	if !ok {
		pos = average(v1.PositionAt(s.now), v2.PositionAt(s.now))
	}
	node := s.findOrReuseNode(pos, v1, v2)
	if !v1.IsStopped() {
		v1.Stop(node, s.now)
	}
	if !v2.IsStopped() {
		v2.Stop(node, s.now)
	}

	kv := s.newKineticVertexFromBisector(v1.UL, v2.UR, v1.WFL, v2.WFR, pos, node)
	skeleton.UpdateCirc(v1.Left(), kv, s.now)
	skeleton.UpdateCirc(kv, v2.Right(), s.now)

	if a != nil {
		a.ReplaceNeighbour(t, b)
	}
	if b != nil {
		b.ReplaceNeighbour(t, a)
	}
	if a != nil {
		if err := s.fanReplace(a, v2, kv); err != nil {
			return err
		}
	}
	if b != nil {
		if err := s.fanReplace(b, v1, kv); err != nil {
			return err
		}
	}

	if n != nil {
		n.ReplaceNeighbour(t, nil)
		if err := s.promoteIfAlive(n); err != nil {
			return err
		}
	}

	now := s.now
	t.StopsAt = &now
	t.ClearEvent()

	if kv.InfFast {
		return s.parallelFanFromVertex(kv)
	}
	return nil
}

// handleThreeSideEdge is spec.md §4.5.2: all three sides of T (three
// spokes) collapse to a single point simultaneously.
func (s *Simulator) handleThreeSideEdge(t *skeleton.Triangle) error {
	var v [3]*skeleton.KineticVertex
	for i, vv := range t.Vertices {
		kv, ok := vv.(*skeleton.KineticVertex)
		if !ok {
			return skelerr.NewImpossibleConfiguration(t.Info, s.now, "three-side edge event touches a stationary vertex")
		}
		v[i] = kv
	}
	pos := average(v[0].PositionAt(s.now), v[1].PositionAt(s.now), v[2].PositionAt(s.now))
	node := s.findOrReuseNode(pos, v[0], v[1], v[2])
	for _, kv := range v {
		if !kv.IsStopped() {
			kv.Stop(node, s.now)
		}
	}
	for _, nb := range t.Neighbours {
		if nb == nil {
			continue
		}
		nb.ReplaceNeighbour(t, nil)
		if err := s.promoteIfAlive(nb); err != nil {
			return err
		}
	}
	now := s.now
	t.StopsAt = &now
	t.ClearEvent()
	return nil
}

// handleType3SingleSideEdge is spec.md §4.5.3: a type-3 triangle (three
// wavefront sides) collapses to a segment, not a point.
func (s *Simulator) handleType3SingleSideEdge(t *skeleton.Triangle, e int) error {
	v1, ok1 := t.Vertices[ccw3(e)].(*skeleton.KineticVertex)
	v2, ok2 := t.Vertices[cw3(e)].(*skeleton.KineticVertex)
	third, ok3 := t.Vertices[e].(*skeleton.KineticVertex)
	if !ok1 || !ok2 || !ok3 {
		return skelerr.NewImpossibleConfiguration(t.Info, s.now, "type-3 single-side edge on non-kinetic vertices")
	}

	pos, ok := intersectWavefronts(v1.WFL, v2.WFR, s.now, s.Tol)
	if !ok {
		pos = average(v1.PositionAt(s.now), v2.PositionAt(s.now))
	}
	node1 := s.findOrReuseNode(pos, v1, v2)
	if !v1.IsStopped() {
		v1.Stop(node1, s.now)
	}
	if !v2.IsStopped() {
		v2.Stop(node1, s.now)
	}

	bridge := s.newKineticVertexFromBisector(v1.UL, v2.UR, v1.WFL, v2.WFR, pos, node1)
	skeleton.UpdateCirc(v1.Left(), bridge, s.now)
	skeleton.UpdateCirc(bridge, v2.Right(), s.now)

	pos2, ok := intersectWavefronts(bridge.WFL, third.WFR, s.now, s.Tol)
	if !ok {
		pos2 = average(bridge.PositionAt(s.now), third.PositionAt(s.now))
	}
	node2 := s.findOrReuseNode(pos2, third)
	if !bridge.IsStopped() {
		bridge.Stop(node2, s.now)
	}
	if !third.IsStopped() {
		third.Stop(node2, s.now)
	}

	now := s.now
	t.StopsAt = &now
	t.ClearEvent()
	return nil
}

// handleSplit is spec.md §4.5.4: the opposite KV of T hits the wavefront
// edge e in its interior, splitting the wavefront into two pieces.
func (s *Simulator) handleSplit(t *skeleton.Triangle, e int) error {
	v, okV := t.Vertices[e].(*skeleton.KineticVertex)
	v1, ok1 := t.Vertices[ccw3(e)].(*skeleton.KineticVertex)
	v2, ok2 := t.Vertices[cw3(e)].(*skeleton.KineticVertex)
	wfE := t.WavefrontSupportLines[e]
	if !okV || !ok1 || !ok2 || wfE == nil {
		return skelerr.NewImpossibleConfiguration(t.Info, s.now, "split event missing wavefront or kinetic vertices")
	}

	pos, ok := intersectWavefronts(v.WFL, v.WFR, s.now, s.Tol)
	if !ok {
		pos = v.PositionAt(s.now)
	}
	node := s.findOrReuseNode(pos, v)
	if !v.IsStopped() {
		v.Stop(node, s.now)
	}

	vb := s.newKineticVertexFromBisector(v.UL, v2.UL, v.WFL, wfE, pos, node)
	va := s.newKineticVertexFromBisector(v1.UR, v.UR, wfE, v.WFR, pos, node)

	skeleton.UpdateCirc(v.Left(), vb, s.now)
	skeleton.UpdateCirc(vb, v2, s.now)
	skeleton.UpdateCirc(v1, va, s.now)
	skeleton.UpdateCirc(va, v.Right(), s.now)

	nbV2 := t.Neighbours[ccw3(e)] // spoke v-v2, fan takes vb
	nbV1 := t.Neighbours[cw3(e)]  // spoke v1-v, fan takes va

	if nbV2 != nil {
		for side, nb := range nbV2.Neighbours {
			if nb == t {
				nbV2.Neighbours[side] = nil
				nbV2.WavefrontSupportLines[side] = vb.WFL
			}
		}
		if err := s.fanReplace(nbV2, v, vb); err != nil {
			return err
		}
	}
	if nbV1 != nil {
		for side, nb := range nbV1.Neighbours {
			if nb == t {
				nbV1.Neighbours[side] = nil
				nbV1.WavefrontSupportLines[side] = va.WFR
			}
		}
		if err := s.fanReplace(nbV1, v, va); err != nil {
			return err
		}
	}

	now := s.now
	t.StopsAt = &now
	t.ClearEvent()

	if vb.InfFast {
		if err := s.parallelFanFromVertex(vb); err != nil {
			return err
		}
	}
	if va.InfFast {
		if err := s.parallelFanFromVertex(va); err != nil {
			return err
		}
	}
	return nil
}

// handleFlip is spec.md §4.6: the standard diagonal flip across side `side`
// of t and its neighbour u, exchanging shared edge B-D for A-C where the
// quadrilateral in CCW order is A,B,C,D (A = t's apex, C = u's apex).
func (s *Simulator) handleFlip(t *skeleton.Triangle, side int) error {
	u, err := s.flipStructure(t, side)
	if err != nil {
		return err
	}
	if err := s.recompute(t, false); err != nil {
		return err
	}
	return s.recompute(u, false)
}

// flipStructure performs the vertex/neighbour surgery of a diagonal flip
// without touching the oracle cache, so both the ordinary flip handler and
// the parallel-fan flip-pair case (spec.md §4.7, grassfire's parallel.py
// flip()) can reuse it: both callers recompute the two triangles right
// after the surgery, and the flip-pair case then applies the even-legs
// treatment to whichever of them still holds the inf-fast pivot.
func (s *Simulator) flipStructure(t *skeleton.Triangle, side int) (*skeleton.Triangle, error) {
	u := t.Neighbour(side)
	if u == nil {
		return nil, skelerr.NewImpossibleConfiguration(t.Info, s.now, "flip event on a wavefront side")
	}
	uSide := -1
	for i, nb := range u.Neighbours {
		if nb == t {
			uSide = i
			break
		}
	}
	if uSide < 0 {
		return nil, skelerr.NewInvariantViolation(t.Info, s.now, "flip neighbour asymmetry with triangle %d", u.Info)
	}

	A := t.Vertices[side]
	B := t.Vertices[ccw3(side)]
	D := t.Vertices[cw3(side)]
	C := u.Vertices[uSide]

	nbAB := t.Neighbours[cw3(side)]   // edge A-B
	nbDA := t.Neighbours[ccw3(side)]  // edge D-A
	nbDC := u.Neighbours[cw3(uSide)]  // edge D-C
	nbCB := u.Neighbours[ccw3(uSide)] // edge C-B

	wfAB := t.WavefrontSupportLines[cw3(side)]
	wfDA := t.WavefrontSupportLines[ccw3(side)]
	wfDC := u.WavefrontSupportLines[cw3(uSide)]
	wfCB := u.WavefrontSupportLines[ccw3(uSide)]

	if nbCB != nil {
		nbCB.ReplaceNeighbour(u, t)
	}
	if nbDA != nil {
		nbDA.ReplaceNeighbour(t, u)
	}

	t.Vertices = [3]skeleton.Vertex{A, B, C}
	t.Neighbours = [3]*skeleton.Triangle{nbCB, u, nbAB}
	t.WavefrontSupportLines = [3]*geom.WaveFront{wfCB, nil, wfAB}

	u.Vertices = [3]skeleton.Vertex{A, C, D}
	u.Neighbours = [3]*skeleton.Triangle{nbDC, nbDA, t}
	u.WavefrontSupportLines = [3]*geom.WaveFront{wfDC, wfDA, nil}

	return u, nil
}

// legLength returns the Euclidean length, at time now, of triangle t's side
// `side` (the segment between its two endpoints, i.e. the vertices at
// indices ccw3(side) and cw3(side) — side itself is the index of the vertex
// opposite it).
func legLength(t *skeleton.Triangle, side int, now float64) float64 {
	a := t.Vertices[ccw3(side)].PositionAt(now)
	b := t.Vertices[cw3(side)].PositionAt(now)
	return geom.Dist(a, b)
}

// walkFan walks the fan of live triangles incident to v starting at start,
// first stepping via firstDir(li) and thereafter continuing away from the
// triangle it came from (mirroring fanReplace), stopping at a wavefront
// boundary or a full loop back to start.
func walkFan(v skeleton.Vertex, start *skeleton.Triangle, firstDir func(int) int) []*skeleton.Triangle {
	var out []*skeleton.Triangle
	cur, came := start, (*skeleton.Triangle)(nil)
	first := true
	for cur != nil {
		out = append(out, cur)
		li := cur.SideIndex(v)
		if li < 0 {
			break
		}
		var next *skeleton.Triangle
		if first {
			next = cur.Neighbour(firstDir(li))
			first = false
		} else {
			sideA, sideB := cw3(li), ccw3(li)
			nbA, nbB := cur.Neighbour(sideA), cur.Neighbour(sideB)
			switch {
			case nbA != nil && nbA != came:
				next = nbA
			case nbB != nil && nbB != came:
				next = nbB
			}
		}
		if next == start {
			break
		}
		came, cur = cur, next
	}
	return out
}

// fanAroundVertex returns every live triangle incident to v, ordered from
// one wavefront boundary of the fan to the other (grassfire's get_fan).
func (s *Simulator) fanAroundVertex(v skeleton.Vertex) []*skeleton.Triangle {
	var start *skeleton.Triangle
	for _, t := range s.Skel.Triangles {
		if t.StopsAt == nil && t.SideIndex(v) >= 0 {
			start = t
			break
		}
	}
	if start == nil {
		return nil
	}
	ccwSide := walkFan(v, start, ccw3)
	cwSide := walkFan(v, start, cw3)
	out := make([]*skeleton.Triangle, 0, len(ccwSide)+len(cwSide)-1)
	for i := len(cwSide) - 1; i >= 1; i-- {
		out = append(out, cwSide[i])
	}
	out = append(out, ccwSide...)
	return out
}

// parallelFanFromVertex is the parallel-fan protocol entry point (spec.md
// §4.7) for a newly created inf_fast KV: its velocity is degenerate, so its
// incident fan must collapse together rather than following normal
// straight-line motion.
func (s *Simulator) parallelFanFromVertex(kv *skeleton.KineticVertex) error {
	fan := s.fanAroundVertex(kv)
	if len(fan) == 0 {
		return nil
	}
	return s.handleParallelFan(fan, kv)
}

// handleParallelFan is the dispatcher ported from grassfire's
// events/parallel.py handle_parallel_fan: it compares the fan's two outer
// "leg" edges (the wavefront-bounding edges of its first and last
// triangle) to decide whether the fan collapses to a single point
// (even legs) or one side folds in before the other (shorter leg), with a
// dedicated case for a fan that is a single fully-isolated triangle.
func (s *Simulator) handleParallelFan(fan []*skeleton.Triangle, pivot *skeleton.KineticVertex) error {
	first := fan[0]
	if first.Type() == 3 {
		return s.handleParallelIsolatedTriangle(first, pivot)
	}

	left, right := fan[0], fan[len(fan)-1]
	li, ri := left.SideIndex(pivot), right.SideIndex(pivot)
	if li < 0 || ri < 0 {
		return skelerr.NewImpossibleConfiguration(left.Info, s.now, "parallel fan triangle missing pivot vertex")
	}
	leftLeg := legLength(left, ccw3(li), s.now)
	rightLeg := legLength(right, cw3(ri), s.now)

	if !s.Tol.NearZero(leftLeg - rightLeg) {
		if rightLeg < leftLeg {
			return s.handleParallelShorterLeg(right, cw3(ri), pivot)
		}
		return s.handleParallelShorterLeg(left, ccw3(li), pivot)
	}

	switch len(fan) {
	case 1:
		return s.handleParallelEvenLegs(first, pivot)
	case 2:
		allEven := true
		for _, t := range fan {
			idx := t.SideIndex(pivot)
			if !s.Tol.NearZero(legLength(t, ccw3(idx), s.now) - legLength(t, cw3(idx), s.now)) {
				allEven = false
				break
			}
		}
		if allEven {
			for _, t := range fan {
				if err := s.handleParallelEvenLegs(t, pivot); err != nil {
					return err
				}
			}
			return nil
		}
		return s.handleParallelFlipPair(fan[0], fan[1], pivot)
	default:
		return skelerr.NewImpossibleConfiguration(first.Info, s.now, "parallel fan with more than 2 triangles and equal-length outer legs")
	}
}

// handleParallelIsolatedTriangle is grassfire's special-case check inside
// handle_parallel_fan for a fan that is a single triangle with no
// neighbours at all (all three sides on the wavefront): if exactly one
// side is the (near-zero) shortest, that side collapses via the even-legs
// case around its opposite vertex; otherwise all three legs are
// comparably sized and the triangle resolves via handleParallelThreeTriangle.
func (s *Simulator) handleParallelIsolatedTriangle(t *skeleton.Triangle, pivot *skeleton.KineticVertex) error {
	var dists [3]float64
	for side := 0; side < 3; side++ {
		dists[side] = legLength(t, side, s.now)
	}
	min := dists[0]
	for _, d := range dists {
		if d < min {
			min = d
		}
	}
	count, shortest := 0, -1
	for i, d := range dists {
		if s.Tol.NearZero(d - min) {
			count++
			shortest = i
		}
	}
	if s.Tol.NearZero(min) && count == 1 {
		apex, ok := t.Vertices[shortest].(*skeleton.KineticVertex)
		if !ok {
			return skelerr.NewImpossibleConfiguration(t.Info, s.now, "parallel isolated-triangle shortest-leg apex not kinetic")
		}
		return s.handleParallelEvenLegs(t, apex)
	}
	return s.handleParallelThreeTriangle(t, pivot)
}

// handleParallelEvenLegs is grassfire's handle_parallel_edge_event_even_legs:
// both of pivot's incident legs in t collapse at once, so t's two
// non-pivot vertices and pivot itself all stop at the same node, and the
// neighbour opposite pivot (if any) is promoted for immediate processing
// (spec.md §4.4).
func (s *Simulator) handleParallelEvenLegs(t *skeleton.Triangle, pivot *skeleton.KineticVertex) error {
	e := t.SideIndex(pivot)
	if e < 0 {
		return skelerr.NewImpossibleConfiguration(t.Info, s.now, "parallel even-legs event missing pivot vertex")
	}
	v1, ok1 := t.Vertices[ccw3(e)].(*skeleton.KineticVertex)
	v2, ok2 := t.Vertices[cw3(e)].(*skeleton.KineticVertex)
	if !ok1 || !ok2 {
		return skelerr.NewImpossibleConfiguration(t.Info, s.now, "parallel even-legs event on non-kinetic endpoints")
	}
	pos := average(v1.PositionAt(s.now), v2.PositionAt(s.now))
	node := s.findOrReuseNode(pos, v1, v2, pivot)
	if !v1.IsStopped() {
		v1.Stop(node, s.now)
	}
	if !v2.IsStopped() {
		v2.Stop(node, s.now)
	}
	if !pivot.IsStopped() {
		pivot.Stop(node, s.now)
	}
	now := s.now
	t.StopsAt = &now
	t.ClearEvent()

	if n := t.Neighbour(e); n != nil {
		n.ReplaceNeighbour(t, nil)
		return s.promoteIfAlive(n)
	}
	return nil
}

// handleParallelThreeTriangle is grassfire's
// handle_parallel_edge_event_3tri: a fully-isolated triangle whose three
// legs are all comparably sized. The new node is seeded from whichever of
// the two non-pivot vertices is moving slower (its position is the more
// stable approximation of the collapse point); the faster one and pivot
// both snap to that same node rather than being averaged in.
func (s *Simulator) handleParallelThreeTriangle(t *skeleton.Triangle, pivot *skeleton.KineticVertex) error {
	e := t.SideIndex(pivot)
	if e < 0 {
		return skelerr.NewImpossibleConfiguration(t.Info, s.now, "parallel 3-triangle event missing pivot vertex")
	}
	v1, ok1 := t.Vertices[ccw3(e)].(*skeleton.KineticVertex)
	v2, ok2 := t.Vertices[cw3(e)].(*skeleton.KineticVertex)
	if !ok1 || !ok2 {
		return skelerr.NewImpossibleConfiguration(t.Info, s.now, "parallel 3-triangle event on non-kinetic endpoints")
	}

	slow, fast := v1, v2
	if v2.Velocity.Norm() < v1.Velocity.Norm() {
		slow, fast = v2, v1
	}
	node := s.findOrReuseNode(slow.PositionAt(s.now), slow)
	if !slow.IsStopped() {
		slow.Stop(node, s.now)
	}
	if !fast.IsStopped() {
		fast.Stop(node, s.now)
	}
	if !pivot.IsStopped() {
		pivot.Stop(node, s.now)
	}
	now := s.now
	t.StopsAt = &now
	t.ClearEvent()
	return nil
}

// handleParallelShorterLeg is grassfire's
// handle_parallel_edge_event_shorter_leg: the short outer leg of the fan
// collapses like an ordinary single-side edge event, except one of its two
// endpoints is the pivot already moving infinitely fast, so the new node
// is seeded from the other (still normally-moving) endpoint's own position
// rather than an average of both.
func (s *Simulator) handleParallelShorterLeg(t *skeleton.Triangle, e int, pivot *skeleton.KineticVertex) error {
	v1, ok1 := t.Vertices[ccw3(e)].(*skeleton.KineticVertex)
	v2, ok2 := t.Vertices[cw3(e)].(*skeleton.KineticVertex)
	if !ok1 || !ok2 {
		return skelerr.NewImpossibleConfiguration(t.Info, s.now, "parallel shorter-leg event on non-kinetic endpoints")
	}
	if v1 != pivot && v2 != pivot {
		return skelerr.NewImpossibleConfiguration(t.Info, s.now, "parallel shorter-leg event's edge doesn't touch the pivot")
	}
	moving := v2
	if v2 == pivot {
		moving = v1
	}

	node := s.findOrReuseNode(moving.PositionAt(s.now), moving)
	if !moving.IsStopped() {
		moving.Stop(node, s.now)
	}
	if !pivot.IsStopped() {
		pivot.Stop(node, s.now)
	}

	kv := s.newKineticVertexFromBisector(v1.UL, v2.UR, v1.WFL, v2.WFR, node.Pos, node)
	a := t.Neighbours[ccw3(e)]
	b := t.Neighbours[cw3(e)]
	n := t.Neighbours[e]
	skeleton.UpdateCirc(v1.Left(), kv, s.now)
	skeleton.UpdateCirc(kv, v2.Right(), s.now)

	if a != nil {
		a.ReplaceNeighbour(t, b)
	}
	if b != nil {
		b.ReplaceNeighbour(t, a)
	}
	if a != nil {
		if err := s.fanReplace(a, v2, kv); err != nil {
			return err
		}
	}
	if b != nil {
		if err := s.fanReplace(b, v1, kv); err != nil {
			return err
		}
	}
	if n != nil {
		n.ReplaceNeighbour(t, nil)
		if err := s.promoteIfAlive(n); err != nil {
			return err
		}
	}

	now := s.now
	t.StopsAt = &now
	t.ClearEvent()

	if kv.InfFast {
		return s.parallelFanFromVertex(kv)
	}
	return nil
}

// handleParallelFlipPair is grassfire's branch of handle_parallel_fan for a
// 2-triangle fan whose outer legs are equal but whose inner edge isn't: it
// flips the shared diagonal (the structural part of parallel.py's flip(),
// via flipStructure) and then resolves whichever of the two resulting
// triangles still carries an infinitely-fast vertex through the even-legs
// case.
func (s *Simulator) handleParallelFlipPair(t0, t1 *skeleton.Triangle, pivot *skeleton.KineticVertex) error {
	side := -1
	for i, nb := range t0.Neighbours {
		if nb == t1 {
			side = i
			break
		}
	}
	if side < 0 {
		return skelerr.NewImpossibleConfiguration(t0.Info, s.now, "parallel flip-pair triangles aren't neighbours")
	}
	u, err := s.flipStructure(t0, side)
	if err != nil {
		return err
	}
	if err := s.recompute(t0, false); err != nil {
		return err
	}
	if err := s.recompute(u, false); err != nil {
		return err
	}

	hasInfFast := func(t *skeleton.Triangle) bool {
		for _, v := range t.Vertices {
			if kv, ok := v.(*skeleton.KineticVertex); ok && kv.InfFast {
				return true
			}
		}
		return false
	}
	if hasInfFast(t0) && t0.SideIndex(pivot) >= 0 {
		if err := s.handleParallelEvenLegs(t0, pivot); err != nil {
			return err
		}
	}
	if hasInfFast(u) && u.SideIndex(pivot) >= 0 {
		if err := s.handleParallelEvenLegs(u, pivot); err != nil {
			return err
		}
	}
	return nil
}
