package triio

import (
	"github.com/strskel/strskel/geom"
	"github.com/strskel/strskel/skelerr"
)

// PolygonBuilder accumulates a simple polygon (optionally with holes) and
// triangulates it with ear clipping into a CDT, standing in for a
// production constrained-Delaunay triangulator (spec.md §6 names the CDT
// as an external collaborator; this is the reference implementation used
// by tests, examples and the CLI).
type PolygonBuilder struct {
	rings [][]geom.Vec // first ring is the outer boundary (CCW), rest are holes (CW)
	infos [][]int
}

func NewPolygonBuilder() *PolygonBuilder { return &PolygonBuilder{} }

// AddRing appends a ring (outer boundary or hole) with per-vertex info
// tags. No dedup/self-intersection rewriting happens here; Triangulate
// rejects degenerate input.
func (b *PolygonBuilder) AddRing(pts []geom.Vec, infos []int) *PolygonBuilder {
	b.rings = append(b.rings, pts)
	if infos == nil {
		infos = make([]int, len(pts))
		for i := range infos {
			infos[i] = -1
		}
	}
	b.infos = append(b.infos, infos)
	return b
}

type earClipCDT struct {
	verts []InputVertex
	tris  []Triangle
}

func (c *earClipCDT) Vertices() []InputVertex { return c.verts }
func (c *earClipCDT) Triangles() []Triangle   { return c.tris }

// Triangulate builds a CDT of the accumulated rings via ear clipping on the
// outer ring (holes are not yet subtracted — see DESIGN.md for the
// single-ring limitation), closing the convex hull with three "infinite"
// vertices the way a true Delaunay CDT implementation would, so that
// skeleton.Init sees exactly the shape it expects from spec.md §4.1 step 1:
// one infinite vertex per hull corner, later collapsed to a stationary
// centroid.
func (b *PolygonBuilder) Triangulate() (CDT, error) {
	if len(b.rings) == 0 {
		return nil, skelerr.NewInvalidInput("no rings supplied")
	}
	ring := b.rings[0]
	infos := b.infos[0]
	n := len(ring)
	if n < 3 {
		return nil, skelerr.NewInvalidInput("ring has fewer than 3 vertices")
	}
	if selfIntersects(ring) {
		return nil, skelerr.NewInvalidInput("input polygon is self-intersecting")
	}

	verts := make([]InputVertex, n)
	for i, p := range ring {
		verts[i] = InputVertex{Pos: p, Info: infos[i], IsFinite: true}
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if signedArea(ring) < 0 {
		reverse(idx)
	}

	type tri struct{ a, b, c int }
	var tris []tri

	work := append([]int(nil), idx...)
	guard := 0
	for len(work) > 3 && guard < 10_000 {
		guard++
		earFound := false
		for i := 0; i < len(work); i++ {
			ip := work[(i-1+len(work))%len(work)]
			ic := work[i]
			in := work[(i+1)%len(work)]
			a, bnd, c := ring[ip], ring[ic], ring[in]
			if geom.Orient2D(a, bnd, c) <= 0 {
				continue // reflex or collinear, not an ear
			}
			isEar := true
			for j := 0; j < len(work); j++ {
				p := work[j]
				if p == ip || p == ic || p == in {
					continue
				}
				if pointInTriangle(ring[p], a, bnd, c) {
					isEar = false
					break
				}
			}
			if !isEar {
				continue
			}
			tris = append(tris, tri{ip, ic, in})
			work = append(append([]int(nil), work[:i]...), work[i+1:]...)
			earFound = true
			break
		}
		if !earFound {
			return nil, skelerr.NewInvalidInput("ear clipping stalled: polygon is likely self-intersecting or degenerate")
		}
	}
	if len(work) == 3 {
		tris = append(tris, tri{work[0], work[1], work[2]})
	}

	// Close the hull with 3 infinite vertices + 3 outer triangles so every
	// boundary edge of the ring has a triangle on its far side, matching
	// the shape init_skeleton expects (one infinite vertex per hull
	// corner before collapsing to a stationary centroid).
	box := boundingBox(ring)
	cx, cy := (box[0].X+box[1].X)/2, (box[0].Y+box[1].Y)/2
	span := box[1].X - box[0].X
	if h := box[1].Y - box[0].Y; h > span {
		span = h
	}
	far := span*3 + 1
	infV := []geom.Vec{
		{cx, cy + far},
		{cx - far, cy - far},
		{cx + far, cy - far},
	}
	infBase := len(verts)
	for _, p := range infV {
		verts = append(verts, InputVertex{Pos: p, IsFinite: false})
	}

	out := &earClipCDT{verts: verts}

	// Interior triangles from ear clipping, all constrained on boundary
	// edges (consecutive ring indices), depth 1 (inside).
	triIndexOf := map[[2]int]int{} // directed edge -> triangle index, for neighbour linking
	addTri := func(a, b, c int, constrained [3]bool, depth int) int {
		t := Triangle{Vertices: [3]int{a, b, c}, Neighbours: [3]int{-1, -1, -1}, Constrained: constrained, Depth: depth}
		out.tris = append(out.tris, t)
		ti := len(out.tris) - 1
		// side i is opposite vertex i: side0 = (b,c), side1 = (c,a), side2 = (a,b)
		triIndexOf[[2]int{b, c}] = ti*3 + 0
		triIndexOf[[2]int{c, a}] = ti*3 + 1
		triIndexOf[[2]int{a, b}] = ti*3 + 2
		return ti
	}

	isBoundaryEdge := func(a, b int) bool {
		return (b-a+n)%n == 1 || (a-b+n)%n == 1
	}

	for _, t := range tris {
		var constrained [3]bool
		constrained[0] = isBoundaryEdge(t.b, t.c)
		constrained[1] = isBoundaryEdge(t.c, t.a)
		constrained[2] = isBoundaryEdge(t.a, t.b)
		addTri(t.a, t.b, t.c, constrained, 1)
	}

	// Outer fan: the hull is split into 3 contiguous arcs, each fanning out
	// to one of the 3 infinite vertices (the standard "3 points at
	// infinity" closure of a planar triangulation). Within an arc every
	// boundary edge gets its own outer triangle to its arc's infinite
	// vertex; at each of the 3 arc boundaries one extra transition
	// triangle (hull vertex, prevInf, nextInf) bridges the two infinite
	// vertices so the closure is watertight. Those 3 transition triangles
	// are exactly the doubly-infinite triangles skeleton.Init discards.
	splits := [3]int{0, n / 3, (2 * n) / 3}
	arcOf := func(i int) int {
		switch {
		case splits[2] > splits[1] && i >= splits[2]:
			return 2
		case i >= splits[1]:
			return 1
		default:
			return 0
		}
	}
	for i := 0; i < n; i++ {
		a, b := i, (i+1)%n
		addTri(b, a, infBase+arcOf(i), [3]bool{false, false, true}, 0)
	}
	for k := 0; k < 3; k++ {
		v := splits[k]
		prevArc := (k + 2) % 3
		curArc := arcOf(v)
		addTri(v, infBase+prevArc, infBase+curArc, [3]bool{false, false, false}, 0)
	}

	// Link neighbours across shared undirected edges.
	for key, slot := range triIndexOf {
		rev := [2]int{key[1], key[0]}
		if other, ok := triIndexOf[rev]; ok {
			ti, side := slot/3, slot%3
			oi, oside := other/3, other%3
			if !out.tris[ti].Constrained[side] {
				out.tris[ti].Neighbours[side] = oi
			}
			if !out.tris[oi].Constrained[oside] {
				out.tris[oi].Neighbours[oside] = ti
			}
		}
	}

	return out, nil
}

func boundingBox(pts []geom.Vec) [2]geom.Vec {
	min, max := pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return [2]geom.Vec{min, max}
}

func signedArea(pts []geom.Vec) float64 {
	sum := 0.0
	n := len(pts)
	for i := 0; i < n; i++ {
		p, q := pts[i], pts[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func pointInTriangle(p, a, b, c geom.Vec) bool {
	d1 := geom.Orient2D(p, a, b)
	d2 := geom.Orient2D(p, b, c)
	d3 := geom.Orient2D(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func selfIntersects(ring []geom.Vec) bool {
	n := len(ring)
	seg := func(i int) (geom.Vec, geom.Vec) { return ring[i], ring[(i+1)%n] }
	for i := 0; i < n; i++ {
		a1, a2 := seg(i)
		for j := i + 1; j < n; j++ {
			if j == i || (j+1)%n == i || (i+1)%n == j {
				continue
			}
			b1, b2 := seg(j)
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(a1, a2, b1, b2 geom.Vec) bool {
	d1 := geom.Orient2D(b1, b2, a1)
	d2 := geom.Orient2D(b1, b2, a2)
	d3 := geom.Orient2D(a1, a2, b1)
	d4 := geom.Orient2D(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
