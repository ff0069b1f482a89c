package skeleton

import (
	"github.com/strskel/strskel/geom"
	"github.com/strskel/strskel/skelerr"
	"github.com/strskel/strskel/triio"
)

// starEntry is one step of the rotation around a vertex: the triangle and
// the vertex's local index (0,1,2) within it.
type starEntry struct {
	tri *Triangle
	ti  int // index into the triangles slice passed to Init, for neighbour lookups during rotation
	li  int
}

// rotateStar walks every incident triangle of vertex vi in one consistent
// rotational order, starting from triIdx/localIdx and moving through the
// neighbour across side dir(li) at each step (the standard "rotate around a
// vertex" operation on a triangle mesh). It stops when it returns to the
// start (vi is a fully interior vertex with no incident constrained edge)
// or when a missing/constrained neighbour is hit; in the latter case the
// caller also rotates the opposite way from the start to recover the other
// half of the star.
func rotateStar(tris []triio.Triangle, triIdx, li int, dir func(int) int, visited map[int]bool) []starEntry {
	var out []starEntry
	ti := triIdx
	for {
		key := ti*3 + li
		if visited[key] {
			break
		}
		visited[key] = true
		out = append(out, starEntry{ti: ti, li: li})
		t := tris[ti]
		side := dir(li)
		if t.Constrained[side] {
			break
		}
		nb := t.Neighbours[side]
		if nb < 0 {
			break
		}
		nli := -1
		for k, v := range tris[nb].Vertices {
			if v == t.Vertices[li] {
				nli = k
				break
			}
		}
		if nli < 0 {
			break
		}
		ti, li = nb, nli
	}
	return out
}

// vertexStar returns the full incident-triangle rotation around vertex vi,
// in order, for every (triangle,localIndex) occurrence.
func vertexStar(tris []triio.Triangle, vi int) []starEntry {
	var start []struct{ ti, li int }
	for ti, t := range tris {
		for li, v := range t.Vertices {
			if v == vi {
				start = append(start, struct{ ti, li int }{ti, li})
			}
		}
	}
	if len(start) == 0 {
		return nil
	}
	visited := map[int]bool{}
	fwd := rotateStar(tris, start[0].ti, start[0].li, triio.Cw, visited)
	delete(visited, start[0].ti*3+start[0].li)
	bwd := rotateStar(tris, start[0].ti, start[0].li, triio.Ccw, visited)
	// bwd includes the shared start entry; drop it and reverse so the
	// combined list reads in one continuous rotational order.
	if len(bwd) > 1 {
		bwd = bwd[1:]
		for i, j := 0, len(bwd)-1; i < j; i, j = i+1, j-1 {
			bwd[i], bwd[j] = bwd[j], bwd[i]
		}
		out := append(bwd, fwd...)
		return out
	}
	return fwd
}

// fanGroup is a maximal run of star entries between two constrained edges
// (spec.md §4.1's "fan-splitting rule").
type fanGroup struct {
	entries []starEntry
}

func splitStar(tris []triio.Triangle, star []starEntry) [][]starEntry {
	var groups [][]starEntry
	var group []starEntry
	for _, e := range star {
		group = append(group, e)
		t := tris[e.ti]
		if t.Constrained[triio.Ccw(e.li)] {
			groups = append(groups, group)
			group = nil
		}
	}
	if len(group) > 0 {
		groups = append(groups, group)
	}
	if len(groups) <= 1 {
		return groups
	}
	first := groups[0][0]
	if !tris[first.ti].Constrained[triio.Cw(first.li)] {
		last := groups[len(groups)-1]
		groups = groups[:len(groups)-1]
		merged := append(append([]starEntry(nil), last...), groups[0]...)
		groups[0] = merged
	}
	return groups
}

func makeSupportLine(cdt triio.CDT, tris []triio.Triangle, ti, side int) *geom.WaveFront {
	t := tris[ti]
	if !t.Constrained[side] {
		return nil
	}
	verts := cdt.Vertices()
	a := verts[t.Vertices[triio.Ccw(side)]].Pos
	b := verts[t.Vertices[triio.Cw(side)]].Pos
	wf := geom.NewWaveFront(a, b)
	return &wf
}

// Init runs the §4.1 initializer: it turns an inbound constrained Delaunay
// triangulation into a fully linked Skeleton of kinetic triangles and
// kinetic vertices with their circular wavefront list already closed, and
// the three hull-closing infinite vertices collapsed into one stationary
// centroid.
func Init(cdt triio.CDT, tol geom.Tolerances) (*Skeleton, error) {
	verts := cdt.Vertices()
	tris := cdt.Triangles()
	if len(tris) == 0 {
		return nil, skelerr.NewInvalidInput("triangulation has no triangles")
	}

	skel := NewSkeleton()

	nodeOf := make(map[int]*Node, len(verts))
	var cx, cy float64
	finiteCount := 0
	for vi, v := range verts {
		if !v.IsFinite {
			continue
		}
		nodeOf[vi] = skel.NewNode(v.Pos, -1, v.Info)
		cx += v.Pos.X
		cy += v.Pos.Y
		finiteCount++
	}
	if finiteCount == 0 {
		return nil, skelerr.NewInvalidInput("triangulation has no finite vertices")
	}
	centroid := skel.NewStationaryVertex(geom.Vec{X: cx / float64(finiteCount), Y: cy / float64(finiteCount)})

	ktris := make([]*Triangle, len(tris))
	for i, t := range tris {
		kt := skel.NewTriangle()
		kt.Info = i + 1
		kt.Internal = t.Depth%2 == 1
		for side := 0; side < 3; side++ {
			kt.WavefrontSupportLines[side] = makeSupportLine(cdt, tris, i, side)
		}
		ktris[i] = kt
	}
	for i, t := range tris {
		for side, nb := range t.Neighbours {
			if t.Constrained[side] || nb < 0 {
				continue
			}
			ktris[i].Neighbours[side] = ktris[nb]
		}
	}

	// kvOf[ti][li] is the kinetic vertex occupying local index li of
	// triangle ti, filled in as each fan group is converted.
	kvOf := make([][3]Vertex, len(tris))

	type link struct {
		cwTri, cwSide   int
		ccwTri, ccwSide int
		kv              *KineticVertex
	}
	var links []link

	for vi, v := range verts {
		if !v.IsFinite {
			continue
		}
		star := vertexStar(tris, vi)
		groups := splitStar(tris, star)
		if len(groups) <= 1 {
			return nil, skelerr.NewInvalidInput("vertex %d has no constrained-edge closure (open PSLG)", v.Info)
		}
		for _, group := range groups {
			first, last := group[0], group[len(group)-1]
			right := ktris[first.ti].WavefrontSupportLines[triio.Cw(first.li)]
			left := ktris[last.ti].WavefrontSupportLines[triio.Ccw(last.li)]
			if left == nil || right == nil {
				continue // this is the exterior (infinite-vertex) fan; no wavefront KV needed here
			}

			bis := geom.ComputeBisector(left.Line, right.Line, tol)
			kv := skel.NewKineticVertex()
			kv.Origin = v.Pos
			kv.StartsAt = 0
			kv.StartNode = nodeOf[vi]
			kv.UL = left.Line
			kv.UR = right.Line
			kv.WFL = left
			kv.WFR = right
			switch bis.Kind {
			case geom.BisectorPoint:
				kv.Velocity = bis.Velocity
			default:
				kv.Velocity = bis.Velocity
			}
			if bis.IsNearZero(tol) {
				kv.InfFast = true
			}

			for _, e := range group {
				kvOf[e.ti][e.li] = kv
				kv.Internal = ktris[e.ti].Internal
			}

			links = append(links, link{
				cwTri: last.ti, cwSide: triio.Cw(last.li),
				ccwTri: first.ti, ccwSide: triio.Ccw(first.li),
				kv: kv,
			})
		}
	}

	for i, t := range tris {
		for li, vi := range t.Vertices {
			if kvOf[i][li] == nil {
				kvOf[i][li] = centroid
				_ = vi
			}
		}
		ktris[i].Vertices = kvOf[i]
	}

	for _, l := range links {
		cwv, _ := kvOf[l.cwTri][l.cwSide].(*KineticVertex)
		ccwv, _ := kvOf[l.ccwTri][l.ccwSide].(*KineticVertex)
		l.kv.SetLeft(cwv, 0)
		l.kv.SetRight(ccwv, 0)
	}

	// Drop the doubly-infinite (now doubly-stationary) triangles that
	// closed the convex hull: everything else either has 0 or 1
	// stationary vertex after the collapse above, but the 3 transition
	// triangles the closure needed carry exactly 2.
	var kept []*Triangle
	for i, kt := range ktris {
		stationary := 0
		for _, v := range kt.Vertices {
			if v.IsStationary() {
				stationary++
			}
		}
		if stationary >= 2 {
			removeUnwanted(kt, i, ktris, tris)
			continue
		}
		kept = append(kept, kt)
	}
	skel.Triangles = kept

	if err := checkInvariants(skel); err != nil {
		return nil, err
	}
	return skel, nil
}

// removeUnwanted relinks the neighbours of a doubly-stationary triangle
// around its single kinetic vertex so the remaining structure's outer
// boundary points directly at the stationary centroid (spec.md §4.1 step
// 5), instead of through the discarded hull-closing triangle.
func removeUnwanted(kt *Triangle, idx int, ktris []*Triangle, tris []triio.Triangle) {
	var kvSide = -1
	for i, v := range kt.Vertices {
		if !v.IsStationary() {
			kvSide = i
			break
		}
	}
	if kvSide < 0 {
		return
	}
	a := kt.Neighbours[triio.Cw(kvSide)]
	b := kt.Neighbours[triio.Ccw(kvSide)]
	if a != nil {
		a.ReplaceNeighbour(kt, b)
	}
	if b != nil {
		b.ReplaceNeighbour(kt, a)
	}
}

// checkInvariants checks the kinetic data structure right after
// initialization: neighbour symmetry (invariant 1), and every live kinetic
// vertex of a finite triangle being active at t=0. It does not check that
// neighbours agree on the vertices of their shared edge (invariant 2), nor
// the wavefront left/right linkage and wavefront identity (invariants 4, 5).
func checkInvariants(skel *Skeleton) error {
	for _, t := range skel.Triangles {
		for side, nb := range t.Neighbours {
			if nb == nil {
				continue
			}
			found := false
			for _, back := range nb.Neighbours {
				if back == t {
					found = true
					break
				}
			}
			if !found {
				return skelerr.NewInvariantViolation(t.Info, 0, "neighbour asymmetry on side %d", side)
			}
		}
		if !t.IsFinite() {
			continue
		}
		for _, v := range t.Vertices {
			kv, ok := v.(*KineticVertex)
			if !ok {
				continue
			}
			if kv.StartsAt > 0 || (kv.StopsAt != nil && *kv.StopsAt <= 0) {
				return skelerr.NewInvariantViolation(t.Info, 0, "kinetic vertex inactive at t=0")
			}
		}
	}
	return nil
}
