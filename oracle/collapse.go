package oracle

import (
	"github.com/sirupsen/logrus"

	"github.com/strskel/strskel/geom"
	"github.com/strskel/strskel/skelerr"
	"github.com/strskel/strskel/skeleton"
)

// Log is the package-level logger, matching the teacher's pattern of a
// package-scoped logrus.Entry callers can reconfigure (e.g. attach a run
// ID) before driving the simulation.
var Log = logrus.WithField("component", "oracle")

func sideLength2(t *skeleton.Triangle, side int, now float64) float64 {
	i, j := ccw3(side), cw3(side)
	return t.Vertices[i].PositionAt(now).Sub(t.Vertices[j].PositionAt(now)).Norm2()
}

func cw3(i int) int  { return (i + 2) % 3 }
func ccw3(i int) int { return (i + 1) % 3 }

func zeroSides(t *skeleton.Triangle, now float64, tol geom.Tolerances) []int {
	var z []int
	for side := 0; side < 3; side++ {
		if tol.NearZero(sideLength2(t, side, now)) {
			z = append(z, side)
		}
	}
	return z
}

func longestSide(t *skeleton.Triangle, now float64) int {
	best, bestLen := 0, -1.0
	for side := 0; side < 3; side++ {
		l := sideLength2(t, side, now)
		if l > bestLen {
			best, bestLen = side, l
		}
	}
	return best
}

// Compute is the case-analysis dispatcher (spec.md §4.3): given a triangle
// and the current simulated time, it returns at most one Event with
// time >= now, or nil if the triangle has no future collapse detectable
// from its current state. strictSieve selects the gt (initial pass) vs gte
// (event-loop re-evaluation) sieve variant.
func Compute(t *skeleton.Triangle, now float64, tol geom.Tolerances, strictSieve bool) (*skeleton.Event, error) {
	switch t.Type() {
	case 0:
		return computeType0(t, now, tol, strictSieve)
	case 1:
		return computeType1(t, now, tol, strictSieve)
	case 2:
		return computeType2(t, now, tol, strictSieve)
	case 3:
		return computeType3(t, now, tol, strictSieve)
	default:
		return nil, skelerr.NewImpossibleConfiguration(t.Info, now, "triangle has %d wavefront sides", t.Type())
	}
}

func edgeEvent(t *skeleton.Triangle, when float64, sides ...int) *skeleton.Event {
	return &skeleton.Event{Kind: skeleton.EdgeEvent, Time: when, Triangle: t, Side: sides}
}

func flipEvent(t *skeleton.Triangle, when float64, side int) *skeleton.Event {
	return &skeleton.Event{Kind: skeleton.FlipEvent, Time: when, Triangle: t, Side: []int{side}}
}

func splitEvent(t *skeleton.Triangle, when float64, side int) *skeleton.Event {
	return &skeleton.Event{Kind: skeleton.SplitEvent, Time: when, Triangle: t, Side: []int{side}}
}

func isInfiniteVertexTriangle(t *skeleton.Triangle) (int, bool) {
	for i, v := range t.Vertices {
		if v.IsStationary() {
			return i, true
		}
	}
	return -1, false
}

// computeType0 handles a triangle whose three sides are all spokes (no
// wavefront, no stationary vertex): spec.md §4.3 "Type 0 (three spokes)".
func computeType0(t *skeleton.Triangle, now float64, tol geom.Tolerances, strict bool) (*skeleton.Event, error) {
	if idx, ok := isInfiniteVertexTriangle(t); ok {
		return computeInfiniteVertexTriangle(t, idx, now, tol, strict)
	}
	areaRoots := AreaCollapseTimes(t.Vertices[0], t.Vertices[1], t.Vertices[2], now, tol)
	for _, at := range areaRoots {
		if !tol.NearZeroTime(at - now) {
			continue
		}
		z := zeroSides(t, now, tol)
		switch len(z) {
		case 1:
			return edgeEvent(t, now, z[0]), nil
		case 3:
			return nil, skelerr.NewImpossibleConfiguration(t.Info, now, "0-triangle collapsed to a point")
		default:
			return flipEvent(t, now, longestSide(t, now)), nil
		}
	}

	var edgeTimes []float64
	edgeSideOf := map[float64]int{}
	for side := 0; side < 3; side++ {
		i, j := ccw3(side), cw3(side)
		vi, _ := t.Vertices[i].(*skeleton.KineticVertex)
		vj, _ := t.Vertices[j].(*skeleton.KineticVertex)
		if vi == nil || vj == nil {
			continue
		}
		if et, ok := EdgeCollapseTime(vi, vj); ok {
			edgeTimes = append(edgeTimes, et)
			edgeSideOf[et] = side
		}
	}
	future := append(append([]float64(nil), edgeTimes...), areaRoots...)
	best, found := Sieve(future, now, tol, strict)
	if !found {
		return nil, nil
	}
	if side, ok := edgeSideOf[best]; ok {
		if tol.NearZero(sideLength2(t, side, best)) {
			return edgeEvent(t, best, side), nil
		}
	}
	return flipEvent(t, best, longestSide(t, best)), nil
}

// computeType1 handles a triangle with one wavefront side e and two spokes:
// spec.md §4.3 "Type 1".
func computeType1(t *skeleton.Triangle, now float64, tol geom.Tolerances, strict bool) (*skeleton.Event, error) {
	e := -1
	for side := 0; side < 3; side++ {
		if t.Neighbours[side] == nil {
			e = side
			break
		}
	}
	aw, _ := t.Vertices[e].(*skeleton.KineticVertex)
	ow, _ := t.Vertices[ccw3(e)].(*skeleton.KineticVertex)
	dw, _ := t.Vertices[cw3(e)].(*skeleton.KineticVertex)
	if aw == nil || ow == nil || dw == nil {
		if idx, ok := isInfiniteVertexTriangle(t); ok {
			return computeInfiniteVertexTriangle(t, idx, now, tol, strict)
		}
		return nil, skelerr.NewImpossibleConfiguration(t.Info, now, "type-1 triangle with a non-kinetic, non-stationary vertex")
	}

	vcTime, hasVC := VertexCrashTime(ow, dw, aw, tol)
	ecTime, hasEC := EdgeCollapseTime(ow, dw)
	areaRoots := AreaCollapseTimes(t.Vertices[0], t.Vertices[1], t.Vertices[2], now, tol)

	classifyAt := func(when float64) (*skeleton.Event, error) {
		z := zeroSides(t, when, tol)
		switch len(z) {
		case 1:
			return edgeEvent(t, when, z[0]), nil
		case 3:
			return edgeEvent(t, when, 0, 1, 2), nil
		default:
			if longestSide(t, when) == e {
				return splitEvent(t, when, e), nil
			}
			return flipEvent(t, when, longestSide(t, when)), nil
		}
	}

	switch {
	case !hasVC && !hasEC:
		best, found := Sieve(areaRoots, now, tol, strict)
		if !found {
			return nil, nil
		}
		if tol.NearZeroTime(best - now) {
			return splitEvent(t, best, e), nil
		}
		return flipEvent(t, best, longestSide(t, best)), nil

	case hasVC && !hasEC:
		acBest, acFound := Sieve(areaRoots, now, tol, strict)
		if acFound && (!hasVC || acBest < vcTime) {
			return flipEvent(t, acBest, longestSide(t, acBest)), nil
		}
		return classifyAt(vcTime)

	case !hasVC && hasEC:
		return edgeEvent(t, ecTime, e), nil

	default: // both exist
		if ecTime <= vcTime {
			return edgeEvent(t, ecTime, e), nil
		}
		return classifyAt(vcTime)
	}
}

// computeType2 handles a triangle with two wavefront sides: spec.md §4.3
// "Type 2".
func computeType2(t *skeleton.Triangle, now float64, tol geom.Tolerances, strict bool) (*skeleton.Event, error) {
	var wfSides []int
	for side := 0; side < 3; side++ {
		if t.Neighbours[side] == nil {
			wfSides = append(wfSides, side)
		}
	}
	var times []float64
	for _, side := range wfSides {
		i, j := ccw3(side), cw3(side)
		vi, iok := t.Vertices[i].(*skeleton.KineticVertex)
		vj, jok := t.Vertices[j].(*skeleton.KineticVertex)
		if iok && jok {
			if et, ok := EdgeCollapseTime(vi, vj); ok {
				times = append(times, et)
			}
		}
	}
	best, found := Sieve(times, now, tol, strict)
	if !found {
		areaRoots := AreaCollapseTimes(t.Vertices[0], t.Vertices[1], t.Vertices[2], now, tol)
		best, found = Sieve(areaRoots, now, tol, strict)
		if !found {
			return nil, nil
		}
	}
	z := zeroSides(t, best, tol)
	switch len(z) {
	case 3:
		return edgeEvent(t, best, 0, 1, 2), nil
	case 1:
		return edgeEvent(t, best, z[0]), nil
	case 0, 2:
		// Documented override (Open Question 1): this is the observed
		// floating-point failure mode for a 3-triangle whose sides are
		// all collapsing together; treat it as "all 3" and proceed.
		Log.Warnf("triangle %d: type-2 collapse detected %d zero-length sides at t=%g, treating as all-3 (sides-collapsing override)", t.Info, len(z), best)
		ev := edgeEvent(t, best, 0, 1, 2)
		ev.Override = true
		return ev, nil
	default:
		return nil, skelerr.NewImpossibleConfiguration(t.Info, best, "type-2 triangle with %d zero-length sides", len(z))
	}
}

// computeType3 handles a triangle whose three sides are all wavefront
// sides: spec.md §4.3 "Type 3".
func computeType3(t *skeleton.Triangle, now float64, tol geom.Tolerances, strict bool) (*skeleton.Event, error) {
	var times []float64
	for side := 0; side < 3; side++ {
		i, j := ccw3(side), cw3(side)
		vi, iok := t.Vertices[i].(*skeleton.KineticVertex)
		vj, jok := t.Vertices[j].(*skeleton.KineticVertex)
		if iok && jok {
			if et, ok := EdgeCollapseTime(vi, vj); ok {
				times = append(times, et)
			}
		}
	}
	best, found := Sieve(times, now, tol, strict)
	if !found {
		areaRoots := AreaCollapseTimes(t.Vertices[0], t.Vertices[1], t.Vertices[2], now, tol)
		best, found = Sieve(areaRoots, now, tol, strict)
		if !found {
			return nil, nil
		}
	}
	z := zeroSides(t, best, tol)
	ev := edgeEvent(t, best, 0, 1, 2)
	if len(z) == 0 || len(z) == 2 {
		Log.Warnf("triangle %d: type-3 collapse detected %d zero-length sides at t=%g, treating as all-3 (sides-collapsing override)", t.Info, len(z), best)
		ev.Override = true
	}
	return ev, nil
}

// computeInfiniteVertexTriangle handles a triangle with the stationary
// centroid as one vertex: spec.md §4.3 "Infinite-vertex triangle".
// stationaryIdx is the vertex index occupied by the stationary vertex.
func computeInfiniteVertexTriangle(t *skeleton.Triangle, stationaryIdx int, now float64, tol geom.Tolerances, strict bool) (*skeleton.Event, error) {
	oppositeSide := stationaryIdx
	if t.Neighbours[oppositeSide] == nil {
		i, j := ccw3(oppositeSide), cw3(oppositeSide)
		vi, iok := t.Vertices[i].(*skeleton.KineticVertex)
		vj, jok := t.Vertices[j].(*skeleton.KineticVertex)
		if iok && jok {
			if et, ok := EdgeCollapseTime(vi, vj); ok {
				if tol.NearZero(sideLength2(t, oppositeSide, et)) {
					return edgeEvent(t, et, oppositeSide), nil
				}
			}
		}
		return nil, nil
	}

	areaRoots := AreaCollapseTimes(t.Vertices[0], t.Vertices[1], t.Vertices[2], now, tol)
	best, found := Sieve(areaRoots, now, tol, strict)
	if !found {
		return nil, nil
	}
	if tol.NearZero(sideLength2(t, oppositeSide, best)) {
		return edgeEvent(t, best, oppositeSide), nil
	}
	// Flip on the shorter of the two legs incident to the stationary
	// vertex.
	legA, legB := cw3(oppositeSide), ccw3(oppositeSide)
	lenA := sideLength2(t, legA, best)
	lenB := sideLength2(t, legB, best)
	if lenA <= lenB {
		return flipEvent(t, best, legA), nil
	}
	return flipEvent(t, best, legB), nil
}

// CheckOrientation is the spec.md §4.3 advisory consistency check: after
// computing ev for t, verify that (unless one of the vertices is inf_fast)
// the triangle's orientation at the event's midpoint time is not negative.
// It never alters control flow — only logs.
func CheckOrientation(t *skeleton.Triangle, ev *skeleton.Event, now float64, orient triio_OrientFunc) {
	if ev == nil {
		return
	}
	for _, v := range t.Vertices {
		if kv, ok := v.(*skeleton.KineticVertex); ok && kv.InfFast {
			return
		}
	}
	mid := (now + ev.Time) / 2
	a, b, c := t.Vertices[0].PositionAt(mid), t.Vertices[1].PositionAt(mid), t.Vertices[2].PositionAt(mid)
	if orient(a, b, c) < 0 {
		Log.Warnf("triangle %d: negative orientation at midpoint t=%g ahead of event at t=%g", t.Info, mid, ev.Time)
	}
}

type triio_OrientFunc func(a, b, c geom.Vec) float64
