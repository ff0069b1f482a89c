package skeleton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strskel/strskel/geom"
)

func TestTransform_ForwardBackward_RoundTrips(t *testing.T) {
	tr := &Transform{Origin: geom.Vec{X: 10, Y: 20}, Scale: 2}
	p := geom.Vec{X: 14, Y: 24}

	fwd := tr.Forward(p)
	assert.Equal(t, geom.Vec{X: 2, Y: 2}, fwd)
	assert.Equal(t, p, tr.Backward(fwd))
}

func TestSkeleton_NewTriangleAndVertex_AreTracked(t *testing.T) {
	skel := NewSkeleton()
	tr := skel.NewTriangle()
	kv := skel.NewKineticVertex()
	sv := skel.NewStationaryVertex(geom.Vec{X: 1, Y: 1})
	node := skel.NewNode(geom.Vec{X: 0, Y: 0}, 1, -1)

	assert.Len(t, skel.Triangles, 1)
	assert.Same(t, tr, skel.Triangles[0])
	assert.Len(t, skel.Vertices, 1)
	assert.Same(t, kv, skel.Vertices[0])
	assert.Len(t, skel.Stationary, 1)
	assert.Same(t, sv, skel.Stationary[0])
	assert.Len(t, skel.Nodes, 1)
	assert.Same(t, node, skel.Nodes[0])
}

func TestSkeleton_Segments_OnlyIncludesStoppedVertices(t *testing.T) {
	skel := NewSkeleton()
	start := skel.NewNode(geom.Vec{X: 0, Y: 0}, 0, -1)
	stop := skel.NewNode(geom.Vec{X: 1, Y: 1}, 1, -1)

	stopped := skel.NewKineticVertex()
	stopped.StartNode = start
	stopped.Stop(stop, 1.0)

	unstarted := skel.NewKineticVertex() // no StartNode/StopNode at all
	_ = unstarted

	segs := skel.Segments()
	require.Len(t, segs, 1)
	assert.Equal(t, start.Pos, segs[0].Start)
	assert.Equal(t, stop.Pos, segs[0].End)
}

func TestSkeleton_Offsets_SkipsVerticesOutsideTheirLifetime(t *testing.T) {
	skel := NewSkeleton()
	v := skel.NewKineticVertex()
	v.Origin = geom.Vec{X: 0, Y: 0}
	v.Velocity = geom.Vec{X: 1, Y: 0}
	v.StartsAt = 0

	right := skel.NewKineticVertex()
	right.Origin = geom.Vec{X: 0, Y: 1}
	right.Velocity = geom.Vec{X: 0, Y: 0}
	right.StartsAt = 0
	v.SetRight(right, 0)

	// before v starts: no offset
	v.StartsAt = 5
	assert.Empty(t, skel.Offsets(1))

	// within lifetime: one offset edge from v to its right neighbour
	v.StartsAt = 0
	offs := skel.Offsets(1)
	require.Len(t, offs, 1)
	assert.Equal(t, 1.0, offs[0].Time)
}

func TestSkeleton_Offsets_ClampsFarPositionsToRayHorizon(t *testing.T) {
	skel := NewSkeleton()
	skel.RayHorizon = 10

	v := skel.NewKineticVertex()
	v.Origin = geom.Vec{X: 0, Y: 0}
	v.Velocity = geom.Vec{X: 1000, Y: 0} // numerically huge, near-InfFast
	v.StartsAt = 0

	right := skel.NewKineticVertex()
	right.Origin = geom.Vec{X: 0, Y: 1}
	right.Velocity = geom.Vec{X: 0, Y: 0}
	right.StartsAt = 0
	v.SetRight(right, 0)

	offs := skel.Offsets(1)
	require.Len(t, offs, 1)
	assert.InDelta(t, 10, geom.Dist(v.Origin, offs[0].Start), 1e-9)
}
