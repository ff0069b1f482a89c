package skeleton

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strskel/strskel/geom"
)

func TestKineticVertex_PositionAt_MovesAtConstantVelocity(t *testing.T) {
	// GIVEN a vertex starting at the origin moving along +X
	v := &KineticVertex{Origin: geom.Vec{X: 0, Y: 0}, Velocity: geom.Vec{X: 2, Y: 0}}

	// WHEN evaluated at several times
	// THEN it moves linearly
	assert.Equal(t, geom.Vec{X: 0, Y: 0}, v.PositionAt(0))
	assert.Equal(t, geom.Vec{X: 4, Y: 0}, v.PositionAt(2))
}

func TestKineticVertex_PositionAt_InfFastUsesStartNode(t *testing.T) {
	// GIVEN an infinitely fast vertex anchored at a node
	node := &Node{Pos: geom.Vec{X: 5, Y: 5}}
	v := &KineticVertex{InfFast: true, StartNode: node, Velocity: geom.Vec{X: 1000, Y: 1000}}

	// WHEN evaluated at any time THEN it reports the anchor position, not the trajectory
	assert.Equal(t, node.Pos, v.PositionAt(0.5))
	assert.Equal(t, node.Pos, v.PositionAt(50))
}

func TestKineticVertex_Stop_SetsStopNodeAndTime(t *testing.T) {
	v := &KineticVertex{}
	assert.False(t, v.IsStopped())

	node := &Node{Pos: geom.Vec{X: 1, Y: 1}}
	v.Stop(node, 3.5)

	assert.True(t, v.IsStopped())
	assert.Equal(t, node, v.StopNode)
	assert.Equal(t, 3.5, *v.StopsAt)
}

func TestUpdateCirc_LinksBothDirections(t *testing.T) {
	// GIVEN two vertices with no prior neighbours
	left, right := &KineticVertex{}, &KineticVertex{}

	// WHEN UpdateCirc links them at t=1
	UpdateCirc(left, right, 1.0)

	// THEN each sees the other as its respective neighbour
	assert.Same(t, right, left.Right())
	assert.Same(t, left, right.Left())
}

func TestUpdateCirc_NilSideIsSkipped(t *testing.T) {
	right := &KineticVertex{}
	assert.NotPanics(t, func() { UpdateCirc(nil, right, 0) })
	assert.Nil(t, right.Left())
}

func TestStationaryVertex_IsStationaryAndFixed(t *testing.T) {
	s := &StationaryVertex{Origin: geom.Vec{X: 3, Y: 4}}
	assert.True(t, s.IsStationary())
	assert.Equal(t, geom.Vec{X: 3, Y: 4}, s.PositionAt(100))
}
