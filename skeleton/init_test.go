package skeleton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strskel/strskel/geom"
	"github.com/strskel/strskel/triio"
)

func squareCDT(t *testing.T) triio.CDT {
	t.Helper()
	b := triio.NewPolygonBuilder()
	b.AddRing([]geom.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}, nil)
	cdt, err := b.Triangulate()
	require.NoError(t, err)
	return cdt
}

func TestInit_Square_ProducesOneKineticVertexPerCorner(t *testing.T) {
	skel, err := Init(squareCDT(t), geom.DefaultTolerances())
	require.NoError(t, err)

	assert.Len(t, skel.Vertices, 4)
	assert.Len(t, skel.Stationary, 1)
}

func TestInit_Square_AllKineticVerticesStartAtZero(t *testing.T) {
	skel, err := Init(squareCDT(t), geom.DefaultTolerances())
	require.NoError(t, err)

	for _, v := range skel.Vertices {
		assert.Equal(t, 0.0, v.StartsAt)
		assert.Nil(t, v.StopsAt)
	}
}

func TestInit_Square_WavefrontCircularListClosesUp(t *testing.T) {
	skel, err := Init(squareCDT(t), geom.DefaultTolerances())
	require.NoError(t, err)

	start := skel.Vertices[0]
	v := start
	steps := 0
	for {
		v = v.Right()
		require.NotNilf(t, v, "circular list broke after %d steps", steps)
		steps++
		if v == start || steps > len(skel.Vertices)+1 {
			break
		}
	}
	assert.Equal(t, len(skel.Vertices), steps)
}

func TestInit_Square_NeighboursAreSymmetric(t *testing.T) {
	skel, err := Init(squareCDT(t), geom.DefaultTolerances())
	require.NoError(t, err)

	for _, tr := range skel.Triangles {
		for _, nb := range tr.Neighbours {
			if nb == nil {
				continue
			}
			found := false
			for _, back := range nb.Neighbours {
				if back == tr {
					found = true
					break
				}
			}
			assert.True(t, found)
		}
	}
}

func TestInit_EmptyTriangulation_IsInvalidInput(t *testing.T) {
	_, err := Init(&emptyCDT{}, geom.DefaultTolerances())
	assert.Error(t, err)
}

type emptyCDT struct{}

func (*emptyCDT) Vertices() []triio.InputVertex { return nil }
func (*emptyCDT) Triangles() []triio.Triangle   { return nil }
