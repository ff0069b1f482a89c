package triio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strskel/strskel/geom"
)

func squareRing() []geom.Vec {
	return []geom.Vec{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
}

func TestTriangulate_Square_ProducesFiniteAndInfiniteVertices(t *testing.T) {
	// GIVEN a simple CCW square
	b := NewPolygonBuilder()
	b.AddRing(squareRing(), nil)

	// WHEN triangulated
	cdt, err := b.Triangulate()
	require.NoError(t, err)

	// THEN the 4 finite corners are present plus 3 infinite closure vertices
	verts := cdt.Vertices()
	require.Len(t, verts, 7)
	finite := 0
	for _, v := range verts {
		if v.IsFinite {
			finite++
		}
	}
	assert.Equal(t, 4, finite)
}

func TestTriangulate_Square_NeighboursAreSymmetric(t *testing.T) {
	b := NewPolygonBuilder()
	b.AddRing(squareRing(), nil)
	cdt, err := b.Triangulate()
	require.NoError(t, err)

	tris := cdt.Triangles()
	for ti, tr := range tris {
		for side, nb := range tr.Neighbours {
			if nb < 0 {
				continue
			}
			// THEN a non-constrained side's neighbour points back at us
			found := false
			for s, back := range tris[nb].Neighbours {
				if back == ti {
					found = true
					_ = s
					break
				}
			}
			assert.Truef(t, found, "triangle %d side %d -> %d has no reciprocal neighbour link", ti, side, nb)
		}
	}
}

func TestTriangulate_Square_BoundaryEdgesAreConstrained(t *testing.T) {
	b := NewPolygonBuilder()
	b.AddRing(squareRing(), nil)
	cdt, err := b.Triangulate()
	require.NoError(t, err)

	constrainedCount := 0
	for _, tr := range cdt.Triangles() {
		for _, c := range tr.Constrained {
			if c {
				constrainedCount++
			}
		}
	}
	// THEN each of the 4 boundary edges is constrained on both the interior
	// triangle and the outer closure triangle that share it
	assert.Equal(t, 8, constrainedCount)
}

func TestTriangulate_TooFewVertices_IsInvalidInput(t *testing.T) {
	b := NewPolygonBuilder()
	b.AddRing([]geom.Vec{{0, 0}, {1, 0}}, nil)
	_, err := b.Triangulate()
	assert.Error(t, err)
}

func TestTriangulate_SelfIntersectingRing_IsRejected(t *testing.T) {
	// GIVEN a bowtie ring
	ring := []geom.Vec{{0, 0}, {10, 10}, {10, 0}, {0, 10}}
	b := NewPolygonBuilder()
	b.AddRing(ring, nil)

	_, err := b.Triangulate()
	assert.Error(t, err)
}

func TestTriangulate_EmptyBuilder_IsInvalidInput(t *testing.T) {
	b := NewPolygonBuilder()
	_, err := b.Triangulate()
	assert.Error(t, err)
}
