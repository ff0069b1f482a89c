package geom

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vec is a point or free vector in the plane.
type Vec struct {
	X, Y float64
}

// Add returns v+u.
func (v Vec) Add(u Vec) Vec { return Vec{v.X + u.X, v.Y + u.Y} }

// Sub returns v-u.
func (v Vec) Sub(u Vec) Vec { return Vec{v.X - u.X, v.Y - u.Y} }

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Dot returns the dot product of v and u.
func (v Vec) Dot(u Vec) float64 { return v.X*u.X + v.Y*u.Y }

// Norm2 returns the squared L2 norm of v.
func (v Vec) Norm2() float64 { return v.Dot(v) }

// Norm returns the L2 norm of v.
func (v Vec) Norm() float64 { return math.Sqrt(v.Norm2()) }

// Unit returns v normalized to unit length. Behaviour is undefined for the
// zero vector; callers check near-zero magnitude before calling Unit.
func (v Vec) Unit() Vec {
	n := v.Norm()
	return Vec{v.X / n, v.Y / n}
}

// RotateCCW90 rotates v by 90 degrees counter-clockwise: (x,y) -> (-y,x).
func (v Vec) RotateCCW90() Vec { return Vec{-v.Y, v.X} }

// RotateCW90 rotates v by 90 degrees clockwise: (x,y) -> (y,-x).
func (v Vec) RotateCW90() Vec { return Vec{v.Y, -v.X} }

// Dist2 returns the squared Cartesian distance between a and b.
func Dist2(a, b Vec) float64 {
	return a.Sub(b).Norm2()
}

// Dist returns the Cartesian distance between a and b.
func Dist(a, b Vec) float64 {
	return math.Sqrt(Dist2(a, b))
}

// Centroid returns the average of pts, using gonum/floats for the
// element-wise reduction (mirrors stop_kvertices' averaging of the stopping
// kinetic vertices onto a new skeleton node, spec.md §4.5.1 step 2).
func Centroid(pts []Vec) Vec {
	if len(pts) == 0 {
		return Vec{}
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}
	n := float64(len(pts))
	return Vec{floats.Sum(xs) / n, floats.Sum(ys) / n}
}

// BoundingBox returns the tight axis-aligned bounding box of pts, following
// transform.get_box. Panics on an empty slice: the caller always has at
// least the polygon's outer ring.
func BoundingBox(pts []Vec) (min, max Vec) {
	min, max = pts[0], pts[0]
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
	return min, max
}
