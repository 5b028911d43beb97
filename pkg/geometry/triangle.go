package geometry

import (
	"fmt"

	"github.com/taigrr/prism/pkg/math3d"
)

// Triangle is a flat three-vertex polygon.
type Triangle struct {
	shape
	vertices [3]math3d.Vec3
	plane    Plane
}

// NewTriangle creates a triangle. The vertices must not be collinear.
func NewTriangle(a, b, c math3d.Vec3, surface Surface) (*Triangle, error) {
	n, err := planeNormal(a, b, c)
	if err != nil {
		return nil, fmt.Errorf("new triangle: %w", err)
	}
	return &Triangle{
		shape:    shape{surface},
		vertices: [3]math3d.Vec3{a, b, c},
		plane:    Plane{point: a, normal: n},
	}, nil
}

// Vertices returns the triangle's corners in construction order.
func (t *Triangle) Vertices() [3]math3d.Vec3 { return t.vertices }

// Normal returns the normal of the supporting plane.
func (t *Triangle) Normal(math3d.Vec3) math3d.Vec3 { return t.plane.normal }

// Intersect returns the crossing point when it lies strictly inside the triangle.
// Hits on an edge or a vertex count as misses.
func (t *Triangle) Intersect(ray math3d.Ray, maxDistance float64) []Intersection {
	dist, ok := t.plane.distance(ray)
	if !ok || !math3d.InRange(dist, maxDistance) {
		return nil
	}

	o, dir := ray.Origin(), ray.Direction()
	var sign float64
	for i := range 3 {
		vi := t.vertices[i].Sub(o)
		vj := t.vertices[(i+1)%3].Sub(o)
		s := math3d.AlignZero(dir.Dot(vi.Cross(vj)))
		if s == 0 || s*sign < 0 {
			return nil
		}
		sign = s
	}
	return []Intersection{{t, ray.At(dist)}}
}

// Bounds returns the box around the three vertices.
func (t *Triangle) Bounds() (AABB, bool) {
	return BoundsOf(t.vertices[:]...), true
}
