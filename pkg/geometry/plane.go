package geometry

import (
	"fmt"

	"github.com/taigrr/prism/pkg/math3d"
)

// Plane is an infinite flat surface through a point with a unit normal.
type Plane struct {
	shape
	point  math3d.Vec3
	normal math3d.Vec3
}

// NewPlane creates a plane through point, normalizing the normal.
func NewPlane(point, normal math3d.Vec3, surface Surface) (*Plane, error) {
	n, err := normal.Unit()
	if err != nil {
		return nil, fmt.Errorf("new plane: %w", err)
	}
	return &Plane{shape: shape{surface}, point: point, normal: n}, nil
}

// NewPlaneFromPoints creates the plane through three points. The points must be
// distinct and not collinear. The normal follows (p2-p1) × (p3-p1).
func NewPlaneFromPoints(p1, p2, p3 math3d.Vec3, surface Surface) (*Plane, error) {
	n, err := planeNormal(p1, p2, p3)
	if err != nil {
		return nil, fmt.Errorf("new plane: %w", err)
	}
	return &Plane{shape: shape{surface}, point: p1, normal: n}, nil
}

func planeNormal(p1, p2, p3 math3d.Vec3) (math3d.Vec3, error) {
	v1, err := p1.To(p2)
	if err != nil {
		return math3d.Vec3{}, fmt.Errorf("%w: %w", ErrDegenerate, err)
	}
	v2, err := p1.To(p3)
	if err != nil {
		return math3d.Vec3{}, fmt.Errorf("%w: %w", ErrDegenerate, err)
	}
	n, err := v1.CrossUnit(v2)
	if err != nil {
		return math3d.Vec3{}, fmt.Errorf("%w: collinear points: %w", ErrDegenerate, err)
	}
	return n, nil
}

// Point returns the reference point of the plane.
func (p *Plane) Point() math3d.Vec3 { return p.point }

// Normal returns the plane's normal regardless of the point.
func (p *Plane) Normal(math3d.Vec3) math3d.Vec3 { return p.normal }

// Intersect returns the single crossing point, if any. Rays parallel to the plane
// or starting on it do not intersect it.
func (p *Plane) Intersect(ray math3d.Ray, maxDistance float64) []Intersection {
	t, ok := p.distance(ray)
	if !ok || !math3d.InRange(t, maxDistance) {
		return nil
	}
	return []Intersection{{p, ray.At(t)}}
}

// distance returns the ray parameter at which the ray meets the plane.
func (p *Plane) distance(ray math3d.Ray) (float64, bool) {
	nd := math3d.AlignZero(p.normal.Dot(ray.Direction()))
	if nd == 0 {
		return 0, false
	}
	q := p.point.Sub(ray.Origin())
	if q.IsZero() {
		return 0, false
	}
	return math3d.AlignZero(p.normal.Dot(q) / nd), true
}

// Bounds reports the plane as unbounded.
func (p *Plane) Bounds() (AABB, bool) { return AABB{}, false }
