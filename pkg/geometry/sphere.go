package geometry

import (
	"fmt"
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Sphere is defined by its center and radius.
type Sphere struct {
	shape
	center math3d.Vec3
	radius float64
}

// NewSphere creates a sphere. The radius must be positive.
func NewSphere(center math3d.Vec3, radius float64, surface Surface) (*Sphere, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("new sphere: radius %v: %w", radius, ErrDegenerate)
	}
	return &Sphere{shape: shape{surface}, center: center, radius: radius}, nil
}

// Center returns the center of the sphere.
func (s *Sphere) Center() math3d.Vec3 { return s.center }

// Radius returns the radius of the sphere.
func (s *Sphere) Radius() float64 { return s.radius }

// Normal returns the unit vector from the center through p.
func (s *Sphere) Normal(p math3d.Vec3) math3d.Vec3 {
	return p.Sub(s.center).Normalize()
}

// Intersect solves for the points at which the ray crosses the sphere.
// A ray tangent to the sphere does not intersect it.
func (s *Sphere) Intersect(ray math3d.Ray, maxDistance float64) []Intersection {
	u := s.center.Sub(ray.Origin())
	if u.IsZero() {
		if !math3d.InRange(s.radius, maxDistance) {
			return nil
		}
		return []Intersection{{s, ray.At(s.radius)}}
	}

	tm := math3d.AlignZero(ray.Direction().Dot(u))
	dSq := u.LenSq() - tm*tm
	d := math3d.AlignZero(math.Sqrt(math.Max(dSq, 0)))
	if d >= s.radius {
		return nil
	}
	th := math3d.AlignZero(math.Sqrt(s.radius*s.radius - d*d))
	if th == 0 {
		return nil
	}

	var hits []Intersection
	for _, t := range [2]float64{tm - th, tm + th} {
		if t = math3d.AlignZero(t); math3d.InRange(t, maxDistance) {
			hits = append(hits, Intersection{s, ray.At(t)})
		}
	}
	return hits
}

// Bounds returns the cube enclosing the sphere.
func (s *Sphere) Bounds() (AABB, bool) {
	r := math3d.V3(s.radius, s.radius, s.radius)
	return NewAABB(s.center.Sub(r), s.center.Add(r)), true
}
