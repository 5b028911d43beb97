package math3d

import (
	"fmt"
	"math"
)

// Ray is a half-line with a unit direction.
type Ray struct {
	origin    Vec3
	direction Vec3
}

// NewRay creates a ray, normalizing the direction.
func NewRay(origin, direction Vec3) (Ray, error) {
	dir, err := direction.Unit()
	if err != nil {
		return Ray{}, fmt.Errorf("new ray: %w", err)
	}
	return Ray{origin: origin, direction: dir}, nil
}

// NewBiasedRay creates a ray whose origin is pushed delta along the normal,
// to the side of the surface the direction points to. This keeps rays spawned
// from a surface from hitting that surface again at t≈0.
// Both direction and normal must be unit vectors.
func NewBiasedRay(point, direction, normal Vec3, delta float64) Ray {
	nd := normal.Dot(direction)
	if !IsZeroScalar(nd) {
		if nd < 0 {
			delta = -delta
		}
		point = point.Add(normal.Scale(delta))
	}
	return Ray{origin: point, direction: direction}
}

// Origin returns the starting point of the ray.
func (r Ray) Origin() Vec3 {
	return r.origin
}

// Direction returns the unit direction of the ray.
func (r Ray) Direction() Vec3 {
	return r.direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	if IsZeroScalar(t) {
		return r.origin
	}
	return r.origin.Add(r.direction.Scale(t))
}

func (r Ray) String() string {
	return fmt.Sprintf("ray{origin: %v, direction: %v}", r.origin, r.direction)
}

// InRange reports whether t lies strictly inside (0, maxDistance) along a ray.
// Values within Epsilon of zero count as zero.
func InRange(t, maxDistance float64) bool {
	return t > Epsilon && t < maxDistance && !math.IsNaN(t)
}
