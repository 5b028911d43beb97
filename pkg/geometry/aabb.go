package geometry

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// BoundsOf returns the smallest AABB containing all points.
func BoundsOf(points ...math3d.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	b := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Union returns the smallest AABB containing both boxes.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// ContainsPoint returns true if the point is inside the AABB.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Hit reports whether the ray passes through the box within [0, maxDistance].
// A zero direction component means the ray runs parallel to that slab pair: it
// misses unless its origin lies between the two slabs. NaN intervals are misses.
func (b AABB) Hit(ray math3d.Ray, maxDistance float64) bool {
	tMin, tMax := 0.0, maxDistance
	o, d := ray.Origin(), ray.Direction()

	for axis := range 3 {
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)
		orig, dir := o.Axis(axis), d.Axis(axis)

		if dir == 0 {
			if orig < lo || orig > hi {
				return false
			}
			continue
		}

		inv := 1 / dir
		t1 := (lo - orig) * inv
		t2 := (hi - orig) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if math.IsNaN(t1) || math.IsNaN(t2) || tMin > tMax {
			return false
		}
	}
	return true
}
