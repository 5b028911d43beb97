// Package geometry implements the ray-intersectable shapes of a scene and the
// bounding volume hierarchy used to accelerate intersection queries.
package geometry

import (
	"errors"

	"github.com/taigrr/prism/pkg/math3d"
)

// ErrDegenerate is returned when a shape's parameters do not describe a surface,
// such as a non-positive radius or collinear triangle vertices.
var ErrDegenerate = errors.New("degenerate geometry")

// Material holds the per-channel attenuation coefficients of a surface.
type Material struct {
	KD        math3d.Color // diffuse
	KS        math3d.Color // specular
	KT        math3d.Color // transparency
	KR        math3d.Color // reflection
	Shininess int
}

// Surface is the appearance shared by every shape.
type Surface struct {
	Emission math3d.Color
	Material Material
}

// Intersectable is anything a ray can be intersected with: a single shape, a flat
// list or a BVH.
type Intersectable interface {
	// Intersect returns every intersection strictly within (0, maxDistance) along
	// the ray. The result is nil when there are none; order is unspecified.
	Intersect(ray math3d.Ray, maxDistance float64) []Intersection
}

// Geometry is a shape with a surface.
type Geometry interface {
	Intersectable

	// Normal returns the outward unit normal at a point on the surface.
	// The result is unspecified for points off the surface.
	Normal(p math3d.Vec3) math3d.Vec3
	Emission() math3d.Color
	Material() Material
	// Bounds returns the shape's box, or false for infinite shapes.
	Bounds() (AABB, bool)
}

// Intersection pairs a hit point with the geometry it lies on.
// It is comparable with ==.
type Intersection struct {
	Geometry Geometry
	Point    math3d.Vec3
}

// Closest returns the intersection nearest to the ray origin.
func Closest(ray math3d.Ray, hits []Intersection) (Intersection, bool) {
	if len(hits) == 0 {
		return Intersection{}, false
	}
	origin := ray.Origin()
	best := hits[0]
	bestDist := origin.DistanceSq(best.Point)
	for _, h := range hits[1:] {
		if d := origin.DistanceSq(h.Point); d < bestDist {
			best, bestDist = h, d
		}
	}
	return best, true
}

// shape carries the surface of a concrete geometry.
type shape struct {
	surface Surface
}

func (s shape) Emission() math3d.Color { return s.surface.Emission }

func (s shape) Material() Material { return s.surface.Material }
