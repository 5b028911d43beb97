package geometry

import (
	"fmt"
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Cylinder is a tube cut to a finite height and closed by two discs.
// The bottom cap is centered on the axis origin.
type Cylinder struct {
	shape
	axial
	h float64
}

// NewCylinder creates a capped cylinder. Radius and height must be positive.
func NewCylinder(axis math3d.Ray, radius, height float64, surface Surface) (*Cylinder, error) {
	a, err := newAxial(axis, radius)
	if err != nil {
		return nil, fmt.Errorf("new cylinder: %w", err)
	}
	if !(height > 0) {
		return nil, fmt.Errorf("new cylinder: height %v: %w", height, ErrDegenerate)
	}
	return &Cylinder{shape: shape{surface}, axial: a, h: height}, nil
}

// Height returns the distance between the two caps.
func (c *Cylinder) Height() float64 { return c.h }

// Normal returns -axis on the bottom cap, +axis on the top cap and the radial
// direction on the side. Points on a cap edge belong to the cap.
func (c *Cylinder) Normal(p math3d.Vec3) math3d.Vec3 {
	h := c.height(p)
	switch {
	case h <= 0:
		return c.axis.Direction().Negate()
	case math3d.AlignZero(h-c.h) >= 0:
		return c.axis.Direction()
	default:
		return c.sideNormal(p)
	}
}

// Intersect returns the side crossings between the caps and the cap crossings
// strictly inside the cap discs.
func (c *Cylinder) Intersect(ray math3d.Ray, maxDistance float64) []Intersection {
	var hits []Intersection

	if t1, t2, ok := c.roots(ray); ok {
		for _, t := range [2]float64{t1, t2} {
			if !math3d.InRange(t, maxDistance) {
				continue
			}
			p := ray.At(t)
			if h := c.height(p); h > 0 && math3d.AlignZero(h-c.h) < 0 {
				hits = append(hits, Intersection{c, p})
			}
		}
	}

	v := c.axis.Direction()
	nd := math3d.AlignZero(v.Dot(ray.Direction()))
	if nd == 0 {
		return hits
	}
	for _, center := range [2]math3d.Vec3{c.axis.Origin(), c.axis.At(c.h)} {
		t := math3d.AlignZero(v.Dot(center.Sub(ray.Origin())) / nd)
		if !math3d.InRange(t, maxDistance) {
			continue
		}
		p := ray.At(t)
		if math3d.AlignZero(p.DistanceSq(center)-c.radius*c.radius) < 0 {
			hits = append(hits, Intersection{c, p})
		}
	}
	return hits
}

// Bounds returns the tight box around both cap discs.
func (c *Cylinder) Bounds() (AABB, bool) {
	v := c.axis.Direction()
	bottom, top := c.axis.Origin(), c.axis.At(c.h)
	ext := math3d.V3(
		c.radius*math.Sqrt(math.Max(0, 1-v.X*v.X)),
		c.radius*math.Sqrt(math.Max(0, 1-v.Y*v.Y)),
		c.radius*math.Sqrt(math.Max(0, 1-v.Z*v.Z)),
	)
	return NewAABB(bottom.Min(top).Sub(ext), bottom.Max(top).Add(ext)), true
}
