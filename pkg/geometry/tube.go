package geometry

import (
	"fmt"
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// axial is the round surface around an axis ray shared by tubes and cylinders.
type axial struct {
	axis   math3d.Ray
	radius float64
}

func newAxial(axis math3d.Ray, radius float64) (axial, error) {
	if !(radius > 0) {
		return axial{}, fmt.Errorf("radius %v: %w", radius, ErrDegenerate)
	}
	if axis.Direction().IsZero() {
		return axial{}, fmt.Errorf("axis: %w", math3d.ErrZeroVector)
	}
	return axial{axis: axis, radius: radius}, nil
}

// height returns the signed distance of p along the axis from its origin.
func (a axial) height(p math3d.Vec3) float64 {
	return math3d.AlignZero(a.axis.Direction().Dot(p.Sub(a.axis.Origin())))
}

// sideNormal returns the unit vector from the nearest axis point to p.
func (a axial) sideNormal(p math3d.Vec3) math3d.Vec3 {
	o := a.axis.At(a.height(p))
	return p.Sub(o).Normalize()
}

// roots solves |perp(origin + t·dir - p0)|² = r² for t, in ascending order.
// Rays parallel to the axis and tangent rays have no roots.
func (a axial) roots(ray math3d.Ray) (t1, t2 float64, ok bool) {
	v := a.axis.Direction()
	d := ray.Direction()
	dp := ray.Origin().Sub(a.axis.Origin())

	dPerp := d.Sub(v.Scale(d.Dot(v)))
	qa := dPerp.LenSq()
	if math3d.IsZeroScalar(qa) {
		return 0, 0, false
	}
	dpPerp := dp.Sub(v.Scale(dp.Dot(v)))
	qb := 2 * dPerp.Dot(dpPerp)
	qc := dpPerp.LenSq() - a.radius*a.radius

	disc := math3d.AlignZero(qb*qb - 4*qa*qc)
	if disc <= 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	return math3d.AlignZero((-qb - sq) / (2 * qa)), math3d.AlignZero((-qb + sq) / (2 * qa)), true
}

// Tube is an infinite round surface around an axis.
type Tube struct {
	shape
	axial
}

// NewTube creates a tube of the given radius around axis.
func NewTube(axis math3d.Ray, radius float64, surface Surface) (*Tube, error) {
	a, err := newAxial(axis, radius)
	if err != nil {
		return nil, fmt.Errorf("new tube: %w", err)
	}
	return &Tube{shape: shape{surface}, axial: a}, nil
}

// Axis returns the tube's axis ray.
func (t *Tube) Axis() math3d.Ray { return t.axis }

// Radius returns the tube's radius.
func (t *Tube) Radius() float64 { return t.radius }

// Normal returns the component of p - axis origin perpendicular to the axis, normalized.
func (t *Tube) Normal(p math3d.Vec3) math3d.Vec3 { return t.sideNormal(p) }

// Intersect returns the points at which the ray crosses the tube's surface.
func (t *Tube) Intersect(ray math3d.Ray, maxDistance float64) []Intersection {
	t1, t2, ok := t.roots(ray)
	if !ok {
		return nil
	}
	var hits []Intersection
	for _, d := range [2]float64{t1, t2} {
		if math3d.InRange(d, maxDistance) {
			hits = append(hits, Intersection{t, ray.At(d)})
		}
	}
	return hits
}

// Bounds reports the tube as unbounded.
func (t *Tube) Bounds() (AABB, bool) { return AABB{}, false }
