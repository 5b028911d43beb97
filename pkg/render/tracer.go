package render

import (
	"fmt"
	"math"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// TracerConfig bounds the recursion of the tracer.
type TracerConfig struct {
	// MaxLevel is the number of surfaces a ray path may shade, including the first.
	MaxLevel int
	// MinK ends a branch once its accumulated attenuation falls below it on every channel.
	MinK float64
	// Epsilon is the tolerance for dot products treated as zero.
	Epsilon float64
	// Bias is how far spawned rays are pushed off the surface.
	Bias float64
}

// DefaultTracerConfig returns the limits used unless told otherwise.
func DefaultTracerConfig() TracerConfig {
	return TracerConfig{
		MaxLevel: 10,
		MinK:     0.001,
		Epsilon:  math3d.Epsilon,
		Bias:     1e-4,
	}
}

func (c TracerConfig) validate() error {
	switch {
	case c.MaxLevel < 1:
		return fmt.Errorf("max level %d: %w", c.MaxLevel, ErrInvalidConfig)
	case !(c.MinK > 0 && c.MinK < 1):
		return fmt.Errorf("min k %v: %w", c.MinK, ErrInvalidConfig)
	case !(c.Epsilon >= 0):
		return fmt.Errorf("epsilon %v: %w", c.Epsilon, ErrInvalidConfig)
	case !(c.Bias > 0):
		return fmt.Errorf("bias %v: %w", c.Bias, ErrInvalidConfig)
	}
	return nil
}

// Tracer computes the color seen along a ray with Whitted-style recursion:
// Phong shading with shadows at every hit, plus mirror reflection and
// straight-through transmission.
type Tracer struct {
	scene *scene.Scene
	cfg   TracerConfig
}

// NewTracer creates a tracer over s.
func NewTracer(s *scene.Scene, cfg TracerConfig) (*Tracer, error) {
	if s == nil {
		return nil, fmt.Errorf("new tracer: scene: %w", ErrMissingField)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("new tracer: %w", err)
	}
	return &Tracer{scene: s, cfg: cfg}, nil
}

// Config returns the tracer limits.
func (t *Tracer) Config() TracerConfig { return t.cfg }

// Trace returns the color seen along ray. The ambient light is added once,
// at the first hit.
func (t *Tracer) Trace(ray math3d.Ray) math3d.Color {
	hit, ok := t.closest(ray)
	if !ok {
		return t.scene.Background
	}
	return t.colorAt(hit, ray, t.cfg.MaxLevel, math3d.White).Add(t.scene.Ambient.Intensity())
}

func (t *Tracer) closest(ray math3d.Ray) (geometry.Intersection, bool) {
	return geometry.Closest(ray, t.scene.Geometries.Intersect(ray, math.Inf(1)))
}

func (t *Tracer) alignZero(x float64) float64 {
	if math.Abs(x) < t.cfg.Epsilon {
		return 0
	}
	return x
}

func (t *Tracer) colorAt(hit geometry.Intersection, ray math3d.Ray, level int, k math3d.Color) math3d.Color {
	v := ray.Direction()
	n := hit.Geometry.Normal(hit.Point)
	nv := t.alignZero(n.Dot(v))

	color := hit.Geometry.Emission()
	if nv == 0 {
		return color
	}
	color = color.Add(t.local(hit, v, n, nv, k))
	if level == 1 {
		return color
	}

	mat := hit.Geometry.Material()
	reflected := math3d.NewBiasedRay(hit.Point, v.Sub(n.Scale(2*nv)).Normalize(), n, t.cfg.Bias)
	refracted := math3d.NewBiasedRay(hit.Point, v, n, t.cfg.Bias)

	return color.
		Add(t.global(reflected, level, k, mat.KR)).
		Add(t.global(refracted, level, k, mat.KT))
}

// local sums the diffuse and specular light reaching the hit point. Lights
// whose shadow factor, combined with the branch attenuation k, falls below
// MinK are skipped.
func (t *Tracer) local(hit geometry.Intersection, v, n math3d.Vec3, nv float64, k math3d.Color) math3d.Color {
	mat := hit.Geometry.Material()
	var color math3d.Color

	for _, light := range t.scene.Lights {
		l, ok := light.Direction(hit.Point)
		if !ok {
			continue
		}
		nl := t.alignZero(n.Dot(l))
		if nl*nv <= 0 {
			continue
		}
		ktr := t.transparency(light.Distance(hit.Point), l, n, hit.Point)
		if k.Mul(ktr).Below(t.cfg.MinK) {
			continue
		}

		factor := mat.KD.Scale(math.Abs(nl)).Add(t.specular(mat, l, n, nl, v))
		color = color.Add(light.Intensity(hit.Point).Mul(ktr).Mul(factor))
	}
	return color
}

func (t *Tracer) specular(mat geometry.Material, l, n math3d.Vec3, nl float64, v math3d.Vec3) math3d.Color {
	r := l.Sub(n.Scale(2 * nl))
	minusVR := -t.alignZero(v.Dot(r))
	if minusVR <= 0 {
		return math3d.Black
	}
	return mat.KS.Scale(math.Pow(minusVR, float64(mat.Shininess)))
}

// transparency returns the product of the KT of everything between p and a
// light lightDistance away along -l.
func (t *Tracer) transparency(lightDistance float64, l, n, p math3d.Vec3) math3d.Color {
	ray := math3d.NewBiasedRay(p, l.Negate(), n, t.cfg.Bias)
	ktr := math3d.White
	for _, hit := range t.scene.Geometries.Intersect(ray, lightDistance) {
		ktr = ktr.Mul(hit.Geometry.Material().KT)
		if ktr.Below(t.cfg.MinK) {
			return math3d.Black
		}
	}
	return ktr
}

// global follows a secondary ray whose contribution is scaled by kx.
func (t *Tracer) global(ray math3d.Ray, level int, k, kx math3d.Color) math3d.Color {
	kkx := k.Mul(kx)
	if kkx.Below(t.cfg.MinK) {
		return math3d.Black
	}
	hit, ok := t.closest(ray)
	if !ok {
		return t.scene.Background.Mul(kx)
	}
	return t.colorAt(hit, ray, level-1, kkx).Mul(kx)
}
