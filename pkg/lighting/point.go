package lighting

import (
	"fmt"
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Option configures a point or spot light.
type Option func(*options)

type options struct {
	kC, kL, kQ float64
	narrowness float64
}

func defaultOptions() options {
	return options{kC: 1, narrowness: 1}
}

// WithKC sets the constant attenuation coefficient. Default 1.
func WithKC(k float64) Option { return func(o *options) { o.kC = k } }

// WithKL sets the linear attenuation coefficient. Default 0.
func WithKL(k float64) Option { return func(o *options) { o.kL = k } }

// WithKQ sets the quadratic attenuation coefficient. Default 0.
func WithKQ(k float64) Option { return func(o *options) { o.kQ = k } }

// WithNarrowness sets the exponent applied to a spot light's beam falloff.
// Larger values give a tighter beam. Default 1. Point lights ignore it.
func WithNarrowness(n float64) Option { return func(o *options) { o.narrowness = n } }

// PointLight radiates equally in all directions from a position, attenuated
// by 1 / (kC + kL·d + kQ·d²).
type PointLight struct {
	intensity  math3d.Color
	position   math3d.Vec3
	kC, kL, kQ float64
}

// NewPointLight creates a point light.
func NewPointLight(intensity math3d.Color, position math3d.Vec3, opts ...Option) (*PointLight, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("new point light: %w", err)
	}
	return &PointLight{intensity: intensity, position: position, kC: o.kC, kL: o.kL, kQ: o.kQ}, nil
}

func (o options) validate() error {
	if o.kC < 0 || o.kL < 0 || o.kQ < 0 || o.kC+o.kL+o.kQ == 0 {
		return fmt.Errorf("kC=%v kL=%v kQ=%v: %w", o.kC, o.kL, o.kQ, ErrInvalidAttenuation)
	}
	return nil
}

// Position returns the light's location.
func (l *PointLight) Position() math3d.Vec3 { return l.position }

// Intensity returns the attenuated intensity at p.
func (l *PointLight) Intensity(p math3d.Vec3) math3d.Color {
	d := l.position.Distance(p)
	return l.intensity.Scale(1 / (l.kC + l.kL*d + l.kQ*d*d))
}

// Direction returns the unit vector from the light to p.
func (l *PointLight) Direction(p math3d.Vec3) (math3d.Vec3, bool) {
	dir, err := l.position.To(p)
	if err != nil {
		return math3d.Vec3{}, false
	}
	return dir.Normalize(), true
}

// Distance returns the distance from the light to p.
func (l *PointLight) Distance(p math3d.Vec3) float64 {
	return l.position.Distance(p)
}

// SpotLight is a point light whose intensity falls off away from a main direction
// by max(0, direction·l)^narrowness.
type SpotLight struct {
	PointLight
	direction  math3d.Vec3
	narrowness float64
}

// NewSpotLight creates a spot light aimed along direction.
func NewSpotLight(intensity math3d.Color, position, direction math3d.Vec3, opts ...Option) (*SpotLight, error) {
	dir, err := direction.Unit()
	if err != nil {
		return nil, fmt.Errorf("new spot light: %w", err)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("new spot light: %w", err)
	}
	if !(o.narrowness > 0) {
		return nil, fmt.Errorf("new spot light: narrowness %v must be positive", o.narrowness)
	}
	return &SpotLight{
		PointLight: PointLight{intensity: intensity, position: position, kC: o.kC, kL: o.kL, kQ: o.kQ},
		direction:  dir,
		narrowness: o.narrowness,
	}, nil
}

// Intensity returns the attenuated intensity at p scaled by the beam falloff.
func (s *SpotLight) Intensity(p math3d.Vec3) math3d.Color {
	l, ok := s.Direction(p)
	if !ok {
		return math3d.Black
	}
	cos := math.Max(0, s.direction.Dot(l))
	if cos == 0 {
		return math3d.Black
	}
	return s.PointLight.Intensity(p).Scale(math.Pow(cos, s.narrowness))
}
