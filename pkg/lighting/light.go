// Package lighting provides the light sources that illuminate a scene.
package lighting

import (
	"errors"

	"github.com/taigrr/prism/pkg/math3d"
)

// ErrInvalidAttenuation is returned when distance attenuation coefficients are
// negative or all zero.
var ErrInvalidAttenuation = errors.New("invalid attenuation")

// LightSource is a light that contributes diffuse and specular shading.
type LightSource interface {
	// Intensity returns the light arriving at p.
	Intensity(p math3d.Vec3) math3d.Color
	// Direction returns the unit vector along which light travels to reach p.
	// It reports false when the direction is undefined, such as at the light's
	// own position.
	Direction(p math3d.Vec3) (math3d.Vec3, bool)
	// Distance returns the distance from the light to p, +Inf for lights at infinity.
	Distance(p math3d.Vec3) float64
}

// AmbientLight is the constant light added once to every visible surface.
type AmbientLight struct {
	intensity math3d.Color
}

// NoAmbient contributes nothing.
var NoAmbient = AmbientLight{}

// NewAmbientLight returns ambient light of intensity iA attenuated by kA.
func NewAmbientLight(iA, kA math3d.Color) AmbientLight {
	return AmbientLight{intensity: iA.Mul(kA)}
}

// Intensity returns the ambient intensity.
func (a AmbientLight) Intensity() math3d.Color { return a.intensity }
