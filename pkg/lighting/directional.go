package lighting

import (
	"fmt"
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// DirectionalLight is a light at infinity shining along a fixed direction.
type DirectionalLight struct {
	intensity math3d.Color
	direction math3d.Vec3
}

// NewDirectionalLight creates a directional light. The direction is normalized.
func NewDirectionalLight(intensity math3d.Color, direction math3d.Vec3) (*DirectionalLight, error) {
	dir, err := direction.Unit()
	if err != nil {
		return nil, fmt.Errorf("new directional light: %w", err)
	}
	return &DirectionalLight{intensity: intensity, direction: dir}, nil
}

// Intensity returns the same intensity everywhere; there is no falloff.
func (d *DirectionalLight) Intensity(math3d.Vec3) math3d.Color { return d.intensity }

// Direction returns the light direction, the same for every point.
func (d *DirectionalLight) Direction(math3d.Vec3) (math3d.Vec3, bool) { return d.direction, true }

// Distance returns +Inf; the light is infinitely far away.
func (d *DirectionalLight) Distance(math3d.Vec3) float64 { return math.Inf(1) }
