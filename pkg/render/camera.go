package render

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/taigrr/prism/pkg/math3d"
)

// Configuration errors returned by NewCamera, wrapped with the offending field.
var (
	ErrMissingField  = errors.New("missing field")
	ErrInvalidConfig = errors.New("invalid config")
)

// AutoThreads asks the renderer to pick a worker count from the CPU count.
const AutoThreads = -1

// orthogonalTolerance bounds |forward·up| for unit forward and up vectors.
const orthogonalTolerance = 1e-9

// DepthOfField configures thin-lens sampling around the camera location.
type DepthOfField struct {
	Enabled bool
	// FocalLength is the distance along each primary ray that stays in focus.
	FocalLength float64
	// Aperture is the diameter of the lens disk. Zero disables blur.
	Aperture float64
	// Samples is the number of rays averaged per pixel. Zero means one.
	Samples int
}

// Config describes a camera. It is validated once by NewCamera.
type Config struct {
	// Location is the eye position. The zero value is the origin, a valid
	// location, so it is never reported as missing.
	Location math3d.Vec3
	Forward  math3d.Vec3
	Up       math3d.Vec3

	// View plane size and its distance from the location.
	Width    float64
	Height   float64
	Distance float64

	// Roll turns the view about forward, Pitch about right. Degrees.
	Roll  float64
	Pitch float64

	DepthOfField DepthOfField

	// Threads is 0 for sequential rendering, N for N workers or AutoThreads.
	Threads int
	// ProgressInterval enables progress logging when positive.
	ProgressInterval time.Duration
}

// Camera is a validated, immutable view into a scene.
type Camera struct {
	cfg     Config
	forward math3d.Vec3
	up      math3d.Vec3
	right   math3d.Vec3
	center  math3d.Vec3
}

// NewCamera validates cfg and freezes it into a Camera.
func NewCamera(cfg Config) (*Camera, error) {
	if cfg.Forward.IsZero() {
		return nil, fmt.Errorf("new camera: forward: %w", ErrMissingField)
	}
	if cfg.Up.IsZero() {
		return nil, fmt.Errorf("new camera: up: %w", ErrMissingField)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"width", cfg.Width},
		{"height", cfg.Height},
		{"distance", cfg.Distance},
	} {
		switch {
		case f.value == 0:
			return nil, fmt.Errorf("new camera: %s: %w", f.name, ErrMissingField)
		case !(f.value > 0) || math.IsInf(f.value, 1):
			return nil, fmt.Errorf("new camera: %s %v: %w", f.name, f.value, ErrInvalidConfig)
		}
	}

	forward := cfg.Forward.Normalize()
	up := cfg.Up.Normalize()
	if math.Abs(forward.Dot(up)) > orthogonalTolerance {
		return nil, fmt.Errorf("new camera: forward %v and up %v are not orthogonal: %w", cfg.Forward, cfg.Up, ErrInvalidConfig)
	}

	if err := cfg.DepthOfField.validate(); err != nil {
		return nil, fmt.Errorf("new camera: %w", err)
	}
	if cfg.Threads < AutoThreads {
		return nil, fmt.Errorf("new camera: threads %d: %w", cfg.Threads, ErrInvalidConfig)
	}
	if cfg.ProgressInterval < 0 {
		return nil, fmt.Errorf("new camera: progress interval %v: %w", cfg.ProgressInterval, ErrInvalidConfig)
	}

	right := forward.Cross(up).Normalize()
	if cfg.Roll != 0 {
		rot := math3d.Rotate(forward, math3d.Radians(cfg.Roll))
		up = rot.MulVec3Dir(up).Normalize()
		right = rot.MulVec3Dir(right).Normalize()
	}
	if cfg.Pitch != 0 {
		rot := math3d.Rotate(right, math3d.Radians(cfg.Pitch))
		forward = rot.MulVec3Dir(forward).Normalize()
		up = rot.MulVec3Dir(up).Normalize()
	}

	return &Camera{
		cfg:     cfg,
		forward: forward,
		up:      up,
		right:   right,
		center:  cfg.Location.Add(forward.Scale(cfg.Distance)),
	}, nil
}

func (d DepthOfField) validate() error {
	if !d.Enabled {
		return nil
	}
	switch {
	case !(d.FocalLength > 0):
		return fmt.Errorf("focal length %v: %w", d.FocalLength, ErrInvalidConfig)
	case !(d.Aperture >= 0):
		return fmt.Errorf("aperture %v: %w", d.Aperture, ErrInvalidConfig)
	case d.Samples < 0:
		return fmt.Errorf("samples %d: %w", d.Samples, ErrInvalidConfig)
	}
	return nil
}

// Config returns the configuration the camera was built from.
func (c *Camera) Config() Config { return c.cfg }

// Location returns the eye position.
func (c *Camera) Location() math3d.Vec3 { return c.cfg.Location }

// Basis returns the unit forward, up and right vectors after rotation.
func (c *Camera) Basis() (forward, up, right math3d.Vec3) {
	return c.forward, c.up, c.right
}

// Samples returns how many rays are averaged per pixel.
func (c *Camera) Samples() int {
	if !c.blurs() || c.cfg.DepthOfField.Samples < 1 {
		return 1
	}
	return c.cfg.DepthOfField.Samples
}

func (c *Camera) blurs() bool {
	return c.cfg.DepthOfField.Enabled && c.cfg.DepthOfField.Aperture > 0
}

// ConstructRay returns the ray through the center of pixel (col, row) of an
// nX by nY grid laid over the view plane. Row 0 is the top of the image.
func (c *Camera) ConstructRay(nX, nY, col, row int) math3d.Ray {
	pixelWidth := c.cfg.Width / float64(nX)
	pixelHeight := c.cfg.Height / float64(nY)

	xJ := (float64(col) - float64(nX-1)/2) * pixelWidth
	yI := -(float64(row) - float64(nY-1)/2) * pixelHeight

	p := c.center
	if !math3d.IsZeroScalar(xJ) {
		p = p.Add(c.right.Scale(xJ))
	}
	if !math3d.IsZeroScalar(yI) {
		p = p.Add(c.up.Scale(yI))
	}
	// p lies Distance ahead of the location, so the direction is never zero.
	ray, _ := math3d.NewRay(c.cfg.Location, p.Sub(c.cfg.Location))
	return ray
}

// ApertureRay returns a ray from a random point of the lens disk through the
// point where primary crosses the focal distance. With no aperture the
// primary ray is returned unchanged.
func (c *Camera) ApertureRay(primary math3d.Ray, rng *rand.Rand) math3d.Ray {
	if !c.blurs() {
		return primary
	}
	focal := primary.At(c.cfg.DepthOfField.FocalLength)

	r := math.Sqrt(rng.Float64()) * c.cfg.DepthOfField.Aperture / 2
	theta := 2 * math.Pi * rng.Float64()
	origin := primary.Origin().
		Add(c.right.Scale(r * math.Cos(theta))).
		Add(c.up.Scale(r * math.Sin(theta)))

	ray, err := math3d.NewRay(origin, focal.Sub(origin))
	if err != nil {
		return primary
	}
	return ray
}
