package math3d

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB triple. Channels are nominally in [0, 1] but are not
// clamped until conversion for output, so light contributions can be summed freely.
// Material coefficients (kD, kS, kT, kR) use the same type as per-channel factors.
type Color struct {
	R, G, B float64
}

// Common colors.
var (
	Black = Color{}
	White = Color{1, 1, 1}
)

// RGB creates a color from 0–255 channel values.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// Gray returns a color with all three channels set to v.
func Gray(v float64) Color {
	return Color{v, v, v}
}

// ParseHex parses a "#rrggbb" or "#rgb" string.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{c.R, c.G, c.B}, nil
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Mul returns the channel-wise product, used to apply attenuation coefficients.
func (c Color) Mul(k Color) Color {
	return Color{c.R * k.R, c.G * k.G, c.B * k.B}
}

// Below reports whether every channel is strictly below threshold.
func (c Color) Below(threshold float64) bool {
	return c.R < threshold && c.G < threshold && c.B < threshold
}

// IsBlack reports whether all channels are zero.
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// ApproxEqual reports whether c and o differ by at most eps on every channel.
func (c Color) ApproxEqual(o Color, eps float64) bool {
	return Vec3{c.R, c.G, c.B}.ApproxEqual(Vec3{o.R, o.G, o.B}, eps)
}

// RGBA clamps the color to [0, 1] and converts it to 8-bit RGBA.
func (c Color) RGBA() color.RGBA {
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// Hex returns the clamped color as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}
