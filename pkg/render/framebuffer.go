// Package render turns a scene into pixels: the camera generates rays, the
// tracer shades them and the renderer fills a framebuffer in parallel.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/taigrr/prism/pkg/math3d"
)

// Framebuffer holds unclamped linear colors in row-major order.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []math3d.Color
}

// NewFramebuffer creates a black framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]math3d.Color, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c math3d.Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets the pixel at (col, row). Out of range writes are ignored.
// Concurrent calls for different pixels are safe.
func (fb *Framebuffer) SetPixel(col, row int, c math3d.Color) {
	if col < 0 || col >= fb.Width || row < 0 || row >= fb.Height {
		return
	}
	fb.Pixels[row*fb.Width+col] = c
}

// GetPixel returns the color at (col, row), or black when out of range.
func (fb *Framebuffer) GetPixel(col, row int) math3d.Color {
	if col < 0 || col >= fb.Width || row < 0 || row >= fb.Height {
		return math3d.Black
	}
	return fb.Pixels[row*fb.Width+col]
}

// Resample returns a width by height copy using nearest-neighbor lookup.
func (fb *Framebuffer) Resample(width, height int) *Framebuffer {
	out := NewFramebuffer(width, height)
	if fb.Width == 0 || fb.Height == 0 {
		return out
	}
	for row := range height {
		src := row * fb.Height / height
		for col := range width {
			out.Pixels[row*width+col] = fb.Pixels[src*fb.Width+col*fb.Width/width]
		}
	}
	return out
}

// ToImage clamps the framebuffer into an 8-bit image.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for row := range fb.Height {
		for col := range fb.Width {
			img.SetRGBA(col, row, fb.Pixels[row*fb.Width+col].RGBA())
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return f.Close()
}
