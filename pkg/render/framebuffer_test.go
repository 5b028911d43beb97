package render

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/prism/pkg/math3d"
)

func TestFramebufferPixels(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	red := math3d.Color{R: 1}

	fb.SetPixel(2, 1, red)
	fb.SetPixel(-1, 0, red)
	fb.SetPixel(4, 0, red)
	fb.SetPixel(0, 3, red)

	if got := fb.GetPixel(2, 1); got != red {
		t.Errorf("GetPixel(2, 1) = %v, want %v", got, red)
	}
	if got := fb.GetPixel(9, 9); got != math3d.Black {
		t.Errorf("GetPixel out of range = %v, want black", got)
	}
	count := 0
	for _, p := range fb.Pixels {
		if p == red {
			count++
		}
	}
	if count != 1 {
		t.Errorf("%d pixels set, want 1", count)
	}

	fb.Clear(math3d.White)
	if got := fb.GetPixel(0, 0); got != math3d.White {
		t.Errorf("after Clear = %v, want white", got)
	}
}

func TestFramebufferToImageClamps(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.SetPixel(0, 0, math3d.Color{R: 3, G: -1, B: 0.5})
	fb.SetPixel(1, 0, math3d.White)

	img := fb.ToImage()
	if got := img.RGBAAt(0, 0); got.R != 255 || got.G != 0 || got.B < 127 || got.B > 128 || got.A != 255 {
		t.Errorf("pixel 0 = %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("pixel 1 = %v", got)
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(1, 1, math3d.RGB(10, 20, 30))

	path := filepath.Join(t.TempDir(), "out.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = %d %d %d, want 10 20 30", r>>8, g>>8, b>>8)
	}

	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SavePNG into a missing directory succeeded")
	}
}

func TestFramebufferResample(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	for row := range 4 {
		for col := range 4 {
			fb.SetPixel(col, row, math3d.Gray(float64(row*4+col)/16))
		}
	}

	small := fb.Resample(2, 2)
	want := []math3d.Color{fb.GetPixel(0, 0), fb.GetPixel(2, 0), fb.GetPixel(0, 2), fb.GetPixel(2, 2)}
	for i, w := range want {
		if small.Pixels[i] != w {
			t.Errorf("pixel %d = %v, want %v", i, small.Pixels[i], w)
		}
	}

	if got := NewFramebuffer(0, 0).Resample(3, 3); len(got.Pixels) != 9 {
		t.Errorf("resampling empty framebuffer gave %d pixels", len(got.Pixels))
	}
}

func TestFramebufferDraw(t *testing.T) {
	fb := NewFramebuffer(2, 4)
	top := math3d.RGB(255, 0, 0)
	bottom := math3d.RGB(0, 0, 255)
	fb.SetPixel(1, 2, top)
	fb.SetPixel(1, 3, bottom)

	scr := uv.NewScreenBuffer(3, 2)
	fb.Draw(scr, uv.Rect(0, 0, 3, 2))

	cell := scr.CellAt(1, 1)
	if cell == nil || cell.Content != "▀" {
		t.Fatalf("cell = %+v, want half block", cell)
	}
	if cell.Style.Fg != color.Color(top.RGBA()) {
		t.Errorf("Fg = %v, want %v", cell.Style.Fg, top.RGBA())
	}
	if cell.Style.Bg != color.Color(bottom.RGBA()) {
		t.Errorf("Bg = %v, want %v", cell.Style.Bg, bottom.RGBA())
	}
	if got := scr.CellAt(2, 0); got != nil && got.Content == "▀" {
		t.Error("drew past the framebuffer width")
	}
}

func TestPreviewSize(t *testing.T) {
	p := NewFramebuffer(100, 100).Preview(40, 10)
	if p.Width != 40 || p.Height != 20 {
		t.Errorf("Preview = %dx%d, want 40x20", p.Width, p.Height)
	}
}
