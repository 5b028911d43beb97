package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints the framebuffer onto a terminal screen with half-block cells:
// each cell shows two pixel rows, the top one as foreground of ▀ and the
// bottom one as background. The framebuffer height should be twice the
// area height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		top := (row - area.Min.Y) * 2
		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: fb.GetPixel(x, top).RGBA(),
					Bg: fb.GetPixel(x, top+1).RGBA(),
				},
			})
		}
	}
}

// Preview resamples the framebuffer to fill a cols by rows terminal area,
// keeping two pixel rows per cell.
func (fb *Framebuffer) Preview(cols, rows int) *Framebuffer {
	return fb.Resample(max(cols, 1), max(rows*2, 2))
}
