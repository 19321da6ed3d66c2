package fixture

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/ashokshau/qrdecode"
)

// WritePNG rasterizes a Grid at scale pixels per module with a 4-module
// quiet zone, the same layout the teacher's writer produced — kept as a
// paletted 1-bit image since a synthetic fixture has no antialiasing to
// preserve.
func (g *Grid) WritePNG(w io.Writer, scale int) error {
	if scale < 1 {
		scale = 1
	}
	const border = 4
	dim := (g.Side + 2*border) * scale

	img := image.NewPaletted(image.Rect(0, 0, dim, dim), color.Palette{color.White, color.Black})
	for i := range img.Pix {
		img.Pix[i] = 0
	}

	for y := 0; y < g.Side; y++ {
		for x := 0; x < g.Side; x++ {
			if !g.at(x, y) {
				continue
			}
			startX := (x + border) * scale
			startY := (y + border) * scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetColorIndex(startX+dx, startY+dy, 1)
				}
			}
		}
	}
	return png.Encode(w, img)
}

// GreyImage renders the Grid straight to a GreyImage (skipping the PNG
// round trip), scale pixels per module and a 4-module quiet zone, for tests
// that want to feed the pipeline directly.
func (g *Grid) GreyImage(scale int) *qrdecode.GreyImage {
	if scale < 1 {
		scale = 1
	}
	const border = 4
	dim := (g.Side + 2*border) * scale
	pix := make([]byte, dim*dim)
	for i := range pix {
		pix[i] = 0xFF
	}
	for y := 0; y < g.Side; y++ {
		for x := 0; x < g.Side; x++ {
			if !g.at(x, y) {
				continue
			}
			startX := (x + border) * scale
			startY := (y + border) * scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					pix[(startY+dy)*dim+startX+dx] = 0
				}
			}
		}
	}
	return &qrdecode.GreyImage{Pix: pix, Width: dim, Height: dim}
}
