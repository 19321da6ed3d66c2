package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashokshau/qrdecode"
)

// renderModuleGrid renders a boolean module grid into a BinaryImage with a
// quiet-zone border, scale pixels per module, nearest-neighbor.
func renderModuleGrid(bits []bool, side, border, scale int) *qrdecode.BinaryImage {
	dim := (side + 2*border) * scale
	dark := make([]bool, dim*dim)
	for my := 0; my < side; my++ {
		for mx := 0; mx < side; mx++ {
			if !bits[my*side+mx] {
				continue
			}
			startX := (mx + border) * scale
			startY := (my + border) * scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					dark[(startY+dy)*dim+startX+dx] = true
				}
			}
		}
	}
	return &qrdecode.BinaryImage{Dark: dark, Width: dim, Height: dim}
}

func TestExtractRecoversCheckerboardGrid(t *testing.T) {
	version := 1
	side := qrdecode.Side(version)
	bits := make([]bool, side*side)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			bits[y*side+x] = (x+y)%2 == 0
		}
	}

	border, scale := 4, 6
	bin := renderModuleGrid(bits, side, border, scale)

	s := float64(side - 1)
	toPixel := func(mx, my float64) (float64, float64) {
		return (mx + float64(border)) * float64(scale), (my + float64(border)) * float64(scale)
	}
	tlx, tly := toPixel(0, 0)
	trx, try := toPixel(s, 0)
	blx, bly := toPixel(0, s)

	loc := qrdecode.QRLocation{
		TL:          qrdecode.Point{X: tlx, Y: tly},
		TR:          qrdecode.Point{X: trx, Y: try},
		BL:          qrdecode.Point{X: blx, Y: bly},
		ModulePitch: float64(scale),
		Version:     version,
	}

	data, err := NewQRExtractor().Extract(bin, loc)
	require.NoError(t, err)
	require.Equal(t, side, data.Side())

	mismatches := 0
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			if data.At(x, y) != bits[y*side+x] {
				mismatches++
			}
		}
	}
	require.Equal(t, 0, mismatches)
}
