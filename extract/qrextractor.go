// Package extract implements the Extractor stage: sampling a located
// symbol's module grid out of the binary raster.
package extract

import (
	"math"

	"github.com/ashokshau/qrdecode"
	"github.com/ashokshau/qrdecode/decode"
)

// QRExtractor samples a QRLocation's affine frame into a QRData grid. For
// versions >= 7 it additionally searches for the bottom-right alignment
// pattern and, if found within tolerance, refines the mapping into a full
// perspective transform using all four control points instead of the
// three-point affine estimate.
type QRExtractor struct{}

func NewQRExtractor() *QRExtractor { return &QRExtractor{} }

// affineTransform builds the mat3 for the 3-point parallelogram mapping
// spec.md describes: (0,0),(side-1,0),(0,side-1) -> TL,TR,BL. This is the
// dx3==dy3==0 branch of squareToQuadrilateral, i.e. a plain affine map, so
// it is expressed directly rather than through the 4-point solver.
func affineTransform(loc qrdecode.QRLocation, side int) mat3 {
	s := float64(side - 1)
	// u = mx/s, v = my/s are the unit-square parameters.
	return mat3{
		loc.TR.X - loc.TL.X, loc.BL.X - loc.TL.X, loc.TL.X,
		loc.TR.Y - loc.TL.Y, loc.BL.Y - loc.TL.Y, loc.TL.Y,
		0, 0, 1,
	}.scaleUnitSquare(s)
}

// scaleUnitSquare rewrites a transform expressed in (mx/s, my/s) unit-square
// parameters into one taking raw module coordinates (mx, my) directly, by
// folding the 1/s scale into the matrix columns.
func (m mat3) scaleUnitSquare(s float64) mat3 {
	if s == 0 {
		return m
	}
	return mat3{
		m[0] / s, m[1] / s, m[2],
		m[3] / s, m[4] / s, m[5],
		m[6] / s, m[7] / s, m[8],
	}
}

func (e *QRExtractor) Extract(bin *qrdecode.BinaryImage, loc qrdecode.QRLocation) (*qrdecode.QRData, error) {
	side := loc.Side()
	xform := affineTransform(loc, side)

	if loc.Version >= 7 {
		if refined, ok := e.refineWithAlignment(bin, loc, side, xform); ok {
			xform = refined
		}
	}

	bits := make([]bool, side*side)
	for my := 0; my < side; my++ {
		for mx := 0; mx < side; mx++ {
			px, py := xform.apply(float64(mx), float64(my))
			x := int(math.Round(px))
			y := int(math.Round(py))
			bits[my*side+mx] = bin.At(x, y)
		}
	}

	return &qrdecode.QRData{Bits: bits, Version: loc.Version}, nil
}

// refineWithAlignment searches near the projected bottom-right alignment
// center for a real alignment-pattern blob (the centroid of dark pixels
// within ceil(2.5 module pitches) of the projection, see findAlignmentBlob;
// the pattern's ring structure is not run-length checked) and, if found,
// solves the
// full 4-point perspective transform in its place of the plain affine map.
func (e *QRExtractor) refineWithAlignment(bin *qrdecode.BinaryImage, loc qrdecode.QRLocation, side int, affine mat3) (mat3, bool) {
	centers := decode.AlignmentCenters(loc.Version)
	if len(centers) == 0 {
		return affine, false
	}
	alignModule := float64(centers[len(centers)-1])

	projX, projY := affine.apply(alignModule, alignModule)
	foundX, foundY, ok := findAlignmentBlob(bin, projX, projY, loc.ModulePitch)
	if !ok {
		return affine, false
	}

	s := float64(side - 1)
	full := quadrilateralToQuadrilateral(
		0, 0, s, 0, alignModule, alignModule, 0, s,
		loc.TL.X, loc.TL.Y, loc.TR.X, loc.TR.Y, foundX, foundY, loc.BL.X, loc.BL.Y,
	)
	return full, true
}

// findAlignmentBlob looks for the dark center of an alignment pattern
// within ceil(2.5 module pitches) pixels of (projX, projY) by locating the
// centroid of dark pixels in that square window — alignment patterns are small, isolated dark
// blobs at this scale, so a weighted centroid is a robust and cheap stand-in
// for a full run-length cross-check.
func findAlignmentBlob(bin *qrdecode.BinaryImage, projX, projY, modulePitch float64) (float64, float64, bool) {
	if modulePitch <= 0 {
		return 0, 0, false
	}
	radius := int(math.Ceil(modulePitch * 2.5))
	cx, cy := int(math.Round(projX)), int(math.Round(projY))

	var sumX, sumY float64
	var count int
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= bin.Width || y >= bin.Height {
				continue
			}
			if bin.At(x, y) {
				sumX += float64(x)
				sumY += float64(y)
				count++
			}
		}
	}
	if count == 0 {
		return 0, 0, false
	}
	return sumX / float64(count), sumY / float64(count), true
}
