package extract

// mat3 is a row-major 3x3 matrix representing a 2D projective transform in
// homogeneous coordinates.
type mat3 [9]float64

func (m mat3) mul(o mat3) mat3 {
	var r mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m[row*3+k] * o[k*3+col]
			}
			r[row*3+col] = sum
		}
	}
	return r
}

// apply maps (x, y) through the homogeneous transform, doing the
// perspective divide.
func (m mat3) apply(x, y float64) (float64, float64) {
	w := m[6]*x + m[7]*y + m[8]
	px := (m[0]*x + m[1]*y + m[2]) / w
	py := (m[3]*x + m[4]*y + m[5]) / w
	return px, py
}

func (m mat3) inverse() mat3 {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if det == 0 {
		return identity()
	}
	invDet := 1 / det
	return mat3{
		(e*i - f*h) * invDet, (c*h - b*i) * invDet, (b*f - c*e) * invDet,
		(f*g - d*i) * invDet, (a*i - c*g) * invDet, (c*d - a*f) * invDet,
		(d*h - e*g) * invDet, (g*b - a*h) * invDet, (a*e - b*d) * invDet,
	}
}

func identity() mat3 {
	return mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// squareToQuadrilateral returns the projective transform mapping the unit
// square corners (0,0),(1,0),(1,1),(0,1) onto the given quadrilateral, the
// standard construction for a 4-point projective fit (solve the two
// "extra" perspective coefficients from the fourth point, then recover the
// rest by substitution).
func squareToQuadrilateral(x0, y0, x1, y1, x2, y2, x3, y3 float64) mat3 {
	dx1 := x1 - x2
	dy1 := y1 - y2
	dx2 := x3 - x2
	dy2 := y3 - y2
	dx3 := x0 - x1 + x2 - x3
	dy3 := y0 - y1 + y2 - y3

	if dx3 == 0 && dy3 == 0 {
		return mat3{
			x1 - x0, x2 - x1, x0,
			y1 - y0, y2 - y1, y0,
			0, 0, 1,
		}
	}

	denom := dx1*dy2 - dx2*dy1
	if denom == 0 {
		return identity()
	}
	a13 := (dx3*dy2 - dx2*dy3) / denom
	a23 := (dx1*dy3 - dx3*dy1) / denom

	return mat3{
		x1 - x0 + a13*x1, x3 - x0 + a23*x3, x0,
		y1 - y0 + a13*y1, y3 - y0 + a23*y3, y0,
		a13, a23, 1,
	}
}

// quadrilateralToQuadrilateral composes the projective transform carrying
// one arbitrary quadrilateral onto another: map the source quad back to the
// unit square, then the unit square forward onto the destination quad. Used
// to refine a 3-point affine module frame into a full perspective transform
// once a fourth control point (the bottom-right alignment pattern) is
// available.
func quadrilateralToQuadrilateral(
	srcX0, srcY0, srcX1, srcY1, srcX2, srcY2, srcX3, srcY3,
	dstX0, dstY0, dstX1, dstY1, dstX2, dstY2, dstX3, dstY3 float64,
) mat3 {
	toUnit := squareToQuadrilateral(srcX0, srcY0, srcX1, srcY1, srcX2, srcY2, srcX3, srcY3).inverse()
	fromUnit := squareToQuadrilateral(dstX0, dstY0, dstX1, dstY1, dstX2, dstY2, dstX3, dstY3)
	return fromUnit.mul(toUnit)
}
