package decode

import (
	"math/bits"

	"github.com/ashokshau/qrdecode"
)

// toGF256 reinterprets a byte slice as GF256 coefficients without copying
// semantics surprises: index 0 is the highest-degree coefficient, matching
// how a received codeword block is evaluated by PolyEval.
func toGF256(block []byte) []GF256 {
	out := make([]GF256, len(block))
	for i, b := range block {
		out[i] = GF256(b)
	}
	return out
}

// Syndromes computes S_j for j in [0, 2*ecCap), each the block's received
// polynomial evaluated at alpha^(j+1). A clean (error-free) block has every
// syndrome equal to zero.
func Syndromes(block []byte, ecCap int) []GF256 {
	coeffs := toGF256(block)
	out := make([]GF256, 2*ecCap)
	for j := range out {
		out[j] = PolyEval(coeffs, Exp(j+1))
	}
	return out
}

func allZero(xs []GF256) bool {
	for _, x := range xs {
		if x != 0 {
			return false
		}
	}
	return true
}

// solveLinear solves the n x n system A*x = b over GF256 via Gaussian
// elimination with partial pivoting (scanning subsequent rows for a nonzero
// pivot when the diagonal entry is zero). ok is false when the system is
// singular — callers handle that by retrying with a smaller system rather
// than treating it as a panic-worthy precondition violation.
func solveLinear(a [][]GF256, b []GF256) (x []GF256, ok bool) {
	n := len(b)
	// Work on a copy; augmented with b as the last column.
	m := make([][]GF256, n)
	for i := range m {
		m[i] = make([]GF256, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if m[row][col] != 0 {
				pivot = row
				break
			}
		}
		if pivot == -1 {
			return nil, false
		}
		m[col], m[pivot] = m[pivot], m[col]

		inv, _ := m[col][col].Inv()
		for k := col; k <= n; k++ {
			m[col][k] = m[col][k].Mul(inv)
		}
		for row := 0; row < n; row++ {
			if row == col || m[row][col] == 0 {
				continue
			}
			factor := m[row][col]
			for k := col; k <= n; k++ {
				m[row][k] = m[row][k].Sub(factor.Mul(m[col][k]))
			}
		}
	}

	x = make([]GF256, n)
	for i := range x {
		x[i] = m[i][n]
	}
	return x, true
}

// findErrorLocator solves for the error-locator polynomial. It assumes the
// true error count first equals ecCap (the maximum this EC level can
// correct) and, if that system is singular — which happens whenever the
// actual error count is strictly less than ecCap, since the fixed-size
// syndrome matrix degenerates — retries with a smaller assumed degree down
// to 1. This mirrors standard Peterson-Gorenstein-Zierler practice; the
// degree is accepted once both the linear solve succeeds and the resulting
// polynomial's Chien-search root count matches the assumed degree.
func findErrorLocator(syndromes []GF256, totalPer int) (locs []int, ok bool) {
	maxDegree := len(syndromes) / 2
	for degree := maxDegree; degree >= 1; degree-- {
		a := make([][]GF256, degree)
		for i := 0; i < degree; i++ {
			a[i] = make([]GF256, degree)
			for j := 0; j < degree; j++ {
				a[i][j] = syndromes[i+j]
			}
		}
		b := make([]GF256, degree)
		for i := 0; i < degree; i++ {
			b[i] = syndromes[i+degree]
		}
		sigma, solved := solveLinear(a, b)
		if !solved {
			continue
		}
		coeffs := make([]GF256, degree+1)
		coeffs[0] = 1
		for i, v := range sigma {
			coeffs[degree-i] = v
		}

		var roots []int
		for l := 0; l < totalPer; l++ {
			if PolyEval(coeffs, Exp(l)) == 0 {
				roots = append(roots, l)
			}
		}
		if len(roots) == degree {
			return roots, true
		}
	}
	return nil, false
}

// errorMagnitudes solves the Vandermonde-like system for the XOR magnitude
// at each located error position. Syndrome S_i (0-indexed) is r(alpha^(i+1)),
// so the coefficient for error j in equation i is alpha^((i+1)*l_j), not
// alpha^(i*l_j); using the latter solves for e_j*X_j instead of e_j, which
// never reproduces a block whose syndromes verify to zero.
func errorMagnitudes(syndromes []GF256, locs []int) ([]GF256, bool) {
	e := len(locs)
	a := make([][]GF256, e)
	for i := 0; i < e; i++ {
		a[i] = make([]GF256, e)
		for j, l := range locs {
			a[i][j] = Exp((i + 1) * l)
		}
	}
	b := make([]GF256, e)
	copy(b, syndromes[:e])
	return solveLinear(a, b)
}

// CorrectBlock applies Reed-Solomon error correction to one received block
// in place on a copy, returning the corrected bytes and the number of bit
// flips applied. A block whose syndromes are all zero is returned unchanged
// immediately (the documented fast path for fault-free input). It fails
// with ErrUncorrectableBlock if no consistent error-locator polynomial is
// found, the magnitude solve fails, or the correction doesn't clear S_0.
func CorrectBlock(block []byte, ecCap int) (corrected []byte, errors int, err error) {
	syn := Syndromes(block, ecCap)
	if allZero(syn) {
		out := make([]byte, len(block))
		copy(out, block)
		return out, 0, nil
	}

	locs, ok := findErrorLocator(syn, len(block))
	if !ok {
		return nil, 0, &qrdecode.QRError{Kind: qrdecode.ErrUncorrectableBlock, Message: "no consistent error-locator polynomial"}
	}

	mags, ok := errorMagnitudes(syn, locs)
	if !ok {
		return nil, 0, &qrdecode.QRError{Kind: qrdecode.ErrUncorrectableBlock, Message: "singular error-magnitude system"}
	}

	out := make([]byte, len(block))
	copy(out, block)
	for i, l := range locs {
		pos := len(block) - 1 - l
		if pos < 0 || pos >= len(block) {
			return nil, 0, &qrdecode.QRError{Kind: qrdecode.ErrUncorrectableBlock, Message: "error location out of range"}
		}
		out[pos] ^= byte(mags[i])
		errors += bits.OnesCount8(byte(mags[i]))
	}

	verify := Syndromes(out, ecCap)
	if !allZero(verify) {
		return nil, 0, &qrdecode.QRError{Kind: qrdecode.ErrUncorrectableBlock, Message: "correction did not clear syndromes"}
	}
	return out, errors, nil
}
