// Package decode implements the QR decode core: format/version BCH,
// zig-zag codeword extraction, Reed-Solomon correction over GF(2^8), and
// the payload-segment grammar.
package decode

// GF256 is a byte wrapped as an element of GF(2^8) under the QR primitive
// polynomial x^8 + x^4 + x^3 + x^2 + 1 (0x11D) with generator alpha = 2.
// Addition and subtraction are both XOR; multiplication and division go
// through the package's exp/log tables.
type GF256 byte

var expTable [256]byte
var logTable [256]int // logTable[0] is unused; 0 has no logarithm

func init() {
	const primitivePoly = 0x11D
	x := 1
	for i := 0; i < 255; i++ {
		expTable[i] = byte(x)
		logTable[byte(x)] = i
		x <<= 1
		if x&0x100 != 0 {
			x ^= primitivePoly
		}
	}
	expTable[255] = expTable[0]
}

// Add is GF(2^8) addition, equivalent to subtraction: both are XOR.
func (a GF256) Add(b GF256) GF256 { return a ^ b }

// Sub is GF(2^8) subtraction, identical to Add in characteristic 2.
func (a GF256) Sub(b GF256) GF256 { return a ^ b }

// Mul is GF(2^8) multiplication via the log/exp tables.
func (a GF256) Mul(b GF256) GF256 {
	if a == 0 || b == 0 {
		return 0
	}
	sum := logTable[a] + logTable[b]
	if sum >= 255 {
		sum -= 255
	}
	return GF256(expTable[sum])
}

// Div is GF(2^8) division, a * b^-1. It reports ok=false instead of
// panicking when b is zero: the precondition is checked, never assumed, so
// a singular or degenerate system can be handled by its caller rather than
// crash the decoder.
func (a GF256) Div(b GF256) (GF256, bool) {
	if b == 0 {
		return 0, false
	}
	if a == 0 {
		return 0, true
	}
	diff := logTable[a] - logTable[b]
	if diff < 0 {
		diff += 255
	}
	return GF256(expTable[diff]), true
}

// Inv is the multiplicative inverse, b^-1 = exp[255 - log[b]]. ok is false
// for b == 0, whose inverse is undefined.
func (b GF256) Inv() (GF256, bool) {
	if b == 0 {
		return 0, false
	}
	return GF256(expTable[255-logTable[b]]), true
}

// Exp returns alpha^p, p taken mod 255 (exp table period).
func Exp(p int) GF256 {
	p %= 255
	if p < 0 {
		p += 255
	}
	return GF256(expTable[p])
}

// Log returns the discrete log of a nonzero element. ok is false for 0.
func Log(a GF256) (int, bool) {
	if a == 0 {
		return 0, false
	}
	return logTable[a], true
}

// PolyEval evaluates a GF(2^8) polynomial (coefficients highest-degree
// first, as stored for a received codeword block) at x using Horner's
// method.
func PolyEval(coeffs []GF256, x GF256) GF256 {
	var result GF256
	for _, c := range coeffs {
		result = result.Mul(x).Add(c)
	}
	return result
}
