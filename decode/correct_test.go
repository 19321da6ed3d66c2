package decode

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

// rsGeneratorPoly builds the degree-n generator polynomial
// prod_{i=0}^{n-1} (x - alpha^i), highest-degree coefficient first, mirroring
// the convention PolyEval expects.
func rsGeneratorPoly(n int) []GF256 {
	g := []GF256{1}
	for i := 0; i < n; i++ {
		root := Exp(i)
		next := make([]GF256, len(g)+1)
		for j, c := range g {
			next[j] = next[j].Add(c)
			next[j+1] = next[j+1].Add(c.Mul(root))
		}
		g = next
	}
	return g
}

// rsEncodeBlock produces a valid (data || ec) codeword block for testing
// CorrectBlock, by polynomial long division of data*x^ecCap by the
// generator.
func rsEncodeBlock(data []byte, ecCap int) []byte {
	gen := rsGeneratorPoly(ecCap)
	msg := make([]GF256, len(data)+ecCap)
	for i, d := range data {
		msg[i] = GF256(d)
	}
	for i := 0; i < len(data); i++ {
		coef := msg[i]
		if coef == 0 {
			continue
		}
		for j, gc := range gen {
			msg[i+j] = msg[i+j].Sub(coef.Mul(gc))
		}
	}
	out := make([]byte, len(data)+ecCap)
	copy(out, data)
	for i := 0; i < ecCap; i++ {
		out[len(data)+i] = byte(msg[len(data)+i])
	}
	return out
}

func TestCorrectBlockCleanPathNoErrors(t *testing.T) {
	data := []byte("hello qr!!")
	ecCap := 10
	block := rsEncodeBlock(data, ecCap)

	corrected, errs, err := CorrectBlock(block, ecCap)
	require.NoError(t, err)
	require.Equal(t, 0, errs)
	require.Equal(t, block, corrected)
}

func TestCorrectBlockRecoversUpToECCap(t *testing.T) {
	data := []byte("0123456789abcde")
	ecCap := 10
	block := rsEncodeBlock(data, ecCap)

	for weight := 1; weight <= ecCap/2; weight++ {
		corrupted := make([]byte, len(block))
		copy(corrupted, block)
		wantErrors := 0
		for i := 0; i < weight; i++ {
			pos := i * 2 % len(corrupted)
			flip := byte(1 << uint(i%8))
			corrupted[pos] ^= flip
			wantErrors += bits.OnesCount8(flip)
		}

		corrected, errs, err := CorrectBlock(corrupted, ecCap)
		require.NoError(t, err, "weight=%d", weight)
		require.Equal(t, block, corrected, "weight=%d", weight)
		require.Equal(t, wantErrors, errs, "weight=%d", weight)
	}
}

func TestCorrectBlockUncorrectableReturnsError(t *testing.T) {
	data := []byte("0123456789abcde")
	ecCap := 10
	block := rsEncodeBlock(data, ecCap)

	corrupted := make([]byte, len(block))
	copy(corrupted, block)
	for i := 0; i < len(corrupted); i++ {
		corrupted[i] ^= 0xFF
	}

	_, _, err := CorrectBlock(corrupted, ecCap)
	require.Error(t, err)
}

func TestSyndromesAllZeroForCleanBlock(t *testing.T) {
	data := []byte("abc")
	ecCap := 6
	block := rsEncodeBlock(data, ecCap)
	require.True(t, allZero(Syndromes(block, ecCap)))
}
