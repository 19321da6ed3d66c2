package decode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGF256AddIsXor(t *testing.T) {
	a, b := GF256(0x53), GF256(0xCA)
	require.Equal(t, GF256(0x53^0xCA), a.Add(b))
	require.Equal(t, a, a.Add(b).Add(b)) // XOR is its own inverse
}

func TestGF256MulZero(t *testing.T) {
	require.Equal(t, GF256(0), GF256(0).Mul(GF256(200)))
	require.Equal(t, GF256(0), GF256(200).Mul(GF256(0)))
}

func TestGF256MulIdentity(t *testing.T) {
	for v := 1; v < 256; v++ {
		require.Equal(t, GF256(v), GF256(v).Mul(GF256(1)))
	}
}

func TestGF256DivZeroDivisorDoesNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		_, ok := GF256(42).Div(GF256(0))
		require.False(t, ok)
	})
}

func TestGF256InvRoundTrip(t *testing.T) {
	for v := 1; v < 256; v++ {
		inv, ok := GF256(v).Inv()
		require.True(t, ok)
		require.Equal(t, GF256(1), GF256(v).Mul(inv))
	}
}

func TestGF256InvZeroUndefined(t *testing.T) {
	_, ok := GF256(0).Inv()
	require.False(t, ok)
}

func TestGF256MulCommutesWithExpLog(t *testing.T) {
	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			got := GF256(a).Mul(GF256(b))
			la, _ := Log(GF256(a))
			lb, _ := Log(GF256(b))
			want := Exp(la + lb)
			require.Equal(t, want, got)
		}
	}
}
