package decode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashokshau/qrdecode"
)

func TestZigZagVisitsEveryModuleOnce(t *testing.T) {
	side := qrdecode.Side(3)
	seen := make(map[[2]int]bool)
	count := 0
	for x, y := range ZigZag(side) {
		require.False(t, seen[[2]int{x, y}], "revisited (%d,%d)", x, y)
		seen[[2]int{x, y}] = true
		require.NotEqual(t, 6, x)
		count++
	}
	// Every column except the timing column (6) is visited, side rows each.
	require.Equal(t, (side-1)*side, count)
}

func TestIsDataExcludesTimingAndFinders(t *testing.T) {
	version := 3
	side := qrdecode.Side(version)
	require.False(t, IsData(version, 6, 10))
	require.False(t, IsData(version, 10, 6))
	require.False(t, IsData(version, 0, 0))
	require.False(t, IsData(version, side-1, 0))
	require.False(t, IsData(version, 0, side-1))
}

func TestDeInterleaveInterleaveBijection(t *testing.T) {
	for v := 1; v <= 10; v++ {
		blocks := BlockInfos(v, qrdecode.ECMedium)
		total := 0
		for _, b := range blocks {
			total += b.TotalPer()
		}
		codewords := make([]byte, total)
		for i := range codewords {
			codewords[i] = byte(i * 37 % 256)
		}

		split, err := DeInterleave(codewords, blocks)
		require.NoError(t, err)

		back := Interleave(split, blocks)
		require.Equal(t, codewords, back)

		for i, b := range blocks {
			require.Len(t, split[i], b.TotalPer())
		}
	}
}

func TestDeInterleaveLengthMismatch(t *testing.T) {
	blocks := BlockInfos(5, qrdecode.ECHigh)
	_, err := DeInterleave([]byte{1, 2, 3}, blocks)
	require.Error(t, err)
	qrErr, ok := err.(*qrdecode.QRError)
	require.True(t, ok)
	require.Equal(t, qrdecode.ErrBlockLayoutMismatch, qrErr.Kind)
}
