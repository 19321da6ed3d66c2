package decode

import (
	"iter"

	"github.com/ashokshau/qrdecode"
)

// ZigZag yields module coordinates in the canonical QR codeword-extraction
// order: starting at the bottom-right corner, two columns at a time, moving
// upward then downward in alternation, skipping the vertical timing column
// (there is no column 6 in the walk — the pair that would include it is
// shifted one column left). The sequence is lazily restartable; callers
// range over it directly.
func ZigZag(side int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		col := side - 1
		upward := true
		for col > 0 {
			if col == 6 {
				col--
			}
			for i := 0; i < side; i++ {
				row := i
				if upward {
					row = side - 1 - i
				}
				for _, c := range [2]int{col, col - 1} {
					if !yield(c, row) {
						return
					}
				}
			}
			col -= 2
			upward = !upward
		}
	}
}

// IsData reports whether module (x, y) carries a codeword bit for the given
// version, i.e. it is not part of any reserved structure: timing patterns,
// the three finder+separator+format corners, the version-info strips
// (v >= 7), or an alignment pattern.
func IsData(version, x, y int) bool {
	return !isReserved(version, x, y)
}

func isReserved(version, x, y int) bool {
	side := qrdecode.Side(version)

	if x <= 8 && y <= 8 {
		return true
	}
	if x >= side-8 && y <= 8 {
		return true
	}
	if x <= 8 && y >= side-8 {
		return true
	}
	if x == 6 || y == 6 {
		return true
	}
	if version >= 7 {
		if x >= side-11 && x <= side-9 && y <= 5 {
			return true
		}
		if y >= side-11 && y <= side-9 && x <= 5 {
			return true
		}
	}

	centers := AlignmentCenters(version)
	n := len(centers)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if (i == 0 && j == 0) || (i == 0 && j == n-1) || (i == n-1 && j == 0) {
				continue
			}
			cy, cx := centers[i], centers[j]
			if x >= cx-2 && x <= cx+2 && y >= cy-2 && y <= cy+2 {
				return true
			}
		}
	}
	return false
}

// ExtractCodewords walks the module grid in zig-zag order, de-masking each
// data bit with the given mask function and packing bits MSB-first into
// bytes, stopping once it has collected the version's full raw codeword
// count (any trailing "remainder bits" in the walk are not part of any
// codeword and are discarded, matching ISO/IEC 18004's remainder-bit
// allowance).
func ExtractCodewords(data *qrdecode.QRData, mask MaskFunc) []byte {
	version := data.Version
	want := TotalCodewords(version) * 8

	out := make([]byte, 0, want/8)
	var cur byte
	nbits := 0
	collected := 0

	for x, y := range ZigZag(data.Side()) {
		if collected >= want {
			break
		}
		if !IsData(version, x, y) {
			continue
		}
		bit := data.At(x, y)
		if mask(x, y) {
			bit = !bit
		}
		cur <<= 1
		if bit {
			cur |= 1
		}
		nbits++
		collected++
		if nbits == 8 {
			out = append(out, cur)
			cur = 0
			nbits = 0
		}
	}
	return out
}

// DeInterleave splits a flat codeword stream into one byte slice per block,
// following the two-phase round-robin ISO/IEC 18004 specifies: a data phase
// that skips blocks once they've received data_per bytes, then an EC phase
// over the (possibly ragged, when ec_cap varies by group) remaining bytes.
// It returns ErrBlockLayoutMismatch if the codeword count doesn't match the
// sum of total_per across blocks.
func DeInterleave(codewords []byte, blocks []qrdecode.BlockInfo) ([][]byte, error) {
	want := 0
	maxDataPer, maxECRounds := 0, 0
	for _, b := range blocks {
		want += b.TotalPer()
		if b.DataPer > maxDataPer {
			maxDataPer = b.DataPer
		}
		if 2*b.ECCap > maxECRounds {
			maxECRounds = 2 * b.ECCap
		}
	}
	if len(codewords) != want {
		return nil, &qrdecode.QRError{
			Kind:     qrdecode.ErrBlockLayoutMismatch,
			Message:  "codeword count does not match block layout",
			Expected: want,
			Actual:   len(codewords),
		}
	}

	result := make([][]byte, len(blocks))
	for i, b := range blocks {
		result[i] = make([]byte, 0, b.TotalPer())
	}

	idx := 0
	for round := 0; round < maxDataPer; round++ {
		for i, b := range blocks {
			if round < b.DataPer {
				result[i] = append(result[i], codewords[idx])
				idx++
			}
		}
	}
	for round := 0; round < maxECRounds; round++ {
		for i, b := range blocks {
			if round < 2*b.ECCap {
				result[i] = append(result[i], codewords[idx])
				idx++
			}
		}
	}
	return result, nil
}

// Interleave is DeInterleave's inverse: it reassembles per-block byte
// slices (each already exactly total_per long) into the flat codeword
// stream that would produce them.
func Interleave(blocks [][]byte, infos []qrdecode.BlockInfo) []byte {
	maxDataPer, maxECRounds := 0, 0
	total := 0
	for _, b := range infos {
		total += b.TotalPer()
		if b.DataPer > maxDataPer {
			maxDataPer = b.DataPer
		}
		if 2*b.ECCap > maxECRounds {
			maxECRounds = 2 * b.ECCap
		}
	}
	out := make([]byte, 0, total)
	for round := 0; round < maxDataPer; round++ {
		for i, b := range infos {
			if round < b.DataPer {
				out = append(out, blocks[i][round])
			}
		}
	}
	for round := 0; round < maxECRounds; round++ {
		for i, b := range infos {
			if round < 2*b.ECCap {
				out = append(out, blocks[i][b.DataPer+round])
			}
		}
	}
	return out
}
