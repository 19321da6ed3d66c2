package decode

import (
	"math/bits"

	"github.com/ashokshau/qrdecode"
)

// FormatInfo is the decoded (EC level, mask id) pair carried by a symbol's
// 15 format bits.
type FormatInfo struct {
	Level  qrdecode.ECLevel
	MaskID int
}

// readBit packs (side, x, y) -> bool into a bit, MSB-first reading order is
// the caller's responsibility; this just samples the raw grid value.
func readBit(data *qrdecode.QRData, x, y int) bool {
	return data.At(x, y)
}

// bitsToUint packs a slice of bools MSB-first into an integer.
func bitsToUint(bs []bool) uint32 {
	var v uint32
	for _, b := range bs {
		v <<= 1
		if b {
			v |= 1
		}
	}
	return v
}

// formatBitsTL reads the format-info copy adjacent to the top-left finder:
// the 8 bits along row 8 (columns 0-5,7,8, skipping the timing column) then
// the 7 bits along column 8 (rows 8,7,5,4,3,2,1,0 -> last 7 after row 8 is
// already counted), per ISO/IEC 18004 Figure 25.
func formatBitsTL(data *qrdecode.QRData) []bool {
	bs := make([]bool, 0, 15)
	cols := []int{0, 1, 2, 3, 4, 5, 7, 8}
	for _, c := range cols {
		bs = append(bs, readBit(data, c, 8))
	}
	rows := []int{7, 5, 4, 3, 2, 1, 0}
	for _, r := range rows {
		bs = append(bs, readBit(data, 8, r))
	}
	return bs
}

// formatBitsOther reads the second format-info copy split across the
// top-right and bottom-left finders.
func formatBitsOther(data *qrdecode.QRData) []bool {
	side := data.Side()
	bs := make([]bool, 0, 15)
	for r := side - 1; r >= side-7; r-- {
		bs = append(bs, readBit(data, 8, r))
	}
	for c := side - 8; c < side; c++ {
		bs = append(bs, readBit(data, c, 8))
	}
	return bs
}

// bchDistance finds the minimum Hamming distance between v and the table,
// and the data value (0-31) of the closest entry.
func bchDistance(v uint32, table [32]uint32) (bestData int, bestDist int) {
	bestDist = 16
	for data, code := range table {
		d := bits.OnesCount32(v ^ code)
		if d < bestDist {
			bestDist = d
			bestData = data
		}
	}
	return bestData, bestDist
}

// DecodeFormat reads both format-info copies, BCH-decodes each against the
// canonical table, and returns the lower-distance result (ties favor the
// top-left copy). It fails with ErrInvalidFormat if neither copy is within
// Hamming distance 3 of a valid codeword.
func DecodeFormat(data *qrdecode.QRData) (FormatInfo, error) {
	table := FormatBCHCodes()
	tl := bitsToUint(formatBitsTL(data))
	other := bitsToUint(formatBitsOther(data))

	tlData, tlDist := bchDistance(tl, table)
	otherData, otherDist := bchDistance(other, table)

	best, dist := tlData, tlDist
	if otherDist < tlDist {
		best, dist = otherData, otherDist
	}
	if dist > 3 {
		return FormatInfo{}, &qrdecode.QRError{
			Kind:    qrdecode.ErrInvalidFormat,
			Message: "no format codeword within Hamming distance 3",
		}
	}
	level, ok := qrdecode.ECLevelFromFormatBits(best >> 3)
	if !ok {
		return FormatInfo{}, &qrdecode.QRError{Kind: qrdecode.ErrInvalidFormat, Message: "invalid EC level bits"}
	}
	return FormatInfo{Level: level, MaskID: best & 0x7}, nil
}

// versionBitsTR reads the 18-bit version-info copy beside the top-right
// finder: 3 columns (x = side-11..side-9) x 6 rows (y = 0..5). Bit i sits
// at (side-11+i%3, i/3), so bit 0, the least significant, is at
// (side-11, 0), matching the BCH placement ISO/IEC 18004 specifies for
// v >= 7. Bits are returned most significant first.
func versionBitsTR(data *qrdecode.QRData) []bool {
	side := data.Side()
	bs := make([]bool, 0, 18)
	for i := 17; i >= 0; i-- {
		a := side - 11 + i%3
		bcol := i / 3
		bs = append(bs, readBit(data, a, bcol))
	}
	return bs
}

// versionBitsBL reads the transposed copy beside the bottom-left finder.
func versionBitsBL(data *qrdecode.QRData) []bool {
	side := data.Side()
	bs := make([]bool, 0, 18)
	for i := 17; i >= 0; i-- {
		a := side - 11 + i%3
		brow := i / 3
		bs = append(bs, readBit(data, brow, a))
	}
	return bs
}

func bchDistance34(v uint32, table [34]uint32) (bestVersion int, bestDist int) {
	bestDist = 32
	for i, code := range table {
		d := bits.OnesCount32(v ^ code)
		if d < bestDist {
			bestDist = d
			bestVersion = i + 7
		}
	}
	return bestVersion, bestDist
}

// DecodeVersion reads both version-info copies (only meaningful for v >= 7)
// and BCH-decodes them, returning ErrInvalidVersion if neither is within
// distance 3 of a valid codeword, or if the result disagrees with the
// geometric estimate already carried by data.Version.
func DecodeVersion(data *qrdecode.QRData, geometricEstimate int) (int, error) {
	if geometricEstimate < 7 {
		return geometricEstimate, nil
	}
	table := VersionBCHCodes()
	tr := bitsToUint(versionBitsTR(data))
	bl := bitsToUint(versionBitsBL(data))

	trV, trD := bchDistance34(tr, table)
	blV, blD := bchDistance34(bl, table)

	version, dist := trV, trD
	if blD < trD {
		version, dist = blV, blD
	}
	if dist > 3 {
		return 0, &qrdecode.QRError{Kind: qrdecode.ErrInvalidVersion, Message: "no version codeword within Hamming distance 3"}
	}
	if version != geometricEstimate {
		return 0, &qrdecode.QRError{
			Kind:     qrdecode.ErrInvalidVersion,
			Message:  "version info disagrees with geometric estimate",
			Expected: geometricEstimate,
			Actual:   version,
		}
	}
	return version, nil
}
