package decode

import "github.com/ashokshau/qrdecode"

// alignmentCenters[v-1] lists every alignment-pattern coordinate (both axes
// use the same list; centers are the Cartesian product minus positions on
// the three finders) for QR version v, straight from ISO/IEC 18004 Annex E.
// Version 1 has no alignment pattern of its own, hence the nil first entry.
var alignmentCenters = [40][]int{
	nil,
	{6, 18},
	{6, 22},
	{6, 26},
	{6, 30},
	{6, 34},
	{6, 22, 38},
	{6, 24, 42},
	{6, 26, 46},
	{6, 28, 50},
	{6, 30, 54},
	{6, 32, 58},
	{6, 34, 62},
	{6, 26, 46, 66},
	{6, 26, 48, 70},
	{6, 26, 50, 74},
	{6, 30, 54, 78},
	{6, 30, 56, 82},
	{6, 30, 58, 86},
	{6, 34, 62, 90},
	{6, 28, 50, 72, 94},
	{6, 26, 50, 74, 98},
	{6, 30, 54, 78, 102},
	{6, 28, 54, 80, 106},
	{6, 32, 58, 84, 110},
	{6, 30, 58, 86, 114},
	{6, 34, 62, 90, 118},
	{6, 26, 50, 74, 98, 122},
	{6, 30, 54, 78, 102, 126},
	{6, 26, 52, 78, 104, 130},
	{6, 30, 56, 82, 108, 134},
	{6, 34, 60, 86, 112, 138},
	{6, 30, 58, 86, 114, 142},
	{6, 34, 62, 90, 118, 146},
	{6, 30, 54, 78, 102, 126, 150},
	{6, 24, 50, 76, 102, 128, 154},
	{6, 28, 54, 80, 106, 132, 158},
	{6, 32, 58, 84, 110, 136, 162},
	{6, 26, 54, 82, 110, 138, 166},
	{6, 30, 58, 86, 114, 142, 170},
}

// AlignmentCenters returns the alignment coordinate list for a version, or
// nil for version 1 (which carries none).
func AlignmentCenters(version int) []int {
	return alignmentCenters[version-1]
}

// AlignmentStartStep returns the {start, step} pair spec.md's reserved-
// region predicate is defined in terms of: start is the first non-timing
// alignment coordinate, step is the spacing to the next one. ok is false
// for version 1.
func AlignmentStartStep(version int) (start, step int, ok bool) {
	c := alignmentCenters[version-1]
	if len(c) < 2 {
		return 0, 0, false
	}
	start = c[1]
	if len(c) >= 3 {
		step = c[2] - c[1]
	}
	return start, step, true
}

type blockGroup struct {
	count, dataPer int
}

type levelLayout struct {
	ecCap  int
	groups []blockGroup
}

func g(count, dataPer int) blockGroup { return blockGroup{count: count, dataPer: dataPer} }

func ll(ecCap int, groups ...blockGroup) levelLayout {
	return levelLayout{ecCap: ecCap, groups: groups}
}

// blockTable[v-1][level] is the Reed-Solomon block layout for that version
// and EC level, reproduced from ISO/IEC 18004 Table 9 (order within a level
// is L, M, Q, H matching qrdecode.ECLevel's iota order).
var blockTable = [40][4]levelLayout{
	{ll(7, g(1, 19)), ll(10, g(1, 16)), ll(13, g(1, 13)), ll(17, g(1, 9))},
	{ll(10, g(1, 34)), ll(16, g(1, 28)), ll(22, g(1, 22)), ll(28, g(1, 16))},
	{ll(15, g(1, 55)), ll(26, g(1, 44)), ll(18, g(2, 17)), ll(22, g(2, 13))},
	{ll(20, g(1, 80)), ll(18, g(2, 32)), ll(26, g(2, 24)), ll(16, g(4, 9))},
	{ll(26, g(1, 108)), ll(24, g(2, 43)), ll(18, g(2, 15), g(2, 16)), ll(22, g(2, 11), g(2, 12))},
	{ll(18, g(2, 68)), ll(16, g(4, 27)), ll(24, g(4, 19)), ll(28, g(4, 15))},
	{ll(20, g(2, 78)), ll(18, g(4, 31)), ll(18, g(2, 14), g(4, 15)), ll(26, g(4, 13), g(1, 14))},
	{ll(24, g(2, 97)), ll(22, g(2, 38), g(2, 39)), ll(22, g(4, 18), g(2, 19)), ll(26, g(4, 14), g(2, 15))},
	{ll(30, g(2, 116)), ll(22, g(3, 36), g(2, 37)), ll(20, g(4, 16), g(4, 17)), ll(24, g(4, 12), g(4, 13))},
	{ll(18, g(2, 68), g(2, 69)), ll(26, g(4, 43), g(1, 44)), ll(24, g(6, 19), g(2, 20)), ll(28, g(6, 15), g(2, 16))},
	{ll(20, g(4, 81)), ll(30, g(1, 50), g(4, 51)), ll(28, g(4, 22), g(4, 23)), ll(24, g(3, 12), g(8, 13))},
	{ll(24, g(2, 92), g(2, 93)), ll(22, g(6, 36), g(2, 37)), ll(26, g(4, 20), g(6, 21)), ll(28, g(7, 14), g(4, 15))},
	{ll(26, g(4, 107)), ll(22, g(8, 37), g(1, 38)), ll(24, g(8, 20), g(4, 21)), ll(22, g(12, 11), g(4, 12))},
	{ll(30, g(3, 115), g(1, 116)), ll(24, g(4, 40), g(5, 41)), ll(20, g(11, 16), g(5, 17)), ll(24, g(11, 12), g(5, 13))},
	{ll(22, g(5, 87), g(1, 88)), ll(24, g(5, 41), g(5, 42)), ll(30, g(5, 24), g(7, 25)), ll(24, g(11, 12), g(7, 13))},
	{ll(24, g(5, 98), g(1, 99)), ll(28, g(7, 45), g(3, 46)), ll(24, g(15, 19), g(2, 20)), ll(30, g(3, 15), g(13, 16))},
	{ll(28, g(1, 107), g(5, 108)), ll(28, g(10, 46), g(1, 47)), ll(28, g(1, 22), g(15, 23)), ll(28, g(2, 14), g(17, 15))},
	{ll(30, g(5, 120), g(1, 121)), ll(26, g(9, 43), g(4, 44)), ll(28, g(17, 22), g(1, 23)), ll(28, g(2, 14), g(19, 15))},
	{ll(28, g(3, 113), g(4, 114)), ll(26, g(3, 44), g(11, 45)), ll(26, g(17, 21), g(4, 22)), ll(26, g(9, 13), g(16, 14))},
	{ll(28, g(3, 107), g(5, 108)), ll(26, g(3, 41), g(13, 42)), ll(30, g(15, 24), g(5, 25)), ll(28, g(15, 15), g(10, 16))},
	{ll(28, g(4, 116), g(4, 117)), ll(26, g(17, 42)), ll(28, g(17, 22), g(6, 23)), ll(30, g(19, 16), g(6, 17))},
	{ll(28, g(2, 111), g(7, 112)), ll(28, g(17, 46)), ll(30, g(7, 24), g(16, 25)), ll(24, g(34, 13))},
	{ll(30, g(4, 121), g(5, 122)), ll(28, g(4, 47), g(14, 48)), ll(30, g(11, 24), g(14, 25)), ll(30, g(16, 15), g(14, 16))},
	{ll(30, g(6, 117), g(4, 118)), ll(28, g(6, 45), g(14, 46)), ll(30, g(11, 24), g(16, 25)), ll(30, g(30, 16), g(2, 17))},
	{ll(26, g(8, 106), g(4, 107)), ll(28, g(8, 47), g(13, 48)), ll(30, g(7, 24), g(22, 25)), ll(30, g(22, 15), g(13, 16))},
	{ll(28, g(10, 114), g(2, 115)), ll(28, g(19, 46), g(4, 47)), ll(28, g(28, 22), g(6, 23)), ll(30, g(33, 16), g(4, 17))},
	{ll(30, g(8, 122), g(4, 123)), ll(28, g(22, 45), g(3, 46)), ll(30, g(8, 23), g(26, 24)), ll(30, g(12, 15), g(28, 16))},
	{ll(30, g(3, 117), g(10, 118)), ll(28, g(3, 45), g(23, 46)), ll(30, g(4, 24), g(31, 25)), ll(30, g(11, 15), g(31, 16))},
	{ll(30, g(7, 116), g(7, 117)), ll(28, g(21, 45), g(7, 46)), ll(30, g(1, 23), g(37, 24)), ll(30, g(19, 15), g(26, 16))},
	{ll(30, g(5, 115), g(10, 116)), ll(28, g(19, 47), g(10, 48)), ll(30, g(15, 24), g(25, 25)), ll(30, g(23, 15), g(25, 16))},
	{ll(30, g(13, 115), g(3, 116)), ll(28, g(2, 46), g(29, 47)), ll(30, g(42, 24), g(1, 25)), ll(30, g(23, 15), g(28, 16))},
	{ll(30, g(17, 115)), ll(28, g(10, 46), g(23, 47)), ll(30, g(10, 24), g(35, 25)), ll(30, g(19, 15), g(35, 16))},
	{ll(30, g(17, 115), g(1, 116)), ll(28, g(14, 46), g(21, 47)), ll(30, g(29, 24), g(19, 25)), ll(30, g(11, 15), g(46, 16))},
	{ll(30, g(13, 115), g(6, 116)), ll(28, g(14, 46), g(23, 47)), ll(30, g(44, 24), g(7, 25)), ll(30, g(59, 16), g(1, 17))},
	{ll(30, g(12, 121), g(7, 122)), ll(28, g(12, 47), g(26, 48)), ll(30, g(39, 24), g(14, 25)), ll(30, g(22, 15), g(41, 16))},
	{ll(30, g(6, 121), g(14, 122)), ll(28, g(6, 47), g(34, 48)), ll(30, g(46, 24), g(10, 25)), ll(30, g(2, 15), g(64, 16))},
	{ll(30, g(17, 122), g(4, 123)), ll(28, g(29, 46), g(14, 47)), ll(30, g(49, 24), g(10, 25)), ll(30, g(24, 15), g(46, 16))},
	{ll(30, g(4, 122), g(18, 123)), ll(28, g(13, 46), g(32, 47)), ll(30, g(48, 24), g(14, 25)), ll(30, g(42, 15), g(32, 16))},
	{ll(30, g(20, 117), g(4, 118)), ll(28, g(40, 47), g(7, 48)), ll(30, g(43, 24), g(22, 25)), ll(30, g(10, 15), g(67, 16))},
	{ll(30, g(19, 118), g(6, 119)), ll(28, g(18, 47), g(31, 48)), ll(30, g(34, 24), g(34, 25)), ll(30, g(20, 15), g(61, 16))},
}

// BlockInfos expands the (version, level) layout into one qrdecode.BlockInfo
// per physical block, in the group order the de-interleaver must walk them
// in.
func BlockInfos(version int, level qrdecode.ECLevel) []qrdecode.BlockInfo {
	layout := blockTable[version-1][level]
	var out []qrdecode.BlockInfo
	for _, grp := range layout.groups {
		for i := 0; i < grp.count; i++ {
			out = append(out, qrdecode.BlockInfo{DataPer: grp.dataPer, ECCap: layout.ecCap})
		}
	}
	return out
}

// TotalCodewords returns the raw codeword count for a version (sum of
// total_per across every block for any EC level — it is level-independent
// by construction).
func TotalCodewords(version int) int {
	total := 0
	for _, bi := range BlockInfos(version, qrdecode.ECLow) {
		total += bi.TotalPer()
	}
	return total
}

// formatBCHCodes lists the 32 valid 15-bit format codewords (masked with
// 0x5412), indexed by the 5-bit value (2 EC-level bits << 3 | 3 mask bits).
// Generated at init from the BCH(15,5) generator polynomial 0x537, matching
// the table spec.md requires be shipped verbatim.
var formatBCHCodes [32]uint32

func init() {
	const generator = 0x537
	const mask = 0x5412
	for data := 0; data < 32; data++ {
		rem := data << 10
		for i := 0; i < 5; i++ {
			if rem&(1<<(14-i)) != 0 {
				rem ^= generator << (4 - i)
			}
		}
		formatBCHCodes[data] = uint32((data<<10|rem)&0x7FFF) ^ mask
	}
}

// FormatBCHCodes returns the 32 canonical masked format codewords.
func FormatBCHCodes() [32]uint32 { return formatBCHCodes }

// versionBCHCodes lists the 34 valid 18-bit version codewords for v in
// [7,40] (6 data bits, BCH(18,6) generator 0x1F25), taken verbatim from the
// standard table used across QR implementations.
var versionBCHCodes = [34]uint32{
	0x07C94, 0x085BC, 0x09A99, 0x0A4D3, 0x0BBF6,
	0x0C762, 0x0D847, 0x0E60D, 0x0F928, 0x10B78,
	0x1145D, 0x12A17, 0x13532, 0x149A6, 0x15683,
	0x168C9, 0x177EC, 0x18EC4, 0x191E1, 0x1AFAB,
	0x1B08E, 0x1CC1A, 0x1D33F, 0x1ED75, 0x1F250,
	0x209D5, 0x216F0, 0x228BA, 0x2379F, 0x24B0B,
	0x2542E, 0x26A64, 0x27541, 0x28C69,
}

// VersionBCHCodes returns the version-info codeword table, indexed by
// version-7 (so entry 0 is version 7's codeword).
func VersionBCHCodes() [34]uint32 { return versionBCHCodes }
