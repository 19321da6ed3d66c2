package fixture

import (
	"github.com/ashokshau/qrdecode"
	"github.com/ashokshau/qrdecode/decode"
)

// placeFunctionPatterns draws finders, separators, timing patterns,
// alignment patterns, and the fixed dark module — every reserved region
// decode.IsData also knows about, kept in sync by construction since both
// consult the same alignment table.
func placeFunctionPatterns(g *Grid) {
	drawFinder(g, 0, 0)
	drawFinder(g, g.Side-7, 0)
	drawFinder(g, 0, g.Side-7)

	for i := 8; i < g.Side-8; i++ {
		g.set(6, i, i%2 == 0)
		g.set(i, 6, i%2 == 0)
	}

	centers := decode.AlignmentCenters(g.Version)
	n := len(centers)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if (i == 0 && j == 0) || (i == 0 && j == n-1) || (i == n-1 && j == 0) {
				continue
			}
			drawAlignment(g, centers[j], centers[i])
		}
	}

	g.set(8, g.Side-8, true) // fixed dark module
}

func drawFinder(g *Grid, r, c int) {
	for i := -1; i <= 7; i++ {
		for j := -1; j <= 7; j++ {
			x, y := c+j, r+i
			if x < 0 || y < 0 || x >= g.Side || y >= g.Side {
				continue
			}
			if i < 0 || i > 6 || j < 0 || j > 6 {
				g.set(x, y, false) // separator
				continue
			}
			dark := i == 0 || i == 6 || j == 0 || j == 6 || (i >= 2 && i <= 4 && j >= 2 && j <= 4)
			g.set(x, y, dark)
		}
	}
}

func drawAlignment(g *Grid, cx, cy int) {
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			x, y := cx+j, cy+i
			dark := i == -2 || i == 2 || j == -2 || j == 2 || (i == 0 && j == 0)
			g.set(x, y, dark)
		}
	}
}

// placeCodewords walks the same zig-zag order the decoder reads, writing
// one bit per data module in codewords' MSB-first order.
func placeCodewords(g *Grid, codewords []byte) {
	idx := 0
	total := len(codewords) * 8
	getBit := func(k int) bool {
		return (codewords[k/8]>>(7-k%8))&1 == 1
	}
	for x, y := range decode.ZigZag(g.Side) {
		if !decode.IsData(g.Version, x, y) {
			continue
		}
		bit := false
		if idx < total {
			bit = getBit(idx)
			idx++
		}
		g.set(x, y, bit)
	}
}

// applyMask flips every data module per the chosen mask function — an
// involution, so the decoder's pass over the same grid with the same mask
// id recovers the pre-mask bits exactly.
func applyMask(g *Grid, maskID int) {
	mask := decode.Mask(maskID)
	for x, y := range decode.ZigZag(g.Side) {
		if !decode.IsData(g.Version, x, y) {
			continue
		}
		if mask(x, y) {
			g.set(x, y, !g.at(x, y))
		}
	}
}

func placeFormatInfo(g *Grid, level qrdecode.ECLevel, maskID int) {
	formatData := (level.FormatBits() << 3) | maskID
	poly := bchFormat(formatData)

	for i := 0; i < 15; i++ {
		bit := (poly>>i)&1 == 1
		switch i {
		case 0:
			g.set(8, 0, bit)
		case 1:
			g.set(8, 1, bit)
		case 2:
			g.set(8, 2, bit)
		case 3:
			g.set(8, 3, bit)
		case 4:
			g.set(8, 4, bit)
		case 5:
			g.set(8, 5, bit)
		case 6:
			g.set(8, 7, bit)
		case 7:
			g.set(8, 8, bit)
		case 8:
			g.set(7, 8, bit)
		case 9:
			g.set(5, 8, bit)
		case 10:
			g.set(4, 8, bit)
		case 11:
			g.set(3, 8, bit)
		case 12:
			g.set(2, 8, bit)
		case 13:
			g.set(1, 8, bit)
		case 14:
			g.set(0, 8, bit)
		}
		if i < 8 {
			g.set(g.Side-1-i, 8, bit)
		} else {
			g.set(8, g.Side-15+i, bit)
		}
	}
}

func bchFormat(data int) int {
	d := data << 10
	const gen = 0x537
	for i := 4; i >= 0; i-- {
		if (d>>(i+10))&1 == 1 {
			d ^= gen << i
		}
	}
	return ((data << 10) | d) ^ 0x5412
}

func bchVersion(data int) int {
	d := data << 12
	const gen = 0x1F25
	for i := 5; i >= 0; i-- {
		if (d>>(i+12))&1 == 1 {
			d ^= gen << i
		}
	}
	return (data << 12) | d
}

func placeVersionInfo(g *Grid, version int) {
	poly := bchVersion(version)
	for i := 0; i < 18; i++ {
		bit := (poly>>i)&1 == 1
		a := g.Side - 11 + i%3
		b := i / 3
		g.set(a, b, bit)
		g.set(b, a, bit)
	}
}
