// Package fixture is a test-only QR symbol synthesizer: given a payload and
// EC level, it builds a known-good module grid (and, via writer.go, a PNG)
// so the decode pipeline can be round-trip tested without a real camera
// capture. It is adapted from the project's original encoder (bit-buffer
// packing, BCH format placement) and Reed-Solomon generator (GF(2^8)
// polynomial division), generalized from their original single-block,
// version-1-4-only scope to any version and EC level using the decode
// package's own block-layout and alignment tables so both sides of the
// round trip agree on the standard.
package fixture

import (
	"github.com/ashokshau/qrdecode"
	"github.com/ashokshau/qrdecode/decode"
)

// Grid is a synthesized symbol: its module bits (with the data mask
// applied, i.e. matching what a camera would actually see) plus the
// version and EC level used to build it.
type Grid struct {
	Bits    []bool
	Side    int
	Version int
	Level   qrdecode.ECLevel
	MaskID  int
}

func (g *Grid) at(x, y int) bool  { return g.Bits[y*g.Side+x] }
func (g *Grid) set(x, y int, v bool) { g.Bits[y*g.Side+x] = v }

// bitBuffer packs values MSB-first, mirroring the teacher's BitBuffer.
type bitBuffer struct {
	bits []bool
}

func (b *bitBuffer) put(num, length int) {
	for i := 0; i < length; i++ {
		b.bits = append(b.bits, ((num>>(length-1-i))&1) == 1)
	}
}

func (b *bitBuffer) len() int { return len(b.bits) }

// Encode builds a Grid carrying payload as a single Byte-mode segment at
// the smallest version (for the given level) that fits it, with mask 0
// applied uniformly (no mask-penalty scoring — a fixture doesn't need the
// best mask, only a consistent, decodable one).
func Encode(payload string, level qrdecode.ECLevel) (*Grid, error) {
	data := []byte(payload)

	version, blocks, err := pickVersion(level, len(data))
	if err != nil {
		return nil, err
	}

	bb := &bitBuffer{}
	bb.put(0b0100, 4) // Byte mode
	countBits := 8
	if version >= 10 {
		countBits = 16
	}
	bb.put(len(data), countBits)
	for _, b := range data {
		bb.put(int(b), 8)
	}

	dataCapacityBits := 0
	for _, blk := range blocks {
		dataCapacityBits += blk.DataPer * 8
	}

	if bb.len() < dataCapacityBits {
		term := 4
		if bb.len()+term > dataCapacityBits {
			term = dataCapacityBits - bb.len()
		}
		bb.put(0, term)
	}
	if bb.len()%8 != 0 {
		bb.put(0, 8-(bb.len()%8))
	}
	padBytes := [2]int{0xEC, 0x11}
	padIdx := 0
	for bb.len() < dataCapacityBits {
		bb.put(padBytes[padIdx], 8)
		padIdx = (padIdx + 1) % 2
	}

	dataCodewords := bitsToBytes(bb.bits)

	perBlockData := make([][]byte, len(blocks))
	offset := 0
	for i, blk := range blocks {
		perBlockData[i] = dataCodewords[offset : offset+blk.DataPer]
		offset += blk.DataPer
	}

	fullBlocks := make([][]byte, len(blocks))
	for i, blk := range blocks {
		ec := calculateECCodewords(perBlockData[i], blk.ECCap)
		fullBlocks[i] = append(append([]byte{}, perBlockData[i]...), ec...)
	}

	codewords := decode.Interleave(fullBlocks, blocks)

	side := qrdecode.Side(version)
	g := &Grid{Bits: make([]bool, side*side), Side: side, Version: version, Level: level, MaskID: 0}

	placeFunctionPatterns(g)
	placeCodewords(g, codewords)
	applyMask(g, 0)
	placeFormatInfo(g, level, 0)
	if version >= 7 {
		placeVersionInfo(g, version)
	}
	return g, nil
}

func bitsToBytes(bits []bool) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var v byte
		for j := 0; j < 8; j++ {
			v <<= 1
			if bits[i*8+j] {
				v |= 1
			}
		}
		out[i] = v
	}
	return out
}

func pickVersion(level qrdecode.ECLevel, dataLen int) (int, []qrdecode.BlockInfo, error) {
	for v := 1; v <= 40; v++ {
		blocks := decode.BlockInfos(v, level)
		capacityBits := 0
		for _, b := range blocks {
			capacityBits += b.DataPer * 8
		}
		countBits := 8
		if v >= 10 {
			countBits = 16
		}
		needed := 4 + countBits + dataLen*8
		if needed <= capacityBits {
			return v, blocks, nil
		}
	}
	return 0, nil, &qrdecode.QRError{Kind: qrdecode.ErrMalformedPayload, Message: "payload too long for any version"}
}

// calculateECCodewords is the teacher's shift-register polynomial division,
// rehosted on decode.GF256 instead of int-indexed exp/log tables so it
// shares one Galois-field implementation with the decoder it is testing.
func calculateECCodewords(data []byte, numEC int) []byte {
	generator := generatorPoly(numEC)

	remainder := make([]decode.GF256, len(data)+numEC)
	for i, d := range data {
		remainder[i] = decode.GF256(d)
	}

	for i := 0; i < len(data); i++ {
		coef := remainder[i]
		if coef != 0 {
			for j, gc := range generator {
				remainder[i+j] = remainder[i+j].Add(gc.Mul(coef))
			}
		}
	}

	out := make([]byte, numEC)
	for i, v := range remainder[len(data):] {
		out[i] = byte(v)
	}
	return out
}

func generatorPoly(numEC int) []decode.GF256 {
	gen := []decode.GF256{1}
	for i := 0; i < numEC; i++ {
		gen = polyMulMonic(gen, decode.Exp(i))
	}
	return gen
}

// polyMulMonic multiplies gen by (x - root), i.e. (x + root) in GF(2^k).
func polyMulMonic(gen []decode.GF256, root decode.GF256) []decode.GF256 {
	out := make([]decode.GF256, len(gen)+1)
	for i, c := range gen {
		out[i] = out[i].Add(c)
		out[i+1] = out[i+1].Add(c.Mul(root))
	}
	return out
}
