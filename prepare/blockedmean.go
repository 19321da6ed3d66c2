// Package prepare implements the Preparer stage: adaptive binarization of a
// greyscale raster.
package prepare

import "github.com/ashokshau/qrdecode"

// BlockedMean binarizes an image by partitioning it into blockW x blockH
// blocks, averaging each, and comparing every pixel against the mean of a
// window x window block neighborhood centered on its own block. A pixel is
// dark iff its intensity is strictly below that windowed mean. This tolerates
// gradient illumination at QR-module scale for O(W*H) cost, trading the
// precision of a full per-pixel integral-image threshold for a small
// constant factor.
type BlockedMean struct {
	BlockW, BlockH int
	Window         int // odd, window x window blocks centered on the pixel's own block
}

// NewBlockedMean returns a BlockedMean binarizer with the given block size
// and averaging window (blocks, not pixels). window should be odd; an even
// value is rounded up to the next odd number.
func NewBlockedMean(blockW, blockH, window int) *BlockedMean {
	if window%2 == 0 {
		window++
	}
	return &BlockedMean{BlockW: blockW, BlockH: blockH, Window: window}
}

// DefaultBlockedMean matches the calibration spec.md names as a reasonable
// default: 5x7 pixel blocks, a 5x5 block averaging window.
func DefaultBlockedMean() *BlockedMean {
	return NewBlockedMean(5, 7, 5)
}

func (p *BlockedMean) Prepare(grey *qrdecode.GreyImage) *qrdecode.BinaryImage {
	w, h := grey.Width, grey.Height
	blocksX := (w + p.BlockW - 1) / p.BlockW
	blocksY := (h + p.BlockH - 1) / p.BlockH
	if blocksX == 0 {
		blocksX = 1
	}
	if blocksY == 0 {
		blocksY = 1
	}

	blockSum := make([]int, blocksX*blocksY)
	blockCount := make([]int, blocksX*blocksY)
	for y := 0; y < h; y++ {
		by := y / p.BlockH
		for x := 0; x < w; x++ {
			bx := x / p.BlockW
			idx := by*blocksX + bx
			blockSum[idx] += int(grey.At(x, y))
			blockCount[idx]++
		}
	}
	blockMean := make([]int, blocksX*blocksY)
	for i := range blockMean {
		if blockCount[i] > 0 {
			blockMean[i] = blockSum[i] / blockCount[i]
		}
	}

	radius := p.Window / 2
	windowMean := func(bx, by int) int {
		sum, count := 0, 0
		for dy := -radius; dy <= radius; dy++ {
			ny := by + dy
			if ny < 0 || ny >= blocksY {
				continue
			}
			for dx := -radius; dx <= radius; dx++ {
				nx := bx + dx
				if nx < 0 || nx >= blocksX {
					continue
				}
				sum += blockMean[ny*blocksX+nx]
				count++
			}
		}
		if count == 0 {
			return 255
		}
		return sum / count
	}

	windowMeanCache := make([]int, blocksX*blocksY)
	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			windowMeanCache[by*blocksX+bx] = windowMean(bx, by)
		}
	}

	dark := make([]bool, w*h)
	for y := 0; y < h; y++ {
		by := y / p.BlockH
		for x := 0; x < w; x++ {
			bx := x / p.BlockW
			threshold := windowMeanCache[by*blocksX+bx]
			dark[y*w+x] = int(grey.At(x, y)) < threshold
		}
	}

	return &qrdecode.BinaryImage{Dark: dark, Width: w, Height: h}
}
