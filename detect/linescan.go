// Package detect implements the Detector stage: a single-pass line scan for
// QR finder patterns and geometric reconstruction of each symbol's frame.
package detect

import (
	"math"

	"github.com/ashokshau/qrdecode"
)

// LineScan finds finder patterns by walking every row for the 1:1:3:1:1
// dark/light run signature, confirming candidates along the column and both
// diagonals, clustering nearby hits into finder centers, and grouping
// centers into right-angle triples.
type LineScan struct {
	// MinModuleSize is the smallest plausible module pitch in pixels; runs
	// that would imply anything smaller are treated as noise.
	MinModuleSize float64
}

// NewLineScan returns a LineScan with a permissive default minimum module
// size.
func NewLineScan() *LineScan {
	return &LineScan{MinModuleSize: 1.0}
}

type finderCandidate struct {
	x, y       float64
	moduleSize float64
	confirms   int
}

// Detect implements qrdecode.Detector.
func (l *LineScan) Detect(bin *qrdecode.BinaryImage) []qrdecode.QRLocation {
	raw := l.scanRows(bin)
	centers := clusterCandidates(raw)

	confirmed := make([]finderCandidate, 0, len(centers))
	for _, c := range centers {
		c.confirms = 1 // the row hit that produced it
		if checkDirection(bin, c.x, c.y, 0, 1) {
			c.confirms++
		}
		if checkDirection(bin, c.x, c.y, 1, 1) {
			c.confirms++
		}
		if checkDirection(bin, c.x, c.y, 1, -1) {
			c.confirms++
		}
		if c.confirms >= 3 {
			confirmed = append(confirmed, c)
		}
	}

	triples := groupTriples(confirmed)

	locs := make([]qrdecode.QRLocation, 0, len(triples))
	for _, t := range triples {
		loc, ok := buildLocation(t)
		if ok {
			locs = append(locs, loc)
		}
	}
	return locs
}

// scanRows performs step 1: walk every row left to right, track the last
// five alternating run lengths, and record a candidate at the midpoint of
// the central dark run whenever the ratio approximates 1:1:3:1:1.
func (l *LineScan) scanRows(bin *qrdecode.BinaryImage) []finderCandidate {
	var out []finderCandidate
	for y := 0; y < bin.Height; y++ {
		var counts [5]int
		idx := 0
		last := bin.At(0, y)
		counts[0] = 1
		// check tests the window when its last (dark) run ends at pixel end.
		check := func(end int) {
			if idx == 4 && last && matchesFinderRatio(counts) {
				centerX := float64(end-counts[4]-counts[3]) - float64(counts[2])/2.0
				out = append(out, finderCandidate{
					x:          centerX,
					y:          float64(y),
					moduleSize: float64(counts[0]+counts[1]+counts[2]+counts[3]+counts[4]) / 7.0,
				})
			}
		}
		for x := 1; x < bin.Width; x++ {
			cur := bin.At(x, y)
			if cur == last {
				counts[idx]++
				continue
			}
			check(x)
			if idx < 4 {
				idx++
				counts[idx] = 1
			} else {
				// slide the window left, dropping the oldest run
				counts[0], counts[1], counts[2], counts[3] = counts[1], counts[2], counts[3], counts[4]
				counts[4] = 1
			}
			last = cur
		}
		check(bin.Width)
	}
	return out
}

// matchesFinderRatio reports whether five consecutive run lengths (dark,
// light, dark, light, dark) approximate 1:1:3:1:1 within +-50% per segment,
// using the run total to derive an expected module size the way the
// classic finder-ratio check does.
func matchesFinderRatio(counts [5]int) bool {
	total := counts[0] + counts[1] + counts[2] + counts[3] + counts[4]
	if total < 7 {
		return false
	}
	moduleSize := float64(total) / 7.0
	maxVariance := moduleSize / 2.0
	return math.Abs(moduleSize-float64(counts[0])) < maxVariance &&
		math.Abs(moduleSize-float64(counts[1])) < maxVariance &&
		math.Abs(3*moduleSize-float64(counts[2])) < 3*maxVariance &&
		math.Abs(moduleSize-float64(counts[3])) < maxVariance &&
		math.Abs(moduleSize-float64(counts[4])) < maxVariance
}

// clusterCandidates merges candidates within one estimated module pitch of
// each other (step 2) into averaged finder centers.
func clusterCandidates(raw []finderCandidate) []finderCandidate {
	used := make([]bool, len(raw))
	var out []finderCandidate
	for i, c := range raw {
		if used[i] {
			continue
		}
		sumX, sumY, sumM, n := c.x, c.y, c.moduleSize, 1
		used[i] = true
		for j := i + 1; j < len(raw); j++ {
			if used[j] {
				continue
			}
			o := raw[j]
			dist := math.Hypot(o.x-c.x, o.y-c.y)
			if dist <= c.moduleSize {
				sumX += o.x
				sumY += o.y
				sumM += o.moduleSize
				n++
				used[j] = true
			}
		}
		out = append(out, finderCandidate{
			x:          sumX / float64(n),
			y:          sumY / float64(n),
			moduleSize: sumM / float64(n),
		})
	}
	return out
}

// checkDirection confirms a candidate center along one of the column or
// diagonal axes (step 2's cross-check), scanning outward from the center in
// both directions and testing the same 1:1:3:1:1 ratio reconstructed from
// the observed run boundaries.
func checkDirection(bin *qrdecode.BinaryImage, cx, cy float64, dx, dy int) bool {
	x0, y0 := int(math.Round(cx)), int(math.Round(cy))
	if !bin.At(x0, y0) {
		return false
	}
	posRuns := runsOutward(bin, x0, y0, dx, dy)
	negRuns := runsOutward(bin, x0, y0, -dx, -dy)
	if len(posRuns) < 3 || len(negRuns) < 3 {
		return false
	}
	center := 1 + posRuns[0] + negRuns[0]
	counts := [5]int{negRuns[2], negRuns[1], center, posRuns[1], posRuns[2]}
	return matchesFinderRatio(counts)
}

// runsOutward walks from (x,y) in direction (dx,dy), starting on the dark
// center run, and returns successive run lengths (dark, light, dark, ...)
// not including the starting pixel. Stops after three runs or the image
// edge.
func runsOutward(bin *qrdecode.BinaryImage, x, y, dx, dy int) []int {
	var runs []int
	cx, cy := x+dx, y+dy
	curColor := true // still inside the dark center run
	runLen := 0
	for inBounds(bin, cx, cy) && len(runs) < 3 {
		c := bin.At(cx, cy)
		if c == curColor {
			runLen++
		} else {
			runs = append(runs, runLen)
			curColor = c
			runLen = 1
		}
		cx += dx
		cy += dy
	}
	if runLen > 0 && len(runs) < 3 {
		runs = append(runs, runLen)
	}
	return runs
}

func inBounds(bin *qrdecode.BinaryImage, x, y int) bool {
	return x >= 0 && y >= 0 && x < bin.Width && y < bin.Height
}

type triple struct {
	tl, tr, bl finderCandidate
}

// groupTriples implements step 3: find sets of three confirmed centers
// where one vertex (TL) is equidistant from the other two and the interior
// angle there is close to 90 degrees; of the remaining two, the one closer
// to horizontal from TL is TR, the other BL.
func groupTriples(centers []finderCandidate) []triple {
	var out []triple
	n := len(centers)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			for k := 0; k < n; k++ {
				if k == i || k == j {
					continue
				}
				a, b, c := centers[i], centers[j], centers[k]
				dAB := math.Hypot(a.x-b.x, a.y-b.y)
				dAC := math.Hypot(a.x-c.x, a.y-c.y)
				if dAB == 0 || dAC == 0 {
					continue
				}
				ratio := dAB / dAC
				if ratio < 0.7 || ratio > 1.43 {
					continue
				}
				// angle at a between (a->b) and (a->c)
				v1x, v1y := b.x-a.x, b.y-a.y
				v2x, v2y := c.x-a.x, c.y-a.y
				dot := v1x*v2x + v1y*v2y
				cosAngle := dot / (dAB * dAC)
				if math.Abs(cosAngle) > 0.35 { // ~70-110 degrees tolerance around 90
					continue
				}
				tr, bl := b, c
				// TR is whichever of b, c has displacement from TL closer to horizontal.
				angleB := math.Abs(math.Atan2(v1y, v1x))
				angleC := math.Abs(math.Atan2(v2y, v2x))
				if angleC < angleB {
					tr, bl = c, b
				}
				out = append(out, triple{tl: a, tr: tr, bl: bl})
			}
		}
	}
	return dedupeTriples(out)
}

func dedupeTriples(ts []triple) []triple {
	var out []triple
	for _, t := range ts {
		dup := false
		for _, o := range out {
			if sameCenter(t.tl, o.tl) && sameCenter(t.tr, o.tr) && sameCenter(t.bl, o.bl) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

func sameCenter(a, b finderCandidate) bool {
	return math.Abs(a.x-b.x) < 0.5 && math.Abs(a.y-b.y) < 0.5
}

// buildLocation implements step 4: estimate the module pitch from the
// TL-TR distance and pick the version minimizing the deviation from
// 4v+10 modules between finder centers.
func buildLocation(t triple) (qrdecode.QRLocation, bool) {
	distTRTL := math.Hypot(t.tr.x-t.tl.x, t.tr.y-t.tl.y)
	moduleSize := (t.tl.moduleSize + t.tr.moduleSize + t.bl.moduleSize) / 3
	if moduleSize <= 0 {
		return qrdecode.QRLocation{}, false
	}

	bestVersion := 1
	bestDiff := math.MaxFloat64
	modulesBetween := distTRTL / moduleSize
	for v := 1; v <= 40; v++ {
		expected := float64(4*v + 10)
		diff := math.Abs(modulesBetween - expected)
		if diff < bestDiff {
			bestDiff = diff
			bestVersion = v
		}
	}

	return qrdecode.QRLocation{
		TL:          qrdecode.Point{X: t.tl.x, Y: t.tl.y},
		TR:          qrdecode.Point{X: t.tr.x, Y: t.tr.y},
		BL:          qrdecode.Point{X: t.bl.x, Y: t.bl.y},
		ModulePitch: moduleSize,
		Version:     bestVersion,
	}, true
}
