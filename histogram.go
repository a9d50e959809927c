package freqtable

import "math/bits"

// histogramBins is fixed at 256: bins 0-15 are linear (bin == count), bin
// 255 catches everything at or above 0x3C0000000, and bins 16-254 each
// partition a power-of-two count range into 8 equal sub-bins.
const histogramBins = 256

// saturationCount is the smallest count that always maps to bin 255.
const saturationCount = 0x3C0000000

type histogram [histogramBins]uint32

// binOf returns the histogram bin a given count falls into. Counts below 16
// get one bin each; from there every power-of-two range [2^(b-1), 2^b) is
// split into 8 equal sub-bins, starting at bin 16 for b=5 (the bit length of
// 16) and climbing 8 bins per power. Capping at saturationCount keeps this
// within the 256-bin array no matter how large count grows.
func binOf(count int64) int {
	if count < 16 {
		return int(count)
	}
	if count >= saturationCount {
		return histogramBins - 1
	}
	b := bits.Len64(uint64(count))
	return b*8 - 24 + int((count>>(b-4))&7)
}

// binLowerEdge returns the smallest count that maps to bin under binOf: the
// inverse of the binning function, used by the prune engine to turn a
// chosen bin index back into a count boundary.
func binLowerEdge(bin int) int64 {
	if bin < 16 {
		return int64(bin)
	}
	b := (bin + 24) / 8
	j := (bin + 24) % 8
	return int64(1)<<uint(b-1) + int64(j)<<uint(b-4)
}

func (h *histogram) add(count int64) {
	h[binOf(count)]++
}

func (h *histogram) remove(count int64) {
	h[binOf(count)]--
}

func (h *histogram) reset() {
	for i := range h {
		h[i] = 0
	}
}
