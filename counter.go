package freqtable

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/kwertop/freqtable/hll"
)

// murmurSeed is the one hash seed the whole system uses, for both bucket
// resolution and HyperLogLog feeding.
const murmurSeed = 42

var cellSize = uint64(unsafe.Sizeof(cell{}))

// Entry is a single live (key, count) pair, returned by iteration and Top.
type Entry struct {
	Key   []byte
	Count int64
}

// HistoBin is one non-empty row of the debug histogram dump returned by
// Histo: the inclusive count range the bin covers and how many occupied
// cells currently fall in it.
type HistoBin struct {
	Low, High int64
	Count     uint32
}

// Counter is the approximate frequency counter: an open-addressed,
// linear-probing table that self-prunes by discarding low-count entries
// once it fills past 3/4 load, backed by a HyperLogLog sketch that keeps
// cardinality estimable after a prune destroys exact set information. It
// is single-owner and not safe for concurrent use.
type Counter struct {
	cells    []cell
	mask     uint64
	histo    histogram
	sketch   *hll.Sketch
	total    int64
	size     uint64 // occupied cells, including count-0 zombies
	strAlloc uint64
	maxPrune int64
}

// New creates a counter whose capacity is rounded down to the nearest
// power of two. buckets must be in [4, 2^32]; anything else is
// ErrInvalidArgument.
func New(buckets uint64) (*Counter, error) {
	if buckets < 4 || buckets > (1<<32) {
		return nil, fmt.Errorf("%w: buckets must be in [4, 2^32], got %d", ErrInvalidArgument, buckets)
	}
	capacity := roundDownPow2(buckets)
	return &Counter{
		cells:  make([]cell, capacity),
		mask:   capacity - 1,
		sketch: hll.New(),
	}, nil
}

func roundDownPow2(n uint64) uint64 {
	if n&(n-1) == 0 {
		return n
	}
	p := uint64(1)
	for p*2 <= n {
		p *= 2
	}
	return p
}

// Buckets returns the actual table capacity (always a power of two).
func (c *Counter) Buckets() uint64 {
	return uint64(len(c.cells))
}

// Total returns the sum of every count currently stored, equivalently the
// sum of every delta ever applied via Increment/Set minus what Delete has
// removed.
func (c *Counter) Total() int64 {
	return c.total
}

// Mem returns the approximate number of bytes the counter owns on the
// heap: the cell array, every live key buffer, and the histogram.
func (c *Counter) Mem() uint64 {
	return uint64(len(c.cells))*cellSize + c.strAlloc + uint64(histogramBins*4)
}

// sizeLive is the number of occupied cells with a positive count, i.e.
// size minus the zombie (count-0) cells counted in histogram bin 0.
func (c *Counter) sizeLive() uint64 {
	return c.size - uint64(c.histo[0])
}

// Cardinality returns the approximate number of distinct keys ever seen.
// Until the first prune it is served exactly from the live cell count;
// afterwards exact set information has been destroyed and it is served
// from the HyperLogLog sketch instead.
func (c *Counter) Cardinality() int64 {
	if c.maxPrune == 0 {
		return int64(c.sizeLive())
	}
	return int64(c.sketch.Estimate())
}

// Quality is the ratio of the occupied-cell count to the prune trigger
// threshold (3/4 of capacity); a value approaching 1 predicts an
// imminent automatic prune.
func (c *Counter) Quality() float64 {
	return float64(c.size) / (0.75 * float64(len(c.cells)))
}

// Histo returns one row per non-empty histogram bin, in bin order, for
// debugging and tests.
func (c *Counter) Histo() []HistoBin {
	var out []HistoBin
	for i := 0; i < histogramBins; i++ {
		if c.histo[i] == 0 {
			continue
		}
		low := binLowerEdge(i)
		high := int64(math.MaxInt64)
		if i != histogramBins-1 {
			high = binLowerEdge(i+1) - 1
		}
		out = append(out, HistoBin{Low: low, High: high, Count: c.histo[i]})
	}
	return out
}
