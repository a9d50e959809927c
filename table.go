package freqtable

import (
	"bytes"

	"github.com/kwertop/freqtable/hash"
)

// bucket computes the ideal bucket for key: MurmurHash3-32(key, seed=42)
// masked to the table size. If feedSketch, the full pre-masked hash is
// also fed into the HyperLogLog sketch; callers must only pass true when
// about to attempt a new insertion (allocateCell), never for a plain
// lookup.
func (c *Counter) bucket(key []byte, feedSketch bool) uint64 {
	h := hash.Sum32(key, murmurSeed)
	if feedSketch {
		c.sketch.Insert(h)
	}
	return uint64(h) & c.mask
}

// findCell walks the probe chain for key starting at its ideal bucket,
// stopping at the first empty slot or the first slot whose key matches.
// It never feeds the sketch; probing always terminates because the load
// factor is kept strictly below 1.
func (c *Counter) findCell(key []byte) uint64 {
	i := c.bucket(key, false)
	for c.cells[i].occupied() && !bytes.Equal(c.cells[i].key, key) {
		i = (i + 1) & c.mask
	}
	return i
}

// allocateCell returns the index of the cell holding key, pruning and
// creating it as needed. The sketch is fed only on the new-key path, once,
// when the probe lands on an empty slot; a key that already exists never
// re-feeds the sketch, and a prune-triggered retry re-probes via findCell
// without feeding again either.
func (c *Counter) allocateCell(key []byte) uint64 {
	idx := c.findCell(key)
	if c.cells[idx].occupied() {
		return idx
	}
	c.bucket(key, true)

	if c.size >= (uint64(len(c.cells))>>2)*3 {
		boundary := c.pruneBoundary()
		c.pruneInt(boundary)
		idx = c.findCell(key)
	}

	stored := make([]byte, len(key))
	copy(stored, key)
	c.cells[idx] = cell{key: stored, count: 0}
	c.size++
	c.strAlloc += uint64(len(key) + 1)
	c.histo.add(0)
	return idx
}
