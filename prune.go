package freqtable

// pruneBoundary finds the smallest bin index k in [0,255) such that the
// cumulative histogram count through k reaches size - B/2, then converts k
// to the lower edge of its count range minus 1. Counts strictly greater
// than the returned boundary survive a prune at it; the goal is to roughly
// halve the population while discarding only the least-frequent entries.
func (c *Counter) pruneBoundary() int64 {
	threshold := int64(c.size) - int64(len(c.cells))/2
	if threshold < 0 {
		threshold = 0
	}
	var cumulative int64
	k := 0
	for ; k < histogramBins-1; k++ {
		cumulative += int64(c.histo[k])
		if cumulative >= threshold {
			break
		}
	}
	return binLowerEdge(k) - 1
}

// pruneInt rewrites the table in place: cells with count <= boundary are
// evicted and their key storage freed, survivors are compacted backward
// toward the most recent empty slot when doing so shortens their probe
// chain, and the histogram is rebuilt from the surviving cells.
//
// The walk starts from an empty slot (one must exist: the load factor is
// always kept below 1) so that every probe chain it crosses has already
// been fully processed by the time the walk reaches any given slot — the
// invariant that makes single-pass backward-shift compaction safe.
func (c *Counter) pruneInt(boundary int64) {
	if boundary > c.maxPrune {
		c.maxPrune = boundary
	}
	c.histo.reset()

	start := -1
	for i := range c.cells {
		if !c.cells[i].occupied() {
			start = i
			break
		}
	}
	if start == -1 {
		return
	}

	mask := c.mask
	lastFree := uint64(start)
	var survivors uint64

	for i := (uint64(start) + 1) & mask; i != uint64(start); i = (i + 1) & mask {
		cl := &c.cells[i]

		if !cl.occupied() {
			lastFree = i
			continue
		}

		if cl.count <= boundary {
			c.strAlloc -= uint64(len(cl.key) + 1)
			c.cells[i] = cell{}
			lastFree = i
			continue
		}

		r := c.bucket(cl.key, false)
		target := i
		if ((i - lastFree) & mask) > ((i - r) & mask) {
			probe := r
			for probe != i && c.cells[probe].occupied() {
				probe = (probe + 1) & mask
			}
			target = probe
		}
		if target != i {
			c.cells[target] = *cl
			c.cells[i] = cell{}
			lastFree = i
		}
		c.histo.add(c.cells[target].count)
		survivors++
	}

	c.size = survivors
}
