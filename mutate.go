package freqtable

import (
	"bytes"
	"fmt"
	"math"
)

func validateKey(key []byte) error {
	if bytes.IndexByte(key, 0) != -1 {
		return fmt.Errorf("%w: key must not contain an embedded null byte", ErrInvalidArgument)
	}
	return nil
}

// Increment adds delta to key's count, allocating (and, if the table is
// full enough, pruning for) a cell if key has never been seen. delta must
// be >= 0; delta == 0 is accepted as a no-op.
func (c *Counter) Increment(key []byte, delta int64) error {
	if delta < 0 {
		return fmt.Errorf("%w: increment delta must be >= 0, got %d", ErrInvalidArgument, delta)
	}
	if err := validateKey(key); err != nil {
		return err
	}
	if delta == 0 {
		return nil
	}
	idx := c.allocateCell(key)
	cl := &c.cells[idx]
	if cl.count > math.MaxInt64-delta {
		return fmt.Errorf("%w: incrementing %q by %d would overflow", ErrOverflow, key, delta)
	}
	c.histo.remove(cl.count)
	cl.count += delta
	c.histo.add(cl.count)
	c.total += delta
	return nil
}

// Set assigns value as key's count. value must be >= 0; setting a
// non-existent key to 0 is a no-op.
func (c *Counter) Set(key []byte, value int64) error {
	if value < 0 {
		return fmt.Errorf("%w: set value must be >= 0, got %d", ErrInvalidArgument, value)
	}
	if err := validateKey(key); err != nil {
		return err
	}

	var idx uint64
	if value > 0 {
		idx = c.allocateCell(key)
	} else {
		idx = c.findCell(key)
		if !c.cells[idx].occupied() {
			return nil
		}
	}

	cl := &c.cells[idx]
	old := cl.count
	c.histo.remove(old)
	cl.count = value
	c.histo.add(value)
	c.total += value - old
	return nil
}

// Delete zeroes key's count. The key buffer and slot are retained as a
// zombie cell, preserving the probe chain until the next prune reclaims
// it.
func (c *Counter) Delete(key []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	idx := c.findCell(key)
	cl := &c.cells[idx]
	if !cl.occupied() {
		return nil
	}
	c.histo.remove(cl.count)
	c.total -= cl.count
	cl.count = 0
	c.histo.add(0)
	return nil
}

// Get returns key's current count, or 0 if it has never been seen or was
// deleted.
func (c *Counter) Get(key []byte) int64 {
	idx := c.findCell(key)
	return c.cells[idx].count
}

// Prune runs an explicit prune at the caller-chosen boundary: every
// surviving cell will have count > boundary.
func (c *Counter) Prune(boundary int64) {
	c.pruneInt(boundary)
}
