package freqtable

// cell is a single table slot: either empty (key == nil) or occupied,
// owning a byte key for its lifetime and holding a count >= 0. An occupied
// cell with count == 0 is a zombie left behind by Delete: it still
// participates in probe chains and is only reclaimed by the next prune.
type cell struct {
	key   []byte
	count int64
}

func (c *cell) occupied() bool {
	return c.key != nil
}
