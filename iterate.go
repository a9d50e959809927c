package freqtable

import (
	"container/heap"
	"fmt"
)

// Items calls fn for every live (count > 0) cell in slot order, skipping
// count-0 zombies left behind by Delete. fn returning false stops
// iteration early. Mutating the counter while iterating is undefined.
func (c *Counter) Items(fn func(key []byte, count int64) bool) {
	for i := range c.cells {
		cl := &c.cells[i]
		if cl.count > 0 {
			if !fn(cl.key, cl.count) {
				return
			}
		}
	}
}

// Keys calls fn for every live key in slot order.
func (c *Counter) Keys(fn func(key []byte) bool) {
	c.Items(func(key []byte, _ int64) bool { return fn(key) })
}

// Update bulk-applies source into the counter. source must be either
// map[string]int64 (each entry incremented by its value via Increment) or
// one of []string / [][]byte (each key incremented by 1). Any other type
// is ErrInvalidArgument.
func (c *Counter) Update(source any) error {
	switch v := source.(type) {
	case map[string]int64:
		for k, delta := range v {
			if err := c.Increment([]byte(k), delta); err != nil {
				return err
			}
		}
		return nil
	case []string:
		for _, k := range v {
			if err := c.Increment([]byte(k), 1); err != nil {
				return err
			}
		}
		return nil
	case [][]byte:
		for _, k := range v {
			if err := c.Increment(k, 1); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: update source must be map[string]int64, []string, or [][]byte, got %T", ErrInvalidArgument, source)
	}
}

// topHeap is the size-bounded min-heap behind Top, adapted from the
// MinHeap selection in the teacher's count.TopK: keep the n largest counts
// seen so far by always being able to evict the current smallest.
type topHeap []Entry

func (h topHeap) Len() int           { return len(h) }
func (h topHeap) Less(i, j int) bool { return h[i].Count < h[j].Count }
func (h topHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *topHeap) Push(x any) {
	*h = append(*h, x.(Entry))
}

func (h *topHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Top returns up to n live entries with the highest counts, sorted
// descending by count. It is a pure report: it never mutates the table,
// the histogram, or the sketch.
func (c *Counter) Top(n int) []Entry {
	if n <= 0 {
		return nil
	}
	h := &topHeap{}
	c.Items(func(key []byte, count int64) bool {
		if h.Len() < n {
			stored := make([]byte, len(key))
			copy(stored, key)
			heap.Push(h, Entry{Key: stored, Count: count})
		} else if count > (*h)[0].Count {
			stored := make([]byte, len(key))
			copy(stored, key)
			heap.Pop(h)
			heap.Push(h, Entry{Key: stored, Count: count})
		}
		return true
	})
	result := make([]Entry, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(Entry)
	}
	return result
}
