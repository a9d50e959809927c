package hll

import (
	"strconv"
	"testing"

	"github.com/kwertop/freqtable/hash"
)

func TestSketchEmptyEstimate(t *testing.T) {
	s := New()
	if got := s.Estimate(); got != 0 {
		t.Fatalf("expected 0 on empty sketch, got %v", got)
	}
}

func TestSketchWithinTolerance(t *testing.T) {
	s := New()
	const n = 20000
	for i := 0; i < n; i++ {
		h := hash.Sum32([]byte(strconv.Itoa(i)), 42)
		s.Insert(h)
	}
	got := s.Estimate()
	lo, hi := uint64(n*0.95), uint64(n*1.05)
	if got < lo || got > hi {
		t.Fatalf("estimate %d outside +-5%% of %d (want [%d,%d])", got, n, lo, hi)
	}
}

func TestSketchWithinToleranceSmallRange(t *testing.T) {
	for _, n := range []int{1000, 10000} {
		s := New()
		for i := 0; i < n; i++ {
			h := hash.Sum32([]byte(strconv.Itoa(i)), 42)
			s.Insert(h)
		}
		got := s.Estimate()
		lo, hi := uint64(float64(n)*0.95), uint64(float64(n)*1.05)
		if got < lo || got > hi {
			t.Fatalf("n=%d: estimate %d outside +-5%% of %d (want [%d,%d])", n, got, n, lo, hi)
		}
	}
}

func TestSketchIdempotentOnRepeat(t *testing.T) {
	s := New()
	h := hash.Sum32([]byte("same-key"), 42)
	s.Insert(h)
	before := s.Estimate()
	s.Insert(h)
	after := s.Estimate()
	if before != after {
		t.Fatalf("re-inserting the same hash should not change the estimate: %d != %d", before, after)
	}
}

func TestSketchMergeIsUnion(t *testing.T) {
	a, b := New(), New()
	for i := 0; i < 1000; i++ {
		a.Insert(hash.Sum32([]byte(strconv.Itoa(i)), 42))
	}
	for i := 500; i < 1500; i++ {
		b.Insert(hash.Sum32([]byte(strconv.Itoa(i)), 42))
	}
	if err := a.Merge(b); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	got := a.Estimate()
	if got < 1400 || got > 1600 {
		t.Fatalf("merged estimate %d should be near 1500 distinct keys", got)
	}
}

func TestSketchRegistersRoundTrip(t *testing.T) {
	s := New()
	for i := 0; i < 5000; i++ {
		s.Insert(hash.Sum32([]byte(strconv.Itoa(i)), 42))
	}
	data := append([]byte(nil), s.Registers()...)

	restored := New()
	if err := restored.SetRegisters(data); err != nil {
		t.Fatalf("SetRegisters failed: %v", err)
	}
	if !s.Equals(restored) {
		t.Fatalf("restored sketch should equal original")
	}
}

func TestSetRegistersWrongLength(t *testing.T) {
	s := New()
	if err := s.SetRegisters(make([]byte, 10)); err == nil {
		t.Fatalf("expected error for wrong-length register slice")
	}
}
