package freqtable

import (
	"fmt"
	"testing"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	c, _ := New(2048)
	for i := 0; i < 1000; i++ {
		mustIncrement(t, c, fmt.Sprintf("key-%d", i), int64(i%7+1))
	}
	mustIncrement(t, c, "key-0", 5)
	if err := c.Delete([]byte("key-1")); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	blob, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	restored, err := Restore(c.Buckets(), blob)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if restored.Total() != c.Total() {
		t.Fatalf("total mismatch: got %d, want %d", restored.Total(), c.Total())
	}
	if restored.Buckets() != c.Buckets() {
		t.Fatalf("buckets mismatch: got %d, want %d", restored.Buckets(), c.Buckets())
	}
	if restored.size != c.size {
		t.Fatalf("size mismatch: got %d, want %d", restored.size, c.size)
	}
	if restored.maxPrune != c.maxPrune {
		t.Fatalf("maxPrune mismatch: got %d, want %d", restored.maxPrune, c.maxPrune)
	}

	for i := 0; i < 1000; i++ {
		key := fmt.Sprintf("key-%d", i)
		if got, want := restored.Get([]byte(key)), c.Get([]byte(key)); got != want {
			t.Fatalf("get(%q) mismatch after restore: got %d, want %d", key, got, want)
		}
	}
}

func TestSnapshotRestorePreservesHistogram(t *testing.T) {
	c, _ := New(64)
	for i := 0; i < 10; i++ {
		mustIncrement(t, c, fmt.Sprintf("a%d", i), int64(i*3))
	}
	blob, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	restored, err := Restore(c.Buckets(), blob)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.histo != c.histo {
		t.Fatalf("histogram mismatch after restore")
	}
}

func TestRestoreRejectsTruncatedSnapshot(t *testing.T) {
	c, _ := New(8)
	mustIncrement(t, c, "a", 1)
	blob, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	_, err = Restore(c.Buckets(), blob[:len(blob)-20])
	if err == nil {
		t.Fatalf("expected an error restoring a truncated snapshot")
	}
}

func TestRestoreRejectsWrongBucketCount(t *testing.T) {
	c, _ := New(64)
	mustIncrement(t, c, "a", 1)
	blob, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	_, err = Restore(128, blob)
	if err == nil {
		t.Fatalf("expected an error restoring with a mismatched bucket count")
	}
}

func TestSnapshotAfterPruneRoundTrips(t *testing.T) {
	c, _ := New(8)
	for i := 0; i < 12; i++ {
		mustIncrement(t, c, fmt.Sprintf("k%d", i), 1)
	}
	blob, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	restored, err := Restore(c.Buckets(), blob)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.Cardinality() != c.Cardinality() {
		t.Fatalf("cardinality mismatch after restore: got %d, want %d", restored.Cardinality(), c.Cardinality())
	}
}
