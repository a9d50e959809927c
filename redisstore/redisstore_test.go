package redisstore

import (
	"bytes"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("could not start miniredis: %v", err)
	}
	defer mr.Close()

	redisUri := "redis://" + mr.Addr()
	connOptions, err := ParseURI(redisUri)
	if err != nil {
		t.Fatalf("ParseURI failed: %v", err)
	}
	client := NewClient(*connOptions)
	ctx := context.Background()

	snapshot := []byte("a freqtable snapshot blob")
	if err := Save(ctx, client, "counter:1", snapshot); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(ctx, client, "counter:1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(got, snapshot) {
		t.Fatalf("loaded snapshot %v, want %v", got, snapshot)
	}
}

func TestLoadMissingKey(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("could not start miniredis: %v", err)
	}
	defer mr.Close()

	redisUri := "redis://" + mr.Addr()
	connOptions, _ := ParseURI(redisUri)
	client := NewClient(*connOptions)

	if _, err := Load(context.Background(), client, "does-not-exist"); err == nil {
		t.Fatalf("expected error loading a missing key")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("could not start miniredis: %v", err)
	}
	defer mr.Close()

	redisUri := "redis://" + mr.Addr()
	connOptions, _ := ParseURI(redisUri)
	client := NewClient(*connOptions)
	ctx := context.Background()

	if err := Delete(ctx, client, "never-saved"); err != nil {
		t.Fatalf("deleting a missing key should not error, got: %v", err)
	}

	_ = Save(ctx, client, "counter:2", []byte("x"))
	if err := Delete(ctx, client, "counter:2"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := Load(ctx, client, "counter:2"); err == nil {
		t.Fatalf("expected key to be gone after Delete")
	}
}

func TestParseURIRejectsBadScheme(t *testing.T) {
	if _, err := ParseURI("http://localhost:6379"); err == nil {
		t.Fatalf("expected error for non-redis scheme")
	}
}
