//go:build unix

package mmbuf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMapReadWriteUnix(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "test.bin")
	if err := os.WriteFile(path, make([]byte, 8), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, cleanup, err := Map(path)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(data) != 8 {
		t.Fatalf("len mismatch: got %d want 8", len(data))
	}

	// Write through the mapping and flush.
	copy(data, []byte{0xde, 0xad, 0xbe, 0xef})
	if err := Sync(data); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if cleanupErr := cleanup(); cleanupErr != nil {
		t.Fatalf("cleanup: %v", cleanupErr)
	}

	// The write must be visible in the file itself.
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0}
	for i, b := range want {
		if got[i] != b {
			t.Fatalf("byte %d mismatch: got 0x%x want 0x%x", i, got[i], b)
		}
	}
}

func TestMapZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, cleanup, err := Map(path)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected zero-length mapping, got %d", len(data))
	}
	if cleanup == nil {
		t.Fatalf("expected cleanup function")
	}
	if cleanupErr := cleanup(); cleanupErr != nil {
		t.Fatalf("cleanup: %v", cleanupErr)
	}
}

func TestMapMissingFile(t *testing.T) {
	_, _, err := Map(filepath.Join(t.TempDir(), "missing.bin"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
