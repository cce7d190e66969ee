//go:build !unix

// Package mmbuf provides platform-specific helpers for memory-mapping a
// backing file read-write.
package mmbuf

import "os"

// Map reads the entire file when a shared writable mapping is not available.
// Mutations stay in memory and are not written back to the file.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}

// Sync is a no-op without a real mapping.
func Sync(_ []byte) error { return nil }
