// Package arena defines the storage abstraction the allocator operates on.
//
// # Overview
//
// A Buffer is contiguous writable byte storage of known fixed length. The
// caller owns the storage; arenakit only hands out non-overlapping views into
// it. Two implementations ship with the package:
//
//   - SliceBuffer: a plain in-process byte slice
//   - MappedBuffer: a read-write shared mapping of a pre-sized file
//
// # Obtaining a Buffer
//
//	buf := arena.NewBuffer(1 << 20) // zero-filled 1MB slice
//
// or over existing storage:
//
//	buf := arena.Wrap(segment)
//
// or over a file-backed region:
//
//	mb, err := arena.MapFile("/dev/shm/region")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mb.Close()
//
// Allocation over a Buffer is done by the alloc package:
//
//	a, err := alloc.New(buf, nil)
//
// # Related Packages
//
//   - github.com/joshuapare/arenakit/arena/alloc: extent allocation over a Buffer
package arena
