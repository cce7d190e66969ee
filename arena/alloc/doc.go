// Package alloc carves fixed-size allocations out of one caller-supplied
// contiguous buffer and returns them to a free pool on release.
//
// # Overview
//
// The allocator keeps an extent table: an ordered record of free and used
// byte ranges that exactly partitions the buffer. Allocation is first-fit by
// ascending offset with split-on-allocate; release merges the freed extent
// with any adjacent free neighbors, so no two adjacent extents are ever both
// free after an operation returns. The host heap is never involved for the
// allocated storage itself.
//
// # Usage Example
//
//	buf := arena.NewBuffer(1 << 20)
//	a, err := alloc.New(buf, nil)
//	if err != nil {
//	    return err
//	}
//
//	h, view, err := a.Alloc(256)
//	if err != nil {
//	    return err
//	}
//
//	// Write into the allocation...
//	copy(view, payload)
//
//	// Later, return it to the free pool
//	err = a.Free(h)
//
// # Placement
//
// First-fit by ascending offset: the lowest-offset free extent large enough
// for the (alignment-rounded) request is chosen and split. This is
// deterministic, packs allocations toward the low end of the buffer, and
// gives the coalescer merge opportunities early.
//
// # Alignment
//
// Options.Alignment rounds every requested size up to a power-of-two unit
// before placement. The default unit is 1 (no rounding). The view returned
// by Alloc covers the rounded size.
//
// # Handles
//
// Alloc returns an opaque Handle along with the writable view. The Handle
// records the extent and a generation number; Free rejects handles that are
// stale (already freed, or freed and the range reissued) or that came from a
// different Allocator instance. A rejected Free leaves the table untouched.
//
// # Thread Safety
//
// One Allocator instance may be used from many goroutines. Alloc and Free
// serialize on a writer lock held for the whole mutation including
// coalescing; introspection (Stats, FreeBytes, ...) takes a shared reader
// lock and may run concurrently with other readers. There is no lock
// upgrade and no re-entrancy: calling back into the same instance from a
// goroutine that is inside one of its operations deadlocks.
//
// The buffer's byte contents are NOT guarded. Concurrent writers into the
// same allocation, or into memory after it was freed and reissued, are
// caller bugs.
//
// Running two Allocator instances over the same buffer is unsupported: the
// instances do not share a lock or a table and will hand out overlapping
// views.
//
// # Related Packages
//
//   - github.com/joshuapare/arenakit/arena: the Buffer storage abstraction
package alloc
