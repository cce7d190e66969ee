package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/arena"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestAllocator builds an allocator over a fresh zeroed buffer.
func newTestAllocator(t testing.TB, size int) *Allocator {
	t.Helper()
	a, err := New(arena.NewBuffer(size), nil)
	require.NoError(t, err)
	return a
}

// newAlignedTestAllocator builds an allocator with an explicit alignment unit.
func newAlignedTestAllocator(t testing.TB, size, align int) *Allocator {
	t.Helper()
	a, err := New(arena.NewBuffer(size), &Options{Alignment: align})
	require.NoError(t, err)
	return a
}

// requireTableInvariants validates the structural invariants of the extent
// table:
//
//  1. Partition: extents are sorted, gap-free, and cover [0, Len) exactly
//  2. Every extent has size > 0
//  3. No two adjacent extents are both free
//  4. The freeBytes counter matches the sum of free extent sizes
func requireTableInvariants(t testing.TB, a *Allocator) {
	t.Helper()

	a.mu.RLock()
	defer a.mu.RUnlock()

	tab := a.tab
	require.NotEmpty(t, tab.extents, "table must always hold at least one extent")

	pos := 0
	freeSum := 0
	prevFree := false
	for i, e := range tab.extents {
		require.Equal(t, pos, e.off, "extent %d: gap or overlap at offset %d", i, e.off)
		require.Positive(t, e.size, "extent %d: non-positive size", i)
		if !e.used {
			require.False(t, prevFree && i > 0, "extents %d and %d are both free", i-1, i)
			freeSum += e.size
		}
		prevFree = !e.used
		pos += e.size
	}
	require.Equal(t, tab.size, pos, "extents must cover the whole buffer")
	require.Equal(t, tab.freeBytes, freeSum, "freeBytes counter out of sync")
}

// freeExtentsOf returns the (offset, size) pairs of all free extents in
// ascending offset order.
func freeExtentsOf(a *Allocator) [][2]int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out [][2]int
	for _, e := range a.tab.extents {
		if !e.used {
			out = append(out, [2]int{e.off, e.size})
		}
	}
	return out
}
