package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableInitializesWithOneFreeExtent(t *testing.T) {
	tab := newExtentTable(255)
	require.Len(t, tab.extents, 1)
	assert.Equal(t, 0, tab.extents[0].off)
	assert.Equal(t, 255, tab.extents[0].size)
	assert.False(t, tab.extents[0].used)
	assert.Equal(t, 255, tab.totalFree())
	assert.Equal(t, 0, tab.totalUsed())
}

func TestTableAllocateSplitsFreeExtent(t *testing.T) {
	tab := newExtentTable(255)
	require.NoError(t, tab.allocate(0, 100, 1))

	require.Len(t, tab.extents, 2)
	assert.Equal(t, extent{off: 0, size: 100, used: true, gen: 1}, tab.extents[0])
	assert.Equal(t, extent{off: 100, size: 155}, tab.extents[1])
	assert.Equal(t, 155, tab.totalFree())
	assert.Equal(t, 100, tab.totalUsed())
}

func TestTableAllocateExactFitFlipsInPlace(t *testing.T) {
	tab := newExtentTable(128)
	require.NoError(t, tab.allocate(0, 128, 7))

	require.Len(t, tab.extents, 1)
	assert.True(t, tab.extents[0].used)
	assert.Equal(t, uint64(7), tab.extents[0].gen)
	assert.Equal(t, 0, tab.totalFree())
}

func TestTableAllocateRejectsBadArguments(t *testing.T) {
	tab := newExtentTable(64)

	// Out-of-range index, zero size, oversized request, used extent.
	require.Error(t, tab.allocate(-1, 8, 1))
	require.Error(t, tab.allocate(5, 8, 1))
	require.Error(t, tab.allocate(0, 0, 1))
	require.Error(t, tab.allocate(0, 65, 1))

	require.NoError(t, tab.allocate(0, 64, 1))
	require.Error(t, tab.allocate(0, 8, 2))

	// Rejected operations must not have mutated anything.
	require.Len(t, tab.extents, 1)
	assert.Equal(t, 0, tab.totalFree())
}

func TestTableCandidatesAscendingOffset(t *testing.T) {
	// Final layout: free(0,32) used(32,16) free(48,64) used(112,16) free(128,128)
	tab := newExtentTable(256)
	require.NoError(t, tab.allocate(0, 32, 1))
	require.NoError(t, tab.allocate(1, 16, 2))
	require.NoError(t, tab.allocate(2, 64, 3))
	require.NoError(t, tab.allocate(3, 16, 4))
	require.NoError(t, tab.markFree(0))
	require.NoError(t, tab.markFree(2))

	var offs []int
	for i := range tab.candidates(20) {
		offs = append(offs, tab.extents[i].off)
	}
	assert.Equal(t, []int{0, 48, 128}, offs, "candidates must come in ascending offset order")

	// Nothing fits 200 bytes.
	for range tab.candidates(200) {
		t.Fatal("no candidate should fit 200 bytes")
	}
}

func TestTableLookup(t *testing.T) {
	tab := newExtentTable(256)
	require.NoError(t, tab.allocate(0, 64, 1))
	require.NoError(t, tab.allocate(1, 64, 2))

	assert.Equal(t, 0, tab.lookup(0))
	assert.Equal(t, 1, tab.lookup(64))
	assert.Equal(t, 2, tab.lookup(128))
	assert.Equal(t, -1, tab.lookup(32))
	assert.Equal(t, -1, tab.lookup(999))
}

func TestTableMarkFreeRejectsFreeExtent(t *testing.T) {
	tab := newExtentTable(64)
	require.Error(t, tab.markFree(0), "extent is already free")
	require.Error(t, tab.markFree(3), "index out of range")
}

func TestTableCoalesceRight(t *testing.T) {
	tab := newExtentTable(192)
	require.NoError(t, tab.allocate(0, 64, 1))  // used(64) free(128)
	require.NoError(t, tab.markFree(0))         // free(64) free(128) - transient
	i := tab.coalesce(0)

	assert.Equal(t, 0, i)
	require.Len(t, tab.extents, 1)
	assert.Equal(t, 192, tab.extents[0].size)
	assert.Equal(t, 192, tab.totalFree())
}

func TestTableCoalesceLeft(t *testing.T) {
	// Layout: free(64) used(64) used(64)
	tab := newExtentTable(192)
	require.NoError(t, tab.allocate(0, 64, 1))
	require.NoError(t, tab.allocate(1, 64, 2))
	require.NoError(t, tab.allocate(2, 64, 3))
	require.NoError(t, tab.markFree(0))

	require.NoError(t, tab.markFree(1))
	i := tab.coalesce(1)

	assert.Equal(t, 0, i)
	require.Len(t, tab.extents, 2)
	assert.Equal(t, extent{off: 0, size: 128}, tab.extents[0])
}

func TestTableCoalesceBothSides(t *testing.T) {
	// Layout: free(64) used(64) free(64)
	tab := newExtentTable(192)
	require.NoError(t, tab.allocate(0, 64, 1))
	require.NoError(t, tab.allocate(1, 64, 2))
	require.NoError(t, tab.allocate(2, 64, 3))
	require.NoError(t, tab.markFree(0))
	require.NoError(t, tab.markFree(2))

	require.NoError(t, tab.markFree(1))
	i := tab.coalesce(1)

	assert.Equal(t, 0, i)
	require.Len(t, tab.extents, 1)
	assert.Equal(t, extent{off: 0, size: 192}, tab.extents[0])
}

func TestTableCoalesceNoFreeNeighbors(t *testing.T) {
	// Layout: used(64) used(64) used(64)
	tab := newExtentTable(192)
	require.NoError(t, tab.allocate(0, 64, 1))
	require.NoError(t, tab.allocate(1, 64, 2))
	require.NoError(t, tab.allocate(2, 64, 3))

	require.NoError(t, tab.markFree(1))
	i := tab.coalesce(1)

	assert.Equal(t, 1, i)
	require.Len(t, tab.extents, 3)
}

func TestTableLargestFree(t *testing.T) {
	tab := newExtentTable(256)
	assert.Equal(t, 256, tab.largestFree())

	require.NoError(t, tab.allocate(0, 100, 1))
	assert.Equal(t, 156, tab.largestFree())

	require.NoError(t, tab.allocate(1, 156, 2))
	assert.Equal(t, 0, tab.largestFree())

	require.NoError(t, tab.markFree(0))
	tab.coalesce(0)
	assert.Equal(t, 100, tab.largestFree())
}
