package alloc

import (
	"iter"
	"slices"
	"sort"
)

// extent is one contiguous byte range [off, off+size) within the buffer.
type extent struct {
	off  int
	size int
	used bool
	gen  uint64 // generation of the occupying allocation; 0 while free
}

// extentTable is the ordered record of free and used extents. The extents
// partition [0, size) exactly: sorted by offset, non-overlapping, gap-free,
// every size > 0. After coalescing, no two adjacent extents are both free.
//
// The table has no locking of its own; Allocator serializes access.
type extentTable struct {
	extents   []extent
	size      int
	freeBytes int
}

// newExtentTable returns a table holding a single free extent spanning the
// whole buffer.
func newExtentTable(size int) *extentTable {
	return &extentTable{
		extents:   []extent{{off: 0, size: size}},
		size:      size,
		freeBytes: size,
	}
}

// candidates yields, in ascending offset order, the indexes of the free
// extents large enough to hold need bytes.
func (t *extentTable) candidates(need int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, e := range t.extents {
			if !e.used && e.size >= need {
				if !yield(i) {
					return
				}
			}
		}
	}
}

// lookup returns the index of the extent starting exactly at off, or -1.
func (t *extentTable) lookup(off int) int {
	i := sort.Search(len(t.extents), func(i int) bool {
		return t.extents[i].off >= off
	})
	if i < len(t.extents) && t.extents[i].off == off {
		return i
	}
	return -1
}

// allocate consumes need bytes from the front of the free extent at index i,
// tagging them used with generation gen. A remainder, if any, stays free at
// index i+1. The table is untouched when the arguments are invalid.
func (t *extentTable) allocate(i, need int, gen uint64) error {
	if i < 0 || i >= len(t.extents) || need <= 0 {
		return ErrInvalidSize
	}
	e := t.extents[i]
	if e.used || need > e.size {
		return ErrInvalidSize
	}

	if need == e.size {
		// Exact fit: the extent simply flips to used.
		t.extents[i].used = true
		t.extents[i].gen = gen
	} else {
		rem := extent{off: e.off + need, size: e.size - need}
		t.extents[i] = extent{off: e.off, size: need, used: true, gen: gen}
		t.extents = slices.Insert(t.extents, i+1, rem)
	}
	t.freeBytes -= need
	return nil
}

// markFree flips the used extent at index i back to free. Coalescing is the
// caller's next step.
func (t *extentTable) markFree(i int) error {
	if i < 0 || i >= len(t.extents) || !t.extents[i].used {
		return ErrBadHandle
	}
	t.extents[i].used = false
	t.extents[i].gen = 0
	t.freeBytes += t.extents[i].size
	return nil
}

// coalesce merges the free extent at index i with its free neighbors and
// returns the index of the merged extent. Each neighbor is checked once;
// the table never holds runs of free extents longer than the one being
// repaired here.
func (t *extentTable) coalesce(i int) int {
	// Merge right neighbor into extents[i].
	if i+1 < len(t.extents) && !t.extents[i+1].used {
		t.extents[i].size += t.extents[i+1].size
		t.extents = slices.Delete(t.extents, i+1, i+2)
	}
	// Merge extents[i] into left neighbor.
	if i > 0 && !t.extents[i-1].used {
		t.extents[i-1].size += t.extents[i].size
		t.extents = slices.Delete(t.extents, i, i+1)
		i--
	}
	return i
}

func (t *extentTable) totalFree() int { return t.freeBytes }

func (t *extentTable) totalUsed() int { return t.size - t.freeBytes }

func (t *extentTable) largestFree() int {
	largest := 0
	for _, e := range t.extents {
		if !e.used && e.size > largest {
			largest = e.size
		}
	}
	return largest
}
