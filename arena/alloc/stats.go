package alloc

// Stats is a point-in-time snapshot of the extent table.
type Stats struct {
	FreeBytes   int // total free space
	UsedBytes   int // total allocated space
	LargestFree int // largest contiguous free extent
	FreeExtents int // number of free extents
	UsedExtents int // number of live allocations
}

// Counters holds cumulative operation counts since construction.
type Counters struct {
	AllocCalls   int64 // total Alloc() calls
	FreeCalls    int64 // total Free() calls
	FailedAllocs int64 // Alloc() calls that returned ErrNoSpace
	Splits       int64 // allocations that split a larger free extent
	Merges       int64 // extents absorbed by coalescing
}

// Stats walks the extent table once under a read lock.
// FreeBytes + UsedBytes always equals Len().
func (a *Allocator) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := Stats{
		FreeBytes: a.tab.totalFree(),
		UsedBytes: a.tab.totalUsed(),
	}
	for _, e := range a.tab.extents {
		if e.used {
			s.UsedExtents++
			continue
		}
		s.FreeExtents++
		if e.size > s.LargestFree {
			s.LargestFree = e.size
		}
	}
	return s
}

// Counters returns the cumulative operation counters.
func (a *Allocator) Counters() Counters {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.counters
}
