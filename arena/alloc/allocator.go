package alloc

import (
	"fmt"
	"os"
	"sync"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/buf"
)

// Runtime debug flag for allocation logging - controlled by ARENA_LOG_ALLOC env var.
var logAlloc = os.Getenv("ARENA_LOG_ALLOC") != ""

// Allocator carves allocations out of one arena.Buffer. Construct with New;
// the zero value is not usable.
//
// All methods are safe for concurrent use. See the package documentation for
// the locking discipline and its deadlock hazards.
type Allocator struct {
	b     arena.Buffer
	data  []byte
	align int

	mu  sync.RWMutex
	tab *extentTable
	gen uint64

	counters Counters
}

// New builds an Allocator over b. The whole buffer starts as one free
// extent; b's byte contents are left untouched. The caller retains
// ownership of the storage and must keep it alive for the allocator's
// lifetime.
//
// Operating two allocators over the same buffer is unsupported.
func New(b arena.Buffer, opts *Options) (*Allocator, error) {
	if opts == nil {
		opts = &DefaultOptions
	}
	if b == nil || b.Len() == 0 {
		return nil, ErrInvalidBuffer
	}
	data := b.Bytes()
	if len(data) != b.Len() {
		return nil, fmt.Errorf("%w: Bytes() length %d != Len() %d",
			ErrInvalidBuffer, len(data), b.Len())
	}
	align := opts.Alignment
	if align == 0 {
		align = 1
	}
	if !buf.IsPowerOfTwo(align) {
		return nil, fmt.Errorf("%w: got %d", ErrBadAlign, align)
	}

	return &Allocator{
		b:     b,
		data:  data,
		align: align,
		tab:   newExtentTable(len(data)),
	}, nil
}

// Len returns the fixed length of the underlying buffer.
func (a *Allocator) Len() int { return len(a.data) }

// Alignment returns the configured allocation unit.
func (a *Allocator) Alignment() int { return a.align }

// firstFit returns the index of the lowest-offset free extent that can hold
// need bytes, or -1 when none fits.
func firstFit(t *extentTable, need int) int {
	for i := range t.candidates(need) {
		return i
	}
	return -1
}

// Alloc reserves size bytes (rounded up to the alignment unit) and returns a
// Handle plus the writable view over exactly the reserved range. No other
// live handle's view overlaps it. The bytes are returned as-is, not zeroed.
//
// Fails with ErrInvalidSize when size is not positive and ErrNoSpace when no
// free extent is large enough; the table is unchanged on failure.
func (a *Allocator) Alloc(size int) (Handle, []byte, error) {
	if size <= 0 {
		return Handle{}, nil, ErrInvalidSize
	}
	need, ok := buf.RoundUp(size, a.align)
	if !ok {
		return Handle{}, nil, fmt.Errorf("%w: size %d overflows alignment rounding",
			ErrInvalidSize, size)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.counters.AllocCalls++

	// Oversized requests can never fit; skip the scan.
	if need > a.tab.size {
		a.counters.FailedAllocs++
		return Handle{}, nil, fmt.Errorf("%w: need %d, buffer %d",
			ErrNoSpace, need, a.tab.size)
	}

	i := firstFit(a.tab, need)
	if i < 0 {
		a.counters.FailedAllocs++
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[ALLOC] no fit: need=%d free=%d largest=%d\n",
				need, a.tab.totalFree(), a.tab.largestFree())
		}
		return Handle{}, nil, fmt.Errorf("%w: need %d, largest free %d",
			ErrNoSpace, need, a.tab.largestFree())
	}

	off := a.tab.extents[i].off
	exact := a.tab.extents[i].size == need

	a.gen++
	if err := a.tab.allocate(i, need, a.gen); err != nil {
		return Handle{}, nil, err
	}
	if !exact {
		a.counters.Splits++
	}

	view, ok := buf.Slice(a.data, off, need)
	if !ok {
		// The partition invariant guarantees in-bounds extents.
		panic(fmt.Sprintf("alloc: extent [%d,%d) outside buffer of %d bytes",
			off, off+need, len(a.data)))
	}

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] off=%d size=%d (requested %d)\n", off, need, size)
	}

	return Handle{off: off, size: need, gen: a.gen, owner: a}, view, nil
}

// Free returns h's extent to the free pool and merges it with any adjacent
// free extents before releasing the lock. The extent's byte contents are
// left as-is.
//
// Fails with ErrBadHandle when h is zero, came from another allocator, or no
// longer denotes a live allocation (double free); the table is unchanged.
func (a *Allocator) Free(h Handle) error {
	if h.owner != a {
		return fmt.Errorf("%w: foreign or zero handle", ErrBadHandle)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.counters.FreeCalls++

	i := a.tab.lookup(h.off)
	if i < 0 {
		return ErrBadHandle
	}
	e := a.tab.extents[i]
	if !e.used || e.size != h.size || e.gen != h.gen {
		// Already freed, or freed and the range reissued.
		return ErrBadHandle
	}

	if err := a.tab.markFree(i); err != nil {
		return err
	}
	before := len(a.tab.extents)
	a.tab.coalesce(i)
	a.counters.Merges += int64(before - len(a.tab.extents))

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[FREE] off=%d size=%d\n", h.off, h.size)
	}
	return nil
}

// View re-derives the writable view for a live handle. Useful when the slice
// returned by Alloc was not kept.
func (a *Allocator) View(h Handle) ([]byte, error) {
	if h.owner != a {
		return nil, fmt.Errorf("%w: foreign or zero handle", ErrBadHandle)
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	i := a.tab.lookup(h.off)
	if i < 0 {
		return nil, ErrBadHandle
	}
	e := a.tab.extents[i]
	if !e.used || e.size != h.size || e.gen != h.gen {
		return nil, ErrBadHandle
	}
	view, _ := buf.Slice(a.data, h.off, h.size)
	return view, nil
}

// FreeBytes returns the total free space in the buffer.
func (a *Allocator) FreeBytes() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tab.totalFree()
}

// UsedBytes returns the total allocated space in the buffer.
func (a *Allocator) UsedBytes() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tab.totalUsed()
}

// LargestFree returns the size of the largest contiguous free extent. An
// allocation of this size is the biggest that can currently succeed.
func (a *Allocator) LargestFree() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tab.largestFree()
}

// String returns a one-line summary of the allocator state.
func (a *Allocator) String() string {
	s := a.Stats()
	return fmt.Sprintf("Allocator(len=%d free=%d used=%d largest=%d extents=%d)",
		a.Len(), s.FreeBytes, s.UsedBytes, s.LargestFree,
		s.FreeExtents+s.UsedExtents)
}
