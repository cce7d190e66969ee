package alloc

// Handle identifies one live allocation. It is issued by Alloc and must be
// presented unchanged to Free. The zero Handle is never live.
type Handle struct {
	off   int
	size  int
	gen   uint64
	owner *Allocator
}

// Offset returns the allocation's byte offset within the buffer.
func (h Handle) Offset() int { return h.off }

// Size returns the allocation's size in bytes after alignment rounding.
func (h Handle) Size() int { return h.size }

// Valid reports whether h was issued by an Allocator. It does not check
// whether the allocation is still live; Free does that under the lock.
func (h Handle) Valid() bool { return h.owner != nil }

// Options configures an Allocator. Pass nil to New for defaults.
type Options struct {
	// Alignment is the allocation unit in bytes. Every requested size is
	// rounded up to the nearest multiple before placement. Must be a power
	// of two. The default is 1 (no rounding).
	Alignment int
}

// DefaultOptions is used when New receives a nil Options.
var DefaultOptions = Options{Alignment: 1}
