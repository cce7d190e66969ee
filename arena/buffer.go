package arena

// Buffer is contiguous writable byte storage of known fixed length.
//
// An implementation must return a slice over the same backing array from
// every Bytes call for its entire lifetime; the allocator captures the slice
// once at construction and hands out sub-slices of it.
type Buffer interface {
	// Bytes returns the full backing byte region.
	Bytes() []byte

	// Len returns the fixed length of the region in bytes.
	Len() int
}

// SliceBuffer adapts a plain byte slice to the Buffer interface. The caller
// retains ownership of the underlying storage.
type SliceBuffer []byte

// NewBuffer returns a zero-filled SliceBuffer of the given size.
// Size <= 0 yields an empty buffer, which alloc.New will reject.
func NewBuffer(size int) SliceBuffer {
	if size <= 0 {
		return SliceBuffer{}
	}
	return make(SliceBuffer, size)
}

// Wrap adapts an existing slice without copying it.
func Wrap(b []byte) SliceBuffer { return SliceBuffer(b) }

func (b SliceBuffer) Bytes() []byte { return b }

func (b SliceBuffer) Len() int { return len(b) }
