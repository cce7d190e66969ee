package alloc

import "errors"

var (
	// ErrInvalidBuffer indicates a nil or zero-length buffer at construction.
	ErrInvalidBuffer = errors.New("alloc: buffer must be non-empty")

	// ErrBadAlign indicates an alignment unit that is not a power of two.
	ErrBadAlign = errors.New("alloc: alignment must be a power of two")

	// ErrInvalidSize indicates a non-positive or overflowing allocation size.
	ErrInvalidSize = errors.New("alloc: size must be positive")

	// ErrNoSpace indicates that no free extent is large enough for the request.
	ErrNoSpace = errors.New("alloc: no free extent large enough")

	// ErrBadHandle indicates a handle that does not denote a live allocation
	// of this allocator: zero, foreign, already freed, or stale.
	ErrBadHandle = errors.New("alloc: handle does not denote a live allocation")
)
