package bump

import "errors"

var (
	// ErrOutOfMemory indicates the request does not fit in the heap.
	ErrOutOfMemory = errors.New("bump: out of memory")

	// ErrBadAlign indicates an alignment that is not a power of two.
	ErrBadAlign = errors.New("bump: alignment must be a power of two")

	// ErrBadRegion indicates an unusable heap base or length.
	ErrBadRegion = errors.New("bump: invalid heap region")
)
