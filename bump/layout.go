package bump

import (
	"unsafe"

	"github.com/joshuapare/sbfheap/internal/buf"
)

// Layout is the size and alignment of an allocation request.
type Layout struct {
	Size  uint64
	Align uint64
}

// NewLayout validates align and returns the layout.
func NewLayout(size, align uint64) (Layout, error) {
	if !buf.IsPow2(align) {
		return Layout{}, ErrBadAlign
	}
	return Layout{Size: size, Align: align}, nil
}

// LayoutOf returns the layout of T.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{Size: uint64(unsafe.Sizeof(v)), Align: uint64(unsafe.Alignof(v))}
}
