package global

import (
	"fmt"
	"reflect"
	"unsafe"
)

const (
	flagOffset = 0
	// slotAlign keeps the bump region after the slot 8-byte aligned.
	slotAlign = 8
)

// Slot is the heap-resident storage for a value of type G.
type Slot[G any] struct {
	raw     []byte
	payload int
	size    int
}

// Reserve lays out a slot for G at the start of heap and returns it together
// with the number of bytes it occupies. The caller must hand only
// heap[n:] to the allocator.
//
// Reserve starts a new invocation: the slot is marked uninitialized, so the
// first Get zeroes whatever an earlier invocation left in heap.
func Reserve[G any](heap []byte) (*Slot[G], int, error) {
	t := reflect.TypeFor[G]()
	if hasPointers(t) {
		return nil, 0, fmt.Errorf("%w: %s", ErrPointerful, t)
	}
	size := int(t.Size())
	align := t.Align()

	if len(heap) == 0 {
		return nil, 0, ErrTooLarge
	}
	host := uintptr(unsafe.Pointer(unsafe.SliceData(heap)))
	payload := int(alignUp(host+1, uintptr(align)) - host)
	// Even a zero-size G gets one addressable byte so Get can take &raw[payload].
	end := payload + max(size, 1)
	total := int(alignUp(uintptr(end), slotAlign))
	if total > len(heap) {
		return nil, 0, fmt.Errorf("%w: %s needs %d bytes, heap has %d", ErrTooLarge, t, total, len(heap))
	}
	s := &Slot[G]{raw: heap[:total:total], payload: payload, size: size}
	s.raw[flagOffset] = 0
	return s, total, nil
}

// Get returns the hosted value, zero-initializing it on the first call.
func (s *Slot[G]) Get() *G {
	if s.raw[flagOffset] == 0 {
		clear(s.raw[s.payload : s.payload+s.size])
		s.raw[flagOffset] = 1
	}
	return (*G)(unsafe.Pointer(&s.raw[s.payload]))
}

// Initialized reports whether Get has been called.
func (s *Slot[G]) Initialized() bool {
	return s.raw[flagOffset] != 0
}

// Len returns the number of heap bytes the slot occupies.
func (s *Slot[G]) Len() int { return len(s.raw) }

func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

// hasPointers reports whether values of t contain anything the garbage
// collector would need to trace.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
