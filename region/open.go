package region

import (
	"context"
	"fmt"
)

// Open returns a region of n bytes from the named backend.
func Open(ctx context.Context, kind Kind, n int) (Memory, error) {
	var (
		mem Memory
		err error
	)
	switch kind {
	case KindSlice, "":
		var s *Slice
		s, err = NewSlice(n)
		mem = s
	case KindMapped:
		var m *Mapped
		m, err = NewMapped(n)
		mem = m
	case KindWasm:
		var w *Wasm
		w, err = NewWasm(ctx, n)
		mem = w
	default:
		return nil, fmt.Errorf("region: unknown backend %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return mem, nil
}
