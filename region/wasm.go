package region

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// wasmPageSize is the WebAssembly linear memory page size.
const wasmPageSize = 64 * 1024

// Wasm is Memory backed by the linear memory of a wazero module instance. The
// module declares nothing but a fixed-size memory, so the heap cannot grow
// past what was requested.
type Wasm struct {
	rt  wazero.Runtime
	mod api.Module
	b   []byte
}

// NewWasm instantiates a module with enough 64 KiB pages for n bytes and
// returns a view of its first n bytes.
func NewWasm(ctx context.Context, n int) (*Wasm, error) {
	if n <= 0 || uint64(n) > math.MaxUint32 {
		return nil, ErrBadSize
	}
	pages := uint32((uint64(n) + wasmPageSize - 1) / wasmPageSize)

	rt := wazero.NewRuntime(ctx)
	mod, err := rt.Instantiate(ctx, memoryModule(pages))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("region: instantiate wasm memory: %w", err)
	}
	b, ok := mod.Memory().Read(0, uint32(n))
	if !ok {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("region: wasm memory smaller than %d bytes: %w", n, ErrBadSize)
	}
	return &Wasm{rt: rt, mod: mod, b: b}, nil
}

// Bytes implements Memory. The slice is a view of the module's linear memory.
func (w *Wasm) Bytes() []byte { return w.b }

// Pages reports the size of the linear memory in wasm pages.
func (w *Wasm) Pages() uint32 {
	return w.mod.Memory().Size() / wasmPageSize
}

// Close shuts the runtime down, releasing the linear memory.
func (w *Wasm) Close() error {
	if w.rt == nil {
		return nil
	}
	err := w.rt.Close(context.Background())
	w.rt, w.mod, w.b = nil, nil, nil
	return err
}

var _ Memory = (*Wasm)(nil)

// memoryModule encodes a binary module that exports one memory of exactly
// pages pages (minimum and maximum are equal).
func memoryModule(pages uint32) []byte {
	mod := []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}

	// memory section: one memory, limits flag 1 (min and max present)
	mem := []byte{0x01, 0x01}
	mem = appendULEB128(mem, pages)
	mem = appendULEB128(mem, pages)
	mod = appendSection(mod, 0x05, mem)

	// export section: "memory" -> memory index 0
	exp := []byte{0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00}
	return appendSection(mod, 0x07, exp)
}

func appendSection(b []byte, id byte, body []byte) []byte {
	b = append(b, id)
	b = appendULEB128(b, uint32(len(body)))
	return append(b, body...)
}

func appendULEB128(b []byte, v uint32) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		b = append(b, c)
		if v == 0 {
			return b
		}
	}
}
