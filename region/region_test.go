package region

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackends(t *testing.T) {
	for _, kind := range []Kind{KindSlice, KindMapped, KindWasm} {
		t.Run(string(kind), func(t *testing.T) {
			const n = 40 * 1024
			mem, err := Open(context.Background(), kind, n)
			require.NoError(t, err)

			b := mem.Bytes()
			require.Len(t, b, n)
			for i, v := range b {
				if v != 0 {
					t.Fatalf("byte %d not zeroed: %d", i, v)
				}
			}

			// Memory must be writable end to end.
			b[0] = 0xAA
			b[n-1] = 0x55
			assert.Equal(t, byte(0xAA), mem.Bytes()[0])
			assert.Equal(t, byte(0x55), mem.Bytes()[n-1])

			require.NoError(t, mem.Close())
			require.NoError(t, mem.Close(), "second close is a no-op")
		})
	}
}

func TestOpen_BadInput(t *testing.T) {
	_, err := Open(context.Background(), "tape", 1024)
	assert.Error(t, err)

	for _, kind := range []Kind{KindSlice, KindMapped, KindWasm} {
		_, err := Open(context.Background(), kind, 0)
		assert.ErrorIs(t, err, ErrBadSize, "backend %s", kind)
	}
}

func TestWasm_Pages(t *testing.T) {
	w, err := NewWasm(context.Background(), 3*wasmPageSize+1)
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, uint32(4), w.Pages())
	assert.Len(t, w.Bytes(), 3*wasmPageSize+1)
}

func TestAppendULEB128(t *testing.T) {
	assert.Equal(t, []byte{0x00}, appendULEB128(nil, 0))
	assert.Equal(t, []byte{0x7f}, appendULEB128(nil, 127))
	assert.Equal(t, []byte{0x80, 0x01}, appendULEB128(nil, 128))
	assert.Equal(t, []byte{0xe5, 0x8e, 0x26}, appendULEB128(nil, 624485))
}
