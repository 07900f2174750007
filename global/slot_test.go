package global

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sbfheap/bump"
	"github.com/joshuapare/sbfheap/internal/format"
)

type counters struct {
	Calls   uint32
	Flags   [3]bool
	Total   uint64
	Samples [4]int16
}

func TestSlot_SameStorageAcrossCalls(t *testing.T) {
	heap := make([]byte, 1024)
	slot, n, err := Reserve[counters](heap)
	require.NoError(t, err)
	assert.Zero(t, n%8)
	assert.False(t, slot.Initialized())

	first := slot.Get()
	assert.True(t, slot.Initialized())
	first.Calls = 7
	first.Total = 1 << 40

	second := slot.Get()
	assert.Same(t, first, second)
	assert.Equal(t, uint32(7), second.Calls)
	assert.Equal(t, uint64(1<<40), second.Total)
}

func TestSlot_ZeroesOnFirstAccessOnly(t *testing.T) {
	heap := make([]byte, 256)
	for i := range heap {
		heap[i] = 0xEE
	}
	heap[0] = 0 // flag byte: not yet initialized

	slot, _, err := Reserve[counters](heap)
	require.NoError(t, err)

	g := slot.Get()
	assert.Equal(t, counters{}, *g, "first access sees all-zero bytes")

	raw := unsafe.Slice((*byte)(unsafe.Pointer(g)), unsafe.Sizeof(*g))
	for i, b := range raw {
		assert.Zero(t, b, "payload byte %d", i)
	}

	g.Samples[2] = -5
	assert.Equal(t, int16(-5), slot.Get().Samples[2], "second access does not re-zero")
}

func TestReserve_ResetsPreviousInvocation(t *testing.T) {
	heap := make([]byte, 256)
	slot, _, err := Reserve[counters](heap)
	require.NoError(t, err)
	slot.Get().Calls = 7
	require.True(t, slot.Initialized())

	again, _, err := Reserve[counters](heap)
	require.NoError(t, err)
	assert.False(t, again.Initialized())
	assert.Equal(t, counters{}, *again.Get())
}

func TestSlot_PayloadAligned(t *testing.T) {
	heap := make([]byte, 128)
	slot, n, err := Reserve[uint64](heap)
	require.NoError(t, err)
	p := uintptr(unsafe.Pointer(slot.Get()))
	assert.Zero(t, p%unsafe.Alignof(uint64(0)))
	assert.Equal(t, n, slot.Len())
	assert.GreaterOrEqual(t, n, 9, "flag byte plus the payload")
}

func TestSlot_ZeroSizedState(t *testing.T) {
	slot, n, err := Reserve[struct{}](make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.NotNil(t, slot.Get())
}

func TestReserve_Errors(t *testing.T) {
	_, _, err := Reserve[[64]uint64](make([]byte, 128))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, _, err = Reserve[uint8](nil)
	assert.ErrorIs(t, err, ErrTooLarge)

	type withPointer struct {
		N    int
		Name string
	}
	_, _, err = Reserve[withPointer](make([]byte, 128))
	assert.ErrorIs(t, err, ErrPointerful)

	_, _, err = Reserve[[]byte](make([]byte, 128))
	assert.ErrorIs(t, err, ErrPointerful)

	_, _, err = Reserve[[2]*int](make([]byte, 128))
	assert.ErrorIs(t, err, ErrPointerful)

	_, _, err = Reserve[[0]*int](make([]byte, 128))
	assert.NoError(t, err, "empty arrays hold nothing to trace")
}

// Allocation traffic in the remaining heap never touches the slot.
func TestSlot_DisjointFromAllocator(t *testing.T) {
	heap := make([]byte, 4096)
	slot, n, err := Reserve[counters](heap)
	require.NoError(t, err)

	g := slot.Get()
	g.Calls = 42

	base := format.HeapStartAddress + uint64(n)
	a, err := bump.New(base, heap[n:], uint64(len(heap)-n), bump.Options{})
	require.NoError(t, err)

	for {
		p, err := a.Alloc(64, 8)
		if err != nil {
			break
		}
		b := a.Bytes(p, 64)
		for i := range b {
			b[i] = 0xFF
		}
	}
	assert.Equal(t, uint32(42), slot.Get().Calls)
	assert.Zero(t, slot.Get().Total)
}
