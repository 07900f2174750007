package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/joshuapare/sbfheap/bump"
	"github.com/joshuapare/sbfheap/global"
	"github.com/joshuapare/sbfheap/heapsize"
	"github.com/joshuapare/sbfheap/internal/format"
	"github.com/joshuapare/sbfheap/internal/logger"
	"github.com/joshuapare/sbfheap/region"
)

// Invocation is the state of one program invocation.
type Invocation[G any] struct {
	// Input is the raw entrypoint input, still serialized.
	Input []byte
	// Scan is how the heap length was determined.
	Scan heapsize.Result
	// Heap is the invocation's allocator.
	Heap *bump.Allocator

	slot *global.Slot[G]
}

// Global returns the invocation's global state.
func (inv *Invocation[G]) Global() *G {
	return inv.slot.Get()
}

var (
	running atomic.Bool
	// current and currentHeap are only written by the goroutine that won
	// running.
	current     any
	currentHeap *bump.Allocator
)

// Run brings up the heap for input and calls fn with the invocation. The
// handler's error is returned unchanged.
func Run[G any](ctx context.Context, input []byte, opts Options, fn func(*Invocation[G]) error) (err error) {
	if !running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer running.Store(false)

	log := opts.Logger
	if log == nil {
		log = logger.L
	}
	base := opts.Base
	if base == 0 {
		base = format.HeapStartAddress
	}

	res := heapsize.Scan(input)
	log.Debug("heap size resolved",
		"size", res.Size,
		"reason", res.Reason.String(),
		"requested", res.Requested,
		"above_max", res.AboveMax)

	mem := opts.Memory
	if mem == nil {
		mem, err = region.Open(ctx, opts.Backend, int(res.Size))
		if err != nil {
			return fmt.Errorf("entrypoint: open heap: %w", err)
		}
		defer func() {
			if cerr := mem.Close(); cerr != nil {
				err = errors.Join(err, cerr)
			}
		}()
	}
	heap := mem.Bytes()

	slot, n, err := global.Reserve[G](heap)
	if err != nil {
		return fmt.Errorf("entrypoint: reserve global state: %w", err)
	}
	if uint64(n) > format.MinHeapLength {
		return fmt.Errorf("%w: %d bytes", ErrSlotTooLarge, n)
	}

	a, err := bump.New(base+uint64(n), heap[n:], res.Size-uint64(n), opts.Alloc)
	if err != nil {
		return fmt.Errorf("entrypoint: init allocator: %w", err)
	}
	log.Debug("heap ready",
		"base", fmt.Sprintf("%#x", base),
		"global_bytes", n,
		"alloc_bytes", a.Len(),
		"mapped", len(heap))

	inv := &Invocation[G]{Input: input, Scan: res, Heap: a, slot: slot}
	current, currentHeap = inv, a
	defer func() {
		current, currentHeap = nil, nil
		s := a.Stats()
		log.Debug("invocation done",
			"used", s.Used,
			"peak", s.Peak,
			"allocs", s.Allocs,
			"leaked", s.Leaked,
			"oom", s.OutOfMemory)
	}()

	return fn(inv)
}

// Global returns the running invocation's global state. It panics when no
// invocation is running or the invocation hosts a different type; both are
// bugs in the host.
func Global[G any]() *G {
	inv, ok := current.(*Invocation[G])
	if !ok {
		if current == nil {
			panic("entrypoint: Global called outside Run")
		}
		panic(fmt.Sprintf("entrypoint: Global[%T] does not match running invocation %T", *new(G), current))
	}
	return inv.Global()
}

// Heap returns the running invocation's allocator. It panics when no
// invocation is running.
func Heap() *bump.Allocator {
	if currentHeap == nil {
		panic("entrypoint: Heap called outside Run")
	}
	return currentHeap
}
