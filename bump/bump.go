package bump

import (
	"github.com/joshuapare/sbfheap/internal/buf"
)

// Ptr is a virtual address inside the program's address space.
type Ptr uint64

// Options configures an Allocator.
type Options struct {
	// Poke touches the last byte of every allocation before returning it, so
	// a heap length larger than the memory really mapped faults inside Alloc
	// instead of at the first access by the caller.
	// Binaries built with -tags poke always poke.
	// Default: false
	Poke bool
}

// DefaultOptions returns the options used by the hosting entrypoint.
func DefaultOptions() Options {
	return Options{Poke: pokeBuild}
}

// record describes the most recent live allocation, the only block that can
// be handed back.
type record struct {
	addr  Ptr
	size  uint64
	align uint64
	// prev is the cursor before alignment padding was added for this block.
	prev uint64
	ok   bool
}

// Allocator is a bump allocator over one contiguous heap region.
//
// Allocations advance a cursor and are never moved. Only the most recent
// allocation is remembered; freeing or resizing exactly that block adjusts
// the cursor, anything else is leaked. This fits programs whose temporaries
// are freed in stack order (format, log, drop) and keeps every operation a
// handful of instructions.
//
// Invariants:
//   - 0 <= cursor <= length
//   - when a last allocation is recorded, addr+size == base+cursor
//
// Allocator is not safe for concurrent use. The VM runs one invocation on
// one thread; hosts that share a heap between goroutines must lock around it.
type Allocator struct {
	mem    []byte
	base   uint64
	length uint64
	cursor uint64
	last   record
	poke   bool
	stats  Stats
}

// New returns an allocator for the heap that starts at virtual address base
// and spans length bytes. mem is the host memory behind the heap, starting at
// base. length is the size the loader granted; it may exceed len(mem), in
// which case touching the missing tail raises a *Fault.
func New(base uint64, mem []byte, length uint64, opts Options) (*Allocator, error) {
	if base == 0 {
		return nil, ErrBadRegion
	}
	if _, ok := buf.AddU64(base, length); !ok {
		return nil, ErrBadRegion
	}
	return &Allocator{
		mem:    mem,
		base:   base,
		length: length,
		poke:   opts.Poke || pokeBuild,
	}, nil
}

// Alloc reserves size bytes aligned to align.
//
// A zero size consumes no heap and returns Ptr(align): non-null, correctly
// aligned and never a valid heap address, since the heap base is far above
// any sensible alignment.
func (a *Allocator) Alloc(size, align uint64) (Ptr, error) {
	if !buf.IsPow2(align) {
		return 0, ErrBadAlign
	}
	if size == 0 {
		a.stats.ZeroSize++
		return Ptr(align), nil
	}

	start, end, ok := a.fit(a.cursor, size, align)
	if !ok {
		a.stats.OutOfMemory++
		return 0, ErrOutOfMemory
	}
	if a.poke {
		a.touch(end)
	}

	a.last = record{addr: Ptr(a.base + start), size: size, align: align, prev: a.cursor, ok: true}
	a.advance(end)
	a.stats.Allocs++
	return a.last.addr, nil
}

// AllocLayout is Alloc for a Layout.
func (a *Allocator) AllocLayout(l Layout) (Ptr, error) {
	return a.Alloc(l.Size, l.Align)
}

// Dealloc releases a block. Only the most recent allocation, named with the
// exact address, size and alignment it was allocated with, is reclaimed: the
// cursor returns to where it was before that allocation. Every other block
// is leaked.
func (a *Allocator) Dealloc(p Ptr, size, align uint64) {
	if a.isLast(p, size, align) {
		a.cursor = a.last.prev
		a.last = record{}
		a.stats.Reclaimed++
		return
	}
	if size == 0 {
		return
	}
	a.stats.Leaked++
	a.stats.LeakedBytes += size
}

// Realloc resizes a block to newSize, preserving min(oldSize, newSize)
// bytes.
//
// The most recent allocation grows or shrinks in place and keeps its
// address. Any other block is moved: a new block is allocated, the contents
// copied and the old block released (which leaks it). When the new size does
// not fit, ErrOutOfMemory is returned and the old block is left untouched
// and still owned by the caller.
func (a *Allocator) Realloc(p Ptr, oldSize, align, newSize uint64) (Ptr, error) {
	if !buf.IsPow2(align) {
		return 0, ErrBadAlign
	}

	if a.isLast(p, oldSize, align) {
		off := uint64(p) - a.base
		end, ok := buf.AddU64(off, newSize)
		if !ok || end > a.length {
			a.stats.OutOfMemory++
			return 0, ErrOutOfMemory
		}
		if a.poke {
			a.touch(end)
		}
		a.last.size = newSize
		a.advance(end)
		a.stats.ResizedInPlace++
		return p, nil
	}

	np, err := a.Alloc(newSize, align)
	if err != nil {
		return 0, err
	}
	if n := min(oldSize, newSize); n > 0 {
		copy(a.Bytes(np, n), a.Bytes(p, n))
	}
	a.Dealloc(p, oldSize, align)
	a.stats.Moved++
	return np, nil
}

// Bytes returns the host memory behind [p, p+n). It panics with a *Fault
// when the range is not backed by host memory, like a VM access violation.
func (a *Allocator) Bytes(p Ptr, n uint64) []byte {
	if n == 0 {
		return nil
	}
	addr := uint64(p)
	if addr < a.base {
		panic(&Fault{Addr: addr, Len: n, Mapped: uint64(len(a.mem))})
	}
	off := addr - a.base
	end, ok := buf.AddU64(off, n)
	if !ok || end > uint64(len(a.mem)) {
		panic(&Fault{Addr: addr, Len: n, Mapped: uint64(len(a.mem))})
	}
	return a.mem[off:end:end]
}

// Base returns the virtual address of the first heap byte.
func (a *Allocator) Base() uint64 { return a.base }

// Len returns the heap length the allocator was initialized with.
func (a *Allocator) Len() uint64 { return a.length }

// Used returns the number of heap bytes below the cursor, padding included.
func (a *Allocator) Used() uint64 { return a.cursor }

// Remaining returns the number of heap bytes above the cursor.
func (a *Allocator) Remaining() uint64 { return a.length - a.cursor }

// Last returns the most recent live allocation, if any.
func (a *Allocator) Last() (p Ptr, size, align uint64, ok bool) {
	return a.last.addr, a.last.size, a.last.align, a.last.ok
}

// Stats returns a snapshot of the allocation counters.
func (a *Allocator) Stats() Stats {
	s := a.stats
	s.Used = a.cursor
	return s
}

// fit places a block of size bytes at the first address at or above
// base+from that is aligned to align. It returns the block's start and end
// offsets, or ok = false on overflow or when the block would pass length.
func (a *Allocator) fit(from, size, align uint64) (start, end uint64, ok bool) {
	addr, ok := buf.AlignUp(a.base+from, align)
	if !ok {
		return 0, 0, false
	}
	start = addr - a.base
	end, ok = buf.AddU64(start, size)
	if !ok || end > a.length {
		return 0, 0, false
	}
	return start, end, true
}

func (a *Allocator) isLast(p Ptr, size, align uint64) bool {
	l := a.last
	return l.ok && l.addr == p && l.size == size && l.align == align
}

func (a *Allocator) advance(end uint64) {
	a.cursor = end
	if end > a.stats.Peak {
		a.stats.Peak = end
	}
}

// touch reads the byte just below offset end, faulting if the host never
// mapped it.
func (a *Allocator) touch(end uint64) {
	if end == 0 {
		return
	}
	if end > uint64(len(a.mem)) {
		panic(&Fault{Addr: a.base + end - 1, Len: 1, Mapped: uint64(len(a.mem))})
	}
	_ = a.mem[end-1]
}
