package buf

import "math"

// Cursor walks a borrowed byte slice front to back without copying. Every read
// is validated against the remaining length before the cursor advances; after
// the first failed read the cursor is poisoned and every later read fails too,
// so callers may chain reads and check OK once.
//
// Cursor never allocates and is meant to be used by value on the stack.
type Cursor struct {
	b   []byte
	off int
	bad bool
}

// NewCursor returns a cursor positioned at the start of b.
func NewCursor(b []byte) Cursor {
	return Cursor{b: b}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.off }

// Remaining returns the number of unread bytes, or 0 once poisoned.
func (c *Cursor) Remaining() int {
	if c.bad {
		return 0
	}
	return len(c.b) - c.off
}

// OK reports whether every read so far stayed within bounds.
func (c *Cursor) OK() bool { return !c.bad }

// Bytes returns the next n bytes and advances past them.
func (c *Cursor) Bytes(n int) ([]byte, bool) {
	if c.bad {
		return nil, false
	}
	out, ok := Slice(c.b, c.off, n)
	if !ok {
		c.bad = true
		return nil, false
	}
	c.off += n
	return out, true
}

// Skip advances past n bytes.
func (c *Cursor) Skip(n int) bool {
	_, ok := c.Bytes(n)
	return ok
}

// U8 reads one byte.
func (c *Cursor) U8() (uint8, bool) {
	b, ok := c.Bytes(1)
	if !ok {
		return 0, false
	}
	return U8(b), true
}

// U16 reads a little-endian uint16.
func (c *Cursor) U16() (uint16, bool) {
	b, ok := c.Bytes(2)
	if !ok {
		return 0, false
	}
	return U16LE(b), true
}

// U32 reads a little-endian uint32.
func (c *Cursor) U32() (uint32, bool) {
	b, ok := c.Bytes(4)
	if !ok {
		return 0, false
	}
	return U32LE(b), true
}

// U64 reads a little-endian uint64.
func (c *Cursor) U64() (uint64, bool) {
	b, ok := c.Bytes(8)
	if !ok {
		return 0, false
	}
	return U64LE(b), true
}

// Len64 reads a little-endian uint64 length field and validates that that
// many bytes remain after it. The cursor is left just past the length field.
func (c *Cursor) Len64() (int, bool) {
	v, ok := c.U64()
	if !ok {
		return 0, false
	}
	if v > math.MaxInt || int(v) > c.Remaining() {
		c.bad = true
		return 0, false
	}
	return int(v), true
}

// Align advances the cursor to the next offset that is a multiple of align,
// measured from the start of the underlying slice. align must be a power of two.
func (c *Cursor) Align(align int) bool {
	if c.bad {
		return false
	}
	pad := (align - c.off%align) % align
	return c.Skip(pad)
}
