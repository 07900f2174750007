package buf

import (
	"math"
	"math/bits"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on
// overflow or when either operand is negative. Used for count * elementSize
// calculations in table parsing.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// AddU64 adds a and b, returning ok = false on wraparound.
func AddU64(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

// IsPow2 reports whether n is a non-zero power of two.
func IsPow2(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// AlignUp rounds n up to the next multiple of align, which must be a power of
// two. ok is false when rounding would wrap past math.MaxUint64.
//
//	AlignUp(0, 8)  = 0
//	AlignUp(1, 8)  = 8
//	AlignUp(16, 8) = 16
func AlignUp(n, align uint64) (uint64, bool) {
	mask := align - 1
	sum, ok := AddU64(n, mask)
	if !ok {
		return 0, false
	}
	return sum &^ mask, true
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}
