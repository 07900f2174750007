package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if got, ok := MulOverflowSafe(33, 7); !ok || got != 231 {
		t.Fatalf("MulOverflowSafe(33,7)=%d,%v want 231,true", got, ok)
	}
	if got, ok := MulOverflowSafe(0, math.MaxInt); !ok || got != 0 {
		t.Fatalf("MulOverflowSafe(0,MaxInt)=%d,%v want 0,true", got, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2+1, 2); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := MulOverflowSafe(-1, 2); ok {
		t.Fatalf("negative operands must be rejected")
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct {
		n, align, want uint64
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{5, 1, 5},
		{4095, 4096, 4096},
	}
	for _, tc := range cases {
		got, ok := AlignUp(tc.n, tc.align)
		if !ok || got != tc.want {
			t.Errorf("AlignUp(%d,%d)=%d,%v want %d,true", tc.n, tc.align, got, ok, tc.want)
		}
	}
	if _, ok := AlignUp(math.MaxUint64-2, 8); ok {
		t.Fatalf("AlignUp should report wraparound")
	}
	if _, ok := AddU64(math.MaxUint64, 1); ok {
		t.Fatalf("AddU64 should report wraparound")
	}
}

func TestIsPow2(t *testing.T) {
	for _, n := range []uint64{1, 2, 4, 8, 1 << 40} {
		if !IsPow2(n) {
			t.Errorf("IsPow2(%d) = false", n)
		}
	}
	for _, n := range []uint64{0, 3, 6, 12, math.MaxUint64} {
		if IsPow2(n) {
			t.Errorf("IsPow2(%d) = true", n)
		}
	}
}

func TestSlice(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if _, ok := Slice(data, 2, 4); ok {
		t.Fatalf("Slice should fail for out-of-bounds range")
	}

	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
	if _, ok := Slice(data, 1, -1); ok {
		t.Fatalf("Slice should reject negative length")
	}
}
