package region

// Slice is Memory backed by a Go byte slice.
type Slice struct {
	b []byte
}

// NewSlice returns a zeroed region of n bytes.
func NewSlice(n int) (*Slice, error) {
	if n <= 0 {
		return nil, ErrBadSize
	}
	return &Slice{b: make([]byte, n)}, nil
}

// Bytes implements Memory.
func (s *Slice) Bytes() []byte { return s.b }

// Close implements Memory.
func (s *Slice) Close() error {
	s.b = nil
	return nil
}

var _ Memory = (*Slice)(nil)
