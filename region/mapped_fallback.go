//go:build !unix

package region

// Mapped falls back to a Go slice where anonymous mappings are unavailable.
type Mapped struct {
	Slice
}

// NewMapped returns a zeroed region of n bytes.
func NewMapped(n int) (*Mapped, error) {
	s, err := NewSlice(n)
	if err != nil {
		return nil, err
	}
	return &Mapped{Slice: *s}, nil
}

var _ Memory = (*Mapped)(nil)
