//go:build unix

package region

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Mapped is Memory backed by an anonymous private mapping.
type Mapped struct {
	b []byte
}

// NewMapped maps n bytes of zeroed, readable and writable memory. n is
// rounded up to the page size by the kernel; Bytes still reports n.
func NewMapped(n int) (*Mapped, error) {
	if n <= 0 {
		return nil, ErrBadSize
	}
	b, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("region: mmap %d bytes: %w", n, err)
	}
	return &Mapped{b: b}, nil
}

// Bytes implements Memory.
func (m *Mapped) Bytes() []byte { return m.b }

// Close unmaps the region. Closing twice is a no-op.
func (m *Mapped) Close() error {
	if m.b == nil {
		return nil
	}
	err := unix.Munmap(m.b)
	m.b = nil
	if err != nil {
		return fmt.Errorf("region: munmap: %w", err)
	}
	return nil
}

var _ Memory = (*Mapped)(nil)
