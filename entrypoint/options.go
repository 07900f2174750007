package entrypoint

import (
	"log/slog"

	"github.com/joshuapare/sbfheap/bump"
	"github.com/joshuapare/sbfheap/internal/format"
	"github.com/joshuapare/sbfheap/region"
)

// Options configures how Run builds the heap.
//
// Use DefaultOptions() for the VM layout.
type Options struct {
	// Memory backs the heap. When nil, Run opens a region of the scanned
	// heap length from Backend and closes it when the handler returns.
	// A caller-supplied Memory is not closed.
	Memory region.Memory

	// Backend selects the region kind used when Memory is nil.
	// Default: region.KindMapped
	Backend region.Kind

	// Base is the virtual address of the first heap byte.
	// Default: format.HeapStartAddress
	Base uint64

	// Alloc configures the bump allocator.
	// Default: bump.DefaultOptions()
	Alloc bump.Options

	// Logger receives start-up diagnostics at debug level.
	// Default: logger.L
	Logger *slog.Logger
}

// DefaultOptions returns options matching the VM memory map.
func DefaultOptions() Options {
	return Options{
		Backend: region.KindMapped,
		Base:    format.HeapStartAddress,
		Alloc:   bump.DefaultOptions(),
	}
}
