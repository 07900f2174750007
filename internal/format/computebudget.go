package format

import "github.com/joshuapare/sbfheap/internal/buf"

// HeapFrame is the outcome of decoding compute budget instruction data.
type HeapFrame uint8

const (
	// HeapFrameNone means the data is some other compute budget instruction.
	HeapFrameNone HeapFrame = iota
	// HeapFrameRequested means the data is a well-formed RequestHeapFrame.
	HeapFrameRequested
	// HeapFrameTruncated means the tag matched but the u32 was cut short.
	HeapFrameTruncated
)

// ParseRequestHeapFrame checks whether data encodes RequestHeapFrame and, if
// so, returns the requested heap size in bytes. Bytes past the u32 are
// ignored.
func ParseRequestHeapFrame(data []byte) (uint32, HeapFrame) {
	if len(data) == 0 || data[0] != TagRequestHeapFrame {
		return 0, HeapFrameNone
	}
	if len(data) < RequestHeapFrameSize {
		return 0, HeapFrameTruncated
	}
	return buf.U32LE(data[1:]), HeapFrameRequested
}
