package heapsize

import (
	"github.com/joshuapare/sbfheap/internal/buf"
	"github.com/joshuapare/sbfheap/internal/format"
)

// Reason explains how Scan arrived at its size.
type Reason uint8

const (
	// ReasonFound means a RequestHeapFrame at or above the minimum was honored.
	ReasonFound Reason = iota
	// ReasonNoSysvar means the instructions sysvar was not among the accounts.
	ReasonNoSysvar
	// ReasonNoRequest means no compute budget instruction requested a heap frame.
	ReasonNoRequest
	// ReasonMalformed means the input or sysvar data was structurally invalid.
	ReasonMalformed
	// ReasonBelowMinimum means the request was smaller than the guaranteed minimum.
	ReasonBelowMinimum
)

var reasonNames = [...]string{
	ReasonFound:        "found",
	ReasonNoSysvar:     "no instructions sysvar",
	ReasonNoRequest:    "no heap frame request",
	ReasonMalformed:    "malformed input",
	ReasonBelowMinimum: "request below minimum",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Result is the outcome of a scan.
type Result struct {
	// Size is the heap length to initialize the allocator with. It is never
	// below format.MinHeapLength.
	Size uint64
	// Requested is the raw RequestHeapFrame value, valid when Found is set.
	Requested uint32
	// Found is set when a RequestHeapFrame instruction was decoded.
	Found bool
	// Instruction is the sysvar index of the honored request.
	Instruction int
	// AboveMax is set when Requested exceeds format.MaxHeapFrameBytes. The
	// loader rejects such transactions, so seeing one means the input did not
	// come from a conforming runtime.
	AboveMax bool
	Reason   Reason
}

// ExtractHeapSize returns the heap length for the invocation whose raw
// entrypoint input is input. It never allocates or panics; on any problem it
// returns format.MinHeapLength.
func ExtractHeapSize(input []byte) uint64 {
	return Scan(input).Size
}

// Scan is ExtractHeapSize with diagnostics. It never allocates.
func Scan(input []byte) Result {
	sysvar, reason := findSysvar(input)
	if reason != ReasonFound {
		return fallback(reason)
	}
	return scanInstructions(sysvar)
}

// findSysvar returns the data of the instructions sysvar account. Accounts
// after it are not decoded.
func findSysvar(input []byte) ([]byte, Reason) {
	c := buf.NewCursor(input)
	count, ok := format.ReadAccountCount(&c)
	if !ok {
		return nil, ReasonMalformed
	}
	// Every entry takes at least DupEntrySize bytes.
	if count > uint64(c.Remaining()/format.DupEntrySize) {
		return nil, ReasonMalformed
	}
	for i := uint64(0); i < count; i++ {
		acct, ok := format.NextAccount(&c)
		if !ok {
			return nil, ReasonMalformed
		}
		if !acct.Dup && format.InstructionsSysvarID.Matches(acct.Key) {
			return acct.Data, ReasonFound
		}
	}
	return nil, ReasonNoSysvar
}

// scanInstructions honors the first RequestHeapFrame issued to the compute
// budget program, in transaction order.
func scanInstructions(sysvar []byte) Result {
	ixs, ok := format.ParseInstructions(sysvar)
	if !ok {
		return fallback(ReasonMalformed)
	}
	for i := 0; i < ixs.Len(); i++ {
		ix, ok := ixs.At(i)
		if !ok {
			return fallback(ReasonMalformed)
		}
		if !format.ComputeBudgetID.Matches(ix.ProgramID) {
			continue
		}
		n, st := format.ParseRequestHeapFrame(ix.Data)
		switch st {
		case format.HeapFrameNone:
			continue
		case format.HeapFrameTruncated:
			return fallback(ReasonMalformed)
		}
		res := Result{
			Size:        uint64(n),
			Requested:   n,
			Found:       true,
			Instruction: i,
			AboveMax:    uint64(n) > format.MaxHeapFrameBytes,
			Reason:      ReasonFound,
		}
		if res.Size < format.MinHeapLength {
			res.Size = format.MinHeapLength
			res.Reason = ReasonBelowMinimum
		}
		return res
	}
	return fallback(ReasonNoRequest)
}

func fallback(r Reason) Result {
	return Result{Size: format.MinHeapLength, Reason: r}
}
