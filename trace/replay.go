package trace

import (
	"errors"
	"fmt"

	"github.com/joshuapare/sbfheap/bump"
)

// ErrUnknownName indicates a free or realloc of a name never allocated.
var ErrUnknownName = errors.New("trace: unknown block name")

// Outcome is the result of replaying one operation.
type Outcome struct {
	Op   Op
	Ptr  bump.Ptr
	Used uint64 // cursor after the operation
	Err  error  // bump.ErrOutOfMemory for failed allocations
}

// Report summarizes a replay.
type Report struct {
	Outcomes []Outcome
	Stats    bump.Stats
	Live     int // blocks still bound at the end
}

// Failed returns the outcomes that ran out of memory.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

type block struct {
	p     bump.Ptr
	size  uint64
	align uint64
}

// Replay runs ops against a. Out-of-memory results are recorded in the
// report and replay continues; referencing an unknown name stops it.
func Replay(a *bump.Allocator, ops []Op) (*Report, error) {
	live := make(map[string]block)
	rep := &Report{Outcomes: make([]Outcome, 0, len(ops))}

	for _, op := range ops {
		o := Outcome{Op: op}
		switch op.Kind {
		case OpAlloc:
			o.Ptr, o.Err = a.Alloc(op.Size, op.Align)
			if o.Err == nil {
				live[op.Name] = block{p: o.Ptr, size: op.Size, align: op.Align}
			}
		case OpFree:
			b, ok := live[op.Name]
			if !ok {
				return rep, fmt.Errorf("line %d: %w %q", op.Line, ErrUnknownName, op.Name)
			}
			a.Dealloc(b.p, b.size, b.align)
			delete(live, op.Name)
			o.Ptr = b.p
		case OpRealloc:
			b, ok := live[op.Name]
			if !ok {
				return rep, fmt.Errorf("line %d: %w %q", op.Line, ErrUnknownName, op.Name)
			}
			o.Ptr, o.Err = a.Realloc(b.p, b.size, b.align, op.Size)
			if o.Err == nil {
				live[op.Name] = block{p: o.Ptr, size: op.Size, align: b.align}
			}
		}
		o.Used = a.Used()
		rep.Outcomes = append(rep.Outcomes, o)
	}
	rep.Stats = a.Stats()
	rep.Live = len(live)
	return rep, nil
}
