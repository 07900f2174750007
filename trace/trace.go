// Package trace replays allocation traces against a bump allocator.
//
// A trace is a line-oriented script, one operation per line:
//
//	# comment
//	alloc  NAME SIZE [ALIGN]   allocate and bind the block to NAME (ALIGN defaults to 8)
//	free   NAME                release NAME
//	realloc NAME SIZE          resize NAME, rebinding it to the returned block
//
// Sizes accept a k or K suffix for KiB. Traces make it easy to check how much
// heap a program's allocation pattern needs and how much of it leaks.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/sbfheap/bump"
)

// Kind is the operation of a trace line.
type Kind uint8

const (
	OpAlloc Kind = iota + 1
	OpFree
	OpRealloc
)

func (k Kind) String() string {
	switch k {
	case OpAlloc:
		return "alloc"
	case OpFree:
		return "free"
	case OpRealloc:
		return "realloc"
	default:
		return "unknown"
	}
}

const defaultAlign = 8

// Op is one parsed trace line.
type Op struct {
	Line  int
	Kind  Kind
	Name  string
	Size  uint64
	Align uint64
}

// ErrSyntax indicates a malformed trace line.
var ErrSyntax = errors.New("trace: syntax error")

// Parse reads a trace.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		op, err := parseLine(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trace: read: %w", err)
	}
	return ops, nil
}

func parseLine(f []string) (Op, error) {
	switch f[0] {
	case "alloc":
		if len(f) != 3 && len(f) != 4 {
			return Op{}, fmt.Errorf("%w: alloc NAME SIZE [ALIGN]", ErrSyntax)
		}
		size, err := parseSize(f[2])
		if err != nil {
			return Op{}, err
		}
		align := uint64(defaultAlign)
		if len(f) == 4 {
			if align, err = parseSize(f[3]); err != nil {
				return Op{}, err
			}
		}
		l, err := bump.NewLayout(size, align)
		if err != nil {
			return Op{}, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		return Op{Kind: OpAlloc, Name: f[1], Size: l.Size, Align: l.Align}, nil
	case "free":
		if len(f) != 2 {
			return Op{}, fmt.Errorf("%w: free NAME", ErrSyntax)
		}
		return Op{Kind: OpFree, Name: f[1]}, nil
	case "realloc":
		if len(f) != 3 {
			return Op{}, fmt.Errorf("%w: realloc NAME SIZE", ErrSyntax)
		}
		size, err := parseSize(f[2])
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: OpRealloc, Name: f[1], Size: size}, nil
	default:
		return Op{}, fmt.Errorf("%w: unknown operation %q", ErrSyntax, f[0])
	}
}

func parseSize(s string) (uint64, error) {
	mult := uint64(1)
	if t, ok := strings.CutSuffix(strings.ToLower(s), "k"); ok {
		s, mult = t, 1024
	}
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad size %q", ErrSyntax, s)
	}
	if n > ^uint64(0)/mult {
		return 0, fmt.Errorf("%w: size %q overflows", ErrSyntax, s)
	}
	return n * mult, nil
}
