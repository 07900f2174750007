package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/sbfheap/bump"
	"github.com/joshuapare/sbfheap/heapsize"
	"github.com/joshuapare/sbfheap/internal/format"
	"github.com/joshuapare/sbfheap/internal/logger"
	"github.com/joshuapare/sbfheap/region"
	"github.com/joshuapare/sbfheap/trace"
)

var (
	replayHeapSize uint64
	replayInput    string
	replayMapped   uint64
	replayPoke     bool
	replayBackend  string
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().Uint64Var(&replayHeapSize, "heap-size", 0, "Heap length in bytes (default: 32 KiB)")
	cmd.Flags().StringVar(&replayInput, "input", "", "Take the heap length from an entrypoint input")
	cmd.Flags().Uint64Var(&replayMapped, "mapped", 0, "Host bytes actually mapped (default: the heap length)")
	cmd.Flags().BoolVar(&replayPoke, "poke", false, "Touch every allocation when it is made")
	cmd.Flags().StringVar(&replayBackend, "backend", string(region.KindSlice), "Host memory backend: slice, mmap or wasm")
	cmd.MarkFlagsMutuallyExclusive("heap-size", "input")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay an allocation trace against the bump allocator",
		Long: `The replay command runs an allocation trace against a bump allocator and
reports how much of the heap it used, leaked and reclaimed.

Trace lines:
  alloc NAME SIZE [ALIGN]
  free NAME
  realloc NAME SIZE
  # comment

Example:
  heapctl replay startup.trace
  heapctl replay startup.trace --input input.bin --backend wasm
  heapctl replay startup.trace --heap-size 65536 --mapped 32768 --poke`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), args)
		},
	}
	return cmd
}

type replayReport struct {
	Trace    string     `json:"trace"`
	HeapSize uint64     `json:"heap_size"`
	Backend  string     `json:"backend"`
	Ops      int        `json:"ops"`
	Failed   []string   `json:"failed,omitempty"`
	Live     int        `json:"live"`
	Stats    bump.Stats `json:"stats"`
}

func runReplay(ctx context.Context, args []string) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	ops, err := trace.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to parse trace: %w", err)
	}

	size, err := replayHeapLength()
	if err != nil {
		return err
	}
	mapped := size
	if replayMapped > 0 {
		mapped = min(replayMapped, size)
	}
	printVerbose("Heap: %s, mapped: %s, backend: %s\n", byteCount(size), byteCount(mapped), replayBackend)

	mem, err := region.Open(ctx, region.Kind(replayBackend), int(mapped))
	if err != nil {
		return fmt.Errorf("failed to open heap memory: %w", err)
	}
	defer func() {
		if cerr := mem.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	heap, err := bump.New(format.HeapStartAddress, mem.Bytes(), size, bump.Options{Poke: replayPoke})
	if err != nil {
		return fmt.Errorf("failed to create allocator: %w", err)
	}

	rep, err := replayOps(heap, ops)
	if err != nil {
		return err
	}
	logger.L.Debug("trace replayed", "ops", len(ops), "peak", rep.Stats.Peak)

	out := replayReport{
		Trace:    path,
		HeapSize: size,
		Backend:  replayBackend,
		Ops:      len(rep.Outcomes),
		Live:     rep.Live,
		Stats:    rep.Stats,
	}
	for _, o := range rep.Failed() {
		out.Failed = append(out.Failed, fmt.Sprintf("line %d: %s %s %d", o.Op.Line, o.Op.Kind, o.Op.Name, o.Op.Size))
	}

	if jsonOut {
		return printJSON(out)
	}

	s := rep.Stats
	printInfo("\nReplay:\n")
	printInfo("  Trace: %s (%d ops)\n", path, out.Ops)
	printInfo("  Heap: %s (%s backend)\n", byteCount(size), out.Backend)
	printInfo("  Used: %s, peak %s\n", byteCount(s.Used), byteCount(s.Peak))
	printInfo("  Allocations: %d (%d zero-size)\n", s.Allocs, s.ZeroSize)
	printInfo("  Frees: %d reclaimed, %d leaked (%s)\n", s.Reclaimed, s.Leaked, byteCount(s.LeakedBytes))
	printInfo("  Resizes: %d in place, %d moved\n", s.ResizedInPlace, s.Moved)
	printInfo("  Live blocks: %d\n", rep.Live)
	if len(out.Failed) > 0 {
		printInfo("\nOut of memory:\n")
		for _, line := range out.Failed {
			printInfo("  %s\n", line)
		}
	}
	return nil
}

func replayHeapLength() (uint64, error) {
	if replayInput != "" {
		input, err := os.ReadFile(replayInput)
		if err != nil {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}
		res := heapsize.Scan(input)
		printVerbose("Heap size from %s: %s\n", replayInput, res.Reason)
		return res.Size, nil
	}
	if replayHeapSize == 0 {
		return format.MinHeapLength, nil
	}
	return replayHeapSize, nil
}

// replayOps turns an access violation raised while poking into an error.
func replayOps(heap *bump.Allocator, ops []trace.Op) (rep *trace.Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(*bump.Fault)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("replay faulted: %w", f)
		}
	}()
	rep, err = trace.Replay(heap, ops)
	if err != nil {
		return nil, fmt.Errorf("replay failed: %w", err)
	}
	return rep, nil
}
