package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/sbfheap/heapsize"
	"github.com/joshuapare/sbfheap/internal/format"
)

func init() {
	rootCmd.AddCommand(newScanCmd())
}

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <input.bin>",
		Short: "Report the heap size granted to an entrypoint input",
		Long: `The scan command reads a raw entrypoint input, the bytes the loader places
at the program input address, and reports the heap size the program would see:
the first RequestHeapFrame in the transaction, or the 32 KiB minimum.

Example:
  heapctl scan input.bin
  heapctl scan input.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args)
		},
	}
	return cmd
}

type scanReport struct {
	File        string `json:"file"`
	InputBytes  int    `json:"input_bytes"`
	HeapSize    uint64 `json:"heap_size"`
	Found       bool   `json:"found"`
	Requested   uint32 `json:"requested,omitempty"`
	Instruction int    `json:"instruction,omitempty"`
	AboveMax    bool   `json:"above_max,omitempty"`
	Reason      string `json:"reason"`
}

func runScan(args []string) error {
	path := args[0]

	printVerbose("Reading input: %s\n", path)

	input, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	res := heapsize.Scan(input)
	rep := scanReport{
		File:        path,
		InputBytes:  len(input),
		HeapSize:    res.Size,
		Found:       res.Found,
		Requested:   res.Requested,
		Instruction: res.Instruction,
		AboveMax:    res.AboveMax,
		Reason:      res.Reason.String(),
	}

	if jsonOut {
		return printJSON(rep)
	}

	printInfo("\nHeap Size:\n")
	printInfo("  File: %s (%s)\n", path, byteCount(uint64(len(input))))
	printInfo("  Heap: %s\n", byteCount(res.Size))
	printInfo("  Reason: %s\n", res.Reason)
	if res.Found {
		printInfo("  Requested: %s by instruction %d\n", byteCount(uint64(res.Requested)), res.Instruction)
	}
	if res.AboveMax {
		printInfo("  ! request exceeds the %s platform maximum\n", byteCount(format.MaxHeapFrameBytes))
	}
	return nil
}
