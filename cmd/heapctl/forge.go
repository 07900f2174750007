package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/sbfheap/internal/format"
	"github.com/joshuapare/sbfheap/internal/rawinput"
)

// maxExtraIx keeps sysvar offsets within their u16 encoding.
const maxExtraIx = 512

var (
	forgeHeapFrame uint32
	forgeDup       uint8
	forgeExtraIx   uint16
	forgeOut       string
	forgeProgram   string
)

// defaultProgram is the executing program when --program is not given.
var defaultProgram = format.Pubkey{0x11}

func init() {
	cmd := newForgeCmd()
	cmd.Flags().Uint32Var(&forgeHeapFrame, "heap-frame", 0, "RequestHeapFrame bytes (0 for no request)")
	cmd.Flags().Uint8Var(&forgeDup, "dup", 0, "Duplicate account entries placed before the sysvar")
	cmd.Flags().Uint16Var(&forgeExtraIx, "extra-ix", 0, "Unrelated instructions placed before the request")
	cmd.Flags().StringVarP(&forgeOut, "output", "o", "", "Output file (required)")
	cmd.Flags().StringVar(&forgeProgram, "program", "", "Base58 id of the executing program")
	_ = cmd.MarkFlagRequired("output")
	rootCmd.AddCommand(cmd)
}

func newForgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forge",
		Short: "Write a synthetic entrypoint input",
		Long: `The forge command writes a raw entrypoint input with one ordinary
account, optional duplicate entries and the instructions sysvar. The sysvar
lists the requested number of unrelated instructions followed by a compute
budget RequestHeapFrame.

Example:
  heapctl forge --heap-frame 65536 -o input.bin
  heapctl forge --heap-frame 131072 --dup 2 --extra-ix 3 -o input.bin
  heapctl forge --heap-frame 65536 --program Stake11111111111111111111111111111111111111 -o input.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForge()
		},
	}
	return cmd
}

func runForge() error {
	if forgeOut == "" {
		return errors.New("an output file is required (-o)")
	}
	if forgeExtraIx > maxExtraIx {
		return fmt.Errorf("too many instructions: %d (max %d)", forgeExtraIx, maxExtraIx)
	}

	program := defaultProgram
	if forgeProgram != "" {
		id, err := format.ParsePubkey(forgeProgram)
		if err != nil {
			return fmt.Errorf("invalid --program %q: %w", forgeProgram, err)
		}
		program = id
	}

	input := forgeInput(program, forgeHeapFrame, forgeDup, int(forgeExtraIx))
	if err := os.WriteFile(forgeOut, input, 0o644); err != nil {
		return fmt.Errorf("failed to write input: %w", err)
	}

	printVerbose("Program %s, sysvar placed after %d duplicate entries\n", program, forgeDup)
	printInfo("Wrote %s to %s\n", byteCount(uint64(len(input))), forgeOut)
	return nil
}

func forgeInput(program format.Pubkey, heapFrame uint32, dups uint8, extra int) []byte {
	ixs := make([]rawinput.Instruction, 0, extra+2)
	for i := range extra {
		ixs = append(ixs, rawinput.Instruction{
			ProgramID: format.Pubkey{0x33, byte(i)},
			Accounts:  []rawinput.Meta{{Pubkey: format.Pubkey{0x22}, Writable: true}},
			Data:      []byte{byte(i)},
		})
	}
	if heapFrame > 0 {
		ixs = append(ixs, rawinput.HeapFrameIx(heapFrame))
	}
	ixs = append(ixs, rawinput.Instruction{ProgramID: program, Data: []byte{0}})

	b := rawinput.New().
		Account(rawinput.Account{Key: format.Pubkey{0x22}, Lamports: 1, Writable: true, Signer: true})
	for range dups {
		b.Duplicate(0)
	}
	return b.Account(rawinput.SysvarAccount(rawinput.SysvarData(ixs, uint16(len(ixs)-1)))).
		InstructionData([]byte{0}).
		ProgramID(program).
		Bytes()
}
