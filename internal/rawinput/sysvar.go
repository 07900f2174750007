package rawinput

import (
	"encoding/binary"

	"github.com/joshuapare/sbfheap/internal/format"
)

// Meta is one account meta of a transaction instruction.
type Meta struct {
	Pubkey   format.Pubkey
	Signer   bool
	Writable bool
}

// Instruction is a transaction instruction as recorded in the sysvar.
type Instruction struct {
	ProgramID format.Pubkey
	Accounts  []Meta
	Data      []byte
}

// SysvarData serializes ixs into instructions sysvar account data, with
// current as the index of the executing instruction.
func SysvarData(ixs []Instruction, current uint16) []byte {
	header := format.SysvarCountSize * (1 + len(ixs))
	out := make([]byte, header)
	format.PutU16(out, 0, uint16(len(ixs)))
	for i, ix := range ixs {
		format.PutU16(out, format.SysvarCountSize*(1+i), uint16(len(out)))
		out = binary.LittleEndian.AppendUint16(out, uint16(len(ix.Accounts)))
		for _, m := range ix.Accounts {
			var flags byte
			if m.Signer {
				flags |= 1
			}
			if m.Writable {
				flags |= 2
			}
			out = append(out, flags)
			out = append(out, m.Pubkey[:]...)
		}
		out = append(out, ix.ProgramID[:]...)
		out = binary.LittleEndian.AppendUint16(out, uint16(len(ix.Data)))
		out = append(out, ix.Data...)
	}
	return binary.LittleEndian.AppendUint16(out, current)
}

// RequestHeapFrame encodes ComputeBudgetInstruction::RequestHeapFrame(n).
func RequestHeapFrame(n uint32) []byte {
	return binary.LittleEndian.AppendUint32([]byte{format.TagRequestHeapFrame}, n)
}

// SetComputeUnitLimit encodes ComputeBudgetInstruction::SetComputeUnitLimit(n),
// a compute budget instruction the scanner must ignore.
func SetComputeUnitLimit(n uint32) []byte {
	return binary.LittleEndian.AppendUint32([]byte{2}, n)
}

// HeapFrameIx returns a compute budget instruction requesting n heap bytes.
func HeapFrameIx(n uint32) Instruction {
	return Instruction{ProgramID: format.ComputeBudgetID, Data: RequestHeapFrame(n)}
}

// SysvarAccount wraps sysvar data into an account entry keyed by the
// instructions sysvar id.
func SysvarAccount(data []byte) Account {
	return Account{Key: format.InstructionsSysvarID, Data: data}
}

// WithHeapFrame returns a complete input whose transaction requests n heap
// bytes: one ordinary account followed by the instructions sysvar.
func WithHeapFrame(n uint32) []byte {
	ixs := []Instruction{HeapFrameIx(n), {ProgramID: format.Pubkey{0x11}, Data: []byte{0}}}
	return New().
		Account(Account{Key: format.Pubkey{0x22}, Lamports: 1, Data: []byte{1, 2, 3}, Writable: true}).
		Account(SysvarAccount(SysvarData(ixs, 1))).
		InstructionData([]byte{0}).
		ProgramID(format.Pubkey{0x11}).
		Bytes()
}
