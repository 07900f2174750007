// Package rawinput builds byte-exact entrypoint inputs and instructions
// sysvar data, the same bytes the loader places at format.ProgramInputAddress.
// It is used by tests and by heapctl forge.
package rawinput

import (
	"encoding/binary"

	"github.com/joshuapare/sbfheap/internal/format"
)

// Account describes a full (non-duplicate) account entry.
type Account struct {
	Key        format.Pubkey
	Owner      format.Pubkey
	Lamports   uint64
	Data       []byte
	Signer     bool
	Writable   bool
	Executable bool
	RentEpoch  uint64
}

type entry struct {
	dup     bool
	dupIdx  uint8
	account Account
}

// Builder assembles an entrypoint input. The zero value is ready to use.
type Builder struct {
	entries   []entry
	ixData    []byte
	programID format.Pubkey
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Account appends a full account entry.
func (b *Builder) Account(a Account) *Builder {
	b.entries = append(b.entries, entry{account: a})
	return b
}

// Duplicate appends a duplicate entry pointing at account index idx.
func (b *Builder) Duplicate(idx uint8) *Builder {
	b.entries = append(b.entries, entry{dup: true, dupIdx: idx})
	return b
}

// InstructionData sets the data of the instruction being executed.
func (b *Builder) InstructionData(data []byte) *Builder {
	b.ixData = data
	return b
}

// ProgramID sets the id of the program being executed.
func (b *Builder) ProgramID(id format.Pubkey) *Builder {
	b.programID = id
	return b
}

// Bytes serializes the input.
func (b *Builder) Bytes() []byte {
	out := binary.LittleEndian.AppendUint64(nil, uint64(len(b.entries)))
	for _, e := range b.entries {
		if e.dup {
			out = append(out, e.dupIdx, 0, 0, 0, 0, 0, 0, 0)
			continue
		}
		a := e.account
		out = append(out, format.NonDupMarker, flag(a.Signer), flag(a.Writable), flag(a.Executable))
		out = binary.LittleEndian.AppendUint32(out, uint32(len(a.Data)))
		out = append(out, a.Key[:]...)
		out = append(out, a.Owner[:]...)
		out = binary.LittleEndian.AppendUint64(out, a.Lamports)
		out = binary.LittleEndian.AppendUint64(out, uint64(len(a.Data)))
		out = append(out, a.Data...)
		out = append(out, make([]byte, format.MaxPermittedDataIncrease)...)
		out = append(out, make([]byte, format.AlignInput(len(out))-len(out))...)
		out = binary.LittleEndian.AppendUint64(out, a.RentEpoch)
	}
	out = binary.LittleEndian.AppendUint64(out, uint64(len(b.ixData)))
	out = append(out, b.ixData...)
	out = append(out, b.programID[:]...)
	return out
}

func flag(v bool) byte {
	if v {
		return 1
	}
	return 0
}
