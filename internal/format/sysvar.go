package format

import "github.com/joshuapare/sbfheap/internal/buf"

// Instructions is a view over the instructions sysvar account data.
type Instructions struct {
	data    []byte
	offsets []byte
}

// Instruction is one decoded entry of the instructions sysvar. ProgramID and
// Data alias the sysvar data.
type Instruction struct {
	NumAccounts int
	ProgramID   []byte
	Data        []byte
}

// ParseInstructions validates the instruction count and offset table of the
// sysvar data. Individual instructions are decoded lazily by At.
func ParseInstructions(data []byte) (Instructions, bool) {
	c := buf.NewCursor(data)
	count, ok := c.U16()
	if !ok {
		return Instructions{}, false
	}
	n, ok := buf.MulOverflowSafe(int(count), SysvarCountSize)
	if !ok {
		return Instructions{}, false
	}
	offsets, ok := c.Bytes(n)
	if !ok {
		return Instructions{}, false
	}
	return Instructions{data: data, offsets: offsets}, true
}

// Len returns the number of instructions listed.
func (ix Instructions) Len() int {
	return len(ix.offsets) / SysvarCountSize
}

// At decodes instruction i. ok is false when its offset or any of its fields
// point past the end of the sysvar data.
func (ix Instructions) At(i int) (Instruction, bool) {
	if i < 0 || i >= ix.Len() {
		return Instruction{}, false
	}
	off := int(buf.U16LE(ix.offsets[i*SysvarCountSize:]))
	rest, ok := buf.Slice(ix.data, off, len(ix.data)-off)
	if !ok {
		return Instruction{}, false
	}

	c := buf.NewCursor(rest)
	metas, ok := c.U16()
	if !ok {
		return Instruction{}, false
	}
	if !c.Skip(int(metas) * SysvarAccountMetaSize) {
		return Instruction{}, false
	}
	program, ok := c.Bytes(PubkeySize)
	if !ok {
		return Instruction{}, false
	}
	n, ok := c.U16()
	if !ok {
		return Instruction{}, false
	}
	data, ok := c.Bytes(int(n))
	if !ok {
		return Instruction{}, false
	}
	return Instruction{NumAccounts: int(metas), ProgramID: program, Data: data}, true
}
