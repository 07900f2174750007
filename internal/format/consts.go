// Package format describes the byte-exact layouts the loader hands to a
// program: the serialized entrypoint input, the instructions sysvar account
// data and the compute budget instruction encoding. Decoders here work on
// borrowed slices and never allocate, because they run before the program's
// heap allocator exists.
package format

// VM memory map.
const (
	// HeapStartAddress is the virtual address of the first heap byte.
	HeapStartAddress uint64 = 0x3_0000_0000

	// ProgramInputAddress is where the serialized entrypoint input lives.
	// No heap byte can ever sit at or past this address.
	ProgramInputAddress uint64 = 0x4_0000_0000

	// MinHeapLength is the heap size every invocation is guaranteed to get
	// (32 KiB). Larger heaps must be requested with RequestHeapFrame.
	MinHeapLength uint64 = 32 * 1024

	// MaxHeapFrameBytes is the largest heap the loader will grant (256 KiB).
	MaxHeapFrameBytes uint64 = 256 * 1024
)

// Entrypoint input layout.
//
//	u64                 account count
//	per account, either
//	  u8   dup index    != NonDupMarker, followed by 7 bytes of padding
//	or
//	  u8   NonDupMarker
//	  u8   is_signer
//	  u8   is_writable
//	  u8   executable
//	  u32  original data length
//	  [32] key
//	  [32] owner
//	  u64  lamports
//	  u64  data length
//	  ...  data
//	  ...  MaxPermittedDataIncrease bytes of realloc space
//	  ...  padding to InputAlignment
//	  u64  rent epoch
//	u64                 instruction data length
//	...                 instruction data
//	[32]                program id
const (
	// NonDupMarker in the first byte of an account entry means the entry is
	// a full account rather than a reference to an earlier one.
	NonDupMarker uint8 = 0xff

	// DupEntrySize is the size of a duplicate account entry (index + padding).
	DupEntrySize = 8

	// AccountHeaderSize covers dup marker, three flags and original data length.
	AccountHeaderSize = 8

	// PubkeySize is the length of an account address or program id.
	PubkeySize = 32

	// MaxPermittedDataIncrease is the realloc space reserved after every
	// account's data (10 KiB).
	MaxPermittedDataIncrease = 10 * 1024

	// InputAlignment is the alignment of u128 on the VM; account data is
	// padded to it.
	InputAlignment = 8
)

// Instructions sysvar account data layout.
//
//	u16                 instruction count
//	u16[count]          offset of each instruction from the start of the data
//	per instruction, at its offset:
//	  u16  account meta count
//	  (u8 flags, [32] pubkey)[count]
//	  [32] program id
//	  u16  data length
//	  ...  data
//	u16                 index of the currently executing instruction
const (
	// SysvarCountSize is the size of the instruction count and of each offset.
	SysvarCountSize = 2

	// SysvarAccountMetaSize is one account meta: flags byte plus pubkey.
	SysvarAccountMetaSize = 1 + PubkeySize
)

// Compute budget instruction tags. Each instruction is a one-byte tag
// followed by little-endian fields.
const (
	// TagRequestHeapFrame is followed by a u32 heap size in bytes.
	TagRequestHeapFrame uint8 = 1

	// RequestHeapFrameSize is the tag plus its u32 payload.
	RequestHeapFrameSize = 1 + 4
)
