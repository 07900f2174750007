package format

import (
	"bytes"

	"github.com/mr-tron/base58"
)

// Pubkey is a 32-byte account address or program id.
type Pubkey [PubkeySize]byte

var (
	// InstructionsSysvarID is Sysvar1nstructions1111111111111111111111111, the
	// account whose data lists every instruction of the running transaction.
	InstructionsSysvarID = Pubkey{
		0x06, 0xa7, 0xd5, 0x17, 0x18, 0x7b, 0xd1, 0x66,
		0x35, 0xda, 0xd4, 0x04, 0x55, 0xfd, 0xc2, 0xc0,
		0xc1, 0x24, 0xc6, 0x8f, 0x21, 0x56, 0x75, 0xa5,
		0xdb, 0xba, 0xcb, 0x5f, 0x08, 0x00, 0x00, 0x00,
	}

	// ComputeBudgetID is ComputeBudget111111111111111111111111111111.
	ComputeBudgetID = Pubkey{
		0x03, 0x06, 0x46, 0x6f, 0xe5, 0x21, 0x17, 0x32,
		0xff, 0xec, 0xad, 0xba, 0x72, 0xc3, 0x9b, 0xe7,
		0xbc, 0x8c, 0xe5, 0xbb, 0xc5, 0xf7, 0x12, 0x6b,
		0x2c, 0x43, 0x9b, 0x3a, 0x40, 0x00, 0x00, 0x00,
	}
)

// Matches reports whether raw holds exactly this key. raw is normally a
// 32-byte window into the input buffer.
func (k *Pubkey) Matches(raw []byte) bool {
	return bytes.Equal(raw, k[:])
}

// String returns the base58 form of the key.
func (k Pubkey) String() string {
	return base58.Encode(k[:])
}

// ParsePubkey decodes a base58 public key.
func ParsePubkey(s string) (Pubkey, error) {
	var k Pubkey
	raw, err := base58.Decode(s)
	if err != nil || len(raw) != PubkeySize {
		return k, ErrBadPubkey
	}
	copy(k[:], raw)
	return k, nil
}
