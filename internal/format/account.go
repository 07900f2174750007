package format

import "github.com/joshuapare/sbfheap/internal/buf"

// Account is a view of one entry of the entrypoint input. Key and Data alias
// the input buffer.
type Account struct {
	// Dup is set for duplicate entries; DupIndex then names the earlier entry
	// and every other field is empty.
	Dup      bool
	DupIndex uint8

	Key  []byte
	Data []byte
}

// ReadAccountCount reads the leading account count.
func ReadAccountCount(c *buf.Cursor) (uint64, bool) {
	return c.U64()
}

// NextAccount decodes the account entry at the cursor and advances past it,
// including realloc space, alignment padding and the rent epoch.
func NextAccount(c *buf.Cursor) (Account, bool) {
	marker, ok := c.U8()
	if !ok {
		return Account{}, false
	}
	if marker != NonDupMarker {
		if !c.Skip(DupEntrySize - 1) {
			return Account{}, false
		}
		return Account{Dup: true, DupIndex: marker}, true
	}

	// is_signer, is_writable, executable, original data length
	if !c.Skip(AccountHeaderSize - 1) {
		return Account{}, false
	}
	key, ok := c.Bytes(PubkeySize)
	if !ok {
		return Account{}, false
	}
	// owner, lamports
	if !c.Skip(PubkeySize + 8) {
		return Account{}, false
	}
	n, ok := c.Len64()
	if !ok {
		return Account{}, false
	}
	data, ok := c.Bytes(n)
	if !ok {
		return Account{}, false
	}
	if !c.Skip(MaxPermittedDataIncrease) || !c.Align(InputAlignment) {
		return Account{}, false
	}
	// rent epoch
	if !c.Skip(8) {
		return Account{}, false
	}
	return Account{Key: key, Data: data}, true
}
