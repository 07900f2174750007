package format

import "errors"

// ErrBadPubkey indicates a textual public key did not decode to 32 bytes.
var ErrBadPubkey = errors.New("format: invalid public key")
