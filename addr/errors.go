package addr

import "errors"

var (
	// ErrNotP2pkh indicates an address or locking script is not plain P2PKH.
	// Covenant participants must be P2PKH; multisig and other locking shapes
	// are categorically refused.
	ErrNotP2pkh = errors.New("addr: not a p2pkh address")

	// ErrInvalidHash indicates a pubkey hash is not 20 bytes.
	ErrInvalidHash = errors.New("addr: pubkey hash must be 20 bytes")
)
