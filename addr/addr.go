// Package addr converts between 20-byte pubkey hashes, base58 P2PKH
// addresses, and P2PKH locking bytecode. Builders use it to re-derive a
// participant's return address from the hash stored in constructor
// parameters, so a caller can never redirect a refund.
package addr

import (
	"fmt"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"
)

// HashLen is the length of a P2PKH pubkey hash.
const HashLen = 20

// FromHash converts a 20-byte pubkey hash to a base58 P2PKH address.
func FromHash(hash []byte, mainnet bool) (string, error) {
	if len(hash) != HashLen {
		return "", fmt.Errorf("%w: got %d", ErrInvalidHash, len(hash))
	}
	a, err := script.NewAddressFromPublicKeyHash(hash, mainnet)
	if err != nil {
		return "", fmt.Errorf("addr: encode address: %w", err)
	}
	return a.AddressString, nil
}

// ToHash decodes a base58 P2PKH address into its 20-byte pubkey hash.
// Any non-P2PKH address shape fails with ErrNotP2pkh.
func ToHash(address string) ([]byte, error) {
	a, err := script.NewAddressFromString(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotP2pkh, address)
	}
	hash := []byte(a.PublicKeyHash)
	if len(hash) != HashLen {
		return nil, fmt.Errorf("%w: %q", ErrNotP2pkh, address)
	}
	return hash, nil
}

// IsP2pkh reports whether the address decodes as plain P2PKH.
func IsP2pkh(address string) bool {
	_, err := ToHash(address)
	return err == nil
}

// LockingBytecode builds the 25-byte P2PKH locking script for a 20-byte hash.
func LockingBytecode(hash []byte, mainnet bool) ([]byte, error) {
	if len(hash) != HashLen {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHash, len(hash))
	}
	a, err := script.NewAddressFromPublicKeyHash(hash, mainnet)
	if err != nil {
		return nil, fmt.Errorf("addr: address from hash: %w", err)
	}
	lock, err := p2pkh.Lock(a)
	if err != nil {
		return nil, fmt.Errorf("addr: p2pkh lock: %w", err)
	}
	return []byte(*lock), nil
}

// LockingBytecodeFromAddress builds P2PKH locking bytecode for an address,
// refusing non-P2PKH shapes.
func LockingBytecodeFromAddress(address string, mainnet bool) ([]byte, error) {
	hash, err := ToHash(address)
	if err != nil {
		return nil, err
	}
	return LockingBytecode(hash, mainnet)
}

// Hash160 computes RIPEMD160(SHA256(data)), the hash P2PKH locks to.
func Hash160(data []byte) []byte {
	return bsvhash.Hash160(data)
}
