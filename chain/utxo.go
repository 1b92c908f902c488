package chain

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
)

const (
	// TxIDHexLen is the length of a hex-encoded transaction ID.
	TxIDHexLen = 64

	// CategoryHexLen is the length of a hex-encoded token category ID.
	CategoryHexLen = 64
)

// Capability is the NFT capability carried by a tokenized output.
type Capability uint8

const (
	// CapabilityNone marks an immutable NFT.
	CapabilityNone Capability = iota
	// CapabilityMutable allows the commitment to be rewritten when spent.
	CapabilityMutable
	// CapabilityMinting allows new NFTs of the same category to be created.
	CapabilityMinting
)

// String returns the wire name of the capability.
func (c Capability) String() string {
	switch c {
	case CapabilityMutable:
		return "mutable"
	case CapabilityMinting:
		return "minting"
	default:
		return "none"
	}
}

// Class partitions UTXOs by token shape. Every UTXO is exactly one of these;
// builders switch on Class instead of nil-probing nested fields.
type Class int

const (
	// ClassPlain is a pure-satoshi output with no token prefix.
	ClassPlain Class = iota
	// ClassFungible carries a fungible token amount but no NFT.
	ClassFungible
	// ClassWithNft carries an NFT (and possibly a fungible amount too).
	ClassWithNft
)

// NftData is the non-fungible half of a token prefix.
type NftData struct {
	Capability Capability `json:"capability"`
	Commitment []byte     `json:"commitment"` // covenant state blob, family-specific length
}

// TokenData is the CashTokens prefix of a tokenized output.
type TokenData struct {
	Category string   `json:"category"` // 32-byte category ID, hex
	Amount   uint64   `json:"amount"`   // fungible amount, 0 if none
	Nft      *NftData `json:"nft,omitempty"`
}

// Utxo is an unspent transaction output as reported by a UtxoProvider.
// Identity is (TxID, Vout). The chain owns the canonical copy; this library
// only reads it.
type Utxo struct {
	TxID            string     `json:"txid"` // hex, 32 bytes
	Vout            uint32     `json:"vout"`
	Satoshis        uint64     `json:"satoshis"`
	LockingBytecode []byte     `json:"locking_bytecode"`
	Token           *TokenData `json:"token,omitempty"`
}

// Class reports the token shape of the UTXO.
func (u *Utxo) Class() Class {
	switch {
	case u.Token == nil:
		return ClassPlain
	case u.Token.Nft != nil:
		return ClassWithNft
	default:
		return ClassFungible
	}
}

// HasNft reports whether the UTXO carries a non-fungible token.
func (u *Utxo) HasNft() bool { return u.Class() == ClassWithNft }

// TxIDHash parses the display-order hex TxID into a chain hash (wire order).
func (u *Utxo) TxIDHash() (*chainhash.Hash, error) {
	if len(u.TxID) != TxIDHexLen {
		return nil, fmt.Errorf("%w: txid must be %d hex chars, got %d", ErrInvalidUtxo, TxIDHexLen, len(u.TxID))
	}
	h, err := chainhash.NewHashFromHex(u.TxID)
	if err != nil {
		return nil, fmt.Errorf("%w: txid %q: %v", ErrInvalidUtxo, u.TxID, err)
	}
	return h, nil
}

// TxIDBytes returns the TxID as 32 wire-order bytes, the form a transaction
// input's prevout field carries.
func (u *Utxo) TxIDBytes() ([]byte, error) {
	h, err := u.TxIDHash()
	if err != nil {
		return nil, err
	}
	return h.CloneBytes(), nil
}

// Commitment returns the NFT commitment, or nil for non-NFT UTXOs.
func (u *Utxo) Commitment() []byte {
	if u.Class() != ClassWithNft {
		return nil
	}
	return u.Token.Nft.Commitment
}

// Outpoint returns the "txid:vout" identity string.
func (u *Utxo) Outpoint() string {
	return fmt.Sprintf("%s:%d", u.TxID, u.Vout)
}
