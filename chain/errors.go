package chain

import "errors"

var (
	// ErrNoUtxoFound indicates the UTXO set is empty or no candidate matched.
	ErrNoUtxoFound = errors.New("chain: no utxo found")

	// ErrGenesisAnchorMissing indicates no token-free UTXO at outpoint index 0
	// is available. Category genesis requires exactly that input; there is no
	// substitute.
	ErrGenesisAnchorMissing = errors.New("chain: genesis anchor missing")

	// ErrInsufficientFee indicates the token-free UTXOs cannot cover the
	// required satoshis.
	ErrInsufficientFee = errors.New("chain: insufficient fee funds")

	// ErrInvalidUtxo indicates a malformed UTXO from the provider.
	ErrInvalidUtxo = errors.New("chain: invalid utxo")
)
