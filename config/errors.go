package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", or \"regtest\")")

	// ErrInvalidFeeRate indicates the fee rate is outside the accepted range.
	ErrInvalidFeeRate = errors.New("config: fee rate must be between 1 and 100 sat/byte")

	// ErrInvalidDustLimit indicates a dust limit below the relay minimum.
	ErrInvalidDustLimit = errors.New("config: dust limit below relay minimum")

	// ErrInvalidFeePayerPolicy indicates an unrecognized sort policy.
	ErrInvalidFeePayerPolicy = errors.New("config: invalid fee payer policy (must be \"largest-first\" or \"smallest-first\")")
)
