// Package config holds the tunable knobs of the covenant builder library.
// Everything the on-chain validators check is a fixed constant elsewhere;
// only policy that the chain does not enforce lives here.
package config

import (
	"github.com/covenantsorg/libcovenant-go/chain"
	"github.com/covenantsorg/libcovenant-go/fees"
)

// Config is the library configuration.
type Config struct {
	// Network selects address encoding: "mainnet", "testnet" or "regtest".
	Network string `json:"network"`

	// FeeRate is the estimator rate in satoshis per byte.
	FeeRate uint64 `json:"fee_rate"`

	// DustLimit is the minimum value kept on state-carrying outputs.
	DustLimit uint64 `json:"dust_limit"`

	// FeePayerPolicy orders token-free UTXOs during fee accumulation:
	// "largest-first" (default) or "smallest-first".
	FeePayerPolicy string `json:"fee_payer_policy"`
}

// Default returns the canonical configuration.
func Default() Config {
	return Config{
		Network:        "mainnet",
		FeeRate:        fees.DefaultFeeRate,
		DustLimit:      fees.DustLimit,
		FeePayerPolicy: "largest-first",
	}
}

// Validate checks all values and returns the first error encountered.
func Validate(cfg Config) error {
	switch cfg.Network {
	case "mainnet", "testnet", "regtest":
	default:
		return ErrInvalidNetwork
	}
	if cfg.FeeRate < 1 || cfg.FeeRate > 100 {
		return ErrInvalidFeeRate
	}
	if cfg.DustLimit < fees.DustLimit {
		return ErrInvalidDustLimit
	}
	switch cfg.FeePayerPolicy {
	case "largest-first", "smallest-first":
	default:
		return ErrInvalidFeePayerPolicy
	}
	return nil
}

// Mainnet reports whether addresses use mainnet encoding.
func (c Config) Mainnet() bool { return c.Network == "mainnet" }

// SortPolicy maps the configured policy name to the selector's policy.
func (c Config) SortPolicy() chain.SortPolicy {
	if c.FeePayerPolicy == "smallest-first" {
		return chain.SmallestFirst
	}
	return chain.LargestFirst
}
