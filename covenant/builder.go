// Package covenant assembles unsigned transactions that evolve on-chain
// covenant state. Each builder mirrors, off-chain, the exact transition and
// spending rules a fixed validation script enforces on-chain: it selects the
// state-bearing UTXO, decodes the current commitment, checks the guardrails
// the script would check, computes the next commitment, and emits a
// descriptor the external signer can complete. Builders are pure functions
// of (UTXO snapshot, constructor parameters, current time, intent); they
// never sign, broadcast, or perform I/O.
package covenant

import (
	"fmt"

	"github.com/covenantsorg/libcovenant-go/addr"
	"github.com/covenantsorg/libcovenant-go/chain"
	"github.com/covenantsorg/libcovenant-go/config"
	"github.com/covenantsorg/libcovenant-go/fees"
	"github.com/covenantsorg/libcovenant-go/params"
	"github.com/covenantsorg/libcovenant-go/registry"
)

// Builder constructs unsigned covenant transactions. It is stateless and
// safe for concurrent use; the registry it holds only caches parsed
// artifacts.
type Builder struct {
	cfg config.Config
	reg *registry.Registry
}

// New creates a Builder over a validated configuration and an artifact
// registry. The registry is required: every descriptor names the contract
// function a signer will invoke, and the name is checked against the ABI.
func New(cfg config.Config, reg *registry.Registry) (*Builder, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: registry", ErrNilParam)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg, reg: reg}, nil
}

// EstimateFee prices a transaction of the given shape at the configured fee
// rate. Actions with a small, bounded output set charge a fixed per-family
// reserve instead; funding-path callers with variable output counts use this.
func (b *Builder) EstimateFee(inputCount int, outputs []fees.OutputShape) uint64 {
	return fees.EstimateAtRate(inputCount, outputs, b.cfg.FeeRate)
}

// EstimateFeeFor prices an assembled descriptor at the configured fee rate.
func (b *Builder) EstimateFeeFor(d *Descriptor) uint64 {
	return b.EstimateFee(len(d.Tx.Inputs), d.Shapes())
}

// Request is the common input of every builder action: the covenant's stored
// constructor parameters, a freshly fetched UTXO snapshot for its address,
// and the caller's wall-clock time in unix seconds. Category optionally pins
// the covenant's token category when the address holds several.
type Request struct {
	Params   params.List
	Utxos    []*chain.Utxo
	Now      uint64
	Category string
}

// resolveFunction checks fn against the type's ABI and returns the contract
// name for the source-output record.
func (b *Builder) resolveFunction(t registry.CovenantType, fn string) (string, error) {
	a, err := b.reg.Resolve(t)
	if err != nil {
		return "", err
	}
	if _, err := a.Function(fn); err != nil {
		return "", err
	}
	return a.ContractName, nil
}

// selectCovenant picks the state-bearing UTXO from the snapshot.
func (b *Builder) selectCovenant(req Request) (*chain.Utxo, error) {
	var match chain.Predicate
	if req.Category != "" {
		match = chain.ByCategory(req.Category)
	}
	return chain.SelectForSpend(req.Utxos, match)
}

// covenantOutput re-mints the covenant's state output: same locking
// bytecode, same category and fungible balance, fresh commitment.
func covenantOutput(cov *chain.Utxo, satoshis uint64, nextCommitment []byte) Output {
	return Output{
		Satoshis:        satoshis,
		LockingBytecode: cov.LockingBytecode,
		Token: &chain.TokenData{
			Category: cov.Token.Category,
			Amount:   cov.Token.Amount,
			Nft: &chain.NftData{
				Capability: cov.Token.Nft.Capability,
				Commitment: nextCommitment,
			},
		},
	}
}

// p2pkhOutput builds a plain payout output to a stored 20-byte hash.
func (b *Builder) p2pkhOutput(hash []byte, satoshis uint64) (Output, error) {
	lock, err := addr.LockingBytecode(hash, b.cfg.Mainnet())
	if err != nil {
		return Output{}, err
	}
	return Output{Satoshis: satoshis, LockingBytecode: lock}, nil
}

// addFeePayers selects token-free UTXOs covering the reserve, adds them as
// plain inputs, and returns the selection for change computation.
func (b *Builder) addFeePayers(d *Descriptor, utxos []*chain.Utxo, reserve uint64) (*chain.FeeSelection, error) {
	sel, err := chain.SelectFeePayer(utxos, reserve, b.cfg.SortPolicy())
	if err != nil {
		return nil, err
	}
	for _, u := range sel.Utxos {
		d.addInput(u, "", "", SequenceFinal)
	}
	return sel, nil
}

// addChange returns the fee-payer surplus above the reserve to changeHash.
// A surplus at or below dust is left to the miner.
func (b *Builder) addChange(d *Descriptor, sel *chain.FeeSelection, reserve uint64, changeHash []byte) error {
	change := sel.Total - reserve
	if change <= b.cfg.DustLimit {
		return nil
	}
	out, err := b.p2pkhOutput(changeHash, change)
	if err != nil {
		return err
	}
	d.addOutput(out)
	return nil
}
