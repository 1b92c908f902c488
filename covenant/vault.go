package covenant

import (
	"fmt"

	"github.com/covenantsorg/libcovenant-go/commitment"
	"github.com/covenantsorg/libcovenant-go/fees"
	"github.com/covenantsorg/libcovenant-go/params"
	"github.com/covenantsorg/libcovenant-go/registry"
)

// Vault constructor parameters, positional:
//
//	[0] bytes20 admin hash
//	[1] bigint  period duration, seconds
//	[2] bigint  spending cap per period, satoshis
type vaultParams struct {
	adminHash      []byte
	periodDuration uint64
	periodCap      uint64
}

func vaultParamsFrom(l params.List) (*vaultParams, error) {
	adminHash, err := l.Hash20(0)
	if err != nil {
		return nil, err
	}
	duration, err := l.Uint64(1)
	if err != nil {
		return nil, err
	}
	spendCap, err := l.Uint64(2)
	if err != nil {
		return nil, err
	}
	return &vaultParams{adminHash: adminHash, periodDuration: duration, periodCap: spendCap}, nil
}

// VaultUnlockPeriod advances the vault into its next spending period once
// the current one has elapsed: period id increments, spent-this-period
// resets to zero, and the vault value is carried over untouched.
func (b *Builder) VaultUnlockPeriod(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeVault, "unlockPeriod")
	if err != nil {
		return nil, err
	}
	p, err := vaultParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeVault(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusActive {
		return nil, fmt.Errorf("%w: vault status %d, unlock needs ACTIVE", ErrInvalidState, st.Status)
	}
	if req.Now < st.LastUpdate+p.periodDuration {
		return nil, fmt.Errorf("%w: period not elapsed until %d (now %d)",
			ErrInvalidState, st.LastUpdate+p.periodDuration, req.Now)
	}

	next := *st
	next.PeriodID++
	next.SpentThisPeriod = 0
	next.LastUpdate = req.Now

	d := &Descriptor{}
	d.addInput(cov, contract, "unlockPeriod", SequenceFinal)
	d.addOutput(covenantOutput(cov, cov.Satoshis, commitment.EncodeVault(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveVault)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveVault, p.adminHash); err != nil {
		return nil, err
	}
	return d, nil
}
