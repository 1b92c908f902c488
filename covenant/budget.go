package covenant

import (
	"fmt"

	"github.com/covenantsorg/libcovenant-go/commitment"
	"github.com/covenantsorg/libcovenant-go/fees"
	"github.com/covenantsorg/libcovenant-go/params"
	"github.com/covenantsorg/libcovenant-go/registry"
)

// Budget constructor parameters, positional:
//
//	[0] bytes20 recipient hash
//	[1] bigint  total budget, satoshis
//	[2] bigint  amount per milestone, satoshis
//	[3] bigint  milestone interval, seconds
type budgetParams struct {
	recipientHash []byte
	total         uint64
	stepAmount    uint64
	stepInterval  uint64
}

func budgetParamsFrom(l params.List) (*budgetParams, error) {
	recipientHash, err := l.Hash20(0)
	if err != nil {
		return nil, err
	}
	total, err := l.Uint64(1)
	if err != nil {
		return nil, err
	}
	stepAmount, err := l.Uint64(2)
	if err != nil {
		return nil, err
	}
	stepInterval, err := l.Uint64(3)
	if err != nil {
		return nil, err
	}
	if stepAmount == 0 || stepInterval == 0 {
		return nil, fmt.Errorf("%w: milestone amount and interval must be non-zero", ErrInvalidState)
	}
	return &budgetParams{
		recipientHash: recipientHash,
		total:         total,
		stepAmount:    stepAmount,
		stepInterval:  stepInterval,
	}, nil
}

// BudgetRelease pays the recipient every milestone completed since the last
// release in one transaction. The release cursor advances by whole intervals
// only, so a release mid-interval never forfeits the partial time. The budget
// completes when total released reaches the total.
func (b *Builder) BudgetRelease(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeBudget, "release")
	if err != nil {
		return nil, err
	}
	p, err := budgetParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeBudget(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusActive {
		return nil, fmt.Errorf("%w: budget status %d, release needs ACTIVE", ErrInvalidState, st.Status)
	}
	if st.TotalReleased >= p.total {
		return nil, fmt.Errorf("%w: budget fully released", ErrNoMilestoneDue)
	}
	if req.Now < st.LastRelease+p.stepInterval {
		return nil, fmt.Errorf("%w: next milestone at %d (now %d)",
			ErrNoMilestoneDue, st.LastRelease+p.stepInterval, req.Now)
	}

	completed := (req.Now - st.LastRelease) / p.stepInterval
	releasable := completed * p.stepAmount
	if remaining := p.total - st.TotalReleased; releasable > remaining {
		releasable = remaining
	}
	if cov.Satoshis < releasable+b.cfg.DustLimit {
		return nil, fmt.Errorf("%w: budget holds %d sat, release of %d leaves less than dust",
			ErrInsufficientBalance, cov.Satoshis, releasable)
	}

	next := *st
	next.TotalReleased += releasable
	next.MilestoneCount += completed
	next.LastRelease = st.LastRelease + completed*p.stepInterval
	if next.TotalReleased >= p.total {
		next.Status = commitment.StatusCompleted
	}

	payout, err := b.p2pkhOutput(p.recipientHash, releasable)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{}
	d.addInput(cov, contract, "release", SequenceFinal)
	d.addOutput(payout)
	d.addOutput(covenantOutput(cov, cov.Satoshis-releasable, commitment.EncodeBudget(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveBudget)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveBudget, p.recipientHash); err != nil {
		return nil, err
	}
	return d, nil
}
