package covenant

import (
	"fmt"

	"github.com/covenantsorg/libcovenant-go/commitment"
	"github.com/covenantsorg/libcovenant-go/fees"
	"github.com/covenantsorg/libcovenant-go/params"
	"github.com/covenantsorg/libcovenant-go/registry"
)

// RecurringPayment constructor parameters, positional:
//
//	[0] bytes20 sender hash (refund destination)
//	[1] bytes20 recipient hash
//	[2] bigint  total amount across all payments, satoshis
//	[3] bigint  amount per payment, satoshis
//	[4] bigint  payment interval, seconds
type recurringParams struct {
	senderHash    []byte
	recipientHash []byte
	total         uint64
	perPayment    uint64
	interval      uint64
}

func recurringParamsFrom(l params.List) (*recurringParams, error) {
	senderHash, err := l.Hash20(0)
	if err != nil {
		return nil, err
	}
	recipientHash, err := l.Hash20(1)
	if err != nil {
		return nil, err
	}
	total, err := l.Uint64(2)
	if err != nil {
		return nil, err
	}
	perPayment, err := l.Uint64(3)
	if err != nil {
		return nil, err
	}
	interval, err := l.Uint64(4)
	if err != nil {
		return nil, err
	}
	if perPayment == 0 || interval == 0 {
		return nil, fmt.Errorf("%w: per-payment amount and interval must be non-zero", ErrInvalidState)
	}
	return &recurringParams{
		senderHash:    senderHash,
		recipientHash: recipientHash,
		total:         total,
		perPayment:    perPayment,
		interval:      interval,
	}, nil
}

// RecurringClaim pays the recipient every interval elapsed since the last
// payment in one transaction. The schedule completes when total paid
// reaches the total amount; the final payment may be a partial tail.
func (b *Builder) RecurringClaim(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeRecurring, "claim")
	if err != nil {
		return nil, err
	}
	p, err := recurringParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeRecurring(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusActive {
		return nil, fmt.Errorf("%w: schedule status %d, claim needs ACTIVE", ErrInvalidState, st.Status)
	}
	if req.Now < st.NextPayment {
		return nil, fmt.Errorf("%w: next payment due at %d (now %d)", ErrNothingToClaim, st.NextPayment, req.Now)
	}
	if st.TotalPaid >= p.total {
		return nil, fmt.Errorf("%w: schedule fully paid", ErrNothingToClaim)
	}

	elapsed := 1 + (req.Now-st.NextPayment)/p.interval
	payable := elapsed * p.perPayment
	if remaining := p.total - st.TotalPaid; payable > remaining {
		payable = remaining
	}
	if cov.Satoshis < payable+b.cfg.DustLimit {
		return nil, fmt.Errorf("%w: schedule holds %d sat, payout of %d leaves less than dust",
			ErrInsufficientBalance, cov.Satoshis, payable)
	}

	next := *st
	next.TotalPaid += payable
	next.PaymentCount += elapsed
	next.NextPayment = st.NextPayment + elapsed*p.interval
	if next.TotalPaid >= p.total {
		next.Status = commitment.StatusCompleted
	}

	payout, err := b.p2pkhOutput(p.recipientHash, payable)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{}
	d.addInput(cov, contract, "claim", SequenceFinal)
	d.addOutput(payout)
	d.addOutput(covenantOutput(cov, cov.Satoshis-payable, commitment.EncodeRecurring(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveRecurring)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveRecurring, p.recipientHash); err != nil {
		return nil, err
	}
	return d, nil
}

// RecurringPause suspends the schedule. Requires the cancelable flag. Pause
// writes the 35-byte short-form commitment.
func (b *Builder) RecurringPause(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeRecurring, "pause")
	if err != nil {
		return nil, err
	}
	p, err := recurringParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeRecurring(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusActive {
		return nil, fmt.Errorf("%w: schedule status %d, pause needs ACTIVE", ErrInvalidState, st.Status)
	}
	if !st.Cancelable() {
		return nil, fmt.Errorf("%w: schedule is not cancelable", ErrInvalidState)
	}

	next := *st
	next.Status = commitment.StatusPaused
	next.PauseStart = req.Now

	d := &Descriptor{}
	d.addInput(cov, contract, "pause", SequenceFinal)
	d.addOutput(covenantOutput(cov, cov.Satoshis, commitment.EncodeRecurringShort(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveRecurring)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveRecurring, p.senderHash); err != nil {
		return nil, err
	}
	return d, nil
}

// RecurringResume restarts a paused schedule. The next payment is
// recomputed as now plus one interval; paused time is not owed.
func (b *Builder) RecurringResume(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeRecurring, "resume")
	if err != nil {
		return nil, err
	}
	p, err := recurringParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeRecurring(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusPaused {
		return nil, fmt.Errorf("%w: schedule status %d, resume needs PAUSED", ErrInvalidState, st.Status)
	}

	next := *st
	next.Status = commitment.StatusActive
	next.NextPayment = req.Now + p.interval
	next.PauseStart = 0

	d := &Descriptor{}
	d.addInput(cov, contract, "resume", SequenceFinal)
	d.addOutput(covenantOutput(cov, cov.Satoshis, commitment.EncodeRecurring(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveRecurring)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveRecurring, p.senderHash); err != nil {
		return nil, err
	}
	return d, nil
}

// RecurringCancel ends the schedule and refunds the unpaid remainder, minus
// the fee reserve, to the sender address re-derived from the stored hash.
func (b *Builder) RecurringCancel(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeRecurring, "cancel")
	if err != nil {
		return nil, err
	}
	p, err := recurringParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeRecurring(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusActive && st.Status != commitment.StatusPaused {
		return nil, fmt.Errorf("%w: schedule status %d cannot be cancelled", ErrInvalidState, st.Status)
	}
	if !st.Cancelable() {
		return nil, fmt.Errorf("%w: schedule is not cancelable", ErrInvalidState)
	}
	if cov.Satoshis < b.cfg.DustLimit+fees.ReserveRecurring+1 {
		return nil, fmt.Errorf("%w: schedule holds %d sat, cannot cover dust and fee reserve",
			ErrInsufficientBalance, cov.Satoshis)
	}

	next := *st
	next.Status = commitment.StatusCompleted

	refund, err := b.p2pkhOutput(p.senderHash, cov.Satoshis-b.cfg.DustLimit-fees.ReserveRecurring)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{}
	d.addInput(cov, contract, "cancel", SequenceFinal)
	d.addOutput(refund)
	d.addOutput(covenantOutput(cov, b.cfg.DustLimit, commitment.EncodeRecurring(&next)))
	return d, nil
}
