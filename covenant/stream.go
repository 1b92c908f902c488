package covenant

import (
	"fmt"
	"math/big"

	"github.com/covenantsorg/libcovenant-go/commitment"
	"github.com/covenantsorg/libcovenant-go/fees"
	"github.com/covenantsorg/libcovenant-go/params"
	"github.com/covenantsorg/libcovenant-go/registry"
)

// Stream constructor parameters, positional:
//
//	[0] bytes20 sender hash (refund destination)
//	[1] bigint  total amount, satoshis
//	[2] bigint  start timestamp
//	[3] bigint  end timestamp
//	[4] bigint  step interval, seconds (0 selects linear vesting)
//	[5] bigint  step amount, satoshis (0 for linear)
//
// The recipient hash lives in the commitment, not the constructor, so a
// transferable stream can reassign it.
type streamParams struct {
	senderHash   []byte
	total        uint64
	start        uint64
	end          uint64
	stepInterval uint64
	stepAmount   uint64
}

func streamParamsFrom(l params.List) (*streamParams, error) {
	senderHash, err := l.Hash20(0)
	if err != nil {
		return nil, err
	}
	total, err := l.Uint64(1)
	if err != nil {
		return nil, err
	}
	start, err := l.Uint64(2)
	if err != nil {
		return nil, err
	}
	end, err := l.Uint64(3)
	if err != nil {
		return nil, err
	}
	stepInterval, err := l.Uint64(4)
	if err != nil {
		return nil, err
	}
	stepAmount, err := l.Uint64(5)
	if err != nil {
		return nil, err
	}
	return &streamParams{
		senderHash:   senderHash,
		total:        total,
		start:        start,
		end:          end,
		stepInterval: stepInterval,
		stepAmount:   stepAmount,
	}, nil
}

// vestedAmount computes the amount vested at now. The commitment cursor is
// the effective vesting start: it begins at the constructor start time and
// shifts forward by the paused interval on each resume.
func (p *streamParams) vestedAmount(st *commitment.StreamState, now uint64) uint64 {
	start := st.Cursor
	if now <= start {
		return 0
	}
	elapsed := now - start

	if p.stepInterval > 0 {
		vested := (elapsed / p.stepInterval) * p.stepAmount
		if vested > p.total {
			return p.total
		}
		return vested
	}

	duration := p.end - p.start
	if duration == 0 || elapsed >= duration {
		return p.total
	}
	// floor(total * elapsed / duration); big.Int avoids u64 overflow on the
	// intermediate product.
	v := new(big.Int).SetUint64(p.total)
	v.Mul(v, new(big.Int).SetUint64(elapsed))
	v.Div(v, new(big.Int).SetUint64(duration))
	return v.Uint64()
}

// StreamClaim pays the recipient everything vested but not yet released.
// The stream completes once released reaches the total.
func (b *Builder) StreamClaim(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeStream, "claim")
	if err != nil {
		return nil, err
	}
	p, err := streamParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeStream(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusActive {
		return nil, fmt.Errorf("%w: stream status %d, claim needs ACTIVE", ErrInvalidState, st.Status)
	}
	vested := p.vestedAmount(st, req.Now)
	if vested <= st.TotalReleased {
		return nil, fmt.Errorf("%w: vested %d, already released %d", ErrNothingToClaim, vested, st.TotalReleased)
	}
	claimable := vested - st.TotalReleased
	if cov.Satoshis < claimable+b.cfg.DustLimit {
		return nil, fmt.Errorf("%w: stream holds %d sat, claim of %d leaves less than dust",
			ErrInsufficientBalance, cov.Satoshis, claimable)
	}

	next := *st
	next.TotalReleased += claimable
	if next.TotalReleased >= p.total {
		next.Status = commitment.StatusCompleted
	}

	payout, err := b.p2pkhOutput(st.RecipientHash[:], claimable)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{}
	d.addInput(cov, contract, "claim", SequenceFinal)
	d.addOutput(payout)
	d.addOutput(covenantOutput(cov, cov.Satoshis-claimable, commitment.EncodeStream(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveStream)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveStream, st.RecipientHash[:]); err != nil {
		return nil, err
	}
	return d, nil
}

// StreamPause suspends vesting. Requires the cancelable flag: a stream the
// sender cannot cancel is one the sender cannot interrupt either.
func (b *Builder) StreamPause(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeStream, "pause")
	if err != nil {
		return nil, err
	}
	p, err := streamParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeStream(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusActive {
		return nil, fmt.Errorf("%w: stream status %d, pause needs ACTIVE", ErrInvalidState, st.Status)
	}
	if !st.Cancelable() {
		return nil, fmt.Errorf("%w: stream is not cancelable", ErrInvalidState)
	}

	next := *st
	next.Status = commitment.StatusPaused
	next.PauseStart = req.Now

	d := &Descriptor{}
	d.addInput(cov, contract, "pause", SequenceFinal)
	d.addOutput(covenantOutput(cov, cov.Satoshis, commitment.EncodeStream(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveStream)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveStream, p.senderHash); err != nil {
		return nil, err
	}
	return d, nil
}

// StreamResume restarts a paused stream, shifting the vesting cursor forward
// by the paused interval so no vesting accrues while paused.
func (b *Builder) StreamResume(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeStream, "resume")
	if err != nil {
		return nil, err
	}
	p, err := streamParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeStream(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusPaused {
		return nil, fmt.Errorf("%w: stream status %d, resume needs PAUSED", ErrInvalidState, st.Status)
	}
	if req.Now < st.PauseStart {
		return nil, fmt.Errorf("%w: now %d precedes pause start %d", ErrInvalidState, req.Now, st.PauseStart)
	}

	next := *st
	next.Status = commitment.StatusActive
	next.Cursor += req.Now - st.PauseStart
	next.PauseStart = 0

	d := &Descriptor{}
	d.addInput(cov, contract, "resume", SequenceFinal)
	d.addOutput(covenantOutput(cov, cov.Satoshis, commitment.EncodeStream(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveStream)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveStream, p.senderHash); err != nil {
		return nil, err
	}
	return d, nil
}

// StreamCancel ends a cancelable stream and refunds the unvested remainder
// to the sender hash stored in the constructor parameters. The fee reserve
// comes out of the refund; the terminal state output keeps dust.
func (b *Builder) StreamCancel(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeStream, "cancel")
	if err != nil {
		return nil, err
	}
	p, err := streamParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeStream(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusActive && st.Status != commitment.StatusPaused {
		return nil, fmt.Errorf("%w: stream status %d cannot be cancelled", ErrInvalidState, st.Status)
	}
	if !st.Cancelable() {
		return nil, fmt.Errorf("%w: stream is not cancelable", ErrInvalidState)
	}
	if cov.Satoshis < b.cfg.DustLimit+fees.ReserveStream+1 {
		return nil, fmt.Errorf("%w: stream holds %d sat, cannot cover dust and fee reserve",
			ErrInsufficientBalance, cov.Satoshis)
	}

	next := *st
	next.Status = commitment.StatusCompleted

	refund, err := b.p2pkhOutput(p.senderHash, cov.Satoshis-b.cfg.DustLimit-fees.ReserveStream)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{}
	d.addInput(cov, contract, "cancel", SequenceFinal)
	d.addOutput(refund)
	d.addOutput(covenantOutput(cov, b.cfg.DustLimit, commitment.EncodeStream(&next)))
	return d, nil
}
