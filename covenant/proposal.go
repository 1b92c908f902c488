package covenant

import (
	"encoding/binary"
	"fmt"

	"github.com/covenantsorg/libcovenant-go/addr"
	"github.com/covenantsorg/libcovenant-go/commitment"
	"github.com/covenantsorg/libcovenant-go/fees"
	"github.com/covenantsorg/libcovenant-go/params"
	"github.com/covenantsorg/libcovenant-go/registry"
)

// Proposal constructor parameters, positional:
//
//	[0] bigint  approval threshold
//	[1] bigint  execution timelock, seconds after approval
//	[2] bytes20 payout recipient hash
//	[3] bigint  payout amount, satoshis
type proposalParams struct {
	threshold    uint64
	timelock     uint64
	payoutHash   []byte
	payoutAmount uint64
}

func proposalParamsFrom(l params.List) (*proposalParams, error) {
	threshold, err := l.Uint64(0)
	if err != nil {
		return nil, err
	}
	timelock, err := l.Uint64(1)
	if err != nil {
		return nil, err
	}
	recipient, err := l.Hash20(2)
	if err != nil {
		return nil, err
	}
	amount, err := l.Uint64(3)
	if err != nil {
		return nil, err
	}
	return &proposalParams{
		threshold:    threshold,
		timelock:     timelock,
		payoutHash:   recipient,
		payoutAmount: amount,
	}, nil
}

// PayoutHash commits to a payout output: hash160 of the locking bytecode
// followed by the little-endian 64-bit amount. The deployment path stores
// this in the proposal commitment; Execute refuses any other payout shape.
func PayoutHash(lockingBytecode []byte, amount uint64) [20]byte {
	buf := make([]byte, len(lockingBytecode)+8)
	copy(buf, lockingBytecode)
	binary.LittleEndian.PutUint64(buf[len(lockingBytecode):], amount)
	var h [20]byte
	copy(h[:], addr.Hash160(buf))
	return h
}

// ProposalApprove records one approval. Reaching the threshold flips the
// proposal to APPROVED and stamps the time the execution timelock runs from.
// Approvals past the threshold still count (the counter keeps the full tally
// on-chain) but leave the status and the timelock start untouched.
func (b *Builder) ProposalApprove(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeProposal, "approve")
	if err != nil {
		return nil, err
	}
	p, err := proposalParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeProposal(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.ProposalSubmitted && st.Status != commitment.ProposalApproved {
		return nil, fmt.Errorf("%w: proposal status %d, approve needs SUBMITTED or APPROVED", ErrInvalidState, st.Status)
	}

	next := *st
	next.Approvals++
	if st.Status == commitment.ProposalSubmitted && uint64(next.Approvals) >= p.threshold {
		next.Status = commitment.ProposalApproved
		next.ApprovedAt = req.Now
	}

	d := &Descriptor{}
	d.addInput(cov, contract, "approve", SequenceFinal)
	d.addOutput(covenantOutput(cov, cov.Satoshis, commitment.EncodeProposal(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveProposal)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveProposal, p.payoutHash); err != nil {
		return nil, err
	}
	return d, nil
}

// ProposalExecute pays out an approved proposal after its timelock. The
// payout output must hash to the commitment's payout hash; the builder
// re-derives it from the stored recipient hash and amount, so a caller
// cannot substitute a different destination.
func (b *Builder) ProposalExecute(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeProposal, "execute")
	if err != nil {
		return nil, err
	}
	p, err := proposalParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeProposal(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.ProposalApproved && st.Status != commitment.ProposalExecutable {
		return nil, fmt.Errorf("%w: proposal status %d, execute needs APPROVED", ErrInvalidState, st.Status)
	}
	if req.Now < st.ApprovedAt+p.timelock {
		return nil, fmt.Errorf("%w: timelock runs until %d (now %d)",
			ErrInvalidState, st.ApprovedAt+p.timelock, req.Now)
	}

	payout, err := b.p2pkhOutput(p.payoutHash, p.payoutAmount)
	if err != nil {
		return nil, err
	}
	if PayoutHash(payout.LockingBytecode, payout.Satoshis) != st.PayoutHash {
		return nil, fmt.Errorf("%w: payout does not match committed hash", ErrInvalidState)
	}
	if cov.Satoshis < p.payoutAmount+b.cfg.DustLimit {
		return nil, fmt.Errorf("%w: proposal holds %d sat, payout %d leaves less than dust",
			ErrInsufficientBalance, cov.Satoshis, p.payoutAmount)
	}

	next := *st
	next.Status = commitment.ProposalExecuted

	d := &Descriptor{}
	d.addInput(cov, contract, "execute", SequenceFinal)
	d.addOutput(payout)
	d.addOutput(covenantOutput(cov, cov.Satoshis-p.payoutAmount, commitment.EncodeProposal(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveProposal)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveProposal, p.payoutHash); err != nil {
		return nil, err
	}
	return d, nil
}

// ProposalCancel voids a proposal that has not executed.
func (b *Builder) ProposalCancel(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeProposal, "cancel")
	if err != nil {
		return nil, err
	}
	p, err := proposalParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeProposal(cov.Commitment())
	if err != nil {
		return nil, err
	}

	switch st.Status {
	case commitment.ProposalSubmitted, commitment.ProposalApproved, commitment.ProposalExecutable:
	default:
		return nil, fmt.Errorf("%w: proposal status %d cannot be cancelled", ErrInvalidState, st.Status)
	}

	next := *st
	next.Status = commitment.ProposalCancelled

	d := &Descriptor{}
	d.addInput(cov, contract, "cancel", SequenceFinal)
	d.addOutput(covenantOutput(cov, cov.Satoshis, commitment.EncodeProposal(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveProposal)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveProposal, p.payoutHash); err != nil {
		return nil, err
	}
	return d, nil
}
