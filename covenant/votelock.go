package covenant

import (
	"fmt"

	"github.com/covenantsorg/libcovenant-go/chain"
	"github.com/covenantsorg/libcovenant-go/commitment"
	"github.com/covenantsorg/libcovenant-go/fees"
	"github.com/covenantsorg/libcovenant-go/params"
	"github.com/covenantsorg/libcovenant-go/registry"
)

// VoteLock constructor parameters, positional:
//
//	[0] bytes20 voter hash (reclaim destination)
//	[1] bigint  voting end timestamp
type voteLockParams struct {
	voterHash []byte
	votingEnd uint64
}

func voteLockParamsFrom(l params.List) (*voteLockParams, error) {
	voterHash, err := l.Hash20(0)
	if err != nil {
		return nil, err
	}
	votingEnd, err := l.Uint64(1)
	if err != nil {
		return nil, err
	}
	return &voteLockParams{voterHash: voterHash, votingEnd: votingEnd}, nil
}

// VoteLockReclaim returns the locked stake to the voter after the voting
// period ends. The vote NFT is consumed, not re-minted: the transaction
// carries no covenant output, only the payout, which also carries the locked
// fungible balance when the lock holds one. The transaction locktime is set
// to the voting end so the input's CLTV check binds, and the miner fee comes
// out of the reclaimed stake.
func (b *Builder) VoteLockReclaim(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeVoteLock, "reclaim")
	if err != nil {
		return nil, err
	}
	p, err := voteLockParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeVoteLock(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusActive {
		return nil, fmt.Errorf("%w: vote lock status %d, reclaim needs ACTIVE", ErrInvalidState, st.Status)
	}
	if req.Now < p.votingEnd {
		return nil, fmt.Errorf("%w: voting runs until %d (now %d)", ErrInvalidState, p.votingEnd, req.Now)
	}
	if cov.Satoshis < fees.ReserveVoteLock+b.cfg.DustLimit {
		return nil, fmt.Errorf("%w: lock holds %d sat, cannot cover dust and fee reserve",
			ErrInsufficientBalance, cov.Satoshis)
	}

	payout, err := b.p2pkhOutput(p.voterHash, cov.Satoshis-fees.ReserveVoteLock)
	if err != nil {
		return nil, err
	}
	if cov.Token != nil && cov.Token.Amount > 0 {
		payout.Token = &chain.TokenData{
			Category: cov.Token.Category,
			Amount:   cov.Token.Amount,
		}
	}

	d := &Descriptor{}
	d.Tx.Locktime = uint32(p.votingEnd)
	d.addInput(cov, contract, "reclaim", SequenceLocktime)
	d.addOutput(payout)
	return d, nil
}
