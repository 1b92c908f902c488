package covenant

import (
	"bytes"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/covenantsorg/libcovenant-go/addr"
	"github.com/covenantsorg/libcovenant-go/commitment"
	"github.com/covenantsorg/libcovenant-go/fees"
	"github.com/covenantsorg/libcovenant-go/params"
	"github.com/covenantsorg/libcovenant-go/registry"
)

// Airdrop constructor parameters, positional:
//
//	[0] bytes20 authority hash (cancel refund destination)
//	[1] bigint  total pool, satoshis
//	[2] bigint  amount per claim, satoshis
//	[3] bigint  claim window start timestamp (0 = open)
//	[4] bigint  claim window end timestamp (0 = open)
type airdropParams struct {
	authorityHash []byte
	totalPool     uint64
	perClaim      uint64
	start         uint64
	end           uint64
}

func airdropParamsFrom(l params.List) (*airdropParams, error) {
	authorityHash, err := l.Hash20(0)
	if err != nil {
		return nil, err
	}
	totalPool, err := l.Uint64(1)
	if err != nil {
		return nil, err
	}
	perClaim, err := l.Uint64(2)
	if err != nil {
		return nil, err
	}
	start, err := l.Uint64(3)
	if err != nil {
		return nil, err
	}
	end, err := l.Uint64(4)
	if err != nil {
		return nil, err
	}
	return &airdropParams{
		authorityHash: authorityHash,
		totalPool:     totalPool,
		perClaim:      perClaim,
		start:         start,
		end:           end,
	}, nil
}

// AirdropClaimRequest extends Request with the claimer's identity. The
// claimer hash is always re-derived from the public key or address, never
// taken on faith.
type AirdropClaimRequest struct {
	Request
	ClaimAmount    uint64
	ClaimerPubKey  *ec.PublicKey // one of pubkey or address is required
	ClaimerAddress string
}

func (r *AirdropClaimRequest) claimerHash() ([]byte, error) {
	if r.ClaimerPubKey != nil {
		return addr.Hash160(r.ClaimerPubKey.Compressed()), nil
	}
	if r.ClaimerAddress != "" {
		return addr.ToHash(r.ClaimerAddress)
	}
	return nil, fmt.Errorf("%w: claimer pubkey or address", ErrNilParam)
}

// AirdropClaim pays one fixed-size claim to the claimer. The claim must fall
// inside the configured window, match the per-claim amount exactly, and
// leave the pool within its cap. The transaction's locktime is set to the
// claim time and snapshotted into the commitment.
func (b *Builder) AirdropClaim(req AirdropClaimRequest) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeAirdrop, "claim")
	if err != nil {
		return nil, err
	}
	p, err := airdropParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	claimer, err := req.claimerHash()
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req.Request)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeAirdrop(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusActive {
		return nil, fmt.Errorf("%w: airdrop status %d, claim needs ACTIVE", ErrInvalidState, st.Status)
	}
	if p.start > 0 && req.Now < p.start {
		return nil, fmt.Errorf("%w: claim window opens at %d (now %d)", ErrInvalidState, p.start, req.Now)
	}
	if p.end > 0 && req.Now > p.end {
		return nil, fmt.Errorf("%w: claim window closed at %d (now %d)", ErrInvalidState, p.end, req.Now)
	}
	if req.ClaimAmount != p.perClaim {
		return nil, fmt.Errorf("%w: claims are fixed at %d sat, requested %d", ErrInvalidState, p.perClaim, req.ClaimAmount)
	}
	if st.TotalClaimed+p.perClaim > p.totalPool {
		return nil, fmt.Errorf("%w: %d of %d claimed", ErrPoolExhausted, st.TotalClaimed, p.totalPool)
	}
	if cov.Satoshis < p.perClaim+b.cfg.DustLimit {
		return nil, fmt.Errorf("%w: airdrop holds %d sat, claim of %d leaves less than dust",
			ErrInsufficientBalance, cov.Satoshis, p.perClaim)
	}

	next := *st
	next.TotalClaimed += p.perClaim
	next.ClaimsCount++
	next.Locktime = req.Now
	if next.TotalClaimed >= p.totalPool {
		next.Status = commitment.StatusCompleted
	}

	payout, err := b.p2pkhOutput(claimer, p.perClaim)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{}
	d.Tx.Locktime = uint32(req.Now)
	d.addInput(cov, contract, "claim", SequenceLocktime)
	d.addOutput(payout)
	d.addOutput(covenantOutput(cov, cov.Satoshis-p.perClaim, commitment.EncodeAirdrop(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveAirdrop)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveAirdrop, claimer); err != nil {
		return nil, err
	}
	return d, nil
}

// VerifyClaimer reports whether a public key hashes to the given claimer
// hash. Exposed for callers that pre-screen claims before building.
func VerifyClaimer(pub *ec.PublicKey, claimerHash []byte) bool {
	return pub != nil && bytes.Equal(addr.Hash160(pub.Compressed()), claimerHash)
}

// AirdropPause suspends claims. Requires the cancelable flag.
func (b *Builder) AirdropPause(req Request) (*Descriptor, error) {
	return b.airdropSetStatus(req, "pause", commitment.StatusActive, commitment.StatusPaused)
}

// AirdropResume reopens a paused airdrop.
func (b *Builder) AirdropResume(req Request) (*Descriptor, error) {
	return b.airdropSetStatus(req, "resume", commitment.StatusPaused, commitment.StatusActive)
}

func (b *Builder) airdropSetStatus(req Request, fn string, from, to commitment.Status) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeAirdrop, fn)
	if err != nil {
		return nil, err
	}
	p, err := airdropParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeAirdrop(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != from {
		return nil, fmt.Errorf("%w: airdrop status %d, %s needs %d", ErrInvalidState, st.Status, fn, from)
	}
	if !st.Cancelable() {
		return nil, fmt.Errorf("%w: airdrop is not cancelable", ErrInvalidState)
	}

	next := *st
	next.Status = to

	d := &Descriptor{}
	d.addInput(cov, contract, fn, SequenceFinal)
	d.addOutput(covenantOutput(cov, cov.Satoshis, commitment.EncodeAirdrop(&next)))

	feeSel, err := b.addFeePayers(d, req.Utxos, fees.ReserveAirdrop)
	if err != nil {
		return nil, err
	}
	if err := b.addChange(d, feeSel, fees.ReserveAirdrop, p.authorityHash); err != nil {
		return nil, err
	}
	return d, nil
}

// AirdropCancel closes the airdrop and returns the unclaimed pool, minus
// the fee reserve, to the authority address re-derived from the stored hash.
func (b *Builder) AirdropCancel(req Request) (*Descriptor, error) {
	contract, err := b.resolveFunction(registry.TypeAirdrop, "cancel")
	if err != nil {
		return nil, err
	}
	p, err := airdropParamsFrom(req.Params)
	if err != nil {
		return nil, err
	}
	cov, err := b.selectCovenant(req)
	if err != nil {
		return nil, err
	}
	st, err := commitment.DecodeAirdrop(cov.Commitment())
	if err != nil {
		return nil, err
	}

	if st.Status != commitment.StatusActive && st.Status != commitment.StatusPaused {
		return nil, fmt.Errorf("%w: airdrop status %d cannot be cancelled", ErrInvalidState, st.Status)
	}
	if !st.Cancelable() {
		return nil, fmt.Errorf("%w: airdrop is not cancelable", ErrInvalidState)
	}
	if cov.Satoshis < b.cfg.DustLimit+fees.ReserveAirdrop+1 {
		return nil, fmt.Errorf("%w: airdrop holds %d sat, cannot cover dust and fee reserve",
			ErrInsufficientBalance, cov.Satoshis)
	}

	next := *st
	next.Status = commitment.StatusCompleted

	refund, err := b.p2pkhOutput(p.authorityHash, cov.Satoshis-b.cfg.DustLimit-fees.ReserveAirdrop)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{}
	d.addInput(cov, contract, "cancel", SequenceFinal)
	d.addOutput(refund)
	d.addOutput(covenantOutput(cov, b.cfg.DustLimit, commitment.EncodeAirdrop(&next)))
	return d, nil
}
