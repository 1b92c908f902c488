package covenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/covenantsorg/libcovenant-go/addr"
	"github.com/covenantsorg/libcovenant-go/chain"
	"github.com/covenantsorg/libcovenant-go/commitment"
	"github.com/covenantsorg/libcovenant-go/fees"
	"github.com/covenantsorg/libcovenant-go/params"
)

const (
	airdropPool     = uint64(100_000)
	airdropPerClaim = uint64(5_000)
	airdropStart    = uint64(1_700_000_000)
	airdropEnd      = uint64(1_700_100_000)
)

func airdropTestParams() params.List {
	return params.List{
		params.BytesParam(adminHash),
		params.Uint64Param(airdropPool),
		params.Uint64Param(airdropPerClaim),
		params.Uint64Param(airdropStart),
		params.Uint64Param(airdropEnd),
	}
}

func activeAirdrop() *commitment.AirdropState {
	return &commitment.AirdropState{
		Status: commitment.StatusActive,
		Flags:  commitment.FlagCancelable,
	}
}

func airdropRequest(t *testing.T, st *commitment.AirdropState, covSats uint64, now uint64) Request {
	t.Helper()
	return Request{
		Params: airdropTestParams(),
		Utxos: []*chain.Utxo{
			covUtxo(t, commitment.EncodeAirdrop(st), covSats),
			feeUtxo(t, 1, 10000),
		},
		Now: now,
	}
}

func claimRequest(t *testing.T, st *commitment.AirdropState, covSats uint64, now uint64) AirdropClaimRequest {
	t.Helper()
	claimerAddr, err := addr.FromHash(recipientHash, true)
	require.NoError(t, err)
	return AirdropClaimRequest{
		Request:        airdropRequest(t, st, covSats, now),
		ClaimAmount:    airdropPerClaim,
		ClaimerAddress: claimerAddr,
	}
}

func TestAirdropClaim(t *testing.T) {
	b := testBuilder(t)
	now := airdropStart + 50

	d, err := b.AirdropClaim(claimRequest(t, activeAirdrop(), 200_000, now))
	require.NoError(t, err)

	payout := d.Tx.Outputs[0]
	assert.Equal(t, airdropPerClaim, payout.Satoshis)
	wantLock, err := addr.LockingBytecode(recipientHash, true)
	require.NoError(t, err)
	assert.Equal(t, wantLock, payout.LockingBytecode)

	// The claim time binds via locktime on the covenant input and is
	// snapshotted into the commitment.
	assert.Equal(t, uint32(now), d.Tx.Locktime)
	assert.Equal(t, SequenceLocktime, d.Tx.Inputs[0].Sequence)

	next, err := commitment.DecodeAirdrop(covenantOutputOf(t, d).Token.Nft.Commitment)
	require.NoError(t, err)
	assert.Equal(t, airdropPerClaim, next.TotalClaimed)
	assert.Equal(t, uint64(1), next.ClaimsCount)
	assert.Equal(t, now, next.Locktime)
	assert.Equal(t, commitment.StatusActive, next.Status)

	assert.Equal(t, fees.ReserveAirdrop, d.Fee())
}

func TestAirdropClaim_FromPubKey(t *testing.T) {
	b := testBuilder(t)
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)

	req := claimRequest(t, activeAirdrop(), 200_000, airdropStart+50)
	req.ClaimerAddress = ""
	req.ClaimerPubKey = priv.PubKey()

	d, err := b.AirdropClaim(req)
	require.NoError(t, err)

	hash := addr.Hash160(priv.PubKey().Compressed())
	wantLock, err := addr.LockingBytecode(hash, true)
	require.NoError(t, err)
	assert.Equal(t, wantLock, d.Tx.Outputs[0].LockingBytecode)
	assert.True(t, VerifyClaimer(priv.PubKey(), hash))
}

func TestAirdropClaim_NoClaimerIdentity(t *testing.T) {
	b := testBuilder(t)
	req := claimRequest(t, activeAirdrop(), 200_000, airdropStart+50)
	req.ClaimerAddress = ""

	_, err := b.AirdropClaim(req)
	assert.ErrorIs(t, err, ErrNilParam)
}

func TestAirdropClaim_OutsideWindow(t *testing.T) {
	b := testBuilder(t)

	_, err := b.AirdropClaim(claimRequest(t, activeAirdrop(), 200_000, airdropStart-1))
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = b.AirdropClaim(claimRequest(t, activeAirdrop(), 200_000, airdropEnd+1))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAirdropClaim_WrongAmount(t *testing.T) {
	b := testBuilder(t)
	req := claimRequest(t, activeAirdrop(), 200_000, airdropStart+50)
	req.ClaimAmount = airdropPerClaim + 1

	_, err := b.AirdropClaim(req)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAirdropClaim_PoolExhausted(t *testing.T) {
	b := testBuilder(t)
	st := activeAirdrop()
	st.TotalClaimed = airdropPool // all twenty claims taken
	st.ClaimsCount = 20

	_, err := b.AirdropClaim(claimRequest(t, st, 200_000, airdropStart+50))
	assert.ErrorIs(t, err, ErrPoolExhausted)
}

func TestAirdropClaim_LastClaimCompletes(t *testing.T) {
	b := testBuilder(t)
	st := activeAirdrop()
	st.TotalClaimed = airdropPool - airdropPerClaim
	st.ClaimsCount = 19

	d, err := b.AirdropClaim(claimRequest(t, st, 200_000, airdropStart+50))
	require.NoError(t, err)

	next, err := commitment.DecodeAirdrop(covenantOutputOf(t, d).Token.Nft.Commitment)
	require.NoError(t, err)
	assert.Equal(t, airdropPool, next.TotalClaimed)
	assert.Equal(t, uint64(20), next.ClaimsCount)
	assert.Equal(t, commitment.StatusCompleted, next.Status)
}

func TestAirdropPauseResume(t *testing.T) {
	b := testBuilder(t)

	d, err := b.AirdropPause(airdropRequest(t, activeAirdrop(), 200_000, airdropStart+50))
	require.NoError(t, err)
	paused, err := commitment.DecodeAirdrop(covenantOutputOf(t, d).Token.Nft.Commitment)
	require.NoError(t, err)
	assert.Equal(t, commitment.StatusPaused, paused.Status)

	d, err = b.AirdropResume(airdropRequest(t, paused, 200_000, airdropStart+100))
	require.NoError(t, err)
	resumed, err := commitment.DecodeAirdrop(covenantOutputOf(t, d).Token.Nft.Commitment)
	require.NoError(t, err)
	assert.Equal(t, commitment.StatusActive, resumed.Status)
}

func TestAirdropPause_NotCancelable(t *testing.T) {
	b := testBuilder(t)
	st := activeAirdrop()
	st.Flags = 0

	_, err := b.AirdropPause(airdropRequest(t, st, 200_000, airdropStart+50))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAirdropCancel_RefundsAuthority(t *testing.T) {
	b := testBuilder(t)
	st := activeAirdrop()
	st.TotalClaimed = 40_000
	st.ClaimsCount = 8

	d, err := b.AirdropCancel(airdropRequest(t, st, 60_546, airdropStart+50))
	require.NoError(t, err)

	require.Len(t, d.Tx.Inputs, 1, "fee comes from the refund")
	refund := d.Tx.Outputs[0]
	assert.Equal(t, uint64(60_546)-546-fees.ReserveAirdrop, refund.Satoshis)
	wantLock, err := addr.LockingBytecode(adminHash, true)
	require.NoError(t, err)
	assert.Equal(t, wantLock, refund.LockingBytecode)

	next, err := commitment.DecodeAirdrop(covenantOutputOf(t, d).Token.Nft.Commitment)
	require.NoError(t, err)
	assert.Equal(t, commitment.StatusCompleted, next.Status)

	assert.Equal(t, fees.ReserveAirdrop, d.Fee())
}
