package covenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenantsorg/libcovenant-go/addr"
	"github.com/covenantsorg/libcovenant-go/chain"
	"github.com/covenantsorg/libcovenant-go/commitment"
	"github.com/covenantsorg/libcovenant-go/fees"
	"github.com/covenantsorg/libcovenant-go/params"
)

const votingEnd = uint64(1_700_500_000)

func voteLockTestParams() params.List {
	return params.List{
		params.BytesParam(senderHash),
		params.Uint64Param(votingEnd),
	}
}

func voteLockRequest(t *testing.T, st *commitment.VoteLockState, covSats uint64, now uint64) Request {
	t.Helper()
	return Request{
		Params: voteLockTestParams(),
		Utxos:  []*chain.Utxo{covUtxo(t, commitment.EncodeVoteLock(st), covSats)},
		Now:    now,
	}
}

func TestVoteLockReclaim(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.VoteLockState{Status: commitment.StatusActive, Choice: 1, Weight: 50_000}

	d, err := b.VoteLockReclaim(voteLockRequest(t, st, 50_000, votingEnd+10))
	require.NoError(t, err)

	// The NFT is consumed: one input, one plain payout, no covenant output.
	require.Len(t, d.Tx.Inputs, 1)
	require.Len(t, d.Tx.Outputs, 1)
	payout := d.Tx.Outputs[0]
	assert.Nil(t, payout.Token)
	assert.Equal(t, uint64(50_000)-fees.ReserveVoteLock, payout.Satoshis)
	wantLock, err := addr.LockingBytecode(senderHash, true)
	require.NoError(t, err)
	assert.Equal(t, wantLock, payout.LockingBytecode)

	// The CLTV gate binds through the transaction locktime.
	assert.Equal(t, uint32(votingEnd), d.Tx.Locktime)
	assert.Equal(t, SequenceLocktime, d.Tx.Inputs[0].Sequence)

	assert.Equal(t, fees.ReserveVoteLock, d.Fee())
}

func TestVoteLockReclaim_CarriesFungibleBalance(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.VoteLockState{Status: commitment.StatusActive, Weight: 9_000}

	req := voteLockRequest(t, st, 50_000, votingEnd+10)
	req.Utxos[0].Token.Amount = 9_000

	d, err := b.VoteLockReclaim(req)
	require.NoError(t, err)

	payout := d.Tx.Outputs[0]
	require.NotNil(t, payout.Token)
	assert.Equal(t, testCategory, payout.Token.Category)
	assert.Equal(t, uint64(9_000), payout.Token.Amount)
	assert.Nil(t, payout.Token.Nft, "the vote NFT itself is not re-minted")
}

func TestVoteLockReclaim_VotingStillOpen(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.VoteLockState{Status: commitment.StatusActive}

	_, err := b.VoteLockReclaim(voteLockRequest(t, st, 50_000, votingEnd-1))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestVoteLockReclaim_NotActive(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.VoteLockState{Status: commitment.StatusCompleted}

	_, err := b.VoteLockReclaim(voteLockRequest(t, st, 50_000, votingEnd+10))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestVoteLockReclaim_TooSmall(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.VoteLockState{Status: commitment.StatusActive}

	_, err := b.VoteLockReclaim(voteLockRequest(t, st, fees.ReserveVoteLock, votingEnd+10))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}
