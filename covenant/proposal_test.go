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

const (
	proposalThreshold = 3
	proposalTimelock  = 3600
	proposalPayout    = 250_000
)

func proposalTestParams() params.List {
	return params.List{
		params.Uint64Param(proposalThreshold),
		params.Uint64Param(proposalTimelock),
		params.BytesParam(recipientHash),
		params.Uint64Param(proposalPayout),
	}
}

// committedPayoutHash is what the deployment path stores in the commitment:
// the hash of the exact payout output Execute must produce.
func committedPayoutHash(t *testing.T) [20]byte {
	t.Helper()
	lock, err := addr.LockingBytecode(recipientHash, true)
	require.NoError(t, err)
	return PayoutHash(lock, proposalPayout)
}

func proposalRequest(t *testing.T, st *commitment.ProposalState, covSats uint64, now uint64) Request {
	t.Helper()
	return Request{
		Params: proposalTestParams(),
		Utxos: []*chain.Utxo{
			covUtxo(t, commitment.EncodeProposal(st), covSats),
			feeUtxo(t, 1, 10000),
		},
		Now: now,
	}
}

func TestProposalApprove_BelowThreshold(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.ProposalState{Status: commitment.ProposalSubmitted, Approvals: 1}

	d, err := b.ProposalApprove(proposalRequest(t, st, 1_000_000, 1_700_000_000))
	require.NoError(t, err)

	next, err := commitment.DecodeProposal(covenantOutputOf(t, d).Token.Nft.Commitment)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), next.Approvals)
	assert.Equal(t, commitment.ProposalSubmitted, next.Status)
	assert.Zero(t, next.ApprovedAt)
}

func TestProposalApprove_ReachesThreshold(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.ProposalState{Status: commitment.ProposalSubmitted, Approvals: 2}

	d, err := b.ProposalApprove(proposalRequest(t, st, 1_000_000, 1_700_000_000))
	require.NoError(t, err)

	next, err := commitment.DecodeProposal(covenantOutputOf(t, d).Token.Nft.Commitment)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), next.Approvals)
	assert.Equal(t, commitment.ProposalApproved, next.Status)
	assert.Equal(t, uint64(1_700_000_000), next.ApprovedAt)
}

// Approvals past the threshold keep counting without disturbing the status
// or restarting the execution timelock.
func TestProposalApprove_PastThreshold(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.ProposalState{
		Status:     commitment.ProposalApproved,
		Approvals:  3,
		ApprovedAt: 1_700_000_000,
	}

	d, err := b.ProposalApprove(proposalRequest(t, st, 1_000_000, 1_700_001_000))
	require.NoError(t, err)

	next, err := commitment.DecodeProposal(covenantOutputOf(t, d).Token.Nft.Commitment)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), next.Approvals)
	assert.Equal(t, commitment.ProposalApproved, next.Status)
	assert.Equal(t, uint64(1_700_000_000), next.ApprovedAt, "timelock start must not move")
}

func TestProposalApprove_SettledProposal(t *testing.T) {
	b := testBuilder(t)
	for _, status := range []commitment.ProposalStatus{
		commitment.ProposalExecuted,
		commitment.ProposalCancelled,
	} {
		st := &commitment.ProposalState{Status: status, Approvals: 3}
		_, err := b.ProposalApprove(proposalRequest(t, st, 1_000_000, 1_700_000_000))
		assert.ErrorIs(t, err, ErrInvalidState, "status %d", status)
	}
}

func TestProposalExecute(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.ProposalState{
		Status:     commitment.ProposalApproved,
		Approvals:  3,
		ApprovedAt: 1_700_000_000,
		PayoutHash: committedPayoutHash(t),
	}

	d, err := b.ProposalExecute(proposalRequest(t, st, 1_000_000, 1_700_003_600))
	require.NoError(t, err)

	// First output is the committed payout.
	payout := d.Tx.Outputs[0]
	assert.Equal(t, uint64(proposalPayout), payout.Satoshis)
	wantLock, err := addr.LockingBytecode(recipientHash, true)
	require.NoError(t, err)
	assert.Equal(t, wantLock, payout.LockingBytecode)

	out := covenantOutputOf(t, d)
	assert.Equal(t, uint64(1_000_000-proposalPayout), out.Satoshis)
	next, err := commitment.DecodeProposal(out.Token.Nft.Commitment)
	require.NoError(t, err)
	assert.Equal(t, commitment.ProposalExecuted, next.Status)

	assert.Equal(t, fees.ReserveProposal, d.Fee())
}

func TestProposalExecute_TimelockRunning(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.ProposalState{
		Status:     commitment.ProposalApproved,
		ApprovedAt: 1_700_000_000,
		PayoutHash: committedPayoutHash(t),
	}

	_, err := b.ProposalExecute(proposalRequest(t, st, 1_000_000, 1_700_003_599))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestProposalExecute_PayoutHashMismatch(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.ProposalState{
		Status:     commitment.ProposalApproved,
		ApprovedAt: 1_700_000_000,
		// A commitment bound to some other payout output.
		PayoutHash: [20]byte{0xde, 0xad},
	}

	_, err := b.ProposalExecute(proposalRequest(t, st, 1_000_000, 1_700_003_600))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestProposalExecute_NotApproved(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.ProposalState{Status: commitment.ProposalSubmitted, PayoutHash: committedPayoutHash(t)}

	_, err := b.ProposalExecute(proposalRequest(t, st, 1_000_000, 1_800_000_000))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestProposalExecute_ResidualBelowDust(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.ProposalState{
		Status:     commitment.ProposalApproved,
		ApprovedAt: 1_700_000_000,
		PayoutHash: committedPayoutHash(t),
	}

	_, err := b.ProposalExecute(proposalRequest(t, st, proposalPayout+100, 1_700_003_600))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestProposalCancel(t *testing.T) {
	b := testBuilder(t)
	for _, status := range []commitment.ProposalStatus{
		commitment.ProposalSubmitted,
		commitment.ProposalApproved,
		commitment.ProposalExecutable,
	} {
		st := &commitment.ProposalState{Status: status}
		d, err := b.ProposalCancel(proposalRequest(t, st, 1_000_000, 1_700_000_000))
		require.NoError(t, err, "status %d", status)

		next, err := commitment.DecodeProposal(covenantOutputOf(t, d).Token.Nft.Commitment)
		require.NoError(t, err)
		assert.Equal(t, commitment.ProposalCancelled, next.Status)
	}
}

func TestProposalCancel_AlreadyExecuted(t *testing.T) {
	b := testBuilder(t)
	st := &commitment.ProposalState{Status: commitment.ProposalExecuted}

	_, err := b.ProposalCancel(proposalRequest(t, st, 1_000_000, 1_700_000_000))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPayoutHash_Deterministic(t *testing.T) {
	lock := []byte{0x76, 0xa9, 0x14}
	h1 := PayoutHash(lock, 1000)
	h2 := PayoutHash(lock, 1000)
	h3 := PayoutHash(lock, 1001)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}
