// Package commitment encodes and decodes the fixed-layout binary state blobs
// carried in covenant NFT commitments. Each family's layout (length, offsets,
// endianness) is the wire format an independent on-chain validator checks
// bit-for-bit; none of it may change without a matching validator change.
//
// The Vault and Proposal families use big-endian fields; the Stream,
// Recurring, Airdrop, Budget and VoteLock families use little-endian 64-bit
// and 40-bit fields. The asymmetry is observed on chain and preserved as-is.
package commitment

// Status is the state-machine discriminator stored in a commitment's status
// byte. Value 2 is reserved and unused.
type Status byte

const (
	// StatusActive allows state-changing actions.
	StatusActive Status = 0
	// StatusPaused blocks claims and payments until resumed.
	StatusPaused Status = 1
	// StatusCompleted is terminal: fully claimed, executed or cancelled.
	StatusCompleted Status = 3
)

// ProposalStatus is the Proposal family's richer status byte.
type ProposalStatus byte

const (
	ProposalSubmitted  ProposalStatus = 0
	ProposalApproved   ProposalStatus = 1
	ProposalExecutable ProposalStatus = 2
	ProposalExecuted   ProposalStatus = 3
	ProposalCancelled  ProposalStatus = 4
)

// Stream/Recurring/Airdrop flag bits.
const (
	// FlagCancelable allows the creator to cancel and reclaim the remainder.
	FlagCancelable = byte(1 << 0)
	// FlagTransferable allows the recipient to reassign the stream.
	FlagTransferable = byte(1 << 1)
	// FlagUsesTokens marks payouts denominated in fungible tokens.
	FlagUsesTokens = byte(1 << 2)
)
