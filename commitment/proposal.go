package commitment

import (
	"encoding/binary"
	"fmt"
)

// ProposalLen is the fixed length of a Proposal commitment.
const ProposalLen = 35

// ProposalState is the decoded Proposal commitment. Proposals share the
// Vault family's big-endian convention.
//
// Layout (big-endian):
//
//	[0]      version
//	[1]      status
//	[2..6]   approvals, u32
//	[6..14]  approved-at timestamp, u64 (execution timelock runs from here)
//	[14..34] payout hash (20 bytes)
//	[34]     reserved, zero
type ProposalState struct {
	Version    byte
	Status     ProposalStatus
	Approvals  uint32
	ApprovedAt uint64
	PayoutHash [20]byte
}

// DecodeProposal parses a Proposal commitment.
func DecodeProposal(b []byte) (*ProposalState, error) {
	if len(b) < ProposalLen {
		return nil, fmt.Errorf("%w: proposal commitment needs %d bytes, got %d",
			ErrMalformedCommitment, ProposalLen, len(b))
	}
	s := &ProposalState{
		Version:    b[0],
		Status:     ProposalStatus(b[1]),
		Approvals:  binary.BigEndian.Uint32(b[2:6]),
		ApprovedAt: binary.BigEndian.Uint64(b[6:14]),
	}
	copy(s.PayoutHash[:], b[14:34])
	return s, nil
}

// EncodeProposal serializes a Proposal commitment to ProposalLen bytes.
func EncodeProposal(s *ProposalState) []byte {
	b := make([]byte, ProposalLen)
	b[0] = s.Version
	b[1] = byte(s.Status)
	binary.BigEndian.PutUint32(b[2:6], s.Approvals)
	binary.BigEndian.PutUint64(b[6:14], s.ApprovedAt)
	copy(b[14:34], s.PayoutHash[:])
	return b
}
