package commitment

import (
	"encoding/binary"
	"fmt"
)

// VoteLockLen is the fixed length of a VoteLock commitment.
const VoteLockLen = 32

// VoteLockState is the decoded VoteLock commitment. VoteLock is the only
// family whose NFT is consumed rather than re-minted: the commitment is read
// on reclaim and never rewritten.
//
// Layout (little-endian):
//
//	[0]      status
//	[1]      vote choice
//	[2..10]  vote weight, u64
//	[10..32] reserved, zero
type VoteLockState struct {
	Status Status
	Choice byte
	Weight uint64
}

// DecodeVoteLock parses a VoteLock commitment.
func DecodeVoteLock(b []byte) (*VoteLockState, error) {
	if len(b) < VoteLockLen {
		return nil, fmt.Errorf("%w: votelock commitment needs %d bytes, got %d",
			ErrMalformedCommitment, VoteLockLen, len(b))
	}
	return &VoteLockState{
		Status: Status(b[0]),
		Choice: b[1],
		Weight: binary.LittleEndian.Uint64(b[2:10]),
	}, nil
}

// EncodeVoteLock serializes a VoteLock commitment to VoteLockLen bytes.
func EncodeVoteLock(s *VoteLockState) []byte {
	b := make([]byte, VoteLockLen)
	b[0] = byte(s.Status)
	b[1] = s.Choice
	binary.LittleEndian.PutUint64(b[2:10], s.Weight)
	return b
}
