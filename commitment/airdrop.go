package commitment

import (
	"encoding/binary"
	"fmt"
)

// AirdropLen is the fixed length of an Airdrop commitment.
const AirdropLen = 32

// AirdropState is the decoded Airdrop commitment.
//
// Layout (little-endian):
//
//	[0]      status
//	[1]      flags
//	[2..10]  total claimed, u64
//	[10..18] claims count, u64
//	[18..23] tx locktime snapshot, 40-bit
//	[23..32] reserved, zeroed on claim
type AirdropState struct {
	Status       Status
	Flags        byte
	TotalClaimed uint64
	ClaimsCount  uint64
	Locktime     uint64
}

// Cancelable reports whether the authority may pause or cancel the airdrop.
func (s *AirdropState) Cancelable() bool { return s.Flags&FlagCancelable != 0 }

// DecodeAirdrop parses an Airdrop commitment.
func DecodeAirdrop(b []byte) (*AirdropState, error) {
	if len(b) < AirdropLen {
		return nil, fmt.Errorf("%w: airdrop commitment needs %d bytes, got %d",
			ErrMalformedCommitment, AirdropLen, len(b))
	}
	return &AirdropState{
		Status:       Status(b[0]),
		Flags:        b[1],
		TotalClaimed: binary.LittleEndian.Uint64(b[2:10]),
		ClaimsCount:  binary.LittleEndian.Uint64(b[10:18]),
		Locktime:     uint40LE(b[18:23]),
	}, nil
}

// EncodeAirdrop serializes an Airdrop commitment to AirdropLen bytes.
func EncodeAirdrop(s *AirdropState) []byte {
	b := make([]byte, AirdropLen)
	b[0] = byte(s.Status)
	b[1] = s.Flags
	binary.LittleEndian.PutUint64(b[2:10], s.TotalClaimed)
	binary.LittleEndian.PutUint64(b[10:18], s.ClaimsCount)
	putUint40LE(b[18:23], s.Locktime)
	return b
}
