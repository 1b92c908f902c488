package commitment

import (
	"encoding/binary"
	"fmt"
)

// VaultLen is the fixed length of a Vault commitment.
const VaultLen = 32

// VaultState is the decoded Vault commitment.
//
// Layout (big-endian):
//
//	[0]      version
//	[1]      status
//	[2..5]   roles mask (3 bytes)
//	[5..9]   period id, u32
//	[9..17]  spent this period, u64
//	[17..25] last update timestamp, u64
//	[25..32] reserved, zero
type VaultState struct {
	Version         byte
	Status          Status
	Roles           [3]byte
	PeriodID        uint32
	SpentThisPeriod uint64
	LastUpdate      uint64
}

// DecodeVault parses a Vault commitment.
func DecodeVault(b []byte) (*VaultState, error) {
	if len(b) < VaultLen {
		return nil, fmt.Errorf("%w: vault commitment needs %d bytes, got %d",
			ErrMalformedCommitment, VaultLen, len(b))
	}
	s := &VaultState{
		Version:         b[0],
		Status:          Status(b[1]),
		PeriodID:        binary.BigEndian.Uint32(b[5:9]),
		SpentThisPeriod: binary.BigEndian.Uint64(b[9:17]),
		LastUpdate:      binary.BigEndian.Uint64(b[17:25]),
	}
	copy(s.Roles[:], b[2:5])
	return s, nil
}

// EncodeVault serializes a Vault commitment. Always VaultLen bytes; reserved
// tail zero-filled.
func EncodeVault(s *VaultState) []byte {
	b := make([]byte, VaultLen)
	b[0] = s.Version
	b[1] = byte(s.Status)
	copy(b[2:5], s.Roles[:])
	binary.BigEndian.PutUint32(b[5:9], s.PeriodID)
	binary.BigEndian.PutUint64(b[9:17], s.SpentThisPeriod)
	binary.BigEndian.PutUint64(b[17:25], s.LastUpdate)
	return b
}
