package commitment

import (
	"encoding/binary"
	"fmt"
)

// BudgetLen is the fixed length of a Budget commitment.
const BudgetLen = 32

// BudgetState is the decoded milestone-budget commitment. Budgets follow the
// little-endian family convention.
//
// Layout (little-endian):
//
//	[0]      status
//	[1]      flags
//	[2..10]  total released, u64
//	[10..18] milestone count, u64
//	[18..23] last release timestamp, 40-bit
//	[23..32] reserved, zero
type BudgetState struct {
	Status         Status
	Flags          byte
	TotalReleased  uint64
	MilestoneCount uint64
	LastRelease    uint64
}

// DecodeBudget parses a Budget commitment.
func DecodeBudget(b []byte) (*BudgetState, error) {
	if len(b) < BudgetLen {
		return nil, fmt.Errorf("%w: budget commitment needs %d bytes, got %d",
			ErrMalformedCommitment, BudgetLen, len(b))
	}
	return &BudgetState{
		Status:         Status(b[0]),
		Flags:          b[1],
		TotalReleased:  binary.LittleEndian.Uint64(b[2:10]),
		MilestoneCount: binary.LittleEndian.Uint64(b[10:18]),
		LastRelease:    uint40LE(b[18:23]),
	}, nil
}

// EncodeBudget serializes a Budget commitment to BudgetLen bytes.
func EncodeBudget(s *BudgetState) []byte {
	b := make([]byte, BudgetLen)
	b[0] = byte(s.Status)
	b[1] = s.Flags
	binary.LittleEndian.PutUint64(b[2:10], s.TotalReleased)
	binary.LittleEndian.PutUint64(b[10:18], s.MilestoneCount)
	putUint40LE(b[18:23], s.LastRelease)
	return b
}
