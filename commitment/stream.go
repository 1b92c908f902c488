package commitment

import (
	"encoding/binary"
	"fmt"
)

// StreamLen is the fixed length of a Stream/Vesting commitment.
const StreamLen = 40

// StreamState is the decoded Stream commitment.
//
// Layout (little-endian):
//
//	[0]      status
//	[1]      flags (bit0 cancelable, bit1 transferable, bit2 uses-tokens)
//	[2..10]  total released, u64
//	[10..15] vesting cursor, 40-bit
//	[15..20] pause start, 40-bit
//	[20..40] recipient hash (20 bytes)
type StreamState struct {
	Status        Status
	Flags         byte
	TotalReleased uint64
	Cursor        uint64 // effective vesting start, shifted forward on resume
	PauseStart    uint64 // 0 unless paused
	RecipientHash [20]byte
}

// Cancelable reports whether the stream's creator may cancel it.
func (s *StreamState) Cancelable() bool { return s.Flags&FlagCancelable != 0 }

// Transferable reports whether the recipient may be reassigned.
func (s *StreamState) Transferable() bool { return s.Flags&FlagTransferable != 0 }

// UsesTokens reports whether payouts are fungible tokens, not satoshis.
func (s *StreamState) UsesTokens() bool { return s.Flags&FlagUsesTokens != 0 }

// DecodeStream parses a Stream commitment.
func DecodeStream(b []byte) (*StreamState, error) {
	if len(b) < StreamLen {
		return nil, fmt.Errorf("%w: stream commitment needs %d bytes, got %d",
			ErrMalformedCommitment, StreamLen, len(b))
	}
	s := &StreamState{
		Status:        Status(b[0]),
		Flags:         b[1],
		TotalReleased: binary.LittleEndian.Uint64(b[2:10]),
		Cursor:        uint40LE(b[10:15]),
		PauseStart:    uint40LE(b[15:20]),
	}
	copy(s.RecipientHash[:], b[20:40])
	return s, nil
}

// EncodeStream serializes a Stream commitment to StreamLen bytes.
func EncodeStream(s *StreamState) []byte {
	b := make([]byte, StreamLen)
	b[0] = byte(s.Status)
	b[1] = s.Flags
	binary.LittleEndian.PutUint64(b[2:10], s.TotalReleased)
	putUint40LE(b[10:15], s.Cursor)
	putUint40LE(b[15:20], s.PauseStart)
	copy(b[20:40], s.RecipientHash[:])
	return b
}
