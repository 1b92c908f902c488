package commitment

import (
	"encoding/binary"
	"fmt"
)

const (
	// RecurringLen is the full Recurring commitment length, written by
	// resume and claim.
	RecurringLen = 40
	// RecurringShortLen is the truncated form written by pause.
	RecurringShortLen = 35
	// recurringMinLen is the smallest decodable Recurring commitment: every
	// field lies below offset 28, the rest is reserved.
	recurringMinLen = 28
)

// RecurringState is the decoded RecurringPayment commitment.
//
// Layout (little-endian):
//
//	[0]      status
//	[1]      flags
//	[2..10]  total paid, u64
//	[10..18] payment count, u64
//	[18..23] next payment timestamp, 40-bit
//	[23..28] pause start, 40-bit
//	[28..]   reserved, zero
type RecurringState struct {
	Status       Status
	Flags        byte
	TotalPaid    uint64
	PaymentCount uint64
	NextPayment  uint64
	PauseStart   uint64
}

// Cancelable reports whether the payer may pause or cancel the schedule.
func (s *RecurringState) Cancelable() bool { return s.Flags&FlagCancelable != 0 }

// DecodeRecurring parses a Recurring commitment in either the full or the
// short form.
func DecodeRecurring(b []byte) (*RecurringState, error) {
	if len(b) < recurringMinLen {
		return nil, fmt.Errorf("%w: recurring commitment needs %d bytes, got %d",
			ErrMalformedCommitment, recurringMinLen, len(b))
	}
	return &RecurringState{
		Status:       Status(b[0]),
		Flags:        b[1],
		TotalPaid:    binary.LittleEndian.Uint64(b[2:10]),
		PaymentCount: binary.LittleEndian.Uint64(b[10:18]),
		NextPayment:  uint40LE(b[18:23]),
		PauseStart:   uint40LE(b[23:28]),
	}, nil
}

// EncodeRecurring serializes the full 40-byte form (resume, claim).
func EncodeRecurring(s *RecurringState) []byte {
	return encodeRecurring(s, RecurringLen)
}

// EncodeRecurringShort serializes the 35-byte short form written by pause.
func EncodeRecurringShort(s *RecurringState) []byte {
	return encodeRecurring(s, RecurringShortLen)
}

func encodeRecurring(s *RecurringState, size int) []byte {
	b := make([]byte, size)
	b[0] = byte(s.Status)
	b[1] = s.Flags
	binary.LittleEndian.PutUint64(b[2:10], s.TotalPaid)
	binary.LittleEndian.PutUint64(b[10:18], s.PaymentCount)
	putUint40LE(b[18:23], s.NextPayment)
	putUint40LE(b[23:28], s.PauseStart)
	return b
}
