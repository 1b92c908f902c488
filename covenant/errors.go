package covenant

import "errors"

var (
	// ErrNilParam indicates a required parameter is nil or empty.
	ErrNilParam = errors.New("covenant: required parameter is nil")

	// ErrInvalidState indicates the action is illegal for the covenant's
	// current status or guardrails. User-correctable; not retried.
	ErrInvalidState = errors.New("covenant: invalid state for action")

	// ErrInsufficientBalance indicates the residual after payout and fee
	// would fall below the dust minimum on a state-carrying output.
	ErrInsufficientBalance = errors.New("covenant: insufficient balance")

	// ErrPoolExhausted indicates a claim would push the total claimed past
	// the pool cap.
	ErrPoolExhausted = errors.New("covenant: pool exhausted")

	// ErrNothingToClaim indicates no vested or elapsed amount is claimable.
	ErrNothingToClaim = errors.New("covenant: nothing to claim")

	// ErrNoMilestoneDue indicates no budget milestone has elapsed.
	ErrNoMilestoneDue = errors.New("covenant: no milestone due")
)
