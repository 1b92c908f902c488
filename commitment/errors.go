package commitment

import "errors"

var (
	// ErrMalformedCommitment indicates a commitment blob is shorter than the
	// family's minimum length. Fatal: the UTXO cannot belong to this family.
	ErrMalformedCommitment = errors.New("commitment: malformed commitment")
)
