package registry

import "errors"

var (
	// ErrUnknownType indicates no artifact is registered for a covenant type.
	ErrUnknownType = errors.New("registry: unknown covenant type")

	// ErrMalformedArtifact indicates the artifact JSON is missing required
	// fields or does not parse.
	ErrMalformedArtifact = errors.New("registry: malformed artifact")

	// ErrFunctionNotFound indicates the ABI has no function by that name.
	ErrFunctionNotFound = errors.New("registry: function not found in abi")

	// ErrNotCached indicates no cache entry exists for a covenant id.
	ErrNotCached = errors.New("registry: covenant not cached")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("registry: required parameter is nil")
)
