package params

import "errors"

var (
	// ErrIndexOutOfRange indicates a positional accessor beyond the list.
	ErrIndexOutOfRange = errors.New("params: index out of range")

	// ErrTypeMismatch indicates the parameter at a position has a different
	// declared type than requested. Order is fixed per covenant type.
	ErrTypeMismatch = errors.New("params: type mismatch")

	// ErrInvalidValue indicates a value string does not parse as its type.
	ErrInvalidValue = errors.New("params: invalid value")
)
