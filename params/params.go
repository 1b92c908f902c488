// Package params converts a covenant's serialized constructor parameters to
// and from typed values. The serialized form is an ordered list of
// {type, value} pairs: decimal strings for arbitrary-precision integers,
// lowercase hex for byte sequences, "true"/"false" for booleans. Order is
// positional and must match the on-chain constructor signature; the list is
// decoded once per builder invocation and never mutated.
package params

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Type tags a serialized constructor parameter.
type Type string

const (
	TypeBigInt  Type = "bigint"
	TypeBytes   Type = "bytes"
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
)

// Param is the serializable form of one constructor argument.
type Param struct {
	Type  Type   `json:"type"`
	Value string `json:"value"`
}

// List is an ordered constructor parameter list.
type List []Param

// BigIntParam encodes an arbitrary-precision integer.
func BigIntParam(v *big.Int) Param {
	return Param{Type: TypeBigInt, Value: v.String()}
}

// Uint64Param encodes a uint64 as a bigint parameter.
func Uint64Param(v uint64) Param {
	return Param{Type: TypeBigInt, Value: new(big.Int).SetUint64(v).String()}
}

// BytesParam encodes a byte sequence as lowercase hex.
func BytesParam(b []byte) Param {
	return Param{Type: TypeBytes, Value: hex.EncodeToString(b)}
}

// StringParam encodes a text value.
func StringParam(s string) Param {
	return Param{Type: TypeString, Value: s}
}

// BoolParam encodes a boolean.
func BoolParam(v bool) Param {
	if v {
		return Param{Type: TypeBoolean, Value: "true"}
	}
	return Param{Type: TypeBoolean, Value: "false"}
}

func (l List) at(i int, want Type) (Param, error) {
	if i < 0 || i >= len(l) {
		return Param{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(l))
	}
	if l[i].Type != want {
		return Param{}, fmt.Errorf("%w: param %d is %q, want %q", ErrTypeMismatch, i, l[i].Type, want)
	}
	return l[i], nil
}

// BigInt decodes the bigint parameter at position i.
func (l List) BigInt(i int) (*big.Int, error) {
	p, err := l.at(i, TypeBigInt)
	if err != nil {
		return nil, err
	}
	v, ok := new(big.Int).SetString(p.Value, 10)
	if !ok {
		return nil, fmt.Errorf("%w: param %d %q is not a decimal integer", ErrInvalidValue, i, p.Value)
	}
	return v, nil
}

// Uint64 decodes the bigint parameter at position i into a uint64.
func (l List) Uint64(i int) (uint64, error) {
	v, err := l.BigInt(i)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: param %d %q does not fit uint64", ErrInvalidValue, i, v.String())
	}
	return v.Uint64(), nil
}

// Bytes decodes the hex bytes parameter at position i.
func (l List) Bytes(i int) ([]byte, error) {
	p, err := l.at(i, TypeBytes)
	if err != nil {
		return nil, err
	}
	b, err := hex.DecodeString(p.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: param %d is not valid hex: %v", ErrInvalidValue, i, err)
	}
	return b, nil
}

// Hash20 decodes the bytes parameter at position i, requiring 20 bytes.
func (l List) Hash20(i int) ([]byte, error) {
	b, err := l.Bytes(i)
	if err != nil {
		return nil, err
	}
	if len(b) != 20 {
		return nil, fmt.Errorf("%w: param %d must be 20 bytes, got %d", ErrInvalidValue, i, len(b))
	}
	return b, nil
}

// String decodes the string parameter at position i.
func (l List) String(i int) (string, error) {
	p, err := l.at(i, TypeString)
	if err != nil {
		return "", err
	}
	return p.Value, nil
}

// Bool decodes the boolean parameter at position i.
func (l List) Bool(i int) (bool, error) {
	p, err := l.at(i, TypeBoolean)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(p.Value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: param %d %q is not a boolean", ErrInvalidValue, i, p.Value)
}
