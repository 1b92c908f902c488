package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamArtifactJSON(t *testing.T) []byte {
	t.Helper()
	return []byte(`{
		"contractName": "Stream",
		"constructorInputs": [
			{"name": "recipientHash", "type": "bytes20"},
			{"name": "totalAmount", "type": "int"},
			{"name": "startTime", "type": "int"},
			{"name": "endTime", "type": "int"}
		],
		"abi": [
			{"name": "claim", "inputs": [{"name": "amount", "type": "int"}]},
			{"name": "cancel", "inputs": []}
		],
		"bytecode": "5279a97b88"
	}`)
}

func TestParseArtifact(t *testing.T) {
	a, err := ParseArtifact(streamArtifactJSON(t))
	require.NoError(t, err)
	assert.Equal(t, "Stream", a.ContractName)
	assert.Len(t, a.ConstructorInputs, 4)

	fn, err := a.Function("claim")
	require.NoError(t, err)
	assert.Equal(t, "claim", fn.Name)
	require.Len(t, fn.Inputs, 1)

	_, err = a.Function("melt")
	assert.ErrorIs(t, err, ErrFunctionNotFound)
}

func TestParseArtifact_Malformed(t *testing.T) {
	cases := map[string]string{
		"bad json":     `{`,
		"no name":      `{"abi":[{"name":"x"}],"bytecode":"00"}`,
		"empty abi":    `{"contractName":"X","abi":[],"bytecode":"00"}`,
		"no bytecode":  `{"contractName":"X","abi":[{"name":"x"}]}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseArtifact([]byte(in))
			assert.ErrorIs(t, err, ErrMalformedArtifact)
		})
	}
}

func TestRegistryResolveCachesParse(t *testing.T) {
	loads := 0
	src := SourceFunc(func(ct CovenantType) ([]byte, error) {
		loads++
		if ct != TypeStream {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, ct)
		}
		return streamArtifactJSON(t), nil
	})

	r := New(src)

	a1, err := r.Resolve(TypeStream)
	require.NoError(t, err)
	a2, err := r.Resolve(TypeStream)
	require.NoError(t, err)
	assert.Same(t, a1, a2, "second resolve must hit the cache")
	assert.Equal(t, 1, loads)

	_, err = r.Resolve(TypeVault)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestRegistryRegister(t *testing.T) {
	r := New(nil)

	assert.ErrorIs(t, r.Register(TypeVault, nil), ErrNilParam)

	a, err := ParseArtifact(streamArtifactJSON(t))
	require.NoError(t, err)
	require.NoError(t, r.Register(TypeStream, a))

	got, err := r.Resolve(TypeStream)
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = r.Resolve(TypeBudget)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestMapSource(t *testing.T) {
	src := MapSource{TypeAirdrop: streamArtifactJSON(t)}

	_, err := src.Load(TypeAirdrop)
	require.NoError(t, err)

	_, err = src.Load(TypeVault)
	assert.ErrorIs(t, err, ErrUnknownType)
}
