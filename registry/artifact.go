// Package registry resolves the compiled interface of each covenant type —
// constructor shape, ABI function names, bytecode — and caches the parsed
// artifact per type on an explicit registry instance. It also offers a small
// bbolt-backed cache of each covenant's last-known address and constructor
// parameters; the cache is a convenience, never a source of truth (the
// canonical state lives in the on-chain UTXO).
package registry

import (
	"encoding/json"
	"fmt"
)

// CovenantType identifies a covenant family.
type CovenantType string

const (
	TypeVault     CovenantType = "vault"
	TypeProposal  CovenantType = "proposal"
	TypeStream    CovenantType = "stream"
	TypeRecurring CovenantType = "recurring"
	TypeAirdrop   CovenantType = "airdrop"
	TypeVoteLock  CovenantType = "votelock"
	TypeBudget    CovenantType = "budget"
)

// AbiInput describes one typed input of a constructor or function.
type AbiInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// AbiFunction describes one spendable function of the covenant.
type AbiFunction struct {
	Name   string     `json:"name"`
	Inputs []AbiInput `json:"inputs"`
}

// Artifact is the compiled covenant interface produced by the contract
// compiler. Bytecode stays opaque hex: this library mirrors the validator,
// it never executes it.
type Artifact struct {
	ContractName      string        `json:"contractName"`
	ConstructorInputs []AbiInput    `json:"constructorInputs"`
	Abi               []AbiFunction `json:"abi"`
	Bytecode          string        `json:"bytecode"`
}

// ParseArtifact decodes and validates artifact JSON.
func ParseArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedArtifact, err)
	}
	if a.ContractName == "" {
		return nil, fmt.Errorf("%w: missing contractName", ErrMalformedArtifact)
	}
	if len(a.Abi) == 0 {
		return nil, fmt.Errorf("%w: %s has empty abi", ErrMalformedArtifact, a.ContractName)
	}
	if a.Bytecode == "" {
		return nil, fmt.Errorf("%w: %s has no bytecode", ErrMalformedArtifact, a.ContractName)
	}
	return &a, nil
}

// Function returns the ABI entry with the given name.
func (a *Artifact) Function(name string) (*AbiFunction, error) {
	for i := range a.Abi {
		if a.Abi[i].Name == name {
			return &a.Abi[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrFunctionNotFound, a.ContractName, name)
}
