package chain

import (
	"fmt"
	"sort"
)

// SortPolicy orders token-free UTXOs during fee-payer accumulation.
type SortPolicy int

const (
	// LargestFirst accumulates high-value UTXOs first, minimizing input
	// count and transaction size. This is the canonical default.
	LargestFirst SortPolicy = iota
	// SmallestFirst consolidates dust by spending low-value UTXOs first.
	SmallestFirst
)

// Predicate filters UTXOs during selection. A nil Predicate matches all.
type Predicate func(*Utxo) bool

// FeeSelection is the result of fee-payer accumulation.
type FeeSelection struct {
	Utxos []*Utxo
	Total uint64
}

// SelectForSpend picks the UTXO a covenant action should spend. Among the
// UTXOs matching the predicate it prefers one carrying an NFT (the
// state-bearing output); with no NFT match it returns the first matching
// UTXO, and with no match at all the first UTXO of the set.
func SelectForSpend(utxos []*Utxo, match Predicate) (*Utxo, error) {
	if len(utxos) == 0 {
		return nil, ErrNoUtxoFound
	}
	var first *Utxo
	for _, u := range utxos {
		if match != nil && !match(u) {
			continue
		}
		if u.HasNft() {
			return u, nil
		}
		if first == nil {
			first = u
		}
	}
	if first != nil {
		return first, nil
	}
	return utxos[0], nil
}

// ByCategory matches NFT-bearing UTXOs of the given token category.
func ByCategory(category string) Predicate {
	return func(u *Utxo) bool {
		return u.Class() == ClassWithNft && u.Token.Category == category
	}
}

// ByMinSatoshis matches UTXOs carrying at least min satoshis.
func ByMinSatoshis(min uint64) Predicate {
	return func(u *Utxo) bool { return u.Satoshis >= min }
}

// SelectGenesisAnchor picks the input that can mint a fresh token category:
// a token-free UTXO whose outpoint index is exactly 0. The chain derives new
// category IDs from such an input, so nothing else can serve.
func SelectGenesisAnchor(utxos []*Utxo) (*Utxo, error) {
	for _, u := range utxos {
		if u.Class() == ClassPlain && u.Vout == 0 {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: need a token-free utxo at outpoint index 0", ErrGenesisAnchorMissing)
}

// SelectFeePayer greedily accumulates token-free UTXOs, in the order given by
// policy, until their total reaches required satoshis. The input slice is not
// modified.
func SelectFeePayer(utxos []*Utxo, required uint64, policy SortPolicy) (*FeeSelection, error) {
	free := make([]*Utxo, 0, len(utxos))
	for _, u := range utxos {
		if u.Class() == ClassPlain {
			free = append(free, u)
		}
	}
	sort.SliceStable(free, func(i, j int) bool {
		if policy == SmallestFirst {
			return free[i].Satoshis < free[j].Satoshis
		}
		return free[i].Satoshis > free[j].Satoshis
	})

	sel := &FeeSelection{}
	for _, u := range free {
		if sel.Total >= required {
			break
		}
		sel.Utxos = append(sel.Utxos, u)
		sel.Total += u.Satoshis
	}
	if sel.Total < required {
		return nil, fmt.Errorf("%w: need %d sat, have %d sat in token-free utxos",
			ErrInsufficientFee, required, sel.Total)
	}
	return sel, nil
}
