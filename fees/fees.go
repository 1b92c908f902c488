// Package fees estimates transaction byte sizes and fees for covenant
// transactions. The estimate is deliberately conservative and is not a
// consensus rule; builders pair it with fixed per-action reserves for
// transactions with a small, bounded output set.
package fees

const (
	// DefaultFeeRate is the fee rate in satoshis per byte.
	DefaultFeeRate = uint64(2)

	// DustLimit is the minimum satoshi value a relayable output must carry.
	// Every state-bearing covenant output is kept at or above this.
	DustLimit = uint64(546)

	// InputSize is the estimated byte cost of one input: prevhash(32) +
	// previndex(4) + scriptlen(1) + unlocking script(~107) + sequence(4).
	InputSize = 148

	// PlainOutputSize is the byte cost of a token-free P2PKH output.
	PlainOutputSize = 36

	// TokenPrefixSize is the byte cost a token prefix adds to an output:
	// marker(1) + category(32) + bitfield(1).
	TokenPrefixSize = 34

	// FungibleAmountSize is the byte cost of a non-zero fungible amount.
	FungibleAmountSize = 9

	// TxOverhead is the fixed transaction framing cost: version(4) +
	// locktime(4) + input count(1) + output count(1).
	TxOverhead = 10
)

// The component sizes above are authoritative. The protocol documentation's
// worked example (445 bytes for two inputs, a plain output and an NFT
// output) does not follow from its own stated components under any reading;
// the estimator applies the component rules literally, which yields 453
// bytes for that shape.

// Fixed conservative reserves, per covenant family, for actions whose output
// set is small and bounded. Funding-path transactions with variable output
// counts use EstimateAtRate instead.
const (
	ReserveVault     = uint64(1000)
	ReserveProposal  = uint64(1200)
	ReserveStream    = uint64(1000)
	ReserveRecurring = uint64(1000)
	ReserveAirdrop   = uint64(900)
	ReserveVoteLock  = uint64(1100)
	ReserveBudget    = uint64(1000)
)

// OutputShape describes an output just enough to size it.
type OutputShape struct {
	Tokenized      bool
	HasNft         bool
	CommitmentLen  int
	FungibleAmount uint64
}

// OutputSize returns the estimated byte cost of one output.
func OutputSize(o OutputShape) int {
	size := PlainOutputSize
	if !o.Tokenized {
		return size
	}
	size += TokenPrefixSize
	if o.HasNft {
		size += 1 + o.CommitmentLen
	}
	if o.FungibleAmount > 0 {
		size += FungibleAmountSize
	}
	return size
}

// EstimateSize returns the estimated transaction size in bytes.
func EstimateSize(inputCount int, outputs []OutputShape) int {
	size := inputCount*InputSize + TxOverhead
	for _, o := range outputs {
		size += OutputSize(o)
	}
	return size
}

// Estimate returns the fee in satoshis at the default rate.
func Estimate(inputCount int, outputs []OutputShape) uint64 {
	return EstimateAtRate(inputCount, outputs, DefaultFeeRate)
}

// EstimateAtRate returns the fee in satoshis at the given rate. A zero rate
// falls back to DefaultFeeRate.
func EstimateAtRate(inputCount int, outputs []OutputShape, rate uint64) uint64 {
	if rate == 0 {
		rate = DefaultFeeRate
	}
	return uint64(EstimateSize(inputCount, outputs)) * rate
}
