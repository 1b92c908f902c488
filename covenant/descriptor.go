package covenant

import (
	"github.com/covenantsorg/libcovenant-go/chain"
	"github.com/covenantsorg/libcovenant-go/fees"
)

// Sequence numbers. A final sequence disables locktime for that input;
// time-gated inputs use SequenceLocktime so the declared locktime binds.
const (
	SequenceFinal    = uint32(0xffffffff)
	SequenceLocktime = uint32(0xfffffffe)
)

// Input references an output being spent.
type Input struct {
	TxID     string `json:"txid"`
	Vout     uint32 `json:"vout"`
	Sequence uint32 `json:"sequence"`
}

// Output is a created output, possibly carrying a token prefix.
type Output struct {
	Satoshis        uint64           `json:"satoshis"`
	LockingBytecode []byte           `json:"locking_bytecode"`
	Token           *chain.TokenData `json:"token,omitempty"`
}

// Tx is the unsigned transaction skeleton.
type Tx struct {
	Inputs   []Input  `json:"inputs"`
	Outputs  []Output `json:"outputs"`
	Locktime uint32   `json:"locktime"`
}

// SourceOutput carries the metadata a signer needs to construct the witness
// for one input: the spent output itself plus, for covenant inputs, the
// contract and function being invoked.
type SourceOutput struct {
	TxID            string           `json:"txid"`
	Vout            uint32           `json:"vout"`
	Satoshis        uint64           `json:"satoshis"`
	LockingBytecode []byte           `json:"locking_bytecode"`
	Token           *chain.TokenData `json:"token,omitempty"`
	Contract        string           `json:"contract,omitempty"` // empty for plain P2PKH inputs
	Function        string           `json:"function,omitempty"`
}

// Descriptor is the artifact a builder produces: an unsigned transaction and
// the source outputs a signer needs. It is ephemeral; nothing here is
// broadcast or signed by this library.
type Descriptor struct {
	Tx            Tx             `json:"transaction"`
	SourceOutputs []SourceOutput `json:"sourceOutputs"`
}

// addInput appends one spent UTXO and its source-output record.
// Contract and function are empty for plain fee inputs.
func (d *Descriptor) addInput(u *chain.Utxo, contract, function string, sequence uint32) {
	d.Tx.Inputs = append(d.Tx.Inputs, Input{
		TxID:     u.TxID,
		Vout:     u.Vout,
		Sequence: sequence,
	})
	d.SourceOutputs = append(d.SourceOutputs, SourceOutput{
		TxID:            u.TxID,
		Vout:            u.Vout,
		Satoshis:        u.Satoshis,
		LockingBytecode: u.LockingBytecode,
		Token:           u.Token,
		Contract:        contract,
		Function:        function,
	})
}

// addOutput appends one created output.
func (d *Descriptor) addOutput(o Output) {
	d.Tx.Outputs = append(d.Tx.Outputs, o)
}

// InputTotal sums the satoshis of all spent outputs.
func (d *Descriptor) InputTotal() uint64 {
	var total uint64
	for _, so := range d.SourceOutputs {
		total += so.Satoshis
	}
	return total
}

// OutputTotal sums the satoshis of all created outputs.
func (d *Descriptor) OutputTotal() uint64 {
	var total uint64
	for _, o := range d.Tx.Outputs {
		total += o.Satoshis
	}
	return total
}

// Fee is the implied miner fee: inputs minus outputs.
func (d *Descriptor) Fee() uint64 {
	return d.InputTotal() - d.OutputTotal()
}

// Shapes describes the outputs for fee estimation.
func (d *Descriptor) Shapes() []fees.OutputShape {
	shapes := make([]fees.OutputShape, len(d.Tx.Outputs))
	for i, o := range d.Tx.Outputs {
		s := fees.OutputShape{}
		if o.Token != nil {
			s.Tokenized = true
			s.FungibleAmount = o.Token.Amount
			if o.Token.Nft != nil {
				s.HasNft = true
				s.CommitmentLen = len(o.Token.Nft.Commitment)
			}
		}
		shapes[i] = s
	}
	return shapes
}
