package chain

import "context"

// UtxoProvider fetches the live UTXO set for an address. It is the only
// suspension point in the library: builders are pure functions over the
// snapshot a provider returns. Implementations talk to an indexer or node;
// this library never does network I/O itself.
//
// Two concurrent callers may receive overlapping snapshots and build
// conflicting transactions; the chain resolves that race at broadcast time.
type UtxoProvider interface {
	// ListUnspent returns all unspent outputs locked to the given address.
	ListUnspent(ctx context.Context, address string) ([]*Utxo, error)
}

// MockUtxoProvider is a test double for UtxoProvider. The function field must
// be set before the method is called.
type MockUtxoProvider struct {
	ListUnspentFn func(ctx context.Context, address string) ([]*Utxo, error)
}

func (m *MockUtxoProvider) ListUnspent(ctx context.Context, address string) ([]*Utxo, error) {
	return m.ListUnspentFn(ctx, address)
}

// StaticProvider serves a fixed per-address UTXO map. Useful for tests and
// for replaying a captured snapshot to re-derive a builder's output.
type StaticProvider struct {
	Sets map[string][]*Utxo
}

// Compile-time interface checks.
var (
	_ UtxoProvider = (*MockUtxoProvider)(nil)
	_ UtxoProvider = (*StaticProvider)(nil)
)

func (p *StaticProvider) ListUnspent(_ context.Context, address string) ([]*Utxo, error) {
	return p.Sets[address], nil
}
