package registry

import (
	"fmt"
	"sync"
)

// Source supplies raw artifact JSON for a covenant type. Implementations
// typically read embedded files or a build output directory.
type Source interface {
	Load(t CovenantType) ([]byte, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(t CovenantType) ([]byte, error)

func (f SourceFunc) Load(t CovenantType) ([]byte, error) { return f(t) }

// MapSource serves artifact JSON from an in-memory map.
type MapSource map[CovenantType][]byte

func (m MapSource) Load(t CovenantType) ([]byte, error) {
	data, ok := m[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return data, nil
}

// Registry caches parsed artifacts per covenant type. It is an explicit
// instance handed to builders, not a package-level singleton, so embedders
// control its lifetime and can run several side by side.
type Registry struct {
	mu     sync.Mutex
	source Source
	byType map[CovenantType]*Artifact
}

// New creates a Registry over the given artifact source.
func New(source Source) *Registry {
	return &Registry{
		source: source,
		byType: make(map[CovenantType]*Artifact),
	}
}

// Register installs a pre-parsed artifact, bypassing the source.
func (r *Registry) Register(t CovenantType, a *Artifact) error {
	if a == nil {
		return fmt.Errorf("%w: artifact", ErrNilParam)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[t] = a
	return nil
}

// Resolve returns the parsed artifact for a covenant type, loading and
// parsing it once and serving the cached copy afterwards.
func (r *Registry) Resolve(t CovenantType) (*Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.byType[t]; ok {
		return a, nil
	}
	if r.source == nil {
		return nil, fmt.Errorf("%w: %q (no source configured)", ErrUnknownType, t)
	}
	data, err := r.source.Load(t)
	if err != nil {
		return nil, err
	}
	a, err := ParseArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("registry: parse %q artifact: %w", t, err)
	}
	r.byType[t] = a
	return a, nil
}
