package access

import "sync"

// Registry resolves the accessor responsible for a value. Adapters are
// consulted in registration order; custom adapters registered later take
// priority over the defaults when prepended with RegisterFirst.
//
// Registries are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	accessors []Accessor
}

// NewRegistry returns a registry with the default adapters: records,
// maps, then structs.
func NewRegistry() *Registry {
	return &Registry{
		accessors: []Accessor{
			NewRecordAccessor(),
			NewMapAccessor(),
			NewStructAccessor(),
		},
	}
}

// NewEmptyRegistry returns a registry with no adapters.
func NewEmptyRegistry() *Registry { return &Registry{} }

// Register appends an adapter, consulted after the existing ones.
func (r *Registry) Register(acc Accessor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accessors = append(r.accessors, acc)
}

// RegisterFirst prepends an adapter, consulted before the existing ones.
func (r *Registry) RegisterFirst(acc Accessor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accessors = append([]Accessor{acc}, r.accessors...)
}

// For returns the first adapter that can access the value, or nil when no
// adapter recognizes it. A nil result means the value is opaque and every
// field is treated as absent.
func (r *Registry) For(value any) Accessor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, acc := range r.accessors {
		if acc.CanAccess(value) {
			return acc
		}
	}
	return nil
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the process-wide registry with the default
// adapters. It is initialized lazily, once.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
