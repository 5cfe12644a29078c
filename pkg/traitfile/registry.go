package traitfile

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"strata-hq/strata/pkg/trait"
)

// Registry is thread-safe storage for loaded trait expressions. Updates
// replace the whole snapshot atomically: readers either see the previous
// load or the new one, never a mix. Every successful replace gets a fresh
// version identifier.
type Registry struct {
	mu       sync.RWMutex
	exprs    map[string]trait.Node
	names    []string
	version  string
	loadTime time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		exprs: make(map[string]trait.Node),
	}
}

// Replace swaps the registry contents for the given set.
func (r *Registry) Replace(set *Set) {
	exprs := make(map[string]trait.Node, set.Len())
	names := set.Names()
	for _, name := range names {
		exprs[name], _ = set.Get(name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.exprs = exprs
	r.names = names
	r.version = uuid.New().String()
	r.loadTime = time.Now()
}

// Get retrieves an expression by name.
func (r *Registry) Get(name string) (trait.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.exprs[name]
	return n, ok
}

// Names returns the registered names in declaration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

// Len returns the number of registered expressions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.exprs)
}

// Version returns the identifier of the current snapshot, or the empty
// string before the first Replace.
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// LoadTime returns when the current snapshot was installed.
func (r *Registry) LoadTime() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadTime
}
