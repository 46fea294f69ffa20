// Package roles holds the process-wide universe of known role names.
//
// Protected operations declare the roles they require by registering them
// here at startup; group-role grants are validated against this set, and
// names never registered are dropped silently on write. The registry is
// owned by the composition root and passed to whoever needs it, it is not
// a package-level global.
package roles

import (
	"sort"
	"sync"
)

// Registry is a concurrency-safe, grow-only set of role names.
type Registry struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register adds name to the set. Idempotent; safe from concurrent
// initialization paths.
func (r *Registry) Register(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[name] = struct{}{}
}

// Has reports whether name has been registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[name]
	return ok
}

// Names returns every registered role name in lexicographic order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.names))
	for name := range r.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
