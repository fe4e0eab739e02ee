package vcs

import (
	"fmt"
	"sort"
	"sync"
)

// Credentials holds what a hosting client needs to reach its API.
type Credentials struct {
	// Token authenticates against the hosting API. Both built-in
	// backends require one.
	Token string

	// BaseURL points at a self-hosted instance; empty selects the
	// provider's public endpoint.
	BaseURL string
}

// Factory builds a VCSProvider from credentials.
type Factory func(creds Credentials) (VCSProvider, error)

// Registry maps backend names (the values of --vcs and the vcs.default
// config key) to factories. Backends self-register at init() time; the
// application blank-imports internal/vcs/init and resolves clients by
// name, never importing a backend package directly.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Factory
}

var defaultRegistry = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Factory)}
}

// Register stores a factory under name. Registering a name twice is a
// programming error, not a runtime condition, so it panics.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.backends[name]; dup {
		panic(fmt.Sprintf("vcs: backend %q registered twice", name))
	}
	r.backends[name] = f
}

// Get builds a client for the named backend.
func (r *Registry) Get(name string, creds Credentials) (VCSProvider, error) {
	r.mu.RLock()
	f, ok := r.backends[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("vcs: no backend registered as %q (have %v)", name, r.Names())
	}
	return f(creds)
}

// Names lists the registered backends, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for n := range r.backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Register stores a backend factory in the default registry.
func Register(name string, f Factory) {
	defaultRegistry.Register(name, f)
}

// Get builds a client for the named backend from the default registry.
func Get(name string, creds Credentials) (VCSProvider, error) {
	return defaultRegistry.Get(name, creds)
}

// Names lists the backends registered in the default registry.
func Names() []string {
	return defaultRegistry.Names()
}
