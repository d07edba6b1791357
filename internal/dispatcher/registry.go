package dispatcher

import (
	"slices"
	"sync"

	"github.com/dshills/richtext/internal/dispatcher/handler"
)

// Registry maps host method names to handlers. A name may carry several
// handlers; the one with the highest priority that accepts the name wins,
// so a host can override a built-in command without removing it.
type Registry struct {
	mu      sync.RWMutex
	methods map[string][]handler.Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{methods: make(map[string][]handler.Handler)}
}

// Register adds h under name. Among equal priorities the earlier
// registration wins.
func (r *Registry) Register(name string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hs := r.methods[name]
	i := len(hs)
	for i > 0 && hs[i-1].Priority() < h.Priority() {
		i--
	}
	r.methods[name] = slices.Insert(hs, i, h)
}

// Remove drops h from name. A nil h drops the whole method.
func (r *Registry) Remove(name string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h == nil {
		delete(r.methods, name)
		return
	}
	hs := slices.DeleteFunc(r.methods[name], func(x handler.Handler) bool { return x == h })
	if len(hs) == 0 {
		delete(r.methods, name)
		return
	}
	r.methods[name] = hs
}

// Lookup returns the handler for name, or nil.
func (r *Registry) Lookup(name string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.methods[name] {
		if h.CanHandle(name) {
			return h
		}
	}
	return nil
}

// Handlers returns every handler registered under name, best first.
func (r *Registry) Handlers(name string) []handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.methods[name])
}

// Names returns the registered method names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered method names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.methods)
}
