package desceditor

import (
	"fmt"
	"sync"
)

// Registry hands embedding callers a lookup point for live editors without
// ambient globals. An editor constructed with WithRegistry registers itself
// and deregisters on Close; the registration is strictly scoped to the
// editor's lifecycle.
type Registry struct {
	mu      sync.Mutex
	editors map[string]*Editor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{editors: make(map[string]*Editor)}
}

// Lookup returns the live editor registered under name.
func (r *Registry) Lookup(name string) (*Editor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.editors[name]
	return e, ok
}

// Names returns the currently registered handle names.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.editors))
	for name := range r.editors {
		names = append(names, name)
	}
	return names
}

func (r *Registry) attach(name string, e *Editor) error {
	if name == "" {
		return fmt.Errorf("registry handle name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.editors[name]; exists {
		return fmt.Errorf("editor %q is already registered", name)
	}
	r.editors[name] = e
	return nil
}

func (r *Registry) detach(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.editors, name)
}
