package component

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores components by id, providing discovery and duplication
// safeguards. FormSpecs reference components by id; resolution happens when
// a spec is registered, not at render time.
type Registry struct {
	mu         sync.RWMutex
	components map[string]SectionComponent
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]SectionComponent),
	}
}

// Register adds a component under id. Duplicate ids return an error.
func (r *Registry) Register(id string, comp SectionComponent) error {
	if comp == nil {
		return fmt.Errorf("component: component is required")
	}
	if id == "" {
		return fmt.Errorf("component: component id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.components[id]; exists {
		return fmt.Errorf("component: component %q already registered", id)
	}

	r.components[id] = comp
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(id string, comp SectionComponent) {
	if err := r.Register(id, comp); err != nil {
		panic(err)
	}
}

// Get retrieves a component by id.
func (r *Registry) Get(id string) (SectionComponent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comp, ok := r.components[id]
	if !ok {
		return nil, fmt.Errorf("component: component %q not found", id)
	}
	return comp, nil
}

// Has reports whether a component is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.components[id]
	return ok
}

// List returns a sorted list of registered component ids.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.components))
	for id := range r.components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
