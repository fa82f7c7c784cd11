package tool

import (
	"errors"
	"fmt"
)

// ErrDuplicate reports a registration attempt with an already-taken name.
var ErrDuplicate = errors.New("tool already registered")

// ErrNotFound reports a lookup for a name no tool was registered under.
var ErrNotFound = errors.New("tool not found")

type entry struct {
	desc    Descriptor
	handler Handler
}

// Registry is a name-keyed collection of descriptors and their bound
// handlers. It is populated once during startup; list and lookup are
// pure reads and List preserves registration order.
type Registry struct {
	order   []string
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a descriptor with its handler. It fails with
// ErrDuplicate if the name is already taken and rejects nil handlers.
func (r *Registry) Register(d Descriptor, h Handler) error {
	if d.Name == "" {
		return fmt.Errorf("registering tool: empty name")
	}
	if h == nil {
		return fmt.Errorf("registering tool %s: nil handler", d.Name)
	}
	if _, exists := r.entries[d.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, d.Name)
	}
	r.entries[d.Name] = entry{desc: d, handler: h}
	r.order = append(r.order, d.Name)
	return nil
}

// List returns all descriptors in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].desc)
	}
	return out
}

// Lookup returns the descriptor and handler registered under name,
// or ErrNotFound.
func (r *Registry) Lookup(name string) (Descriptor, Handler, error) {
	e, ok := r.entries[name]
	if !ok {
		return Descriptor{}, nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return e.desc, e.handler, nil
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}
