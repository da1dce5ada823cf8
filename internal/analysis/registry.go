package analysis

import "fmt"

// Registry maps analyzer names to their definitions. It is built once during
// process initialization and read-only afterwards, so concurrent lookups need
// no synchronization.
type Registry struct {
	analyzers map[string]*Analyzer
}

// NewRegistry indexes the given analyzers by name. A duplicate name is a
// configuration error.
func NewRegistry(analyzers ...*Analyzer) (*Registry, error) {
	r := &Registry{analyzers: make(map[string]*Analyzer, len(analyzers))}
	for _, a := range analyzers {
		if _, exists := r.analyzers[a.Name()]; exists {
			return nil, fmt.Errorf("analyzer '%s' registered twice", a.Name())
		}
		r.analyzers[a.Name()] = a
	}
	return r, nil
}

// Get returns the named analyzer, if registered.
func (r *Registry) Get(name string) (*Analyzer, bool) {
	a, ok := r.analyzers[name]
	return a, ok
}

// Names returns the registered analyzer names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.analyzers))
	for name := range r.analyzers {
		names = append(names, name)
	}
	return names
}
