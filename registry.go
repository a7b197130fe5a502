package corral

import (
	"sort"
	"sync"
)

// Constructor builds the Validation capability for one validator instance
// from its rail arguments. Constructors run at schema-compile time, once per
// validator instance; the returned Validation is then reused for every value
// that instance validates within a run.
type Constructor func(kwargs Kwargs) (Validation, error)

// Registry is the explicit mapping from rail aliases to validator
// constructors. It is owned by the application and populated during startup:
//
//	reg := corral.NewRegistry()
//	validators.RegisterBuiltins(reg)
//	reg.Register("my-rule", func(kwargs corral.Kwargs) (corral.Validation, error) {
//	    return corral.ValidationFunc(myRule), nil
//	})
//
// There is no package-level default registry and no registration via import
// side effects; construction order is always explicit.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		ctors: make(map[string]Constructor),
	}
}

// Register adds a constructor under the given rail alias, replacing any
// previous registration for the same alias.
func (r *Registry) Register(alias string, ctor Constructor) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[alias] = ctor
	return r
}

// Lookup returns the constructor registered under alias.
func (r *Registry) Lookup(alias string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[alias]
	return ctor, ok
}

// Aliases returns all registered aliases, sorted.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	aliases := make([]string, 0, len(r.ctors))
	for alias := range r.ctors {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
