package construct

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chazu/compass/pkg/value"
)

var (
	ErrDuplicateType = errors.New("construction type already registered")
	ErrBadType       = errors.New("malformed construction type")
)

// Registry maps names to construction types. It is not safe for
// concurrent registration; lookups are read-only.
type Registry struct {
	types map[string]*Type
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Register adds t under t.Name.
func (r *Registry) Register(t *Type) error {
	if t == nil || t.Name == "" || t.Calc == nil {
		return fmt.Errorf("register: %w", ErrBadType)
	}
	for i, a := range t.Args {
		if a.Variadic && i != len(t.Args)-1 {
			return fmt.Errorf("register %s: variadic argument %d is not last: %w", t.Name, i, ErrBadType)
		}
	}
	if _, ok := r.types[t.Name]; ok {
		return fmt.Errorf("register %s: %w", t.Name, ErrDuplicateType)
	}
	r.types[t.Name] = t
	return nil
}

// MustRegister is Register for builtin tables; it panics on error.
func (r *Registry) MustRegister(types ...*Type) {
	for _, t := range types {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Lookup finds a type by name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Types returns every registered type sorted by name.
func (r *Registry) Types() []*Type {
	ret := make([]*Type, 0, len(r.types))
	for _, t := range r.types {
		ret = append(ret, t)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// Accepting returns the types for which args are a complete argument
// list, sorted by name.
func (r *Registry) Accepting(args []value.Value) []*Type {
	var ret []*Type
	for _, t := range r.Types() {
		if t.Wants(args) == Complete {
			ret = append(ret, t)
		}
	}
	return ret
}

// Wanting returns the types for which args are a complete list or a
// valid prefix of one, sorted by name.
func (r *Registry) Wanting(args []value.Value) []*Type {
	var ret []*Type
	for _, t := range r.Types() {
		if t.Wants(args) != NotGood {
			ret = append(ret, t)
		}
	}
	return ret
}
