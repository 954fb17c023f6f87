package patterns

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

var (
	// ErrDuplicateName is returned when two definitions share a name.
	ErrDuplicateName = errors.New("patterns: duplicate pattern name")

	// ErrEmptyName is returned when a definition has no name.
	ErrEmptyName = errors.New("patterns: pattern name cannot be empty")
)

// Def is one named pattern source.
type Def struct {
	Name    string
	Pattern string
}

// ID is the stable identifier of a registered pattern, assigned in
// declaration order starting at zero.
type ID int

// Registry is the lazily compiled pattern table. See the package
// documentation for the compilation and fatality contract.
type Registry struct {
	entries []*entry
	byName  map[string]ID
}

type entry struct {
	name   string
	source string
	once   sync.Once
	re     *regexp.Regexp
}

// compilePattern is swapped in white-box tests to count compilations.
var compilePattern = regexp.Compile

// New builds a registry from the given definitions. Sources are stored, not
// compiled; see Matcher.
func New(defs ...Def) (*Registry, error) {
	r := &Registry{
		entries: make([]*entry, 0, len(defs)),
		byName:  make(map[string]ID, len(defs)),
	}
	for _, def := range defs {
		if def.Name == "" {
			return nil, ErrEmptyName
		}
		if _, exists := r.byName[def.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, def.Name)
		}
		r.byName[def.Name] = ID(len(r.entries))
		r.entries = append(r.entries, &entry{name: def.Name, source: def.Pattern})
	}
	return r, nil
}

// Resolve maps a literal name to its identifier.
func (r *Registry) Resolve(name string) (ID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Names returns every registered name in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of registered patterns.
func (r *Registry) Len() int { return len(r.entries) }

// Source returns the uncompiled pattern text for an identifier.
func (r *Registry) Source(id ID) string {
	return r.entry(id).source
}

// Matcher returns the shared compiled expression for an identifier,
// compiling it on first use. It panics if the source text is not a valid
// pattern (the registry's documented fatal condition) or if id is out of
// range.
func (r *Registry) Matcher(id ID) *regexp.Regexp {
	e := r.entry(id)
	e.once.Do(func() {
		re, err := compilePattern(e.source)
		if err != nil {
			panic(fmt.Sprintf("patterns: %s: invalid pattern %q: %v", e.name, e.source, err))
		}
		e.re = re
	})
	return e.re
}

func (r *Registry) entry(id ID) *entry {
	if id < 0 || int(id) >= len(r.entries) {
		panic(fmt.Sprintf("patterns: no pattern with id %d", id))
	}
	return r.entries[id]
}
