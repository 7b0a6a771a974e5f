// Package env implements the environment store and parent chain (spec.md
// §4.4-4.5): a flat table of env id -> {name -> Value}, plus an append-only
// child->parent edge set. Grounded on original_source/simplipy/semantics/
// state.py's LexicalMap/ParentChain, translated from Python's dict/set
// primitives into the Go equivalents the teacher reaches for when it needs
// an id-keyed table (internal/interp's environment.go used a similar
// map[EnvID]map[string]Value shape for DWScript's scope chain).
package env

import (
	"github.com/simplipy-lang/simplipy-go/internal/value"
)

// GlobalEnvID is the reserved id of the module-level environment, created
// once at Store construction and never reclaimed.
const GlobalEnvID = 0

// Store is the environment table. Ids are allocated monotonically; there
// is no deletion (spec.md §4.4) so closures can hold raw ids without
// owning a reference.
type Store struct {
	envs map[int]map[string]value.Value
}

// NewStore creates a Store with only envs[0] populated, empty.
func NewStore() *Store {
	return &Store{envs: map[int]map[string]value.Value{GlobalEnvID: {}}}
}

// NewEnv allocates id = max(existing ids) + 1 and returns it.
func (s *Store) NewEnv() int {
	max := 0
	for id := range s.envs {
		if id > max {
			max = id
		}
	}
	newID := max + 1
	s.envs[newID] = map[string]value.Value{}
	return newID
}

// Bind sets name to v in env id.
func (s *Store) Bind(id int, name string, v value.Value) {
	s.envs[id][name] = v
}

// Get returns the value bound to name in env id, and whether it exists.
func (s *Store) Get(id int, name string) (value.Value, bool) {
	v, ok := s.envs[id][name]
	return v, ok
}

// Has reports whether name is bound in env id.
func (s *Store) Has(id int, name string) bool {
	_, ok := s.envs[id][name]
	return ok
}

// Map returns the raw name->Value table for env id, for direct mutation by
// the resolver (spec.md §4.7: "Lookup returns an environment map reference;
// assignment writes there").
func (s *Store) Map(id int) map[string]value.Value {
	return s.envs[id]
}

// Ids returns every allocated environment id, in no particular order.
func (s *Store) Ids() []int {
	ids := make([]int, 0, len(s.envs))
	for id := range s.envs {
		ids = append(ids, id)
	}
	return ids
}

// Display renders every environment's bindings in the wire-level snapshot
// form (spec.md §6's `e` field): env id -> { name -> display value }.
func (s *Store) Display() map[int]map[string]any {
	out := make(map[int]map[string]any, len(s.envs))
	for id, bindings := range s.envs {
		rendered := make(map[string]any, len(bindings))
		for name, v := range bindings {
			rendered[name] = v.Display()
		}
		out[id] = rendered
	}
	return out
}
