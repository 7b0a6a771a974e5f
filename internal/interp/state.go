package interp

import (
	"github.com/simplipy-lang/simplipy-go/internal/ir"
)

// Snapshot is the wire-level schema of spec.md §6: environment bindings,
// the parent graph, the continuation stack, and the CTF tables, all in
// JSON-encodable form for a debugger frontend.
type Snapshot struct {
	E    map[int]map[string]any `json:"e"`
	P    map[int]int            `json:"p"`
	K    []Context              `json:"k"`
	CTFs map[string]map[int]int `json:"ctfs"`
}

// State is the façade spec.md §6 names: create/step/is_final/snapshot
// bundled over one Machine instance. It is the unit a session manager
// creates one of per debugging session.
type State struct {
	Machine *Machine
}

// Create builds the CTF tables and instruction index for pgm and returns
// a freshly initialized State (spec.md §6's `create(program) -> State`).
func Create(pgm *ir.Program) (*State, error) {
	m, err := NewMachine(pgm)
	if err != nil {
		return nil, err
	}
	return &State{Machine: m}, nil
}

// Step advances the state by one instruction unless already final, in
// which case it is a no-op (spec.md §4.9).
func (s *State) Step() error {
	if s.IsFinal() {
		return nil
	}
	return s.Machine.Step()
}

// IsFinal reports whether the state has reached its fixed point.
func (s *State) IsFinal() bool {
	return s.Machine.IsFinal()
}

// Snapshot renders the current state in the wire schema.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		E:    s.Machine.Envs.Display(),
		P:    s.Machine.Parents.Display(),
		K:    s.Machine.Cont.Frames(),
		CTFs: s.Machine.CTFs.AsMap(),
	}
}
