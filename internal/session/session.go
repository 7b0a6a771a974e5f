// Package session implements the in-process operation set spec.md §6
// names as a core instance's host surface: create/step/get/reset/delete
// against a registry of running interpreters. It is deliberately not an
// HTTP server: spec.md treats the transport as an external collaborator,
// and no example in this repo's corpus supplies a web framework suited to
// standing one up (see DESIGN.md). cmd/simplipy wires directly against
// this package instead.
package session

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/simplipy-lang/simplipy-go/internal/config"
	"github.com/simplipy-lang/simplipy-go/internal/interp"
	"github.com/simplipy-lang/simplipy-go/internal/ir"
	"github.com/simplipy-lang/simplipy-go/internal/lexer"
	"github.com/simplipy-lang/simplipy-go/internal/parser"
	"github.com/simplipy-lang/simplipy-go/internal/simplify"
)

// ID identifies one running session.
type ID string

// entry bundles a live State with the step-budget bookkeeping a Manager
// enforces on its behalf (the core itself has no notion of a budget).
type entry struct {
	state     *interp.State
	structure ir.StructureRecord
	steps     int
}

// Manager is a registry of running interpreter sessions, keyed by ID. It
// is safe for concurrent use.
type Manager struct {
	cfg config.Config

	mu      sync.Mutex
	entries map[ID]*entry
	nextID  int
}

// NewManager creates an empty registry governed by cfg's step/call-depth
// budgets.
func NewManager(cfg config.Config) *Manager {
	return &Manager{cfg: cfg, entries: map[ID]*entry{}}
}

// compile lexes, parses, and simplifies source into a ready-to-run
// *ir.Program, collapsing every stage's distinct error type into one
// reported message: a session's caller only needs to know build failed.
func compile(source string) (*ir.Program, error) {
	l := lexer.New(source)
	p := parser.New(l)
	mod := p.ParseModule()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parse error(s): %s", strings.Join(errs, "; "))
	}
	return simplify.Build(mod)
}

// Create compiles source and starts a new session, returning its ID, the
// initial snapshot, and the static program structure for display.
func (m *Manager) Create(source string) (ID, interp.Snapshot, ir.StructureRecord, error) {
	pgm, err := compile(source)
	if err != nil {
		return "", interp.Snapshot{}, nil, err
	}
	state, err := interp.Create(pgm)
	if err != nil {
		return "", interp.Snapshot{}, nil, err
	}

	structure := ir.ProgramStructure(pgm)

	m.mu.Lock()
	m.nextID++
	id := ID(strconv.Itoa(m.nextID))
	m.entries[id] = &entry{state: state, structure: structure}
	m.mu.Unlock()

	return id, state.Snapshot(), structure, nil
}

// Step advances session id by exactly one instruction, reporting whether
// the program has reached its final state. A session that has already
// exhausted its step budget (config.MaxSteps, 0 = unbounded) fails rather
// than stepping further; this is a host-side policy, not a core concern.
func (m *Manager) Step(id ID) (interp.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return interp.Snapshot{}, false, unknownSessionError(id)
	}

	if e.state.IsFinal() {
		return e.state.Snapshot(), true, nil
	}
	if m.cfg.MaxSteps > 0 && e.steps >= m.cfg.MaxSteps {
		return interp.Snapshot{}, false, fmt.Errorf("session %s exceeded max_steps (%d)", id, m.cfg.MaxSteps)
	}
	if m.cfg.MaxCallDepth > 0 && e.state.Machine.Cont.Len() > m.cfg.MaxCallDepth {
		return interp.Snapshot{}, false, fmt.Errorf("session %s exceeded max_call_depth (%d)", id, m.cfg.MaxCallDepth)
	}

	if err := e.state.Step(); err != nil {
		return interp.Snapshot{}, false, err
	}
	e.steps++
	return e.state.Snapshot(), e.state.IsFinal(), nil
}

// Get returns the current snapshot of session id without advancing it.
func (m *Manager) Get(id ID) (interp.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return interp.Snapshot{}, unknownSessionError(id)
	}
	return e.state.Snapshot(), nil
}

// Structure returns the static program_structure tree recorded at Create.
func (m *Manager) Structure(id ID) (ir.StructureRecord, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return e.structure, nil
}

// Reset recompiles newSource in place of session id's program, as if
// Delete followed by Create had been called with the same ID.
func (m *Manager) Reset(id ID, newSource string) (interp.Snapshot, ir.StructureRecord, error) {
	pgm, err := compile(newSource)
	if err != nil {
		return interp.Snapshot{}, nil, err
	}
	state, err := interp.Create(pgm)
	if err != nil {
		return interp.Snapshot{}, nil, err
	}
	structure := ir.ProgramStructure(pgm)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return interp.Snapshot{}, nil, unknownSessionError(id)
	}
	m.entries[id] = &entry{state: state, structure: structure}
	return state.Snapshot(), structure, nil
}

// Delete removes session id from the registry.
func (m *Manager) Delete(id ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return unknownSessionError(id)
	}
	delete(m.entries, id)
	return nil
}

func (m *Manager) lookup(id ID) (*entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, unknownSessionError(id)
	}
	return e, nil
}

func unknownSessionError(id ID) error {
	return fmt.Errorf("unknown session %q", id)
}
