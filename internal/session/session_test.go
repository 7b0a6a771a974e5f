package session

import (
	"testing"

	"github.com/simplipy-lang/simplipy-go/internal/config"
)

const sourceS1 = "x = 1\ny = x + 2\npass\n"

func TestCreateAndStepToFinal(t *testing.T) {
	m := NewManager(config.Default())
	id, snap, structure, err := m.Create(sourceS1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if structure == nil {
		t.Fatal("expected a non-nil program structure")
	}
	if snap.E[0]["x"] != nil {
		t.Fatalf("expected x unset before any step, got %v", snap.E[0]["x"])
	}

	var finished bool
	for i := 0; i < 10 && !finished; i++ {
		snap, finished, err = m.Step(id)
		if err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if !finished {
		t.Fatal("did not reach final state")
	}
	if snap.E[0]["x"] != int64(1) || snap.E[0]["y"] != int64(3) {
		t.Fatalf("unexpected final globals: %v", snap.E[0])
	}
}

func TestStepUnknownSessionErrors(t *testing.T) {
	m := NewManager(config.Default())
	if _, _, err := m.Step("nope"); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestDeleteRemovesSession(t *testing.T) {
	m := NewManager(config.Default())
	id, _, _, err := m.Create(sourceS1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(id); err == nil {
		t.Fatal("expected error getting a deleted session")
	}
	if err := m.Delete(id); err == nil {
		t.Fatal("expected error deleting an already-deleted session")
	}
}

func TestResetRecompilesInPlace(t *testing.T) {
	m := NewManager(config.Default())
	id, _, _, err := m.Create(sourceS1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	snap, _, err := m.Reset(id, "z = 9\npass\n")
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(snap.E[0]) != 0 {
		t.Fatalf("expected empty globals right after reset, got %v", snap.E[0])
	}

	for i := 0; i < 5; i++ {
		var finished bool
		snap, finished, err = m.Step(id)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if finished {
			break
		}
	}
	if snap.E[0]["z"] != int64(9) {
		t.Fatalf("expected reset program's z=9 to run, got %v", snap.E[0])
	}
}

func TestStepEnforcesMaxSteps(t *testing.T) {
	cfg := config.Default()
	cfg.MaxSteps = 1
	m := NewManager(cfg)
	id, _, _, err := m.Create(sourceS1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, err := m.Step(id); err != nil {
		t.Fatalf("first step should succeed: %v", err)
	}
	if _, _, err := m.Step(id); err == nil {
		t.Fatal("expected second step to exceed max_steps")
	}
}

func TestCreateCompileErrorSurfaces(t *testing.T) {
	m := NewManager(config.Default())
	if _, _, _, err := m.Create("for x in y:\n    pass\n"); err == nil {
		t.Fatal("expected a build error for an unsupported for-loop")
	}
}
