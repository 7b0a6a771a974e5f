package env

import (
	"testing"

	"github.com/simplipy-lang/simplipy-go/internal/value"
)

func TestStoreNewEnvAllocatesMonotonically(t *testing.T) {
	s := NewStore()
	if got := s.NewEnv(); got != 1 {
		t.Fatalf("first NewEnv = %d, want 1", got)
	}
	if got := s.NewEnv(); got != 2 {
		t.Fatalf("second NewEnv = %d, want 2", got)
	}
}

func TestStoreBindGetHas(t *testing.T) {
	s := NewStore()
	if s.Has(GlobalEnvID, "x") {
		t.Fatal("unbound name reported as bound")
	}
	s.Bind(GlobalEnvID, "x", value.Int(5))
	if !s.Has(GlobalEnvID, "x") {
		t.Fatal("bound name reported as unbound")
	}
	v, ok := s.Get(GlobalEnvID, "x")
	if !ok || v != value.Int(5) {
		t.Fatalf("Get = %v, %v, want 5, true", v, ok)
	}
}

func TestParentChainGetChainReachesGlobal(t *testing.T) {
	p := NewParentChain()
	p.AddEdge(2, 1)
	p.AddEdge(1, 0)

	chain := p.GetChain(2)
	want := []int{2, 1, 0}
	if len(chain) != len(want) {
		t.Fatalf("chain = %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("chain = %v, want %v", chain, want)
		}
	}
}

func TestDisplayRendersBottomAndClosure(t *testing.T) {
	s := NewStore()
	s.Bind(GlobalEnvID, "b", value.Bottom{})
	s.Bind(GlobalEnvID, "f", value.Closure{EntryLine: 3, Formals: []string{"x"}, ParentEnvID: 0})

	disp := s.Display()[GlobalEnvID]
	if disp["b"] != "⊥" {
		t.Fatalf("bottom display = %v, want ⊥", disp["b"])
	}
	closureDisp, ok := disp["f"].(map[string]any)
	if !ok || closureDisp["lineno"] != 3 {
		t.Fatalf("closure display = %v", disp["f"])
	}
}
