package interp

import (
	"testing"

	"github.com/simplipy-lang/simplipy-go/internal/ir"
	"github.com/simplipy-lang/simplipy-go/internal/value"
)

func leaf(line int, kind ir.InstrKind) *ir.Statement {
	return ir.NewLeafStatement(&ir.Instruction{Line: line, Kind: kind})
}

func lexicalBlock() *ir.Block {
	return &ir.Block{
		Lexical:   true,
		Locals:    map[string]struct{}{},
		Nonlocals: map[string]struct{}{},
		Globals:   map[string]struct{}{},
	}
}

// buildS1 constructs the IR for spec.md §8's S1: `x = 1; y = x + 2; pass`.
func buildS1() *ir.Program {
	top := lexicalBlock()
	top.Locals["x"] = struct{}{}
	top.Locals["y"] = struct{}{}

	s1 := leaf(1, ir.ExprAssign)
	s1.Leaf.Target = "x"
	s1.Leaf.Expr = &ir.ConstExpr{Value: value.Int(1)}
	top.Append(s1)

	s2 := leaf(2, ir.ExprAssign)
	s2.Leaf.Target = "y"
	s2.Leaf.Expr = &ir.BinaryExpr{Op: "+", Left: &ir.NameExpr{Name: "x"}, Right: &ir.ConstExpr{Value: value.Int(2)}}
	top.Append(s2)

	s3 := leaf(3, ir.Pass)
	top.Append(s3)

	return &ir.Program{Block: top}
}

func TestStepperS1StraightLine(t *testing.T) {
	pgm := buildS1()
	st, err := Create(pgm)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if st.IsFinal() {
			t.Fatalf("became final early at step %d", i)
		}
		if err := st.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if !st.IsFinal() {
		t.Fatal("expected final after 3 steps")
	}

	snap := st.Snapshot()
	globals := snap.E[0]
	if globals["x"] != int64(1) {
		t.Errorf("x = %v, want 1", globals["x"])
	}
	if globals["y"] != int64(3) {
		t.Errorf("y = %v, want 3", globals["y"])
	}
}

// buildS2 constructs the IR for spec.md §8's S2:
// `x = 5; if x > 0: y = 1 else: y = -1; pass`.
func buildS2(xInit int64) *ir.Program {
	top := lexicalBlock()
	top.Locals["x"] = struct{}{}
	top.Locals["y"] = struct{}{}

	s1 := leaf(1, ir.ExprAssign)
	s1.Leaf.Target = "x"
	s1.Leaf.Expr = &ir.ConstExpr{Value: value.Int(xInit)}
	top.Append(s1)

	thenBlk := &ir.Block{}
	elseBlk := &ir.Block{}
	ifInstr := &ir.Instruction{Line: 2, Kind: ir.IfTest, Test: &ir.CompareExpr{
		Operands: []ir.Expr{&ir.NameExpr{Name: "x"}, &ir.ConstExpr{Value: value.Int(0)}},
		Ops:      []string{">"},
	}}
	s2 := ir.NewIfStatement(ifInstr, thenBlk, elseBlk)
	top.Append(s2)

	thenStmt := leaf(3, ir.ExprAssign)
	thenStmt.Leaf.Target = "y"
	thenStmt.Leaf.Expr = &ir.ConstExpr{Value: value.Int(1)}
	thenBlk.Append(thenStmt)

	elseStmt := leaf(4, ir.ExprAssign)
	elseStmt.Leaf.Target = "y"
	elseStmt.Leaf.Expr = &ir.ConstExpr{Value: value.Int(-1)}
	elseBlk.Append(elseStmt)

	s5 := leaf(5, ir.Pass)
	top.Append(s5)

	return &ir.Program{Block: top}
}

func runToFinal(t *testing.T, st *State, maxSteps int) {
	t.Helper()
	for i := 0; i < maxSteps; i++ {
		if st.IsFinal() {
			return
		}
		if err := st.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	t.Fatalf("did not reach final state within %d steps", maxSteps)
}

func TestStepperS2IfElseTakesThenBranch(t *testing.T) {
	st, err := Create(buildS2(5))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	runToFinal(t, st, 10)

	y := st.Snapshot().E[0]["y"]
	if y != int64(1) {
		t.Errorf("y = %v, want 1", y)
	}
}

func TestStepperS2IfElseTakesElseBranch(t *testing.T) {
	st, err := Create(buildS2(-5))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	runToFinal(t, st, 10)

	y := st.Snapshot().E[0]["y"]
	if y != int64(-1) {
		t.Errorf("y = %v, want -1", y)
	}
}
