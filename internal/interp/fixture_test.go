package interp

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/simplipy-lang/simplipy-go/internal/lexer"
	"github.com/simplipy-lang/simplipy-go/internal/parser"
	"github.com/simplipy-lang/simplipy-go/internal/simplify"
)

// compileFixture runs source through the full lex/parse/simplify pipeline,
// the same path a session.Manager takes, and fails the test on any error.
func compileFixture(t *testing.T, source string) *State {
	t.Helper()
	l := lexer.New(source)
	p := parser.New(l)
	mod := p.ParseModule()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	pgm, err := simplify.Build(mod)
	if err != nil {
		t.Fatalf("simplify.Build: %v", err)
	}
	st, err := Create(pgm)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return st
}

func runFixtureToFinal(t *testing.T, st *State, maxSteps int) Snapshot {
	t.Helper()
	for i := 0; i < maxSteps; i++ {
		if st.IsFinal() {
			return st.Snapshot()
		}
		if err := st.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	t.Fatalf("did not reach final state within %d steps", maxSteps)
	return Snapshot{}
}

// TestFixtureS1StraightLine runs spec.md §8's S1 through the real
// lexer/parser/simplifier rather than hand-built IR, and snapshots the
// resulting wire record the way the teacher's fixture suite snapshots
// whole-program output.
func TestFixtureS1StraightLine(t *testing.T) {
	st := compileFixture(t, "x = 1\ny = x + 2\npass\n")
	snap := runFixtureToFinal(t, st, 10)

	if snap.E[0]["x"] != int64(1) || snap.E[0]["y"] != int64(3) {
		t.Fatalf("globals = %v, want x:1 y:3", snap.E[0])
	}
	snaps.MatchSnapshot(t, snap)
}

// TestFixtureS3WhileContinue covers spec.md §8's S3: a while loop whose
// body always continues, terminating only once the condition goes false.
func TestFixtureS3WhileContinue(t *testing.T) {
	src := "i = 0\ns = 0\nwhile i < 3:\n    s = s + i\n    i = i + 1\n    continue\npass\n"
	st := compileFixture(t, src)
	snap := runFixtureToFinal(t, st, 100)

	if snap.E[0]["i"] != int64(3) || snap.E[0]["s"] != int64(3) {
		t.Fatalf("globals = %v, want i:3 s:3", snap.E[0])
	}
	snaps.MatchSnapshot(t, snap)
}

// TestFixtureS4ClosureOverParent covers spec.md §8's S4: a nested
// function whose closure keeps the defining activation alive as its
// parent environment.
func TestFixtureS4ClosureOverParent(t *testing.T) {
	src := "def make_adder(n):\n" +
		"    def add(x):\n" +
		"        r = x + n\n" +
		"        return r\n" +
		"    return add\n" +
		"f = make_adder(10)\n" +
		"y = f(5)\n" +
		"pass\n"
	st := compileFixture(t, src)
	snap := runFixtureToFinal(t, st, 200)

	if snap.E[0]["y"] != int64(15) {
		t.Fatalf("y = %v, want 15", snap.E[0]["y"])
	}

	f, ok := snap.E[0]["f"].(map[string]any)
	if !ok {
		t.Fatalf("f = %#v, want a closure record", snap.E[0]["f"])
	}
	adderEnvID, ok := f["par_env_id"].(int)
	if !ok {
		t.Fatalf("f.par_env_id = %#v, want an int", f["par_env_id"])
	}
	if snap.E[adderEnvID]["n"] != int64(10) {
		t.Fatalf("make_adder's activation (env %d) has n=%v, want 10", adderEnvID, snap.E[adderEnvID]["n"])
	}
	snaps.MatchSnapshot(t, snap)
}

// TestFixtureS5Recursion covers spec.md §8's S5: factorial(3) via
// self-recursion, checking the final result, the continuation depth
// returning to 1, and that exactly four distinct environments were
// allocated (the initial call plus three recursive frames).
func TestFixtureS5Recursion(t *testing.T) {
	src := "def factorial(n):\n" +
		"    if n < 2:\n" +
		"        return 1\n" +
		"    else:\n" +
		"        m = n - 1\n" +
		"        r = factorial(m)\n" +
		"        return n * r\n" +
		"result = factorial(3)\n" +
		"pass\n"
	st := compileFixture(t, src)
	snap := runFixtureToFinal(t, st, 500)

	if snap.E[0]["result"] != int64(6) {
		t.Fatalf("result = %v, want 6", snap.E[0]["result"])
	}
	if len(snap.K) != 1 {
		t.Fatalf("continuation depth = %d, want 1 (back to the top level)", len(snap.K))
	}
	if len(snap.E) != 4 {
		t.Fatalf("allocated %d environments, want 4 (global + 3 recursive frames)", len(snap.E))
	}
	snaps.MatchSnapshot(t, snap)
}
