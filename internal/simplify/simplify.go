// Package simplify collapses spec.md's §4.1 "simplifier" and "IR builder"
// into one pass: it walks the generic surface tree (internal/ast) and
// produces the restricted internal/ir.Program directly, instead of the
// original's two-stage text-to-text transform (parse -> rewrite source ->
// re-parse; original_source/simplipy/simplify/simplify.py). Our parser
// already yields a typed tree, so there is nothing to gain from
// round-tripping through source text a second time; see DESIGN.md.
package simplify

import (
	"fmt"

	"github.com/simplipy-lang/simplipy-go/internal/ast"
	"github.com/simplipy-lang/simplipy-go/internal/errors"
	"github.com/simplipy-lang/simplipy-go/internal/ir"
	"github.com/simplipy-lang/simplipy-go/internal/value"
)

// builder carries the two counters the transform needs beyond the tree
// itself: a synthetic line-number cursor for injected/extracted statements
// (seeded past every real source line so it can never collide with one,
// and past the line right after the last one, which internal/ctf uses as
// its end-of-program sentinel when the program ends on a real line),
// and a temp-variable counter for hoisted call results.
type builder struct {
	syntheticLine int
	tempCounter   int
}

// Build converts a parsed module into the IR core the stepper consumes.
func Build(mod *ast.Module) (*ir.Program, error) {
	b := &builder{syntheticLine: maxLine(mod) + 1}

	top := ir.NewLexicalBlock()
	if err := b.buildStmts(mod.Body, top, top); err != nil {
		return nil, err
	}
	if top.Len() == 0 {
		// An empty module still needs one instruction to be a valid
		// program: a trailing pass at the next synthetic line.
		top.Append(ir.NewLeafStatement(&ir.Instruction{Line: b.nextLine(), Kind: ir.Pass}))
	}
	return &ir.Program{Block: top}, nil
}

func (b *builder) nextLine() int {
	b.syntheticLine++
	return b.syntheticLine
}

func (b *builder) tempName() string {
	name := fmt.Sprintf("__t%d", b.tempCounter)
	b.tempCounter++
	return name
}

// maxLine finds the greatest source line used anywhere in mod, including
// nested bodies, so injected statements can be seeded safely past it.
func maxLine(mod *ast.Module) int {
	max := 0
	bump := func(line int) {
		if line > max {
			max = line
		}
	}
	var walkStmts func([]ast.Statement)
	walkStmts = func(stmts []ast.Statement) {
		for _, s := range stmts {
			bump(s.Pos().Line)
			switch x := s.(type) {
			case *ast.IfStmt:
				walkStmts(x.Then)
				walkStmts(x.Else)
			case *ast.WhileStmt:
				walkStmts(x.Body)
			case *ast.DefStmt:
				walkStmts(x.Body)
			case *ast.ForStmt:
				walkStmts(x.Body)
			case *ast.ClassStmt:
				walkStmts(x.Body)
			}
		}
	}
	walkStmts(mod.Body)
	return max
}

// buildStmts lowers a statement list into blk, appending each resulting
// IR statement in order. lex is the nearest enclosing lexical block -
// the one that actually owns locals/nonlocals/globals, which differs
// from blk whenever blk is an if/while body nested inside a function.
func (b *builder) buildStmts(stmts []ast.Statement, blk, lex *ir.Block) error {
	for _, s := range stmts {
		if err := b.buildStmt(s, blk, lex); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildStmt(s ast.Statement, blk, lex *ir.Block) error {
	switch x := s.(type) {
	case *ast.PassStmt:
		blk.Append(ir.NewLeafStatement(&ir.Instruction{Line: x.Position.Line, Kind: ir.Pass}))
		return nil

	case *ast.AssignStmt:
		return b.buildAssign(x, blk, lex)

	case *ast.ExprStmt:
		return b.buildExprStmt(x, blk, lex)

	case *ast.IfStmt:
		return b.buildIf(x, blk, lex)

	case *ast.WhileStmt:
		return b.buildWhile(x, blk, lex)

	case *ast.DefStmt:
		return b.buildDef(x, blk, lex)

	case *ast.ReturnStmt:
		return b.buildReturn(x, blk, lex)

	case *ast.BreakStmt:
		blk.Append(ir.NewLeafStatement(&ir.Instruction{Line: x.Position.Line, Kind: ir.Break}))
		return nil

	case *ast.ContinueStmt:
		blk.Append(ir.NewLeafStatement(&ir.Instruction{Line: x.Position.Line, Kind: ir.Continue}))
		return nil

	case *ast.GlobalStmt:
		for _, name := range x.Names {
			if err := addGlobal(lex, x.Position.Line, name); err != nil {
				return err
			}
		}
		blk.Append(ir.NewLeafStatement(&ir.Instruction{Line: x.Position.Line, Kind: ir.Global, Names: x.Names}))
		return nil

	case *ast.NonlocalStmt:
		for _, name := range x.Names {
			if err := addNonlocal(lex, x.Position.Line, name); err != nil {
				return err
			}
		}
		blk.Append(ir.NewLeafStatement(&ir.Instruction{Line: x.Position.Line, Kind: ir.Nonlocal, Names: x.Names}))
		return nil

	case *ast.AugAssignStmt:
		return errors.Unsupported(x.Position.Line, "augmented assignment")
	case *ast.ForStmt:
		return errors.Unsupported(x.Position.Line, "for loop")
	case *ast.ImportStmt:
		return errors.Unsupported(x.Position.Line, "import")
	case *ast.ClassStmt:
		return errors.Unsupported(x.Position.Line, "class definition")

	default:
		return errors.Unsupported(s.Pos().Line, "unrecognized statement")
	}
}

// buildAssign lowers `target = value`. A bare call RHS becomes a single
// CallAssign instruction directly, no extra temporary, while any other
// RHS goes through the general expression lowerer, which still hoists any
// calls nested *inside* it.
func (b *builder) buildAssign(x *ast.AssignStmt, blk, lex *ir.Block) error {
	name, ok := x.Target.(*ast.Name)
	if !ok {
		return errors.BadAssignTarget(x.Position.Line, describeTarget(x.Target))
	}
	if err := addLocal(lex, name.Value); err != nil {
		return err
	}

	if call, ok := x.Value.(*ast.CallExpr); ok {
		calleeName, args, err := b.lowerCallSite(call, blk, lex)
		if err != nil {
			return err
		}
		blk.Append(ir.NewLeafStatement(&ir.Instruction{
			Line: x.Position.Line, Kind: ir.CallAssign,
			Target: name.Value, Callee: calleeName, Args: args,
		}))
		return nil
	}

	expr, err := b.lowerExpr(x.Value, blk, lex)
	if err != nil {
		return err
	}
	blk.Append(ir.NewLeafStatement(&ir.Instruction{
		Line: x.Position.Line, Kind: ir.ExprAssign, Target: name.Value, Expr: expr,
	}))
	return nil
}

// buildExprStmt lowers a bare expression statement. Only a bare call is
// meaningful as a standalone statement (its result is simply discarded
// into a synthetic temporary); anything else has no side effect and isn't
// part of the subset's instruction set.
func (b *builder) buildExprStmt(x *ast.ExprStmt, blk, lex *ir.Block) error {
	call, ok := x.Value.(*ast.CallExpr)
	if !ok {
		return errors.Unsupported(x.Position.Line, "standalone expression statement")
	}
	calleeName, args, err := b.lowerCallSite(call, blk, lex)
	if err != nil {
		return err
	}
	discard := b.tempName()
	if err := addLocal(lex, discard); err != nil {
		return err
	}
	blk.Append(ir.NewLeafStatement(&ir.Instruction{
		Line: x.Position.Line, Kind: ir.CallAssign,
		Target: discard, Callee: calleeName, Args: args,
	}))
	return nil
}

// lowerCallSite lowers a call's callee and argument list without hoisting
// the call itself; used by callers that already have somewhere to put a
// CallAssign directly (a bare assignment RHS or expression statement).
func (b *builder) lowerCallSite(call *ast.CallExpr, blk, lex *ir.Block) (string, []ir.Expr, error) {
	calleeName, ok := call.Callee.(*ast.Name)
	if !ok {
		return "", nil, errors.Unsupported(call.Position.Line, "computed call target")
	}
	args := make([]ir.Expr, len(call.Args))
	for i, a := range call.Args {
		lowered, err := b.lowerExpr(a, blk, lex)
		if err != nil {
			return "", nil, err
		}
		args[i] = lowered
	}
	return calleeName.Value, args, nil
}

// lowerExpr lowers a pure expression tree, hoisting any nested CallExpr
// into a synthetic `__tN = callee(args)` CallAssign appended to blk ahead
// of the statement under construction, and substituting a NameExpr
// reference to the temp at the call site (spec.md §4.1's "function calls
// inside expressions" prohibition, satisfied here by extraction rather
// than rejection (see original's ExpressionTransformer.visit_Call).
func (b *builder) lowerExpr(e ast.Expression, blk, lex *ir.Block) (ir.Expr, error) {
	switch x := e.(type) {
	case *ast.Name:
		return &ir.NameExpr{Name: x.Value}, nil

	case *ast.IntLit:
		return &ir.ConstExpr{Value: value.Int(x.Value)}, nil

	case *ast.FloatLit:
		return &ir.ConstExpr{Value: value.Float(x.Value)}, nil

	case *ast.StringLit:
		return &ir.ConstExpr{Value: value.Str(x.Value)}, nil

	case *ast.BoolLit:
		return &ir.ConstExpr{Value: value.Bool(x.Value)}, nil

	case *ast.NoneLit:
		return &ir.ConstExpr{Value: value.None{}}, nil

	case *ast.UnaryExpr:
		operand, err := b.lowerExpr(x.Operand, blk, lex)
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpr{Op: x.Op, Operand: operand}, nil

	case *ast.BinaryExpr:
		left, err := b.lowerExpr(x.Left, blk, lex)
		if err != nil {
			return nil, err
		}
		right, err := b.lowerExpr(x.Right, blk, lex)
		if err != nil {
			return nil, err
		}
		return &ir.BinaryExpr{Op: x.Op, Left: left, Right: right}, nil

	case *ast.CompareExpr:
		operands := make([]ir.Expr, len(x.Operands))
		for i, o := range x.Operands {
			lowered, err := b.lowerExpr(o, blk, lex)
			if err != nil {
				return nil, err
			}
			operands[i] = lowered
		}
		return &ir.CompareExpr{Operands: operands, Ops: append([]string(nil), x.Ops...)}, nil

	case *ast.CallExpr:
		return b.extractCall(x, blk, lex)

	default:
		return nil, errors.Unsupported(e.Pos().Line, "expression form")
	}
}

// extractCall hoists a nested call into a synthetic temporary, appending
// the CallAssign that computes it to blk at a fresh synthetic line, and
// returns a reference to the temp in its place.
func (b *builder) extractCall(call *ast.CallExpr, blk, lex *ir.Block) (ir.Expr, error) {
	calleeName, args, err := b.lowerCallSite(call, blk, lex)
	if err != nil {
		return nil, err
	}
	temp := b.tempName()
	if err := addLocal(lex, temp); err != nil {
		return nil, err
	}
	blk.Append(ir.NewLeafStatement(&ir.Instruction{
		Line: b.nextLine(), Kind: ir.CallAssign,
		Target: temp, Callee: calleeName, Args: args,
	}))
	return &ir.NameExpr{Name: temp}, nil
}

// buildIf lowers `if test: then [else: else_]`. A missing else becomes an
// injected block holding a single synthetic pass, since spec.md's
// IR requires every If to carry a non-empty else_block.
func (b *builder) buildIf(x *ast.IfStmt, blk, lex *ir.Block) error {
	test, err := b.lowerExpr(x.Test, blk, lex)
	if err != nil {
		return err
	}

	thenBlk := &ir.Block{}
	if err := b.buildStmts(x.Then, thenBlk, lex); err != nil {
		return err
	}
	if thenBlk.Len() == 0 {
		thenBlk.Append(ir.NewLeafStatement(&ir.Instruction{Line: b.nextLine(), Kind: ir.Pass}))
	}

	elseBlk := &ir.Block{}
	if len(x.Else) == 0 {
		elseBlk.Append(ir.NewLeafStatement(&ir.Instruction{Line: b.nextLine(), Kind: ir.Pass}))
	} else if err := b.buildStmts(x.Else, elseBlk, lex); err != nil {
		return err
	}

	ifInstr := &ir.Instruction{Line: x.Position.Line, Kind: ir.IfTest, Test: test}
	blk.Append(ir.NewIfStatement(ifInstr, thenBlk, elseBlk))
	return nil
}

// buildWhile lowers `while test: body`, appending a synthetic `continue`
// when the body doesn't already end in one, spec.md requires every
// While's body to end in Continue so the CTF walk always has a clean loop
// edge back to the test.
func (b *builder) buildWhile(x *ast.WhileStmt, blk, lex *ir.Block) error {
	test, err := b.lowerExpr(x.Test, blk, lex)
	if err != nil {
		return err
	}

	body := &ir.Block{}
	if err := b.buildStmts(x.Body, body, lex); err != nil {
		return err
	}
	if body.Len() == 0 || body.At(body.Len()-1).Kind != ir.StmtLeaf || body.At(body.Len()-1).Leaf.Kind != ir.Continue {
		body.Append(ir.NewLeafStatement(&ir.Instruction{Line: b.nextLine(), Kind: ir.Continue}))
	}

	whileInstr := &ir.Instruction{Line: x.Position.Line, Kind: ir.WhileTest, Test: test}
	blk.Append(ir.NewWhileStatement(whileInstr, body))
	return nil
}

// buildDef lowers a nested function definition. Its body is its own
// lexical block (a fresh locals/nonlocals/globals scope) and gets a
// synthetic `return None` appended when the body doesn't already end in a
// Ret, the same way the original simplifier defaults a falling-off-the-end
// function to returning None.
func (b *builder) buildDef(x *ast.DefStmt, blk, lex *ir.Block) error {
	if err := addLocal(lex, x.Name); err != nil {
		return err
	}

	// Formals are recorded in defLex.Locals like every other name the body
	// binds. The stepper's CallAssign handling binds them directly, before
	// the pre-binding-to-Bottom pass, which skips already-bound names.
	defLex := ir.NewLexicalBlock()
	for _, p := range x.Params {
		defLex.Locals[p] = struct{}{}
	}
	if err := b.buildStmts(x.Body, defLex, defLex); err != nil {
		return err
	}
	if defLex.Len() == 0 || defLex.At(defLex.Len()-1).Kind != ir.StmtLeaf || defLex.At(defLex.Len()-1).Leaf.Kind != ir.Ret {
		defLex.Append(ir.NewLeafStatement(&ir.Instruction{
			Line: b.nextLine(), Kind: ir.Ret, RetExpr: &ir.ConstExpr{Value: value.None{}},
		}))
	}

	defInstr := &ir.Instruction{Line: x.Position.Line, Kind: ir.Def, Name: x.Name, Formals: append([]string(nil), x.Params...)}
	blk.Append(ir.NewDefStatement(defInstr, defLex))
	return nil
}

// buildReturn lowers `return value`. A bare `return` is rejected rather
// than defaulted to `return None`: spec.md §4.1 names ReturnWithoutValue
// as a BuildError kind to raise, diverging from original_source's Python
// simplifier, which silently rewrites it (see DESIGN.md).
func (b *builder) buildReturn(x *ast.ReturnStmt, blk, lex *ir.Block) error {
	if x.Value == nil {
		return errors.ReturnWithoutValue(x.Position.Line)
	}
	expr, err := b.lowerExpr(x.Value, blk, lex)
	if err != nil {
		return err
	}
	blk.Append(ir.NewLeafStatement(&ir.Instruction{Line: x.Position.Line, Kind: ir.Ret, RetExpr: expr}))
	return nil
}

func describeTarget(e ast.Expression) string {
	switch e.(type) {
	case *ast.Name:
		return "name"
	default:
		return fmt.Sprintf("%T", e)
	}
}

// addLocal records name as a local of lex, as long as it hasn't already
// been declared global/nonlocal there.
func addLocal(lex *ir.Block, name string) error {
	if _, ok := lex.Globals[name]; ok {
		return nil
	}
	if _, ok := lex.Nonlocals[name]; ok {
		return nil
	}
	lex.Locals[name] = struct{}{}
	return nil
}

func addGlobal(lex *ir.Block, line int, name string) error {
	if _, ok := lex.Nonlocals[name]; ok {
		return errors.ScopeConflict(line, name)
	}
	delete(lex.Locals, name)
	lex.Globals[name] = struct{}{}
	return nil
}

func addNonlocal(lex *ir.Block, line int, name string) error {
	if _, ok := lex.Globals[name]; ok {
		return errors.ScopeConflict(line, name)
	}
	delete(lex.Locals, name)
	lex.Nonlocals[name] = struct{}{}
	return nil
}
