package ast

import "github.com/simplipy-lang/simplipy-go/internal/lexer"

// PassStmt is a no-op statement.
type PassStmt struct{ Position lexer.Position }

func (s *PassStmt) statementNode()     {}
func (s *PassStmt) Pos() lexer.Position { return s.Position }

// AssignStmt is `target = value`. The simplifier rejects non-Name targets
// and turns a Call-valued RHS into a CallAssign instruction; any other RHS
// becomes an ExprAssign instruction.
type AssignStmt struct {
	Target   Expression
	Value    Expression
	Position lexer.Position
}

func (s *AssignStmt) statementNode()     {}
func (s *AssignStmt) Pos() lexer.Position { return s.Position }

// AugAssignStmt is `target OP= value` (e.g. `x += 1`). Always rejected by
// the simplifier (not part of the subset, spec.md §4.1).
type AugAssignStmt struct {
	Target   Expression
	Op       string
	Value    Expression
	Position lexer.Position
}

func (s *AugAssignStmt) statementNode()     {}
func (s *AugAssignStmt) Pos() lexer.Position { return s.Position }

// IfStmt is `if test: then [else: else]`. Else may be nil; the simplifier
// injects a block holding a single pass (spec.md mandates a non-empty else
// in the IR).
type IfStmt struct {
	Test     Expression
	Then     []Statement
	Else     []Statement
	Position lexer.Position
}

func (s *IfStmt) statementNode()     {}
func (s *IfStmt) Pos() lexer.Position { return s.Position }

// WhileStmt is `while test: body`. Body need not end in `continue`; the
// simplifier appends one.
type WhileStmt struct {
	Test     Expression
	Body     []Statement
	Position lexer.Position
}

func (s *WhileStmt) statementNode()     {}
func (s *WhileStmt) Pos() lexer.Position { return s.Position }

// DefStmt is a nested function definition. Body need not end in `return` -
// the simplifier appends `return None`.
type DefStmt struct {
	Name     string
	Params   []string
	Body     []Statement
	Position lexer.Position
}

func (s *DefStmt) statementNode()     {}
func (s *DefStmt) Pos() lexer.Position { return s.Position }

// ReturnStmt is `return [value]`. Value may be nil; the simplifier
// rejects a nil value with a ReturnWithoutValue BuildError (see
// internal/simplify).
type ReturnStmt struct {
	Value    Expression
	Position lexer.Position
}

func (s *ReturnStmt) statementNode()     {}
func (s *ReturnStmt) Pos() lexer.Position { return s.Position }

// BreakStmt is `break`.
type BreakStmt struct{ Position lexer.Position }

func (s *BreakStmt) statementNode()     {}
func (s *BreakStmt) Pos() lexer.Position { return s.Position }

// ContinueStmt is `continue`.
type ContinueStmt struct{ Position lexer.Position }

func (s *ContinueStmt) statementNode()     {}
func (s *ContinueStmt) Pos() lexer.Position { return s.Position }

// GlobalStmt is `global a, b, ...`.
type GlobalStmt struct {
	Names    []string
	Position lexer.Position
}

func (s *GlobalStmt) statementNode()     {}
func (s *GlobalStmt) Pos() lexer.Position { return s.Position }

// NonlocalStmt is `nonlocal a, b, ...`.
type NonlocalStmt struct {
	Names    []string
	Position lexer.Position
}

func (s *NonlocalStmt) statementNode()     {}
func (s *NonlocalStmt) Pos() lexer.Position { return s.Position }

// ExprStmt is a bare expression used as a statement, e.g. a call whose
// result is discarded: `f(x)`. The simplifier lowers a bare CallExpr into a
// CallAssign against a synthetic discard temporary; any other bare
// expression is rejected (spec.md's instruction set has no side-effect-free
// standalone-expression instruction).
type ExprStmt struct {
	Value    Expression
	Position lexer.Position
}

func (s *ExprStmt) statementNode()     {}
func (s *ExprStmt) Pos() lexer.Position { return s.Position }

// ForStmt, ImportStmt, and ClassStmt are recognized by the parser purely so
// the simplifier has a concrete node to reject with a BuildError, none of
// them lower to anything in internal/ir (spec.md §4.1 names all three as
// unsupported surface forms).

// ForStmt is `for target in iter: body`.
type ForStmt struct {
	Target   Expression
	Iter     Expression
	Body     []Statement
	Position lexer.Position
}

func (s *ForStmt) statementNode()     {}
func (s *ForStmt) Pos() lexer.Position { return s.Position }

// ImportStmt is `import name`.
type ImportStmt struct {
	Name     string
	Position lexer.Position
}

func (s *ImportStmt) statementNode()     {}
func (s *ImportStmt) Pos() lexer.Position { return s.Position }

// ClassStmt is `class Name: body`.
type ClassStmt struct {
	Name     string
	Body     []Statement
	Position lexer.Position
}

func (s *ClassStmt) statementNode()     {}
func (s *ClassStmt) Pos() lexer.Position { return s.Position }
