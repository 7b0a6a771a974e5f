package ir

import "github.com/simplipy-lang/simplipy-go/internal/value"

// Expr is the closed, side-effect-free expression model of spec.md §3.
// By invariant no Expr tree contains a Call node: internal/simplify has
// lifted every call into a CallAssign instruction before the IR is built.
type Expr interface {
	exprNode()
}

// ConstExpr is a literal constant.
type ConstExpr struct {
	Value value.Value
}

func (*ConstExpr) exprNode() {}

// NameExpr is a reference to a variable, resolved at evaluation time
// through the scope rules of spec.md §4.7.
type NameExpr struct {
	Name string
}

func (*NameExpr) exprNode() {}

// UnaryExpr is a prefix operator: + - not ~.
type UnaryExpr struct {
	Op      string
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// BinaryExpr is a two-operand operator.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// CompareExpr is a chained comparison x0 OP0 x1 OP1 x2 ... evaluated
// left-to-right with short-circuit on the first failing pair (spec.md §4.3).
type CompareExpr struct {
	Operands []Expr
	Ops      []string
}

func (*CompareExpr) exprNode() {}
