package ast

import "github.com/simplipy-lang/simplipy-go/internal/lexer"

// Name is a reference to a variable, function, or formal parameter.
type Name struct {
	Value    string
	Position lexer.Position
}

func (n *Name) expressionNode()      {}
func (n *Name) Pos() lexer.Position  { return n.Position }

// IntLit is an integer literal.
type IntLit struct {
	Value    int64
	Position lexer.Position
}

func (l *IntLit) expressionNode()     {}
func (l *IntLit) Pos() lexer.Position { return l.Position }

// FloatLit is a floating-point literal.
type FloatLit struct {
	Value    float64
	Position lexer.Position
}

func (l *FloatLit) expressionNode()     {}
func (l *FloatLit) Pos() lexer.Position { return l.Position }

// StringLit is a string literal.
type StringLit struct {
	Value    string
	Position lexer.Position
}

func (l *StringLit) expressionNode()     {}
func (l *StringLit) Pos() lexer.Position { return l.Position }

// BoolLit is a boolean literal (True / False).
type BoolLit struct {
	Value    bool
	Position lexer.Position
}

func (l *BoolLit) expressionNode()     {}
func (l *BoolLit) Pos() lexer.Position { return l.Position }

// NoneLit is the None literal.
type NoneLit struct {
	Position lexer.Position
}

func (l *NoneLit) expressionNode()     {}
func (l *NoneLit) Pos() lexer.Position { return l.Position }

// UnaryExpr is a prefix unary expression: + - not ~.
type UnaryExpr struct {
	Op       string
	Operand  Expression
	Position lexer.Position
}

func (u *UnaryExpr) expressionNode()     {}
func (u *UnaryExpr) Pos() lexer.Position { return u.Position }

// BinaryExpr is a two-operand expression.
type BinaryExpr struct {
	Op       string
	Left     Expression
	Right    Expression
	Position lexer.Position
}

func (b *BinaryExpr) expressionNode()     {}
func (b *BinaryExpr) Pos() lexer.Position { return b.Position }

// CompareExpr is a chained comparison x0 OP0 x1 OP1 x2 ...
type CompareExpr struct {
	Operands []Expression
	Ops      []string
	Position lexer.Position
}

func (c *CompareExpr) expressionNode()     {}
func (c *CompareExpr) Pos() lexer.Position { return c.Position }

// CallExpr is a function call. The surface grammar allows it anywhere an
// expression is allowed; internal/simplify hoists every occurrence but a
// bare assignment RHS or a bare call statement into a synthetic temporary
// (see SPEC_FULL.md §3).
type CallExpr struct {
	Callee   Expression
	Args     []Expression
	Position lexer.Position
}

func (c *CallExpr) expressionNode()     {}
func (c *CallExpr) Pos() lexer.Position { return c.Position }
