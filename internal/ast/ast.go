// Package ast defines the generic surface tree produced by internal/parser.
//
// This is deliberately looser than internal/ir: an If may have no Else, a
// While's body need not end in Continue, a Def's body need not end in
// Return, and a Call may appear nested anywhere inside an expression.
// internal/simplify is the collaborator that tightens all of this into the
// restricted shape internal/ir requires. See spec.md §4.1 for the exact
// contract and SPEC_FULL.md §3 for why this repo implements it at all.
package ast

import "github.com/simplipy-lang/simplipy-go/internal/lexer"

// Node is the base interface every surface tree node implements.
type Node interface {
	Pos() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Module is the root of a parsed program: a flat top-level statement list.
type Module struct {
	Body []Statement
}

func (m *Module) Pos() lexer.Position {
	if len(m.Body) > 0 {
		return m.Body[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}
