package ctf

import "github.com/simplipy-lang/simplipy-go/internal/ir"

// enclWhile climbs the statement's enclosing-statement chain to find the
// nearest enclosing While, used by next() to resolve Break/Continue.
func enclWhile(stmt *ir.Statement) (*ir.Statement, error) {
	parentBlock := stmt.Parent
	if parentBlock.Parent == nil {
		return nil, &ErrUndefined{Func: "encl_while", Kind: "top level (no enclosing While)"}
	}
	parentStmt := parentBlock.Parent
	if parentStmt.Kind == ir.StmtWhile {
		return parentStmt, nil
	}
	return enclWhile(parentStmt)
}
