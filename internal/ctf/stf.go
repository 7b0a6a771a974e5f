// Package ctf builds the control-transfer function tables (spec.md §4.2):
// next/true/false maps from instruction line to successor instruction line,
// computed once per program from a single tree walk. Grounded line-for-line
// on original_source/simplipy/ctf/{ctf,stf,helper}.py.
package ctf

import (
	"fmt"

	"github.com/simplipy-lang/simplipy-go/internal/ir"
)

// ErrUndefined is returned when a statement-transfer function is asked for
// a statement it has no successor definition for (e.g. next(Ret)). Callers
// that hit this have a build-time bug in the simplifier or CTF walk, not a
// runtime condition a caller can recover from.
type ErrUndefined struct {
	Func string
	Kind string
}

func (e *ErrUndefined) Error() string {
	return fmt.Sprintf("ctf: %s control transfer function not defined for %s", e.Func, e.Kind)
}

func isLeaf(stmt *ir.Statement, kind ir.InstrKind) bool {
	return stmt.Kind == ir.StmtLeaf && stmt.Leaf.Kind == kind
}

// next returns the statement entered after stmt completes (spec.md §4.2).
func next(stmt *ir.Statement) (*ir.Statement, error) {
	if isLeaf(stmt, ir.Continue) {
		return enclWhile(stmt)
	}
	if isLeaf(stmt, ir.Break) {
		w, err := enclWhile(stmt)
		if err != nil {
			return nil, err
		}
		return next(w)
	}
	if isLeaf(stmt, ir.Ret) {
		return nil, &ErrUndefined{Func: "next", Kind: "Ret"}
	}

	block, idx := stmt.Parent, stmt.Idx
	if idx == block.Len()-1 {
		if block.Parent == nil {
			// Last top-level statement: advance onto the sentinel line one
			// past the module's last instruction, which Build makes the
			// fixed point.
			return ir.NewLeafStatement(&ir.Instruction{Line: block.Last() + 1, Kind: ir.Pass}), nil
		}
		return next(block.Parent)
	}
	return block.At(idx + 1), nil
}

// true returns the first statement of the taken branch for If/While.
func true_(stmt *ir.Statement) (*ir.Statement, error) {
	switch stmt.Kind {
	case ir.StmtWhile:
		return stmt.Body.At(0), nil
	case ir.StmtIf:
		return stmt.Then.At(0), nil
	default:
		return nil, &ErrUndefined{Func: "true", Kind: stmt.FirstInstr().Kind.String()}
	}
}

// false returns the not-taken successor for If/While.
func false_(stmt *ir.Statement) (*ir.Statement, error) {
	switch stmt.Kind {
	case ir.StmtWhile:
		return next(stmt)
	case ir.StmtIf:
		return stmt.ElseBlk.At(0), nil
	default:
		return nil, &ErrUndefined{Func: "false", Kind: stmt.FirstInstr().Kind.String()}
	}
}
