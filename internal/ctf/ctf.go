package ctf

import "github.com/simplipy-lang/simplipy-go/internal/ir"

// Table holds the three CTF maps, keyed by instruction line number
// (spec.md §4.2, §6's wire schema field `ctfs`).
type Table struct {
	Next  map[int]int
	True  map[int]int
	False map[int]int
}

func newTable() *Table {
	return &Table{
		Next:  map[int]int{},
		True:  map[int]int{},
		False: map[int]int{},
	}
}

// construct lifts stf (one of next/true_/false_ in stf.go) to instruction
// granularity: CTF.x(instr) = STF.x(instr.parent_stmt).first_instr().
func construct(stf func(*ir.Statement) (*ir.Statement, error), instr *ir.Instruction) (*ir.Instruction, error) {
	stmt, err := stf(instr.Parent)
	if err != nil {
		return nil, err
	}
	return stmt.FirstInstr(), nil
}

// Build walks pgm once and returns its fully populated CTF table
// (spec.md §4.2's walk rules).
func Build(pgm *ir.Program) (*Table, error) {
	table := newTable()

	var visit func(blk *ir.Block) error
	visit = func(blk *ir.Block) error {
		for _, stmt := range blk.Stmts {
			switch stmt.Kind {
			case ir.StmtIf:
				t, err := construct(true_, stmt.IfInstr)
				if err != nil {
					return err
				}
				f, err := construct(false_, stmt.IfInstr)
				if err != nil {
					return err
				}
				table.True[stmt.First()] = t.Line
				table.False[stmt.First()] = f.Line
				if err := visit(stmt.Then); err != nil {
					return err
				}
				if err := visit(stmt.ElseBlk); err != nil {
					return err
				}
			case ir.StmtWhile:
				t, err := construct(true_, stmt.WhileInstr)
				if err != nil {
					return err
				}
				f, err := construct(false_, stmt.WhileInstr)
				if err != nil {
					return err
				}
				table.True[stmt.First()] = t.Line
				table.False[stmt.First()] = f.Line
				if err := visit(stmt.Body); err != nil {
					return err
				}
			case ir.StmtDef:
				n, err := construct(next, stmt.DefInstr)
				if err != nil {
					return err
				}
				table.Next[stmt.First()] = n.Line
				if err := visit(stmt.DefBody); err != nil {
					return err
				}
			default:
				if stmt.Leaf.Kind == ir.Ret {
					continue
				}
				n, err := construct(next, stmt.FirstInstr())
				if err != nil {
					return err
				}
				table.Next[stmt.First()] = n.Line
			}
		}
		return nil
	}

	if err := visit(pgm.Block); err != nil {
		return nil, err
	}

	// Reached the end of execution: a fixed point one line past the
	// module's last instruction.
	last := pgm.Block.Last()
	table.Next[last+1] = last + 1

	return table, nil
}

// AsMap renders the table in the wire schema's nested-map shape.
func (t *Table) AsMap() map[string]map[int]int {
	return map[string]map[int]int{
		"next":  t.Next,
		"true":  t.True,
		"false": t.False,
	}
}
