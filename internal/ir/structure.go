package ir

import "github.com/simplipy-lang/simplipy-go/internal/value"

// StructureRecord is the JSON-serializable tree produced by ProgramStructure,
// mirroring the to_dict() methods of original_source/simplipy/parse/types.py.
// It exists purely for introspection/debugging UIs; nothing in the
// interpreter core consumes it.
type StructureRecord map[string]any

// ProgramStructure renders pgm as a nested record describing every
// statement and block: type, index, line span, and (for lexical blocks)
// the locals/nonlocals/globals sets. It is the Go analogue of
// program_structure(Program) -> Record from spec.md §6.
func ProgramStructure(pgm *Program) StructureRecord {
	return blockStructure(pgm.Block)
}

func blockStructure(b *Block) StructureRecord {
	stmts := make([]StructureRecord, 0, b.Len())
	for _, s := range b.Stmts {
		stmts = append(stmts, stmtStructure(s))
	}
	rec := StructureRecord{
		"type":       "Block",
		"first_line": b.First(),
		"last_line":  b.Last(),
		"statements": stmts,
	}
	if b.Lexical {
		rec["lexical"] = true
		rec["locals"] = value.SortedKeys(b.Locals)
		rec["nonlocals"] = value.SortedKeys(b.Nonlocals)
		rec["globals"] = value.SortedKeys(b.Globals)
	} else {
		rec["lexical"] = false
	}
	return rec
}

func stmtStructure(s *Statement) StructureRecord {
	base := StructureRecord{
		"idx":        s.Idx,
		"first_line": s.First(),
		"last_line":  s.Last(),
	}
	switch s.Kind {
	case StmtIf:
		base["type"] = "If"
		base["then"] = blockStructure(s.Then)
		base["else"] = blockStructure(s.ElseBlk)
	case StmtWhile:
		base["type"] = "While"
		base["body"] = blockStructure(s.Body)
	case StmtDef:
		base["type"] = "Def"
		base["name"] = s.DefInstr.Name
		base["formals"] = s.DefInstr.Formals
		base["body"] = blockStructure(s.DefBody)
	default:
		base["type"] = s.Leaf.Kind.String()
	}
	return base
}
