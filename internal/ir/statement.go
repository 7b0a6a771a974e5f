package ir

// StmtKind tags the variant of a Statement (spec.md §3): a leaf wraps
// exactly one Instruction, a composite owns one or two nested Blocks.
type StmtKind int

const (
	// StmtLeaf covers Pass, ExprAssign, CallAssign, Ret, Break, Continue,
	// Global, and Nonlocal: every Instruction kind that isn't a
	// composite's own head instruction.
	StmtLeaf StmtKind = iota
	StmtIf
	StmtWhile
	StmtDef
)

// Statement is either a leaf wrapping one Instruction or a composite
// (If/While/Def) holding one or two nested Blocks. Every statement knows
// its index within its parent Block and a back-reference to that Block.
type Statement struct {
	Kind   StmtKind
	Idx    int
	Parent *Block

	// StmtLeaf
	Leaf *Instruction

	// StmtIf: ElseBlk is always non-empty post-simplification; the
	// simplifier injects `pass` when the user omits `else`.
	IfInstr *Instruction
	Then    *Block
	ElseBlk *Block

	// StmtWhile: Body's last statement is guaranteed Continue.
	WhileInstr *Instruction
	Body       *Block

	// StmtDef: DefBody's last statement is guaranteed Ret.
	DefInstr *Instruction
	DefBody  *Block
}

// First returns the line number of this statement's first instruction.
func (s *Statement) First() int { return s.FirstInstr().Line }

// Last returns the line number of this statement's last instruction -
// itself for a leaf, or its last nested block's Last() for a composite.
func (s *Statement) Last() int {
	switch s.Kind {
	case StmtIf:
		return s.ElseBlk.Last()
	case StmtWhile:
		return s.Body.Last()
	case StmtDef:
		return s.DefBody.Last()
	default:
		return s.Leaf.Line
	}
}

// FirstInstr returns the instruction that begins this statement: the
// wrapped instruction for a leaf, or the composite's own head instruction
// (IfTest/WhileTest/Def) for a composite.
func (s *Statement) FirstInstr() *Instruction {
	switch s.Kind {
	case StmtIf:
		return s.IfInstr
	case StmtWhile:
		return s.WhileInstr
	case StmtDef:
		return s.DefInstr
	default:
		return s.Leaf
	}
}

// NewLeafStatement wraps instr in a leaf Statement, wiring instr's back
// reference. idx/parent are left zero-valued until Block.Append sets them.
func NewLeafStatement(instr *Instruction) *Statement {
	stmt := &Statement{Kind: StmtLeaf, Leaf: instr}
	instr.Parent = stmt
	return stmt
}

// NewIfStatement builds a StmtIf wiring ifInstr, then, and elseBlk's
// back-references to the new statement in both directions: the
// Instruction.Parent / Block.Parent pointers the CTF walk and stepper
// climb to find enclosing statements (spec.md §9: "back-references are
// write-once after build").
func NewIfStatement(ifInstr *Instruction, then, elseBlk *Block) *Statement {
	stmt := &Statement{Kind: StmtIf, IfInstr: ifInstr, Then: then, ElseBlk: elseBlk}
	ifInstr.Parent = stmt
	then.Parent = stmt
	elseBlk.Parent = stmt
	return stmt
}

// NewWhileStatement builds a StmtWhile wiring whileInstr and body's
// back-references.
func NewWhileStatement(whileInstr *Instruction, body *Block) *Statement {
	stmt := &Statement{Kind: StmtWhile, WhileInstr: whileInstr, Body: body}
	whileInstr.Parent = stmt
	body.Parent = stmt
	return stmt
}

// NewDefStatement builds a StmtDef wiring defInstr and body's
// back-references.
func NewDefStatement(defInstr *Instruction, body *Block) *Statement {
	stmt := &Statement{Kind: StmtDef, DefInstr: defInstr, DefBody: body}
	defInstr.Parent = stmt
	body.Parent = stmt
	return stmt
}
