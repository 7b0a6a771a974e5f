package ir

// Block is an ordered sequence of statements with a back-reference to its
// parent statement (nil at the top level). A Block is lexical iff it is
// the module's top-level block or a function body, the only blocks that
// carry locals/nonlocals/globals and participate in closure capture
// (spec.md §3).
type Block struct {
	Stmts   []*Statement
	Parent  *Statement // nil for the top-level block

	Lexical   bool
	Locals    map[string]struct{}
	Nonlocals map[string]struct{}
	Globals   map[string]struct{}
}

// NewLexicalBlock creates an empty lexical Block ready to accumulate
// locals/nonlocals/globals during IR construction.
func NewLexicalBlock() *Block {
	return &Block{
		Lexical:   true,
		Locals:    map[string]struct{}{},
		Nonlocals: map[string]struct{}{},
		Globals:   map[string]struct{}{},
	}
}

// Len returns the number of statements in the block.
func (b *Block) Len() int { return len(b.Stmts) }

// At returns the statement at index i.
func (b *Block) At(i int) *Statement { return b.Stmts[i] }

// First returns the line number of the block's first statement.
func (b *Block) First() int { return b.Stmts[0].First() }

// Last returns the line number of the block's last statement.
func (b *Block) Last() int { return b.Stmts[len(b.Stmts)-1].Last() }

// Append adds stmt to the block, wiring its Idx and Parent back-reference.
func (b *Block) Append(stmt *Statement) {
	stmt.Idx = len(b.Stmts)
	stmt.Parent = b
	b.Stmts = append(b.Stmts, stmt)
}
