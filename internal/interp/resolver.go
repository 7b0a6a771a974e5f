package interp

import (
	"github.com/simplipy-lang/simplipy-go/internal/env"
	"github.com/simplipy-lang/simplipy-go/internal/errors"
	"github.com/simplipy-lang/simplipy-go/internal/ir"
	"github.com/simplipy-lang/simplipy-go/internal/value"
)

// Resolver implements the scope rules of spec.md §4.7 against a running
// State: given the instruction currently executing and the top frame's
// env id, it finds the right environment map for a name, climbing the
// parent chain and respecting global/nonlocal declarations.
type Resolver struct {
	envs    *env.Store
	parents *env.ParentChain
	instr   *ir.Instruction
	envID   int
}

// NewResolver builds a resolver scoped to one step: the instruction about
// to execute and the env id of the top continuation frame.
func NewResolver(envs *env.Store, parents *env.ParentChain, instr *ir.Instruction, envID int) *Resolver {
	return &Resolver{envs: envs, parents: parents, instr: instr, envID: envID}
}

// enclosingLexicalBlock climbs stmt.Parent -> block.Parent until it finds
// the nearest lexical block (spec.md §4.7).
func enclosingLexicalBlock(stmt *ir.Statement) *ir.Block {
	blk := stmt.Parent
	for !blk.Lexical {
		blk = blk.Parent.Parent
	}
	return blk
}

// LookupEnv returns the environment map that owns name for the current
// frame, per the scope-resolution table in spec.md §4.7.
func (r *Resolver) LookupEnv(name string) (map[string]value.Value, error) {
	blk := enclosingLexicalBlock(r.instr.Parent)

	if blk.Parent == nil {
		return r.envs.Map(env.GlobalEnvID), nil
	}

	_, isGlobal := blk.Globals[name]
	_, isNonlocal := blk.Nonlocals[name]
	if isGlobal && isNonlocal {
		return nil, errors.ScopeConflict(r.instr.Line, name)
	}

	if isGlobal {
		return r.envs.Map(env.GlobalEnvID), nil
	}

	chain := r.parents.GetChain(r.envID)

	if isNonlocal {
		for _, id := range chain[1:] {
			if r.envs.Has(id, name) {
				return r.envs.Map(id), nil
			}
		}
		return nil, errors.UnboundName(r.instr.Line, name)
	}

	for _, id := range chain {
		if r.envs.Has(id, name) {
			return r.envs.Map(id), nil
		}
	}
	return nil, errors.UnboundName(r.instr.Line, name)
}

// LookupValue implements eval.Resolver: lookup_val(n) = lookup_env(n)[n],
// failing UnboundLocal if the bound value is the Bottom sentinel.
func (r *Resolver) LookupValue(name string) (value.Value, error) {
	m, err := r.LookupEnv(name)
	if err != nil {
		return nil, err
	}
	v := m[name]
	if _, isBottom := v.(value.Bottom); isBottom {
		return nil, errors.UnboundLocal(r.instr.Line, name)
	}
	return v, nil
}
