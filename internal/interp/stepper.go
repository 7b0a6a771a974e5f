package interp

import (
	"github.com/simplipy-lang/simplipy-go/internal/ctf"
	"github.com/simplipy-lang/simplipy-go/internal/env"
	"github.com/simplipy-lang/simplipy-go/internal/errors"
	"github.com/simplipy-lang/simplipy-go/internal/eval"
	"github.com/simplipy-lang/simplipy-go/internal/ir"
	"github.com/simplipy-lang/simplipy-go/internal/lexer"
	"github.com/simplipy-lang/simplipy-go/internal/value"
)

// Machine is the running interpreter for one program: the environment
// store, parent chain, continuation stack, CTF tables, and instruction
// index bundled together (spec.md §4.8-4.9). It has no State-façade
// snapshot/session concerns of its own; see state.go for that wrapper.
type Machine struct {
	Program    *ir.Program
	Envs       *env.Store
	Parents    *env.ParentChain
	Cont       *Continuation
	CTFs       *ctf.Table
	InstrIndex map[int]*ir.Instruction
}

// NewMachine builds the CTF table and instruction index once from pgm and
// initializes the continuation at the module's first line in env 0
// (spec.md §6: create(program) -> State).
func NewMachine(pgm *ir.Program) (*Machine, error) {
	table, err := ctf.Build(pgm)
	if err != nil {
		return nil, err
	}
	return &Machine{
		Program:    pgm,
		Envs:       env.NewStore(),
		Parents:    env.NewParentChain(),
		Cont:       NewContinuation(pgm.Block.First()),
		CTFs:       table,
		InstrIndex: ir.BuildInstrIndex(pgm),
	}, nil
}

// IsFinal reports whether the top frame's line is a CTF fixed point
// (spec.md §4.9): pc is in next and next[pc] == pc.
func (m *Machine) IsFinal() bool {
	pc := m.Cont.Top().Line
	succ, ok := m.CTFs.Next[pc]
	return ok && succ == pc
}

func (m *Machine) applyNext(line int) error {
	succ, ok := m.CTFs.Next[line]
	if !ok {
		return errors.CTFTableMiss("next", line)
	}
	m.Cont.Top().Line = succ
	return nil
}

func (m *Machine) applyTest(b bool, line int) error {
	table := m.CTFs.True
	which := "true"
	if !b {
		table = m.CTFs.False
		which = "false"
	}
	succ, ok := table[line]
	if !ok {
		return errors.CTFTableMiss(which, line)
	}
	m.Cont.Top().Line = succ
	return nil
}

// Step advances the machine by exactly one instruction (spec.md §4.8).
// On error the machine is left unchanged: every fallible sub-operation
// (lookup, eval, arity check) runs to completion before any mutation is
// applied.
func (m *Machine) Step() error {
	if m.Cont.Len() == 0 {
		return errors.EmptyContinuation()
	}
	top := *m.Cont.Top()
	instr, ok := m.InstrIndex[top.Line]
	if !ok {
		return errors.InstructionIndexMiss(top.Line)
	}

	resolver := NewResolver(m.Envs, m.Parents, instr, top.EnvID)

	switch instr.Kind {
	case ir.Pass, ir.Break, ir.Continue, ir.Global, ir.Nonlocal:
		return m.applyNext(top.Line)

	case ir.ExprAssign:
		v, err := eval.Eval(instr.Expr, top.Line, resolver)
		if err != nil {
			return err
		}
		dest, err := resolver.LookupEnv(instr.Target)
		if err != nil {
			return err
		}
		succ, ok := m.CTFs.Next[top.Line]
		if !ok {
			return errors.CTFTableMiss("next", top.Line)
		}
		dest[instr.Target] = v
		m.Cont.Top().Line = succ
		return nil

	case ir.IfTest, ir.WhileTest:
		v, err := eval.Eval(instr.Test, top.Line, resolver)
		if err != nil {
			return err
		}
		return m.applyTest(eval.Truthy(v), top.Line)

	case ir.Def:
		closure := value.Closure{
			EntryLine:   instr.Parent.DefBody.First(),
			Formals:     instr.Formals,
			ParentEnvID: top.EnvID,
		}
		dest, err := resolver.LookupEnv(instr.Name)
		if err != nil {
			return err
		}
		succ, ok := m.CTFs.Next[top.Line]
		if !ok {
			return errors.CTFTableMiss("next", top.Line)
		}
		dest[instr.Name] = closure
		m.Cont.Top().Line = succ
		return nil

	case ir.CallAssign:
		return m.stepCallAssign(instr, top, resolver)

	case ir.Ret:
		return m.stepRet(instr, top, resolver)
	}

	return errors.Unsupported(top.Line, instr.Kind.String())
}

func (m *Machine) stepCallAssign(instr *ir.Instruction, top Context, resolver *Resolver) error {
	calleeVal, err := resolver.LookupValue(instr.Callee)
	if err != nil {
		return err
	}
	closure, ok := calleeVal.(value.Closure)
	if !ok {
		return errors.NotCallable(top.Line, instr.Callee)
	}
	if len(instr.Args) != len(closure.Formals) {
		return errors.ArityMismatch(top.Line, instr.Callee, len(closure.Formals), len(instr.Args))
	}

	argVals := make([]value.Value, len(instr.Args))
	for i, a := range instr.Args {
		v, err := eval.Eval(a, top.Line, resolver)
		if err != nil {
			return err
		}
		argVals[i] = v
	}

	newID := m.Envs.NewEnv()
	for i, formal := range closure.Formals {
		m.Envs.Bind(newID, formal, argVals[i])
	}

	// Pre-bind every local of the function body that isn't already bound
	// (the formals) to Bottom, excluding names declared nonlocal/global.
	entryStmt := m.InstrIndex[closure.EntryLine].Parent
	defBlock := enclosingDefBlock(entryStmt)
	for name := range defBlock.Locals {
		if !m.Envs.Has(newID, name) {
			m.Envs.Bind(newID, name, value.Bottom{})
		}
	}

	m.Parents.AddEdge(newID, closure.ParentEnvID)
	m.Cont.Push(Context{Line: closure.EntryLine, EnvID: newID})
	return nil
}

// StackTrace renders the current continuation as a call-stack trace
// (spec.md §4.6's continuation doubles as the call stack a host shows on
// CallError/LookupError). The bottom frame is named "<module>"; every
// frame above it is named after the Callee of the CallAssign instruction
// that pushed it.
func (m *Machine) StackTrace() errors.StackTrace {
	frames := m.Cont.Frames()
	trace := make(errors.StackTrace, len(frames))
	for i, f := range frames {
		name := "<module>"
		if i > 0 {
			if caller, ok := m.InstrIndex[frames[i-1].Line]; ok && caller.Kind == ir.CallAssign {
				name = caller.Callee
			}
		}
		trace[i] = errors.NewStackFrame(name, "", &lexer.Position{Line: f.Line})
	}
	return trace
}

// enclosingDefBlock returns the lexical block that entryStmt (the first
// statement of a function body) belongs to.
func enclosingDefBlock(entryStmt *ir.Statement) *ir.Block {
	blk := entryStmt.Parent
	for !blk.Lexical {
		blk = blk.Parent.Parent
	}
	return blk
}

func (m *Machine) stepRet(instr *ir.Instruction, top Context, resolver *Resolver) error {
	v, err := eval.Eval(instr.RetExpr, top.Line, resolver)
	if err != nil {
		return err
	}

	// Validate everything about the caller frame before mutating anything,
	// so a corrupted-IR failure here leaves the machine untouched.
	below := m.Cont.Below()
	caller, ok := m.InstrIndex[below.Line]
	if !ok || caller.Kind != ir.CallAssign {
		return errors.InstructionIndexMiss(below.Line)
	}
	callerResolver := NewResolver(m.Envs, m.Parents, caller, below.EnvID)
	dest, err := callerResolver.LookupEnv(caller.Target)
	if err != nil {
		return err
	}
	succ, ok := m.CTFs.Next[below.Line]
	if !ok {
		return errors.CTFTableMiss("next", below.Line)
	}

	m.Cont.Pop()
	dest[caller.Target] = v
	m.Cont.Top().Line = succ
	return nil
}
