// Package interp implements the small-step state machine of spec.md §4.6,
// §4.7, §4.8, §4.9: the continuation stack, the name resolver, the
// stepper, and the State façade that bundles them with the CTF table and
// instruction index. Grounded on original_source/simplipy/semantics/
// state.py's Context/Continuation classes and spec.md's scope-resolution
// table, in the teacher's style of small structs with explicit mutation
// methods rather than channels or goroutines. The stepper is
// single-threaded and synchronous by design (spec.md §5).
package interp

// Context is one continuation frame: the line currently executing in env
// EnvID. The top frame's Line is rewritten in place by every non-call,
// non-return step (spec.md §4.6).
type Context struct {
	Line  int `json:"lineno"`
	EnvID int `json:"env_id"`
}

// Continuation is the LIFO call stack. It is never empty while the
// interpreter is alive (spec.md §4.6's invariant).
type Continuation struct {
	stack []Context
}

// NewContinuation seeds the stack with a single frame at startLine in the
// global environment (spec.md §6's create: `[(first_top_level_line, 0)]`).
func NewContinuation(startLine int) *Continuation {
	return &Continuation{stack: []Context{{Line: startLine, EnvID: 0}}}
}

// Top returns a pointer to the top frame for in-place mutation.
func (c *Continuation) Top() *Context {
	return &c.stack[len(c.stack)-1]
}

// Push appends a new frame.
func (c *Continuation) Push(ctx Context) {
	c.stack = append(c.stack, ctx)
}

// Pop removes and returns the top frame.
func (c *Continuation) Pop() Context {
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return top
}

// Below returns a pointer to the frame one below the top, for Ret to
// validate and mutate the caller frame without popping first.
func (c *Continuation) Below() *Context {
	return &c.stack[len(c.stack)-2]
}

// Len reports the current call depth.
func (c *Continuation) Len() int {
	return len(c.stack)
}

// Frames returns the stack bottom to top, for the wire-level snapshot's
// `k` field (spec.md §6).
func (c *Continuation) Frames() []Context {
	out := make([]Context, len(c.stack))
	copy(out, c.stack)
	return out
}
