// Package value defines the runtime value model: the scalars the subset's
// expressions evaluate to, plus the two values the surface language cannot
// produce directly (Closure and Bottom) that only the interpreter's
// stepper constructs (spec.md §3 "Value").
//
// Grounded on the teacher's internal/interp/runtime primitive values
// (one small concrete Go type per kind behind a common interface, e.g.
// IntegerValue/FloatValue/StringValue), adapted from DWScript's ten-odd
// primitive kinds down to the subset's much smaller closed set.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is any runtime value the interpreter stores in an environment or
// produces from evaluating an expression.
type Value interface {
	// Kind names the runtime type, used in error messages and Display.
	Kind() string
	// String renders the value for debug/CLI output.
	String() string
	// Display renders the value for the wire-level snapshot schema
	// (spec.md §6): JSON-encodable primitives, "⊥" for Bottom, and a
	// structured object for Closure.
	Display() any
}

// Int is an integer value.
type Int int64

func (Int) Kind() string     { return "int" }
func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Int) Display() any   { return int64(v) }

// Float is a floating-point value.
type Float float64

func (Float) Kind() string     { return "float" }
func (v Float) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Float) Display() any   { return float64(v) }

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() string { return "bool" }
func (v Bool) String() string {
	if v {
		return "True"
	}
	return "False"
}
func (v Bool) Display() any { return bool(v) }

// Str is a string value.
type Str string

func (Str) Kind() string     { return "str" }
func (v Str) String() string { return string(v) }
func (v Str) Display() any   { return string(v) }

// None is the sole value of the None type.
type None struct{}

func (None) Kind() string   { return "NoneType" }
func (None) String() string { return "None" }
func (None) Display() any   { return nil }

// Closure is produced by executing a Def instruction (spec.md §4.8). Two
// closures are equal iff all three fields match structurally.
type Closure struct {
	EntryLine   int
	Formals     []string
	ParentEnvID int
}

func (Closure) Kind() string { return "closure" }
func (c Closure) String() string {
	return fmt.Sprintf("<closure entry=%d formals=(%s) parent_env=%d>",
		c.EntryLine, strings.Join(c.Formals, ", "), c.ParentEnvID)
}
func (c Closure) Display() any {
	return map[string]any{
		"lineno":      c.EntryLine,
		"formals":     append([]string(nil), c.Formals...),
		"par_env_id":  c.ParentEnvID,
	}
}

// Equal reports structural equality of two closures.
func (c Closure) Equal(other Closure) bool {
	if c.EntryLine != other.EntryLine || c.ParentEnvID != other.ParentEnvID {
		return false
	}
	if len(c.Formals) != len(other.Formals) {
		return false
	}
	for i := range c.Formals {
		if c.Formals[i] != other.Formals[i] {
			return false
		}
	}
	return true
}

// Bottom is the sentinel bound to a declared-but-unassigned local (spec.md
// §3). Reading it is a LookupError (UnboundLocal).
type Bottom struct{}

func (Bottom) Kind() string   { return "bottom" }
func (Bottom) String() string { return "⊥" }
func (Bottom) Display() any   { return "⊥" }

// SortedKeys is a small shared helper for serializing maps of variable
// names deterministically (spec.md's snapshot schema and program_structure
// both need sorted name lists).
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
