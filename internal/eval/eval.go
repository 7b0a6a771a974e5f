// Package eval implements the pure expression evaluator of spec.md §4.3:
// eval(expr, resolver) -> value, with no side effects and no dependency on
// the continuation or instruction index. Division/modulo semantics mirror
// original_source's Python subset (true division always float, floor
// division, sign-of-divisor modulo); the taxonomy of failures is
// internal/errors' EvalError family.
package eval

import (
	"math"
	"strings"

	"github.com/simplipy-lang/simplipy-go/internal/errors"
	"github.com/simplipy-lang/simplipy-go/internal/ir"
	"github.com/simplipy-lang/simplipy-go/internal/value"
)

// Resolver looks up a name's value for the current frame, respecting
// global/nonlocal scope rules (spec.md §4.7). It is satisfied by the
// interpreter's name resolver; eval itself never inspects environments
// directly.
type Resolver interface {
	LookupValue(name string) (value.Value, error)
}

// Eval evaluates expr against resolver, returning a Value or a typed
// EvalError/LookupError. line is attached to any error produced for
// debugger display.
func Eval(expr ir.Expr, line int, r Resolver) (value.Value, error) {
	switch e := expr.(type) {
	case *ir.ConstExpr:
		return e.Value, nil

	case *ir.NameExpr:
		return r.LookupValue(e.Name)

	case *ir.UnaryExpr:
		operand, err := Eval(e.Operand, line, r)
		if err != nil {
			return nil, err
		}
		return evalUnary(e.Op, operand, line)

	case *ir.BinaryExpr:
		if e.Op == "and" || e.Op == "or" {
			return evalLogical(e.Op, e.Left, e.Right, line, r)
		}
		left, err := Eval(e.Left, line, r)
		if err != nil {
			return nil, err
		}
		right, err := Eval(e.Right, line, r)
		if err != nil {
			return nil, err
		}
		return evalBinary(e.Op, left, right, line)

	case *ir.CompareExpr:
		return evalCompare(e, line, r)

	default:
		return nil, errors.UnsupportedOperator(line, "?", "expression")
	}
}

// Truthy implements spec.md §4.8's truthiness rule: zero/empty/null/False
// is false, everything else true.
func Truthy(v value.Value) bool {
	switch x := v.(type) {
	case value.Int:
		return x != 0
	case value.Float:
		return x != 0
	case value.Bool:
		return bool(x)
	case value.Str:
		return x != ""
	case value.None:
		return false
	default:
		return true
	}
}

// evalLogical implements Python-style `and`/`or`: short-circuit on the
// left operand and pass through whichever operand decided the result,
// rather than collapsing to a Bool (spec.md's surface grammar carries
// these as keywords alongside `not`; the core's binary-operator list
// covers arithmetic/bitwise only, so this sits beside evalBinary instead
// of inside its switch).
func evalLogical(op string, leftExpr, rightExpr ir.Expr, line int, r Resolver) (value.Value, error) {
	left, err := Eval(leftExpr, line, r)
	if err != nil {
		return nil, err
	}
	if op == "and" && !Truthy(left) {
		return left, nil
	}
	if op == "or" && Truthy(left) {
		return left, nil
	}
	return Eval(rightExpr, line, r)
}

func evalUnary(op string, v value.Value, line int) (value.Value, error) {
	switch op {
	case "+":
		switch x := v.(type) {
		case value.Int:
			return x, nil
		case value.Float:
			return x, nil
		}
	case "-":
		switch x := v.(type) {
		case value.Int:
			return -x, nil
		case value.Float:
			return -x, nil
		}
	case "not":
		return value.Bool(!Truthy(v)), nil
	case "~":
		if x, ok := v.(value.Int); ok {
			return ^x, nil
		}
	}
	return nil, errors.UnsupportedOperator(line, op, v.Kind())
}

func asFloat(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case value.Int:
		return float64(x), true
	case value.Float:
		return float64(x), true
	}
	return 0, false
}

func bothInt(l, r value.Value) (value.Int, value.Int, bool) {
	li, lok := l.(value.Int)
	ri, rok := r.(value.Int)
	return li, ri, lok && rok
}

func evalBinary(op string, l, r value.Value, line int) (value.Value, error) {
	switch op {
	case "+":
		if ls, ok := l.(value.Str); ok {
			if rs, ok := r.(value.Str); ok {
				return ls + rs, nil
			}
			return nil, errors.TypeMismatch(line, op, l.Kind(), r.Kind())
		}
		return numericOp(op, l, r, line)
	case "-", "*":
		return numericOp(op, l, r, line)
	case "/":
		lf, lok := asFloat(l)
		rf, rok := asFloat(r)
		if !lok || !rok {
			return nil, errors.TypeMismatch(line, op, l.Kind(), r.Kind())
		}
		if rf == 0 {
			return nil, errors.DivisionByZero(line, op)
		}
		return value.Float(lf / rf), nil
	case "//":
		if li, ri, ok := bothInt(l, r); ok {
			if ri == 0 {
				return nil, errors.DivisionByZero(line, op)
			}
			return value.Int(floorDivInt(int64(li), int64(ri))), nil
		}
		lf, lok := asFloat(l)
		rf, rok := asFloat(r)
		if !lok || !rok {
			return nil, errors.TypeMismatch(line, op, l.Kind(), r.Kind())
		}
		if rf == 0 {
			return nil, errors.DivisionByZero(line, op)
		}
		return value.Float(math.Floor(lf / rf)), nil
	case "%":
		if li, ri, ok := bothInt(l, r); ok {
			if ri == 0 {
				return nil, errors.DivisionByZero(line, op)
			}
			return value.Int(floorModInt(int64(li), int64(ri))), nil
		}
		lf, lok := asFloat(l)
		rf, rok := asFloat(r)
		if !lok || !rok {
			return nil, errors.TypeMismatch(line, op, l.Kind(), r.Kind())
		}
		if rf == 0 {
			return nil, errors.DivisionByZero(line, op)
		}
		return value.Float(floorModFloat(lf, rf)), nil
	case "**":
		lf, lok := asFloat(l)
		rf, rok := asFloat(r)
		if !lok || !rok {
			return nil, errors.TypeMismatch(line, op, l.Kind(), r.Kind())
		}
		result := math.Pow(lf, rf)
		if _, lIsInt := l.(value.Int); lIsInt {
			if ri, rIsInt := r.(value.Int); rIsInt && ri >= 0 {
				return value.Int(int64(result)), nil
			}
		}
		return value.Float(result), nil
	case "<<", ">>", "|", "^", "&":
		li, ri, ok := bothInt(l, r)
		if !ok {
			return nil, errors.TypeMismatch(line, op, l.Kind(), r.Kind())
		}
		switch op {
		case "<<":
			return li << uint(ri), nil
		case ">>":
			return li >> uint(ri), nil
		case "|":
			return li | ri, nil
		case "^":
			return li ^ ri, nil
		case "&":
			return li & ri, nil
		}
	case "@":
		return nil, errors.UnsupportedOperator(line, op, l.Kind()+"/"+r.Kind())
	}
	return nil, errors.UnsupportedOperator(line, op, l.Kind()+"/"+r.Kind())
}

func numericOp(op string, l, r value.Value, line int) (value.Value, error) {
	li, ri, intOk := bothInt(l, r)
	if intOk {
		switch op {
		case "+":
			return li + ri, nil
		case "-":
			return li - ri, nil
		case "*":
			return li * ri, nil
		}
	}
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if !lok || !rok {
		return nil, errors.TypeMismatch(line, op, l.Kind(), r.Kind())
	}
	switch op {
	case "+":
		return value.Float(lf + rf), nil
	case "-":
		return value.Float(lf - rf), nil
	case "*":
		return value.Float(lf * rf), nil
	}
	return nil, errors.UnsupportedOperator(line, op, l.Kind()+"/"+r.Kind())
}

// floorDivInt implements Python's // for ints: rounds toward negative
// infinity, unlike Go's truncating /.
func floorDivInt(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorModInt implements Python's % for ints: result has the same sign as
// the divisor.
func floorModInt(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func floorModFloat(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func evalCompare(e *ir.CompareExpr, line int, r Resolver) (value.Value, error) {
	vals := make([]value.Value, len(e.Operands))
	for i, operand := range e.Operands {
		v, err := Eval(operand, line, r)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	for i, op := range e.Ops {
		ok, err := comparePair(op, vals[i], vals[i+1], line)
		if err != nil {
			return nil, err
		}
		if !ok {
			return value.Bool(false), nil
		}
	}
	return value.Bool(true), nil
}

func comparePair(op string, l, r value.Value, line int) (bool, error) {
	switch op {
	case "is":
		return sameValue(l, r), nil
	case "is not":
		return !sameValue(l, r), nil
	case "in", "not in":
		if ls, lok := l.(value.Str); lok {
			if rs, rok := r.(value.Str); rok {
				contains := stringContains(string(rs), string(ls))
				if op == "not in" {
					return !contains, nil
				}
				return contains, nil
			}
		}
		return false, errors.UnsupportedOperator(line, op, l.Kind()+"/"+r.Kind())
	case "==":
		return sameValue(l, r), nil
	case "!=":
		return !sameValue(l, r), nil
	case "<", "<=", ">", ">=":
		lf, lok := asFloat(l)
		rf, rok := asFloat(r)
		if !lok || !rok {
			return false, errors.TypeMismatch(line, op, l.Kind(), r.Kind())
		}
		switch op {
		case "<":
			return lf < rf, nil
		case "<=":
			return lf <= rf, nil
		case ">":
			return lf > rf, nil
		case ">=":
			return lf >= rf, nil
		}
	}
	return false, errors.UnsupportedOperator(line, op, l.Kind()+"/"+r.Kind())
}

func sameValue(l, r value.Value) bool {
	if lf, lok := asFloat(l); lok {
		if rf, rok := asFloat(r); rok {
			return lf == rf
		}
	}
	if ls, lok := l.(value.Str); lok {
		if rs, rok := r.(value.Str); rok {
			return ls == rs
		}
	}
	if lb, lok := l.(value.Bool); lok {
		if rb, rok := r.(value.Bool); rok {
			return lb == rb
		}
	}
	if _, lok := l.(value.None); lok {
		_, rok := r.(value.None)
		return rok
	}
	if lc, lok := l.(value.Closure); lok {
		if rc, rok := r.(value.Closure); rok {
			return lc.Equal(rc)
		}
	}
	return false
}

func stringContains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}
