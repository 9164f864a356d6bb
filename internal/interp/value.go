// Package interp implements the tree-walking evaluator: runtime values,
// lexical environments, and the statement/expression evaluator itself.
package interp

import (
	"fmt"
	"strconv"
)

// Value is a runtime value. All runtime values must implement this
// interface rather than being passed around as bare any, so Type()
// and String() are always available without type assertions.
type Value interface {
	// Type returns the type name of the value, as used in runtime error
	// messages (e.g. "number", "string").
	Type() string
	// String returns the display form of the value, as printed by a
	// print statement or the REPL.
	String() string
}

// NilValue is Lox's `nil`. There is exactly one meaningful instance,
// Nil, since NilValue carries no data.
type NilValue struct{}

func (NilValue) Type() string   { return "nil" }
func (NilValue) String() string { return "nil" }

// Nil is the singleton nil value.
var Nil = NilValue{}

// BoolValue is a boolean.
type BoolValue struct {
	Value bool
}

func (b BoolValue) Type() string { return "bool" }

// String renders the digit form (`1`/`0`), which is the default display
// of a boolean. The REPL and print statement can
// choose the conventional `true`/`false` spelling instead via
// Interpreter's bool-display setting; that choice only affects display,
// never equality or truthiness.
func (b BoolValue) String() string {
	if b.Value {
		return "1"
	}
	return "0"
}

// True and False are the two boolean singletons.
var (
	True  = BoolValue{Value: true}
	False = BoolValue{Value: false}
)

// BoolOf returns True or False for a Go bool.
func BoolOf(v bool) BoolValue {
	if v {
		return True
	}
	return False
}

// IntegerValue is a whole-number literal, kept distinct from FloatValue
// so integer arithmetic with no fractional part prints without a
// trailing ".0".
type IntegerValue struct {
	Value int64
}

func (i IntegerValue) Type() string   { return "number" }
func (i IntegerValue) String() string { return strconv.FormatInt(i.Value, 10) }

// FloatValue is a floating-point number.
type FloatValue struct {
	Value float64
}

func (f FloatValue) Type() string   { return "number" }
func (f FloatValue) String() string { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

// StringValue is a Lox string.
type StringValue struct {
	Value string
}

func (s StringValue) Type() string   { return "string" }
func (s StringValue) String() string { return s.Value }

// Callable is anything invocable with `(`...`)`: declared functions and
// native builtins alike.
type Callable interface {
	Value
	Arity() int
	Call(i *Interpreter, arguments []Value) (Value, error)
}

// IsTruthy implements the language's truthiness rule: nil is false, a
// Bool is its own value, an Integer is false only when zero, and every
// other kind (float, string, callable) is always true.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case BoolValue:
		return val.Value
	case IntegerValue:
		return val.Value != 0
	default:
		return true
	}
}

// equalityTolerance bounds how close two numeric operands must be to
// compare equal, absorbing floating-point representation error without
// making unrelated integers compare equal to each other.
const equalityTolerance = 1e-6

// numberOf extracts a float64 from an IntegerValue or FloatValue.
func numberOf(v Value) (float64, bool) {
	switch n := v.(type) {
	case IntegerValue:
		return float64(n.Value), true
	case FloatValue:
		return n.Value, true
	default:
		return 0, false
	}
}

// IsEqual implements Lox's `==`. Two integers compare equal exactly,
// preserving full int64 precision; an integer and a float, or two
// floats, compare equal when within equalityTolerance of each other;
// every other pair compares equal only when they share a dynamic type
// and value.
func IsEqual(a, b Value) bool {
	if ai, bi, ok := bothInteger(a, b); ok {
		return ai == bi
	}
	an, aIsNumber := numberOf(a)
	bn, bIsNumber := numberOf(b)
	if aIsNumber && bIsNumber {
		diff := an - bn
		if diff < 0 {
			diff = -diff
		}
		return diff < equalityTolerance
	}

	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Value == bv.Value
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}

// describe renders a value the way a runtime type error should name it.
func describe(v Value) string {
	return fmt.Sprintf("%s (%s)", v.String(), v.Type())
}
