package interp

import (
	"github.com/loxscript/golox/internal/ast"
	"github.com/loxscript/golox/internal/token"
)

// evalBinary implements the arithmetic, comparison, and equality
// operators. Mixed integer/float operands promote to float; two
// integers stay integers, matching the language's int/float split.
func (i *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	line := e.Operator.Line

	switch e.Operator.Type {
	case token.MINUS:
		return numericOp(e.Operator, left, right,
			func(a, b int64) int64 { return a - b },
			func(a, b float64) float64 { return a - b })
	case token.STAR:
		return numericOp(e.Operator, left, right,
			func(a, b int64) int64 { return a * b },
			func(a, b float64) float64 { return a * b })
	case token.SLASH:
		return divide(e.Operator, left, right)
	case token.PLUS:
		return add(e.Operator, left, right)
	case token.GREATER:
		return compare(e.Operator, left, right,
			func(a, b int64) bool { return a > b },
			func(a, b float64) bool { return a > b })
	case token.GREATER_EQUAL:
		return compare(e.Operator, left, right,
			func(a, b int64) bool { return a >= b },
			func(a, b float64) bool { return a >= b })
	case token.LESS:
		return compare(e.Operator, left, right,
			func(a, b int64) bool { return a < b },
			func(a, b float64) bool { return a < b })
	case token.LESS_EQUAL:
		return compare(e.Operator, left, right,
			func(a, b int64) bool { return a <= b },
			func(a, b float64) bool { return a <= b })
	case token.EQUAL_EQUAL:
		return BoolOf(IsEqual(left, right)), nil
	case token.BANG_EQUAL:
		return BoolOf(!IsEqual(left, right)), nil
	default:
		return nil, newRuntimeError(line, "Unsupported binary operator %s.", e.Operator.Lexeme)
	}
}

func checkNumberOperands(operator token.Token, left, right Value) error {
	_, leftOk := numberOf(left)
	_, rightOk := numberOf(right)
	if leftOk && rightOk {
		return nil
	}
	return newRuntimeError(operator.Line, "Operands must be numbers.")
}

func bothInteger(left, right Value) (int64, int64, bool) {
	li, lok := left.(IntegerValue)
	ri, rok := right.(IntegerValue)
	if lok && rok {
		return li.Value, ri.Value, true
	}
	return 0, 0, false
}

// numericOp applies intOp directly when both operands are IntegerValue,
// keeping full int64 precision, and falls back to floatOp (after
// converting through float64) whenever either operand is a FloatValue.
func numericOp(operator token.Token, left, right Value, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) (Value, error) {
	if err := checkNumberOperands(operator, left, right); err != nil {
		return nil, err
	}
	if a, b, ok := bothInteger(left, right); ok {
		return IntegerValue{Value: intOp(a, b)}, nil
	}
	lf, _ := numberOf(left)
	rf, _ := numberOf(right)
	return FloatValue{Value: floatOp(lf, rf)}, nil
}

func divide(operator token.Token, left, right Value) (Value, error) {
	if err := checkNumberOperands(operator, left, right); err != nil {
		return nil, err
	}
	if a, b, ok := bothInteger(left, right); ok {
		if b == 0 {
			return nil, newRuntimeError(operator.Line, "Division by 0")
		}
		return IntegerValue{Value: a / b}, nil
	}
	lf, _ := numberOf(left)
	rf, _ := numberOf(right)
	if rf < equalityTolerance && rf > -equalityTolerance {
		return nil, newRuntimeError(operator.Line, "Division by 0")
	}
	return FloatValue{Value: lf / rf}, nil
}

func add(operator token.Token, left, right Value) (Value, error) {
	ls, lIsString := left.(StringValue)
	rs, rIsString := right.(StringValue)
	if lIsString && rIsString {
		return StringValue{Value: ls.Value + rs.Value}, nil
	}
	if _, lIsNum := numberOf(left); lIsNum {
		if _, rIsNum := numberOf(right); rIsNum {
			return numericOp(operator, left, right,
				func(a, b int64) int64 { return a + b },
				func(a, b float64) float64 { return a + b })
		}
	}
	return nil, newRuntimeError(operator.Line, "Operands must be both strings or numbers.")
}

// compare applies intOp directly when both operands are IntegerValue,
// keeping full int64 precision, and falls back to floatOp otherwise.
func compare(operator token.Token, left, right Value, intOp func(a, b int64) bool, floatOp func(a, b float64) bool) (Value, error) {
	if err := checkNumberOperands(operator, left, right); err != nil {
		return nil, err
	}
	if a, b, ok := bothInteger(left, right); ok {
		return BoolOf(intOp(a, b)), nil
	}
	lf, _ := numberOf(left)
	rf, _ := numberOf(right)
	return BoolOf(floatOp(lf, rf)), nil
}
