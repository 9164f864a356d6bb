package interp

import (
	"fmt"
	"io"

	"github.com/loxscript/golox/internal/ast"
	"github.com/loxscript/golox/internal/token"
)

// Interpreter walks a resolved Program, evaluating expressions and
// executing statements against a chain of Environments. Construct with
// New and reuse across multiple calls to Interpret so the REPL can keep
// top-level bindings alive between lines.
type Interpreter struct {
	globals     *Environment
	env         *Environment
	output      io.Writer
	boolAsWords bool
	replMode    bool
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithWordBooleans makes print statements render booleans as
// `true`/`false` instead of the default `1`/`0` digit form.
func WithWordBooleans() Option {
	return func(i *Interpreter) { i.boolAsWords = true }
}

// WithREPLMode makes a bare expression statement (one with no `print`)
// echo its value, the way an interactive prompt conventionally shows
// you the result of whatever you just typed. A `print` statement's own
// output is unaffected, so this never causes a value to be printed
// twice.
func WithREPLMode() Option {
	return func(i *Interpreter) { i.replMode = true }
}

// New creates an Interpreter writing print output to output, with the
// global environment pre-populated with every native builtin.
func New(output io.Writer, opts ...Option) *Interpreter {
	globals := NewEnvironment()
	defineGlobals(globals)
	i := &Interpreter{globals: globals, env: globals, output: output}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// display renders value for a print statement, honoring the configured
// boolean display mode.
func (i *Interpreter) display(value Value) string {
	if b, ok := value.(BoolValue); ok && i.boolAsWords {
		if b.Value {
			return "true"
		}
		return "false"
	}
	return value.String()
}

// Interpret executes every statement in program in order. It stops at
// the first runtime error, matching the language's fail-fast semantics;
// any statements already executed before the error have already taken
// effect (including their printed output). program must already have
// passed resolution, which rejects top-level `return` so no control-flow
// signal can escape this loop.
func (i *Interpreter) Interpret(program *ast.Program) error {
	for _, stmt := range program.Statements {
		if _, err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Statement) (controlFlow, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		value, err := i.evaluate(s.Expression)
		if err != nil {
			return controlFlow{}, err
		}
		if i.replMode {
			fmt.Fprintln(i.output, i.display(value))
		}
		return controlFlow{}, nil

	case *ast.PrintStmt:
		value, err := i.evaluate(s.Expression)
		if err != nil {
			return controlFlow{}, err
		}
		fmt.Fprintln(i.output, i.display(value))
		return controlFlow{}, nil

	case *ast.VarStmt:
		value := Value(Nil)
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return controlFlow{}, err
			}
			value = v
		}
		i.env.Define(s.Name.Lexeme, value)
		return controlFlow{}, nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, NewChildEnvironment(i.env))

	case *ast.IfStmt:
		condition, err := i.evaluate(s.Condition)
		if err != nil {
			return controlFlow{}, err
		}
		if IsTruthy(condition) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return controlFlow{}, nil

	case *ast.WhileStmt:
		for {
			condition, err := i.evaluate(s.Condition)
			if err != nil {
				return controlFlow{}, err
			}
			if !IsTruthy(condition) {
				return controlFlow{}, nil
			}
			flow, err := i.execute(s.Body)
			if err != nil || flow.isActive() {
				return flow, err
			}
		}

	case *ast.FunctionStmt:
		i.env.Define(s.Name.Lexeme, NewFunction(s, i.env))
		return controlFlow{}, nil

	case *ast.ReturnStmt:
		value := Value(Nil)
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return controlFlow{}, err
			}
			value = v
		}
		return controlFlow{kind: flowReturn, value: value}, nil

	default:
		panic(fmt.Sprintf("interp: unhandled statement type %T", stmt))
	}
}

// executeBlock runs statements against env, restoring the interpreter's
// previous environment before returning (including on error or an
// active control-flow signal), so a function call or nested block never
// leaks its scope into the caller.
func (i *Interpreter) executeBlock(statements []ast.Statement, env *Environment) (controlFlow, error) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range statements {
		flow, err := i.execute(stmt)
		if err != nil || flow.isActive() {
			return flow, err
		}
	}
	return controlFlow{}, nil
}

func (i *Interpreter) evaluate(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Grouping:
		return i.evaluate(e.Expression)

	case *ast.Variable:
		return i.lookupVariable(e.Name, e.Depth)

	case *ast.Assign:
		value, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if e.Depth != nil {
			i.env.AssignAt(*e.Depth, e.Name.Lexeme, value)
		} else if err := i.globals.Assign(e.Name.Line, e.Name.Lexeme, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Logical:
		left, err := i.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Operator.Type == token.OR {
			if IsTruthy(left) {
				return left, nil
			}
		} else if !IsTruthy(left) {
			return left, nil
		}
		return i.evaluate(e.Right)

	case *ast.Unary:
		return i.evalUnary(e)

	case *ast.Binary:
		return i.evalBinary(e)

	case *ast.Call:
		return i.evalCall(e)

	default:
		panic(fmt.Sprintf("interp: unhandled expression type %T", expr))
	}
}

func literalValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return Nil
	case bool:
		return BoolOf(val)
	case int64:
		return IntegerValue{Value: val}
	case float64:
		return FloatValue{Value: val}
	case string:
		return StringValue{Value: val}
	default:
		panic(fmt.Sprintf("interp: unhandled literal type %T", v))
	}
}

func (i *Interpreter) lookupVariable(name token.Token, depth *int) (Value, error) {
	if depth != nil {
		return i.env.GetAt(*depth, name.Lexeme), nil
	}
	return i.globals.Get(name.Line, name.Lexeme)
}

func (i *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case token.MINUS:
		n, ok := numberOf(right)
		if !ok {
			return nil, newRuntimeError(e.Operator.Line, "Operand must be a number.")
		}
		if iv, isInt := right.(IntegerValue); isInt {
			return IntegerValue{Value: -iv.Value}, nil
		}
		return FloatValue{Value: -n}, nil
	case token.BANG:
		return BoolOf(!IsTruthy(right)), nil
	default:
		panic(fmt.Sprintf("interp: unhandled unary operator %s", e.Operator.Type))
	}
}

func (i *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]Value, len(e.Arguments))
	for idx, argExpr := range e.Arguments {
		arg, err := i.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		arguments[idx] = arg
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren.Line, "Can only call functions, got %s.", describe(callee))
	}
	if len(arguments) != callable.Arity() {
		return nil, newRuntimeError(e.Paren.Line, "Expected %d argument(s) but got %d.", callable.Arity(), len(arguments))
	}
	return callable.Call(i, arguments)
}
