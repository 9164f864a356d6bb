package interp

import "github.com/loxscript/golox/internal/ast"

// Function is a user-declared Lox function value. It closes over the
// environment active at its declaration, so nested functions can see
// the locals of whatever function or block defined them.
type Function struct {
	declaration *ast.FunctionStmt
	closure     *Environment
}

// NewFunction wraps a parsed function declaration as a callable value,
// closing over env.
func NewFunction(declaration *ast.FunctionStmt, closure *Environment) *Function {
	return &Function{declaration: declaration, closure: closure}
}

func (f *Function) Type() string   { return "function" }
func (f *Function) String() string { return "<fn " + f.declaration.Name.Lexeme + ">" }
func (f *Function) Arity() int     { return len(f.declaration.Params) }

// Call runs the function body in a fresh scope chained off its closure,
// with each parameter bound to the corresponding argument. A `return`
// inside the body surfaces here as a controlFlow signal rather than
// unwinding the Go call stack via panic/recover, since the depth of
// nested calls is already tracked by ordinary Go recursion.
func (f *Function) Call(i *Interpreter, arguments []Value) (Value, error) {
	env := NewChildEnvironment(f.closure)
	for idx, param := range f.declaration.Params {
		env.Define(param.Lexeme, arguments[idx])
	}

	flow, err := i.executeBlock(f.declaration.Body, env)
	if err != nil {
		return nil, err
	}
	if flow.kind == flowReturn {
		return flow.value, nil
	}
	return Nil, nil
}
