// Package resolver performs a static analysis pass between parsing and
// interpretation: it walks the AST once to determine, for every variable
// reference, how many enclosing lexical scopes separate it from its
// declaration. The result is written directly onto the ast.Variable and
// ast.Assign nodes (their Depth field) so the interpreter never has to
// search scopes at run time.
package resolver

import (
	"fmt"

	"github.com/loxscript/golox/internal/ast"
	"github.com/loxscript/golox/internal/token"
)

type functionType int

const (
	functionTypeNone functionType = iota
	functionTypeFunction
)

// Error is a single static-analysis error, reported at the declaring or
// referencing token's line.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Line [%d]: %s", e.Line, e.Message)
}

// ErrorLine satisfies source.PositionedError.
func (e *Error) ErrorLine() int { return e.Line }

// Resolver walks a parsed Program and annotates its variable references.
type Resolver struct {
	scopes          []map[string]bool
	currentFunction functionType
	errors          []*Error
}

// New creates a Resolver ready to resolve a single Program.
func New() *Resolver {
	return &Resolver{currentFunction: functionTypeNone}
}

// Errors returns every static-analysis error found during Resolve.
func (r *Resolver) Errors() []*Error {
	return r.errors
}

// Resolve walks every top-level statement in program. ok is false if any
// static-analysis error was found, in which case the program must not be
// interpreted.
func (r *Resolver) Resolve(program *ast.Program) (ok bool) {
	r.resolveStatements(program.Statements)
	return len(r.errors) == 0
}

func (r *Resolver) resolveStatements(statements []ast.Statement) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionTypeFunction)

	case *ast.ExpressionStmt:
		r.resolveExpression(s.Expression)

	case *ast.IfStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Then)
		if s.Else != nil {
			r.resolveStatement(s.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpression(s.Expression)

	case *ast.ReturnStmt:
		if r.currentFunction == functionTypeNone {
			r.reportError(s.Keyword.Line, "Can't return from top-level code.")
		}
		if s.Value != nil {
			r.resolveExpression(s.Value)
		}

	case *ast.WhileStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)

	default:
		panic(fmt.Sprintf("resolver: unhandled statement type %T", stmt))
	}
}

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if declared, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !declared {
				r.reportError(e.Name.Line, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e.Name, func(depth int) { e.Depth = &depth })

	case *ast.Assign:
		r.resolveExpression(e.Value)
		r.resolveLocal(e.Name, func(depth int) { e.Depth = &depth })

	case *ast.Binary:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)

	case *ast.Logical:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)

	case *ast.Call:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}

	case *ast.Grouping:
		r.resolveExpression(e.Expression)

	case *ast.Literal:
		// nothing to resolve

	case *ast.Unary:
		r.resolveExpression(e.Right)

	default:
		panic(fmt.Sprintf("resolver: unhandled expression type %T", expr))
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, ft functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = ft

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks name as present in the innermost scope but not yet
// initialized, so references to it inside its own initializer can be
// rejected.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.reportError(name.Line, "Already a variable with this name in this scope")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks the scope stack from innermost outward looking for
// name, and if found, calls set with the number of scopes between the
// reference and the declaration. If name is never found in any local
// scope, set is not called and the reference is treated as global.
func (r *Resolver) resolveLocal(name token.Token, set func(depth int)) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			set(len(r.scopes) - 1 - i)
			return
		}
	}
}

func (r *Resolver) reportError(line int, message string) {
	r.errors = append(r.errors, &Error{Line: line, Message: message})
}
