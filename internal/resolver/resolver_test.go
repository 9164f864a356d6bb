package resolver

import (
	"testing"

	"github.com/loxscript/golox/internal/ast"
	"github.com/loxscript/golox/internal/lexer"
	"github.com/loxscript/golox/internal/parser"
)

func resolveString(t *testing.T, src string) (*ast.Program, *Resolver) {
	t.Helper()
	p := parser.New(lexer.New(src))
	program, ok := p.Parse()
	if !ok {
		t.Fatalf("Parse() reported errors for %q: %v", src, p.Errors())
	}
	r := New()
	r.Resolve(program)
	return program, r
}

func TestResolveClosureCapturesDeclarationTimeBinding(t *testing.T) {
	program, r := resolveString(t, `
		{
			var a = "outer";
			{
				fun showA() {
					print a;
				}
				showA();
				var a = "inner";
				showA();
			}
		}
	`)
	if len(r.Errors()) != 0 {
		t.Fatalf("got errors %v, want none", r.Errors())
	}

	outerBlock := program.Statements[0].(*ast.BlockStmt)
	innerBlock := outerBlock.Statements[1].(*ast.BlockStmt)
	fn := innerBlock.Statements[0].(*ast.FunctionStmt)
	printStmt := fn.Body[0].(*ast.PrintStmt)
	variable := printStmt.Expression.(*ast.Variable)

	// showA is declared before the inner block's own `a`, so it must
	// resolve to the outer `a` (one scope past its own function scope,
	// one more past the inner block) regardless of the later inner
	// declaration.
	if variable.Depth == nil {
		t.Fatalf("Depth is nil, want a resolved local depth")
	}
	if *variable.Depth != 2 {
		t.Fatalf("Depth = %d, want 2 (function scope, then inner block scope, to reach the outer block)", *variable.Depth)
	}
}

func TestSelfReferenceInInitializerIsAnError(t *testing.T) {
	_, r := resolveString(t, `{ var a = a; }`)
	if len(r.Errors()) == 0 {
		t.Fatalf("got no errors, want one for self-reference in initializer")
	}
}

func TestDuplicateDeclarationInSameScopeIsAnError(t *testing.T) {
	_, r := resolveString(t, `{ var a = 1; var a = 2; }`)
	if len(r.Errors()) == 0 {
		t.Fatalf("got no errors, want one for duplicate declaration")
	}
}

func TestReturnOutsideFunctionIsAnError(t *testing.T) {
	_, r := resolveString(t, `return 1;`)
	if len(r.Errors()) == 0 {
		t.Fatalf("got no errors, want one for top-level return")
	}
}

func TestGlobalVariableIsNotGivenADepth(t *testing.T) {
	program, r := resolveString(t, `
		var a = 1;
		print a;
	`)
	if len(r.Errors()) != 0 {
		t.Fatalf("got errors %v, want none", r.Errors())
	}
	printStmt := program.Statements[1].(*ast.PrintStmt)
	variable := printStmt.Expression.(*ast.Variable)
	if variable.Depth != nil {
		t.Fatalf("Depth = %v, want nil for a global reference", *variable.Depth)
	}
}
