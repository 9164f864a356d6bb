package parser

import (
	"testing"

	"github.com/loxscript/golox/internal/ast"
	"github.com/loxscript/golox/internal/lexer"
)

func parseString(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	program, ok := p.Parse()
	if !ok {
		t.Fatalf("Parse() reported errors for %q: %v", src, p.Errors())
	}
	return program
}

func TestParseExpressionPrecedence(t *testing.T) {
	program := parseString(t, "print 1 + 2 * 3 - -4;")
	if len(program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Statements))
	}
	got := program.Statements[0].String()
	want := "(print (- (+ 1 (* 2 3)) (- 4)))"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseVarAndAssign(t *testing.T) {
	program := parseString(t, "var a = 1; a = 2;")
	if len(program.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(program.Statements))
	}
	if _, ok := program.Statements[0].(*ast.VarStmt); !ok {
		t.Fatalf("statement 0 is %T, want *ast.VarStmt", program.Statements[0])
	}
	exprStmt, ok := program.Statements[1].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("statement 1 is %T, want *ast.ExpressionStmt", program.Statements[1])
	}
	if _, ok := exprStmt.Expression.(*ast.Assign); !ok {
		t.Fatalf("expression is %T, want *ast.Assign", exprStmt.Expression)
	}
}

func TestForLoopDesugarsToWhile(t *testing.T) {
	program := parseString(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	if len(program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Statements))
	}
	block, ok := program.Statements[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("top-level statement is %T, want *ast.BlockStmt", program.Statements[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("desugared block has %d statements, want 2 (init, while)", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("block.Statements[0] is %T, want *ast.VarStmt", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("block.Statements[1] is %T, want *ast.WhileStmt", block.Statements[1])
	}
	body, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("while body = %#v, want a two-statement block (body, increment)", whileStmt.Body)
	}
}

func TestForLoopOmittedCondition(t *testing.T) {
	program := parseString(t, "for (;;) print 1;")
	whileStmt, ok := program.Statements[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ast.WhileStmt", program.Statements[0])
	}
	lit, ok := whileStmt.Condition.(*ast.Literal)
	if !ok || lit.Value != true {
		t.Fatalf("condition = %#v, want Literal(true)", whileStmt.Condition)
	}
}

func TestFunctionDeclaration(t *testing.T) {
	program := parseString(t, "fun add(a, b) { return a + b; }")
	fn, ok := program.Statements[0].(*ast.FunctionStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ast.FunctionStmt", program.Statements[0])
	}
	if fn.Name.Lexeme != "add" || len(fn.Params) != 2 {
		t.Fatalf("got fn=%+v, want name=add with 2 params", fn)
	}
}

func TestInvalidAssignmentTargetReportsErrorWithoutPanicking(t *testing.T) {
	p := New(lexer.New("1 = 2;"))
	if _, ok := p.Parse(); ok {
		t.Fatalf("Parse() reported no error, want one")
	}
	if len(p.Errors()) == 0 {
		t.Fatalf("got no errors, want at least one")
	}
}

func TestSynchronizeRecoversAfterError(t *testing.T) {
	p := New(lexer.New("var; var good = 1; print good;"))
	program, ok := p.Parse()
	if ok {
		t.Fatalf("Parse() reported no error, want one")
	}
	if len(program.Statements) == 0 {
		t.Fatalf("synchronize should allow parsing to continue after the bad declaration")
	}
}
