// Package parser implements a hand-written recursive-descent parser with
// precedence climbing for expressions, panic-mode error recovery, and
// desugaring of `for` loops into `while` loops.
package parser

import (
	"fmt"

	"github.com/loxscript/golox/internal/ast"
	"github.com/loxscript/golox/internal/lexer"
	"github.com/loxscript/golox/internal/token"
)

const maxCallArguments = 255

// Error is a single parse error with its source line.
type Error struct {
	Line    int
	Where   string // lexeme, "end", or empty for a lexical error
	Message string
}

func (e *Error) Error() string {
	if e.Where == "" {
		// Lexical errors carried over from the scanner keep their own format.
		return e.Message
	}
	return fmt.Sprintf("Line [%d] Error at %s: %s", e.Line, e.Where, e.Message)
}

// ErrorLine satisfies source.PositionedError.
func (e *Error) ErrorLine() int { return e.Line }

// parseError is the panic payload used for panic-mode recovery. It is
// recovered exactly once per declaration, at the boundary documented on
// Parser.declaration, and never escapes Parse.
type parseError struct{ err *Error }

// Parser turns a token stream into a Program. Construct with New and
// call Parse once.
type Parser struct {
	tokens  []token.Token
	current int
	errors  []*Error
}

// New creates a Parser from source, scanning it fully up front the way
// the lexer's Scan contract expects. Lexical errors are surfaced through
// Errors() alongside any parse errors.
func New(l *lexer.Lexer) *Parser {
	tokens, ok := l.Scan()
	p := &Parser{tokens: tokens}
	if !ok {
		for _, lexErr := range l.Errors() {
			p.errors = append(p.errors, &Error{Line: lexErr.Line, Where: "", Message: lexErr.Message})
		}
	}
	return p
}

// Errors returns every lexical and parse error encountered, in order.
func (p *Parser) Errors() []*Error {
	return p.errors
}

// Parse parses the full token stream into a Program. ok is false if any
// lexical or parse error occurred; Program may still be partially
// populated in that case but must not be passed to the resolver.
func (p *Parser) Parse() (program *ast.Program, ok bool) {
	hadLexErrors := len(p.errors) > 0
	program = &ast.Program{}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program, !hadLexErrors && len(p.errors) == 0
}

// declaration parses one top-level-or-block item and is the sole place
// that recovers from a parseError panic: it records the error, then
// synchronizes to the next statement boundary so parsing can continue and
// collect further errors in a single pass.
func (p *Parser) declaration() (stmt ast.Statement) {
	defer func() {
		if r := recover(); r != nil {
			pe, isParseError := r.(parseError)
			if !isParseError {
				panic(r)
			}
			p.errors = append(p.errors, pe.err)
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.VAR):
		return p.varDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	default:
		return p.statement()
	}
}

func (p *Parser) varDeclaration() ast.Statement {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")
	var initializer ast.Expression
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.IDENTIFIER, fmt.Sprintf("Expect %s name.", kind))
	p.consume(token.LEFT_PAREN, fmt.Sprintf("Expect '(' after %s name.", kind))
	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxCallArguments {
				p.reportError(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxCallArguments))
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")
	p.consume(token.LEFT_BRACE, fmt.Sprintf("Expect '{' before %s body.", kind))
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) statement() ast.Statement {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.LEFT_BRACE):
		return &ast.BlockStmt{Statements: p.block()}
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() ast.Statement {
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.PrintStmt{Expression: value}
}

func (p *Parser) expressionStatement() ast.Statement {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expression: expr}
}

func (p *Parser) block() []ast.Statement {
	var statements []ast.Statement
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return statements
}

func (p *Parser) ifStatement() ast.Statement {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Statement
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Condition: condition, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) whileStatement() ast.Statement {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Condition: condition, Body: body}
}

// forStatement desugars `for (init; cond; incr) body` into the equivalent
// while loop: body becomes Block[body, incr] if incr is present, cond
// defaults to `true` if omitted, and the whole thing is wrapped in
// Block[init, While(cond, body)] if init is present.
func (p *Parser) forStatement() ast.Statement {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Statement
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expression
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expression
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Statement{body, &ast.ExpressionStmt{Expression: increment}}}
	}
	if condition == nil {
		condition = &ast.Literal{Value: true}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Statement{initializer, body}}
	}
	return body
}

func (p *Parser) returnStatement() ast.Statement {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}
