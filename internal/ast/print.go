package ast

import (
	"fmt"
	"strings"
)

// String implementations below render each node as a parenthesized
// Lisp-like form, in the spirit of the classic AST pretty-printer: enough
// to eyeball with --dump-ast and to assert on in tests, without needing a
// separate visitor type.

func parenthesize(name string, parts ...fmt.Stringer) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, p := range parts {
		b.WriteByte(' ')
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (l *Literal) String() string {
	if l.Value == nil {
		return "nil"
	}
	return fmt.Sprintf("%v", l.Value)
}

func (g *Grouping) String() string {
	return parenthesize("group", g.Expression)
}

func (u *Unary) String() string {
	return parenthesize(u.Operator.Lexeme, u.Right)
}

func (b *Binary) String() string {
	return parenthesize(b.Operator.Lexeme, b.Left, b.Right)
}

func (l *Logical) String() string {
	return parenthesize(l.Operator.Lexeme, l.Left, l.Right)
}

func (v *Variable) String() string {
	return v.Name.Lexeme
}

func (a *Assign) String() string {
	return parenthesize("= "+a.Name.Lexeme, a.Value)
}

func (c *Call) String() string {
	parts := make([]fmt.Stringer, 0, len(c.Arguments)+1)
	parts = append(parts, c.Callee)
	for _, arg := range c.Arguments {
		parts = append(parts, arg)
	}
	return parenthesize("call", parts...)
}

func (e *ExpressionStmt) String() string {
	return parenthesize("expr", e.Expression)
}

func (p *PrintStmt) String() string {
	return parenthesize("print", p.Expression)
}

func (v *VarStmt) String() string {
	if v.Initializer == nil {
		return fmt.Sprintf("(var %s)", v.Name.Lexeme)
	}
	return fmt.Sprintf("(var %s %s)", v.Name.Lexeme, v.Initializer.String())
}

func (b *BlockStmt) String() string {
	var sb strings.Builder
	sb.WriteString("(block")
	for _, s := range b.Statements {
		sb.WriteByte(' ')
		sb.WriteString(s.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (i *IfStmt) String() string {
	if i.Else == nil {
		return fmt.Sprintf("(if %s %s)", i.Condition.String(), i.Then.String())
	}
	return fmt.Sprintf("(if %s %s %s)", i.Condition.String(), i.Then.String(), i.Else.String())
}

func (w *WhileStmt) String() string {
	return fmt.Sprintf("(while %s %s)", w.Condition.String(), w.Body.String())
}

func (f *FunctionStmt) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("(fun %s (", f.Name.Lexeme))
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.Lexeme)
	}
	sb.WriteString(")")
	for _, s := range f.Body {
		sb.WriteByte(' ')
		sb.WriteString(s.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "(return)"
	}
	return parenthesize("return", r.Value)
}
