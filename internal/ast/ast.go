// Package ast defines the abstract syntax tree produced by the parser and
// walked by the resolver and interpreter.
//
// Nodes are plain structs behind small marker interfaces (Node,
// Expression, Statement) rather than a Visitor/accept() pair: the
// resolver and interpreter each dispatch with a type switch over the
// concrete node types. This collapses double dispatch into ordinary Go
// control flow while keeping phase logic (resolving vs. evaluating)
// cleanly separated by package.
package ast

// Node is the base interface every AST node satisfies.
type Node interface {
	String() string
}

// Expression is any node that produces a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of a parsed source file: an ordered list of
// top-level declarations and statements.
type Program struct {
	Statements []Statement
}

func (p *Program) String() string {
	out := ""
	for _, s := range p.Statements {
		out += s.String()
	}
	return out
}
