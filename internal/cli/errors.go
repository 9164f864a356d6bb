package cli

import (
	"fmt"
	"os"

	"github.com/loxscript/golox/internal/ast"
	"github.com/loxscript/golox/internal/lexer"
	"github.com/loxscript/golox/internal/parser"
	"github.com/loxscript/golox/internal/source"
)

// parseSource scans and parses source into a Program, reporting every
// lexical and parse error to stderr in the one-line format and also, on
// request, with source context.
func parseSource(src, file string) (*ast.Program, bool) {
	l := lexer.New(src)
	p := parser.New(l)
	program, ok := p.Parse()
	if !ok {
		for _, parseErr := range p.Errors() {
			reportError(parseErr, src, file)
		}
		return nil, true
	}
	return program, false
}

// reportError prints err's normative one-line form, plus source context
// when --trace is set (context is a debugging aid, not the tested
// output format).
func reportError(err source.PositionedError, src, file string) {
	fmt.Fprintln(os.Stderr, err.Error())
	if trace {
		fmt.Fprintln(os.Stderr, source.Format(err, src, file))
	}
}

// reportErr adapts a plain error that may or may not carry a source
// position into the same reporting path as reportError.
func reportErr(err error, src, file string) {
	if positioned, ok := err.(source.PositionedError); ok {
		reportError(positioned, src, file)
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}
