// Package source formats diagnostics (lexical, parse, static-analysis,
// and runtime errors) with surrounding source context, the way a
// compiler front end reports errors to a terminal.
package source

import (
	"fmt"
	"strings"
)

// PositionedError is satisfied by any error that knows which source
// line it came from.
type PositionedError interface {
	error
	ErrorLine() int
}

// Format renders err against src as a header line carrying the error
// message, followed by the offending source line indented underneath it
// (omitted when src has no such line). Unlike a column-precise
// caret, this only has line granularity available, since the scanner
// tracks lines but not columns; file is used in the header when
// non-empty, e.g. when reporting errors from a script passed on the
// command line rather than typed at the REPL.
func Format(err PositionedError, src, file string) string {
	var sb strings.Builder

	line := err.ErrorLine()
	if file != "" {
		fmt.Fprintf(&sb, "%s:%d: %s\n", file, line, err.Error())
	} else {
		fmt.Fprintf(&sb, "line %d: %s\n", line, err.Error())
	}

	if text := sourceLine(src, line); text != "" {
		fmt.Fprintf(&sb, "    %s\n", text)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func sourceLine(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}
