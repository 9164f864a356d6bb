// Package cli wires golox's cobra root command: it implements the
// REPL/file/usage trichotomy directly in RunE (no subcommand is needed
// to run a script), while still using cobra for flag parsing and help
// generation the way the teacher's command tree does.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loxscript/golox/internal/interp"
	"github.com/loxscript/golox/internal/resolver"
)

// Version is set by build flags; it defaults to a development marker.
var Version = "0.1.0-dev"

var (
	dumpAST     bool
	trace       bool
	boolDisplay string
)

var rootCmd = &cobra.Command{
	Use:   "golox [script]",
	Short: "golox is a tree-walking interpreter for the Lox language",
	Long: `golox interprets Lox programs: a small, dynamically-typed,
C-like scripting language with closures, first-class functions, and
lexically scoped variables.

Run with no arguments to start an interactive REPL, or pass a script
path to execute it and exit.`,
	Version:      Version,
	Args:         cobra.ArbitraryArgs,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST before executing")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "print a trace line to stderr before executing")
	rootCmd.Flags().StringVar(&boolDisplay, "bool-display", "digits", "how to print booleans: \"digits\" (1/0) or \"words\" (true/false)")
}

// Execute runs the root command, returning any error encountered. main
// translates a non-nil error into a non-zero exit status.
func Execute() error {
	return rootCmd.Execute()
}

func run(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [script]\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}

	opts, err := interpreterOptions()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return runFile(args[0], opts)
	}
	return runPrompt(opts)
}

func interpreterOptions() ([]interp.Option, error) {
	switch boolDisplay {
	case "digits":
		return nil, nil
	case "words":
		return []interp.Option{interp.WithWordBooleans()}, nil
	default:
		return nil, fmt.Errorf("invalid --bool-display value %q (want \"digits\" or \"words\")", boolDisplay)
	}
}

func runFile(path string, opts []interp.Option) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	interpreter := interp.New(os.Stdout, opts...)
	if hadError := runSource(interpreter, string(source), path); hadError {
		os.Exit(1)
	}
	return nil
}

func runPrompt(opts []interp.Option) error {
	fmt.Println("Lox REPL")
	interpreter := interp.New(os.Stdout, append(opts, interp.WithREPLMode())...)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("lox> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		runSource(interpreter, scanner.Text(), "")
	}
}

// runSource drives one source unit through scan, parse, resolve, and
// interpret, reporting the first failing phase's errors and stopping
// before the next phase runs. It returns true if any error occurred.
func runSource(interpreter *interp.Interpreter, source, file string) bool {
	if trace {
		if file != "" {
			fmt.Fprintf(os.Stderr, "trace: running %s\n", file)
		} else {
			fmt.Fprintln(os.Stderr, "trace: running REPL input")
		}
	}

	program, hadError := parseSource(source, file)
	if hadError {
		return true
	}
	if dumpAST {
		fmt.Println(program.String())
	}

	r := resolver.New()
	if !r.Resolve(program) {
		for _, resolveErr := range r.Errors() {
			reportError(resolveErr, source, file)
		}
		return true
	}

	if err := interpreter.Interpret(program); err != nil {
		reportErr(err, source, file)
		return true
	}
	return false
}
