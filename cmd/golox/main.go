// Command golox runs the golox interpreter as a REPL or script runner.
package main

import (
	"fmt"
	"os"

	"github.com/loxscript/golox/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
