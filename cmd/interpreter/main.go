// Command interpreter runs an EPL program through the tree-walking
// evaluator, or drops into an interactive session with --repl (§6, §12).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/goepl/epl/internal/compiler"
	"github.com/goepl/epl/internal/errors"
	"github.com/goepl/epl/internal/replshell"
)

var (
	red  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		repl = flag.Bool("repl", false, "start an interactive session instead of running a file")
	)
	flag.Usage = printUsage
	flag.Parse()

	if *repl {
		replshell.Start(os.Stdout)
		return
	}

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(2)
	}

	code, err := compiler.Interpret(flag.Arg(0))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	os.Exit(code)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, bold("interpreter")+" - run an EPL program")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  interpreter <path>")
	fmt.Fprintln(os.Stderr, "  interpreter --repl")
}

func printError(err error) {
	if report, ok := err.(*errors.Report); ok {
		fmt.Fprintf(os.Stderr, "%s [%s]: %s\n", red("error"), report.Code, report.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
}
