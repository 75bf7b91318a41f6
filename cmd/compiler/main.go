// Command compiler transpiles an EPL program to C and hands it to an
// external C toolchain, either writing the resulting binary (-o) or
// running it directly (§6).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/goepl/epl/internal/compiler"
	"github.com/goepl/epl/internal/errors"
)

var (
	red  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		output    = flag.String("o", "", "write the compiled binary here instead of running it")
		debug     = flag.Bool("debug", false, "print the generated C source with line numbers")
		ccFlag    = flag.String("cc", "", "C compiler to invoke (overrides epl.yaml and $CC)")
		configPat = flag.String("config", "epl.yaml", "project config file")
	)
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := compiler.LoadConfig(*configPat)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	cc := *ccFlag
	if cc == "" {
		cc = os.Getenv("CC")
	}

	code, err := compiler.Compile(compiler.CompileOptions{
		Path:   flag.Arg(0),
		Output: *output,
		Debug:  *debug,
		CC:     cc,
	}, cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if *output != "" {
		fmt.Fprintf(os.Stdout, "wrote %s\n", *output)
		return
	}
	os.Exit(code)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, bold("compiler")+" - transpile and compile an EPL program to a native binary")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  compiler <path> [-o out] [--debug] [-cc bin]")
}

func printError(err error) {
	if report, ok := err.(*errors.Report); ok {
		fmt.Fprintf(os.Stderr, "%s [%s]: %s\n", red("error"), report.Code, report.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
}
