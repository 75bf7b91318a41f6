// Package compiler wires the EPL pipeline's stages together: parse,
// elaborate, then either interpret directly or transpile to C and hand the
// result to an external C toolchain (§6 CLI contract).
package compiler

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/goepl/epl/internal/builtins"
	"github.com/goepl/epl/internal/errors"
	"github.com/goepl/epl/internal/interp"
	"github.com/goepl/epl/internal/model"
	"github.com/goepl/epl/internal/parser"
	"github.com/goepl/epl/internal/transpile"
)

// build runs the shared front end: read, parse, elaborate, and returns a
// fresh root runtime context for the program. out is wired into the
// builtins' IO context, so iprint/bprint output from both the
// `interpreter` and `compiler` paths goes through one seed scope
// construction path.
func build(path string, out io.Writer) (*model.Program, *model.RuntimeContext, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	astProg, err := parser.Parse(string(src), path)
	if err != nil {
		return nil, nil, err
	}
	root := builtins.NewRootScope(out)
	prog, err := model.ElaborateProgram(astProg, root)
	if err != nil {
		return nil, nil, err
	}
	rc := model.NewRuntimeContext(prog.Scope.Owner())
	return prog, rc, nil
}

// Interpret runs path through the tree-walking interpreter, the
// `interpreter <path>` CLI mode.
func Interpret(path string) (int, error) {
	prog, rc, err := build(path, os.Stdout)
	if err != nil {
		return 0, err
	}
	return interp.Run(prog, rc)
}

// CompileOptions configures the `compiler <path> [-o out] [--debug] [-cc
// bin]` CLI mode (§6).
type CompileOptions struct {
	Path   string
	Output string // if set, write the compiled binary here instead of running it
	Debug  bool   // print the generated C with line numbers
	CC     string // overrides Config.CC when non-empty
}

// Compile runs path through elaboration and the transpiler, compiles the
// result with an external C compiler, and either writes the binary to
// opts.Output (cfg.Output when that is empty) or, when neither is set,
// runs it and returns its exit code (§6).
func Compile(opts CompileOptions, cfg Config) (int, error) {
	prog, rc, err := build(opts.Path, os.Stdout)
	if err != nil {
		return 0, err
	}
	cSource, err := transpile.Transpile(prog, rc)
	if err != nil {
		return 0, err
	}
	if opts.Debug {
		printNumbered(os.Stderr, cSource)
	}

	buildDir, err := os.MkdirTemp("", "epl_build_*")
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(buildDir)

	if err := os.WriteFile(filepath.Join(buildDir, "builtins.h"), []byte(builtinsHeader), 0o644); err != nil {
		return 0, err
	}
	cPath := filepath.Join(buildDir, "transpiled.c")
	if err := os.WriteFile(cPath, []byte(cSource), 0o644); err != nil {
		return 0, err
	}

	cc := cfg.CC
	if opts.CC != "" {
		cc = opts.CC
	}
	flags := append([]string{"-I" + buildDir}, cfg.CCFlags...)

	output := opts.Output
	if output == "" {
		output = cfg.Output
	}
	if output != "" {
		if err := compileC(cc, flags, cPath, output); err != nil {
			return 0, err
		}
		return 0, nil
	}

	binPath := filepath.Join(buildDir, "compiled")
	if err := compileC(cc, flags, cPath, binPath); err != nil {
		return 0, err
	}
	return runBinary(binPath)
}

// compileC shells out to the configured C compiler, grounded on
// original_source/compiler.py's `subprocess.check_call(['gcc', src, '-o',
// dst, '-I.'])`. A nonzero exit or launch failure becomes a CC001 Report.
func compileC(cc string, flags []string, src, dst string) error {
	args := append([]string{src, "-o", dst}, flags...)
	cmd := exec.Command(cc, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.NewExecution(errors.CC001, errors.PhaseCompiler, "%s failed: %v\n%s", cc, err, stderr.String())
	}
	return nil
}

// runBinary executes the compiled binary and propagates its exit code,
// mirroring original_source/compiler.py's `run_c`: a negative return code
// (killed by signal) becomes a BinaryExecutionError rather than a bare Go
// panic on ProcessState.
func runBinary(path string) (int, error) {
	cmd := exec.Command(path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return 0, errors.NewExecution(errors.BIN001, errors.PhaseBinary, "failed to run compiled binary: %v", err)
	}
	if exitErr.ProcessState.ExitCode() < 0 {
		return 0, errors.NewExecution(errors.BIN001, errors.PhaseBinary, "compiled binary terminated by signal")
	}
	return exitErr.ExitCode(), nil
}

func printNumbered(w io.Writer, src string) {
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	for i, l := range lines {
		fmt.Fprintf(w, "%4d | %s\n", i+1, l)
	}
}
