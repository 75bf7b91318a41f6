// Package interp runs an elaborated EPL program against the tree-walking
// evaluator in internal/model, the §6 CLI contract's "interpret" mode.
package interp

import (
	"fmt"

	"github.com/goepl/epl/internal/errors"
	"github.com/goepl/epl/internal/model"
)

// Run executes the elaborated prog's top-level statements, then calls
// `main` with no arguments, mirroring original_source/interpreter.py's
// run_model: the Program's statements populate the root runtime context
// (registering every top-level function, enum, and let/var binding), after
// which main is resolved and invoked directly — it is not itself a
// statement in the program.
//
// The process exit code is main's result if it is Int-typed, reduced to
// its low 8 bits as a process exit status is, and 0 otherwise (Unit, or no
// explicit return).
func Run(prog *model.Program, rootRC *model.RuntimeContext) (int, error) {
	if _, err := model.Exec(prog, rootRC); err != nil {
		return 0, err
	}
	mainDef, err := prog.Scope.Resolve("main", nil)
	if err != nil {
		return 0, fmt.Errorf("no main function found: %w", err)
	}
	main, ok := mainDef.(*model.Function)
	if !ok {
		return 0, errors.NewExecution(errors.RUN001, errors.PhaseInterpreter, "main is not a function")
	}
	if len(main.Args) != 0 {
		return 0, errors.NewExecution(errors.RUN001, errors.PhaseInterpreter, "main must take no arguments")
	}
	result, err := model.CallFunction(main, nil, rootRC)
	if err != nil {
		return 0, err
	}
	if _, ok := result.Type().(model.IntType); ok {
		return int(uint8(result.Int)), nil
	}
	return 0, nil
}
