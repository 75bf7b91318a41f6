// Package errors provides the structured error-report taxonomy shared by
// every compile-time and execution-time error family in spec.md §7.
package errors

import (
	"fmt"

	"github.com/goepl/epl/internal/ast"
)

// Phase identifies which pipeline stage raised a Report.
type Phase string

const (
	PhaseLexer       Phase = "lexer"
	PhaseParser      Phase = "parser"
	PhaseModel       Phase = "model"
	PhaseInliner     Phase = "inliner"
	PhaseInterpreter Phase = "interpreter"
	PhaseBinary      Phase = "binary"
	PhaseCompiler    Phase = "compiler"
)

// Report is the canonical structured error for EPL. It carries an error
// code, the phase that raised it, a human message, and (for compile-time
// errors) the offending AST node for diagnostics.
type Report struct {
	Code    string
	Phase   Phase
	Message string
	Node    ast.Node // offending AST node, nil for execution-time errors
	Pos     *ast.Pos // explicit position override when Node is nil
	Cause   error    // wrapped underlying error, e.g. an InterpreterError folded by InlinerError
}

// Error renders "<message>\nwhile parsing: <node>\nfrom: <srcmap>" exactly
// as spec.md §7 mandates when a Node is present; otherwise just the
// message (execution-time errors have no AST node).
func (r *Report) Error() string {
	if r == nil {
		return "unknown error"
	}
	msg := r.Message
	if r.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, r.Cause.Error())
	}
	if r.Node == nil {
		return msg
	}
	return fmt.Sprintf("%s\nwhile parsing: %s\nfrom: %s", msg, r.Node.String(), r.Node.Position())
}

func (r *Report) Unwrap() error { return r.Cause }

// New constructs a compile-time Report anchored to an AST node.
func New(code string, phase Phase, node ast.Node, format string, args ...interface{}) *Report {
	return &Report{Code: code, Phase: phase, Message: fmt.Sprintf(format, args...), Node: node}
}

// NewExecution constructs an execution-time Report with no AST node.
func NewExecution(code string, phase Phase, format string, args ...interface{}) *Report {
	return &Report{Code: code, Phase: phase, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps cause as the Cause of a new Report, used by InlinerError
// (§7: "a fault during folding surfaces as InlinerError at compile time,
// not a crash").
func Wrap(code string, phase Phase, node ast.Node, cause error) *Report {
	return &Report{Code: code, Phase: phase, Message: "error while folding compile-time expression", Node: node, Cause: cause}
}
