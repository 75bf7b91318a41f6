// Package replshell implements `interpreter --repl` (§11 enrichment): an
// interactive line-editing session that elaborates and executes one
// top-level statement at a time against a persistent Scope/RuntimeContext
// pair, printing the resulting Value unless it is Unit.
package replshell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/goepl/epl/internal/builtins"
	"github.com/goepl/epl/internal/errors"
	"github.com/goepl/epl/internal/model"
	"github.com/goepl/epl/internal/parser"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

// Session holds the state a REPL line is elaborated and executed against.
// It is reused across every line, which is what lets later input reference
// a `let`/`fn`/`enum` declared on an earlier one.
type Session struct {
	scope   *model.Scope
	rc      *model.RuntimeContext
	history []string
}

// New creates a fresh Session, seeded with the builtin scope every EPL
// program elaborates against (§4.7). out receives iprint/bprint output.
func New(out io.Writer) *Session {
	root := builtins.NewRootScope(out)
	scope, rc := model.NewSessionScope(root)
	return &Session{scope: scope, rc: rc}
}

// Eval elaborates and executes line, returning the value of its last
// expression statement (or an ok=false if line held no expression
// statement, e.g. a bare `fn`/`enum`/`let` declaration).
func (s *Session) Eval(line string) (model.Value, bool, error) {
	astProg, err := parser.Parse(line, "<repl>")
	if err != nil {
		return model.Value{}, false, err
	}
	nodes, err := model.ElaborateStatement(astProg.Statements, s.scope, s.rc)
	if err != nil {
		return model.Value{}, false, err
	}
	var (
		last model.Value
		ok   bool
	)
	for _, n := range nodes {
		v, err := model.Exec(n, s.rc)
		if err != nil {
			return model.Value{}, false, err
		}
		if _, isExpr := n.(model.Expr); isExpr {
			last, ok = v, true
		}
	}
	return last, ok, nil
}

// Start runs the read-eval-print loop, reading lines from the terminal and
// writing results to out, until EOF or :quit,
// grounded on the teacher's internal/repl/repl.go liner-driven loop, cut
// down to EPL's statement-at-a-time evaluation model.
func Start(out io.Writer) {
	sess := New(out)
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".epl_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s\n", bold("EPL"))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt("epl> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		sess.history = append(sess.history, input)

		if strings.HasPrefix(input, ":") {
			if handleCommand(input, out) {
				break
			}
			continue
		}

		v, ok, err := sess.Eval(input)
		if err != nil {
			printError(out, err)
			continue
		}
		if ok {
			if _, isUnit := v.Type().(model.UnitType); !isUnit {
				fmt.Fprintln(out, v.String())
			}
		}
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// handleCommand processes a `:`-prefixed REPL command, returning true if
// the session should terminate.
func handleCommand(cmd string, out io.Writer) bool {
	switch strings.Fields(cmd)[0] {
	case ":quit", ":q", ":exit":
		fmt.Fprintln(out, green("Goodbye!"))
		return true
	case ":help", ":h":
		fmt.Fprintln(out, "enter any top-level EPL statement (let, fn, enum, type, or an expression)")
		fmt.Fprintln(out, ":help   show this message")
		fmt.Fprintln(out, ":quit   exit the session")
		return false
	default:
		fmt.Fprintf(out, "unknown command %q, try :help\n", cmd)
		return false
	}
}

func printError(out io.Writer, err error) {
	if report, ok := err.(*errors.Report); ok {
		fmt.Fprintf(out, "%s: %s\n", red(report.Code), report.Error())
		return
	}
	fmt.Fprintf(out, "%s: %v\n", red("error"), err)
}
