// Package transpile emits portable C for an elaborated EPL program (§4.6).
package transpile

import (
	"fmt"
	"strings"
)

// Output is an append-only tree of rendered segments with insertion points,
// rendered once at the end (design note 9: "avoid string concatenation at
// each emit"). A child Output created with Child lets a caller back-fill a
// declaration into an earlier position — typedefs hoisted above the
// statement that first needs them, or a temp variable declared in a
// block's prelude before its body is written — without knowing the final
// text up front.
type Output struct {
	indented bool
	items    []outputItem
}

type outputItem struct {
	frag   string
	nested *Output
}

// NewOutput creates an empty, unindented Output.
func NewOutput() *Output {
	return &Output{}
}

// Indent marks o so every line of its rendered content is prefixed with two
// spaces, then returns o for chaining.
func (o *Output) Indent() *Output {
	o.indented = true
	return o
}

// Emit appends a literal fragment (a token or a pre-rendered chunk of C).
func (o *Output) Emit(frag string) {
	o.items = append(o.items, outputItem{frag: frag})
}

// Emitf is Emit with fmt.Sprintf-style formatting.
func (o *Output) Emitf(format string, args ...any) {
	o.Emit(fmt.Sprintf(format, args...))
}

// Child appends a new nested Output at the current position and returns it,
// the insertion point a later emit call can keep writing into.
func (o *Output) Child() *Output {
	c := &Output{}
	o.items = append(o.items, outputItem{nested: c})
	return c
}

// Render flattens the tree into C source text, joining adjacent fragments
// with a single space except around `();,{}`, where spacing is suppressed
// or reinstated to produce readable output (§4.6).
func (o *Output) Render() string {
	toks := o.tokens()
	var sb strings.Builder
	for i, t := range toks {
		if i > 0 && needsSpace(toks[i-1], t) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t)
	}
	text := sb.String()
	if !o.indented {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "  " + l
		}
	}
	return strings.Join(lines, "\n")
}

// tokens collects every leaf fragment and rendered nested Output, in order,
// splitting multi-word fragments so spacing rules apply uniformly between
// them too.
func (o *Output) tokens() []string {
	var out []string
	for _, it := range o.items {
		if it.nested != nil {
			out = append(out, it.nested.Render())
			continue
		}
		out = append(out, strings.Fields(it.frag)...)
		if it.frag == "\n" {
			out = append(out, "\n")
		}
	}
	return out
}

func needsSpace(prev, next string) bool {
	if prev == "" || next == "" {
		return false
	}
	if prev == "\n" || next == "\n" {
		return false
	}
	noSpaceBeforeNext := strings.ContainsAny(next[:1], ")],;.") || next == "(" || next == "{"
	noSpaceAfterPrev := prev == "(" || prev == "{" || strings.HasSuffix(prev, "(")
	if noSpaceBeforeNext || noSpaceAfterPrev {
		return false
	}
	return true
}
