// Package sid allocates stable small-integer identifiers for model nodes
// within a single compile, used to mint unique C symbol names for
// transpiled functions and the top-level main (spec.md §4.6).
package sid

import "fmt"

// ID is a stable identifier, unique within one compile/interpret run.
type ID uint64

// Allocator hands out monotonically increasing IDs. A fresh Allocator is
// created per compile; IDs need not be stable across separate runs, which
// is all §4.6 needs (unlike the teacher's cross-run content-addressed
// SIDs, nothing here is persisted or diffed between builds).
type Allocator struct {
	next ID
}

// NewAllocator creates an Allocator starting at 1 (0 means "unassigned").
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Next returns the next unused ID.
func (a *Allocator) Next() ID {
	id := a.next
	a.next++
	return id
}

// Mangle produces a unique, valid C identifier for name, disambiguated by
// id. Used for every C name the transpiler mints: functions (one C
// function per Function node, cached on first emission), variables,
// temporaries and typedefs.
func Mangle(name string, id ID) string {
	if name == "" {
		name = "fn"
	}
	return fmt.Sprintf("epl_%s_%d", sanitize(name), id)
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			out = append(out, r)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}
