// Package testkit holds checks shared by parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rlint/internal/ast"
	"rlint/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) the program span stays within file content bounds
// 2) every node span is well formed and points at the parsed file
// 3) every child span is contained in its parent's span
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || f.Prog == nil || sf == nil {
		return fmt.Errorf("nil file or program")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Prog.Span.End > lenContent {
		return fmt.Errorf("program span end beyond content: %d > %d", f.Prog.Span.End, lenContent)
	}

	var fail error
	ast.Walk(f.Prog, func(n *ast.Node) bool {
		if fail != nil {
			return false
		}
		if n.Span.End < n.Span.Start {
			fail = fmt.Errorf("inverted span on %v: %v", n.Kind, n.Span)
			return false
		}
		if n.Span.File != sf.ID {
			fail = fmt.Errorf("%v span points to different file id: got=%d want=%d", n.Kind, n.Span.File, sf.ID)
			return false
		}
		for _, child := range n.Children {
			if child == nil {
				continue
			}
			if child.Span.Start < n.Span.Start || child.Span.End > n.Span.End {
				fail = fmt.Errorf("child span %v escapes parent %v (%v in %v)",
					child.Span, n.Span, child.Kind, n.Kind)
				return false
			}
		}
		return true
	})
	return fail
}
