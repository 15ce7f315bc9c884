package ast

import (
	"rlint/internal/source"
	"rlint/internal/token"
)

// File is the parse result for one document (or one Rmd chunk).
type File struct {
	Prog     *Node
	FileID   source.FileID
	Src      []byte
	Comments []token.Trivia // every # comment, in source order
}

// FirstExecOffset returns the byte offset of the first non-comment,
// non-whitespace content, or the file length when the file holds none.
// File-level suppressions must appear before this offset.
func (f *File) FirstExecOffset() uint32 {
	if f.Prog != nil && len(f.Prog.Children) > 0 {
		return f.Prog.Children[0].Span.Start
	}
	return uint32(len(f.Src))
}

// NodesAfter collects, for suppression attachment, the outermost node whose
// span starts at or after the given offset. Among nodes starting at the same
// offset the outermost (widest) one wins, so a suppression attached to an
// assignment also covers calls nested on its right-hand side.
func (f *File) NodeAfter(off uint32) *Node {
	var best *Node
	Walk(f.Prog, func(n *Node) bool {
		if n.Kind == KindProgram {
			return true
		}
		if n.Span.Start < off {
			return true // children may still start after off
		}
		if best == nil || n.Span.Start < best.Span.Start ||
			(n.Span.Start == best.Span.Start && n.Span.End > best.Span.End) {
			best = n
		}
		return false // outermost match in this subtree found
	})
	return best
}
