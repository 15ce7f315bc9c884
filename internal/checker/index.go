package checker

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"rlint/internal/ast"
	"rlint/internal/diag"
	"rlint/internal/source"
)

// Definition records one top-level binding for the cross-file index.
type Definition struct {
	Name string
	Path string
	Span source.Span
}

// Index is the cross-file table of top-level bindings. The driver builds it
// from every parsed file before the per-file passes fan out; after that it
// is read-only, so concurrent lookups need no locking.
type Index struct {
	defs map[string][]Definition
}

func NewIndex() *Index {
	return &Index{defs: make(map[string][]Definition)}
}

// AddFile records every top-level assignment to a plain identifier.
// Assignments nested in functions or control flow are scoped and never
// conflict across files.
func (ix *Index) AddFile(path string, f *ast.File) {
	for _, stmt := range f.Prog.Children {
		target := stmt.AssignTarget()
		if target == nil || target.Kind != ast.KindIdent {
			continue
		}
		ix.defs[target.Text] = append(ix.defs[target.Text], Definition{
			Name: target.Text,
			Path: path,
			Span: target.Span,
		})
	}
}

// Definitions returns every recorded definition of name, in insertion order.
func (ix *Index) Definitions(name string) []Definition {
	return ix.defs[name]
}

// Fingerprint digests the definition table. Cache entries key on it so any
// binding moving between files invalidates results that may depend on it.
func (ix *Index) Fingerprint() [32]byte {
	names := make([]string, 0, len(ix.defs))
	for name := range ix.defs {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		for _, def := range ix.defs[name] {
			fmt.Fprintf(h, "%s\x00%s\x00%d\n", name, def.Path, def.Span.Start)
		}
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// checkDuplicateDefinition reports a top-level binding in this file that the
// index also knows from somewhere else. Offsets identify "somewhere else":
// file IDs change across reparses, offsets of other definitions do not.
func checkDuplicateDefinition(p *pass) {
	if p.index == nil {
		return
	}
	for _, stmt := range p.file.Prog.Children {
		target := stmt.AssignTarget()
		if target == nil || target.Kind != ast.KindIdent {
			continue
		}
		for _, def := range p.index.Definitions(target.Text) {
			if def.Path == p.path && def.Span.Start == target.Span.Start {
				continue
			}
			p.report(diag.New(diag.SevWarning, diag.RuleDuplicateDefinition, target.Span,
				fmt.Sprintf("%s is also defined in %s", target.Text, def.Path)))
			break
		}
	}
}
