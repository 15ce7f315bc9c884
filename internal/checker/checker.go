// Package checker runs the enabled rules over one parsed document and
// returns located, suppression-filtered diagnostics. One Check call is one
// pass; the fix convergence loop calls it again after every rewrite.
package checker

import (
	"sort"

	"rlint/internal/ast"
	"rlint/internal/diag"
	"rlint/internal/source"
	"rlint/internal/suppress"
)

// Options configures one check pass.
type Options struct {
	// Enabled overrides the registry defaults per rule. Rules absent from the
	// map keep their default.
	Enabled map[diag.RuleName]bool

	// Index is the cross-file binding table; nil disables cross-file rules.
	Index *Index

	// Path is the display path of the document, used by cross-file rules to
	// recognize their own entries in the index.
	Path string

	// Suppress is a pre-built suppression manager. Chunked documents build
	// their managers up front so file-level entries can be threaded; nil
	// builds one from the file's comments.
	Suppress *suppress.Manager

	// DeferUnused skips the unused-suppression report at the end of the pass.
	// Chunked documents defer until every chunk has been filtered.
	DeferUnused bool
}

func (o Options) enabled(rule diag.RuleName) bool {
	if o.Enabled != nil {
		if v, ok := o.Enabled[rule]; ok {
			return v
		}
	}
	info, ok := diag.LookupRule(rule)
	return ok && info.DefaultEnabled
}

// pass carries the per-document state shared by the rule functions.
type pass struct {
	file    *ast.File
	srcFile *source.File
	src     []byte
	path    string
	index   *Index
	out     []diag.Diagnostic
}

func (p *pass) report(d diag.Diagnostic) {
	p.out = append(p.out, d)
}

func (p *pass) text(sp source.Span) string {
	return string(p.src[sp.Start:sp.End])
}

// ruleTable drives dispatch. Order matters only for deterministic output
// before the final sort.
var ruleTable = []struct {
	name diag.RuleName
	fn   func(*pass)
}{
	{diag.RuleUnreachableCode, checkUnreachable},
	{diag.RuleSemicolons, checkSemicolons},
	{diag.RuleTrueFalseSymbol, checkTrueFalseSymbol},
	{diag.RuleEqualsNA, checkEqualsNA},
	{diag.RuleSeqAlong, checkSeqAlong},
	{diag.RuleNameNormalization, checkNameNormalization},
	{diag.RuleDuplicateDefinition, checkDuplicateDefinition},
}

// Check runs every enabled rule over the parsed file and returns the
// surviving diagnostics: suppressed findings are dropped, fixes over regions
// with interior comments are marked to skip, and Row/Col are back-filled.
func Check(f *ast.File, fileSet *source.FileSet, opts Options) []diag.Diagnostic {
	m := opts.Suppress
	if m == nil {
		m = suppress.FromFile(f)
	}

	p := &pass{
		file:    f,
		srcFile: fileSet.Get(f.FileID),
		src:     f.Src,
		path:    opts.Path,
		index:   opts.Index,
	}
	for _, entry := range ruleTable {
		if opts.enabled(entry.name) {
			entry.fn(p)
		}
	}

	out := p.out[:0]
	for _, d := range p.out {
		if m.IsSuppressed(d.Primary, d.Rule) {
			continue
		}
		out = append(out, d)
	}

	for _, d := range m.DrainDiagnostics() {
		if opts.enabled(d.Rule) && !m.IsSuppressed(d.Primary, d.Rule) {
			out = append(out, d)
		}
	}
	if !opts.DeferUnused {
		out = append(out, unusedFrom(m, opts)...)
	}

	finalize(out, f, fileSet)
	sortDiagnostics(out)
	return out
}

// UnusedSuppressions produces the unused-suppression report for a manager.
// Chunked documents call it per chunk manager after every chunk was checked
// with DeferUnused set, so suppressions used by a later chunk stay silent.
func UnusedSuppressions(m *suppress.Manager, f *ast.File, fileSet *source.FileSet, opts Options) []diag.Diagnostic {
	out := unusedFrom(m, opts)
	finalize(out, f, fileSet)
	sortDiagnostics(out)
	return out
}

func unusedFrom(m *suppress.Manager, opts Options) []diag.Diagnostic {
	if !opts.enabled(diag.RuleUnusedSuppression) {
		return nil
	}
	return m.UnusedDiagnostics()
}

// finalize back-fills Row/Col from the primary span and marks fixes whose
// replacement range holds a comment: applying those would destroy text the
// author wrote, so they are reported but skipped.
func finalize(diags []diag.Diagnostic, f *ast.File, fileSet *source.FileSet) {
	for i := range diags {
		d := &diags[i]
		start, _ := fileSet.Resolve(d.Primary)
		d.Row = start.Line
		d.Col = start.Col

		if d.Fix != nil && !d.Fix.ToSkip && fixCoversComment(f, d.Fix) {
			d.Fix.ToSkip = true
		}
	}
}

func fixCoversComment(f *ast.File, fix *diag.Fix) bool {
	for _, c := range f.Comments {
		if c.Span.Start < fix.End && c.Span.End > fix.Start {
			return true
		}
	}
	return false
}

func sortDiagnostics(diags []diag.Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Primary.Start != b.Primary.Start {
			return a.Primary.Start < b.Primary.Start
		}
		if a.Primary.End != b.Primary.End {
			return a.Primary.End < b.Primary.End
		}
		return a.Rule < b.Rule
	})
}
