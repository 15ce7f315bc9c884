package suppress

import (
	"fmt"

	"rlint/internal/ast"
	"rlint/internal/diag"
	"rlint/internal/source"
)

type nodeSuppression struct {
	comment source.Span
	target  source.Span // attached node and all its descendants
	rules   []diag.RuleName
	used    bool
}

func (n *nodeSuppression) matches(span source.Span, rule diag.RuleName) bool {
	if !n.target.Contains(span) {
		return false
	}
	if len(n.rules) == 0 {
		return true // blanket
	}
	for _, r := range n.rules {
		if r == rule {
			return true
		}
	}
	return false
}

type rangeSuppression struct {
	rule    diag.RuleName
	comment source.Span
	start   uint32
	end     uint32
	used    bool
}

// fileSuppression is shared by pointer across the chunk managers of one
// document, so a rule fired (and silenced) in any chunk marks the
// suppression used everywhere.
type fileSuppression struct {
	rule    diag.RuleName
	comment source.Span
	used    bool
}

type openRange struct {
	rule    diag.RuleName
	comment source.Span
}

// Manager is the per-document (or per-chunk) suppression index. It borrows
// the tree and source for construction only; queries are idempotent and
// side-effect free apart from used-tracking.
type Manager struct {
	fileID    source.FileID
	nodes     []nodeSuppression
	ranges    []rangeSuppression
	files     []*fileSuppression // owned by this manager
	inherited []*fileSuppression // threaded in from an earlier chunk
	diags     []diag.Diagnostic
}

// FromFile builds the suppression index from one pass over the file's
// comment trivia.
func FromFile(f *ast.File) *Manager {
	m := &Manager{fileID: f.FileID}
	firstExec := f.FirstExecOffset()
	var stack []openRange

	for _, c := range f.Comments {
		d := ParseDirective(c.Text, c.Span)
		if d == nil {
			continue
		}
		switch d.Kind {
		case DirectiveNode:
			target := f.NodeAfter(c.Span.End)
			ns := nodeSuppression{comment: c.Span, rules: d.Rules}
			if target != nil {
				ns.target = target.Span
				// Cover the remainder of the node's final line too, so
				// findings on trailing punctuation (a terminator semicolon
				// sits past the statement's span) are still silenced.
				ns.target.End = lineEndAfter(f.Src, ns.target.End)
			}
			m.nodes = append(m.nodes, ns)

		case DirectiveStart:
			stack = append(stack, openRange{rule: d.Rules[0], comment: c.Span})

		case DirectiveEnd:
			rule := d.Rules[0]
			idx := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].rule == rule {
					idx = i
					break
				}
			}
			if idx < 0 {
				m.diags = append(m.diags, diag.New(diag.SevWarning, diag.RuleUnmatchedRangeSuppression, c.Span,
					fmt.Sprintf("ignore-end for %q has no matching ignore-start", rule)))
				continue
			}
			if idx != len(stack)-1 {
				// Closed out of order: ranges must nest per rule at the same
				// depth. Close it anyway to limit cascading reports.
				m.diags = append(m.diags, diag.New(diag.SevWarning, diag.RuleUnmatchedRangeSuppression, c.Span,
					fmt.Sprintf("ignore-end for %q does not match the most recent ignore-start", rule)))
			}
			open := stack[idx]
			stack = append(stack[:idx], stack[idx+1:]...)
			m.ranges = append(m.ranges, rangeSuppression{
				rule:    rule,
				comment: open.comment,
				start:   open.comment.End,
				end:     c.Span.Start,
			})

		case DirectiveFile:
			if c.Span.Start >= firstExec {
				// Recognized only before executable content. Keep it around
				// so it is reported as unused rather than silently dropped.
				m.nodes = append(m.nodes, nodeSuppression{comment: c.Span, rules: d.Rules, target: source.Span{File: f.FileID}})
				continue
			}
			m.files = append(m.files, &fileSuppression{rule: d.Rules[0], comment: c.Span})
		}
	}

	for _, open := range stack {
		m.diags = append(m.diags, diag.New(diag.SevWarning, diag.RuleUnmatchedRangeSuppression, open.comment,
			fmt.Sprintf("ignore-start for %q has no matching ignore-end", open.rule)))
	}
	return m
}

func lineEndAfter(src []byte, off uint32) uint32 {
	for int(off) < len(src) && src[off] != '\n' {
		off++
	}
	return off
}

// ThreadFileLevel adopts the file-level suppressions owned by an earlier
// chunk's manager. Usage marks flow back through the shared pointers; only
// the owning manager reports them unused.
func (m *Manager) ThreadFileLevel(from *Manager) {
	if from == nil {
		return
	}
	m.inherited = append(m.inherited, from.files...)
	m.inherited = append(m.inherited, from.inherited...)
}

// IsSuppressed reports whether a diagnostic of rule at span is silenced.
func (m *Manager) IsSuppressed(span source.Span, rule diag.RuleName) bool {
	for _, fsup := range m.files {
		if fsup.rule == rule {
			fsup.used = true
			return true
		}
	}
	for _, fsup := range m.inherited {
		if fsup.rule == rule {
			fsup.used = true
			return true
		}
	}
	for i := range m.ranges {
		r := &m.ranges[i]
		if r.rule == rule && span.Start >= r.start && span.End <= r.end {
			r.used = true
			return true
		}
	}
	for i := range m.nodes {
		n := &m.nodes[i]
		if n.matches(span, rule) {
			n.used = true
			return true
		}
	}
	return false
}

// DrainDiagnostics returns the suppression-consistency diagnostics found
// during construction (unmatched or mismatched range pairs).
func (m *Manager) DrainDiagnostics() []diag.Diagnostic {
	out := m.diags
	m.diags = nil
	return out
}

// UnusedDiagnostics reports every suppression that silenced nothing. Call
// after all rules ran and filtering is complete; for chunked documents call
// it once per chunk manager, after every chunk was filtered.
func (m *Manager) UnusedDiagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for i := range m.nodes {
		n := &m.nodes[i]
		if n.used {
			continue
		}
		out = append(out, diag.New(diag.SevWarning, diag.RuleUnusedSuppression, n.comment,
			unusedMessage(n.rules)))
	}
	for i := range m.ranges {
		r := &m.ranges[i]
		if r.used {
			continue
		}
		out = append(out, diag.New(diag.SevWarning, diag.RuleUnusedSuppression, r.comment,
			unusedMessage([]diag.RuleName{r.rule})))
	}
	for _, fsup := range m.files {
		if fsup.used {
			continue
		}
		out = append(out, diag.New(diag.SevWarning, diag.RuleUnusedSuppression, fsup.comment,
			unusedMessage([]diag.RuleName{fsup.rule})))
	}
	return out
}

func unusedMessage(rules []diag.RuleName) string {
	if len(rules) == 0 {
		return "suppression comment silences nothing"
	}
	for _, r := range rules {
		if !diag.KnownRule(r) {
			return fmt.Sprintf("suppression names unknown rule %q", r)
		}
	}
	if len(rules) == 1 {
		return fmt.Sprintf("suppression of %q silences nothing", rules[0])
	}
	return "suppression silences nothing"
}
