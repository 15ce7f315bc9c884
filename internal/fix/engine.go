// Package fix applies the textual fixes carried by diagnostics and drives
// the check-fix convergence loop: apply, reparse, recheck, until a pass
// produces nothing new to apply.
package fix

import (
	"sort"

	"rlint/internal/diag"
)

// Applied records one fix that made it into the rewritten content.
type Applied struct {
	Rule    diag.RuleName
	Message string
	Start   uint32
	End     uint32
}

// Skipped records a fix that was not applied, with the reason.
type Skipped struct {
	Rule   diag.RuleName
	Reason string
}

// ApplyResult is the outcome of one Apply call over one file's content.
type ApplyResult struct {
	Content []byte
	Applied []Applied
	Skipped []Skipped
}

type candidate struct {
	d diag.Diagnostic
	f diag.Fix
}

// Apply rewrites content with every applicable fix in diags. Fixes are
// applied back to front so earlier offsets stay valid; a fix overlapping one
// already accepted is skipped rather than applied to shifted text, and the
// next convergence pass picks it up against fresh offsets.
func Apply(content []byte, diags []diag.Diagnostic) ApplyResult {
	res := ApplyResult{Content: content}

	cands := make([]candidate, 0, len(diags))
	for _, d := range diags {
		if d.Fix == nil {
			continue
		}
		if d.Fix.ToSkip {
			res.Skipped = append(res.Skipped, Skipped{Rule: d.Rule, Reason: "replacement range contains a comment"})
			continue
		}
		info, ok := diag.LookupRule(d.Rule)
		if !ok || !info.FixSafe {
			res.Skipped = append(res.Skipped, Skipped{Rule: d.Rule, Reason: "fix is not safe to apply automatically"})
			continue
		}
		cands = append(cands, candidate{d: d, f: *d.Fix})
	}
	if len(cands) == 0 {
		return res
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].f.Start != cands[j].f.Start {
			return cands[i].f.Start > cands[j].f.Start
		}
		return cands[i].f.End > cands[j].f.End
	})

	out := append([]byte(nil), content...)
	// lowest start among accepted edits; candidates run in descending order,
	// so anything reaching past it overlaps an accepted edit
	minStart := uint32(len(out)) + 1
	for _, c := range cands {
		if int(c.f.End) > len(content) || c.f.Start > c.f.End {
			res.Skipped = append(res.Skipped, Skipped{Rule: c.d.Rule, Reason: "fix range out of bounds"})
			continue
		}
		if c.f.End > minStart {
			res.Skipped = append(res.Skipped, Skipped{Rule: c.d.Rule, Reason: "overlaps an already applied fix"})
			continue
		}
		suffix := append([]byte(nil), out[c.f.End:]...)
		out = append(append(out[:c.f.Start], []byte(c.f.Content)...), suffix...)
		minStart = c.f.Start
		res.Applied = append(res.Applied, Applied{
			Rule:    c.d.Rule,
			Message: c.d.Message,
			Start:   c.f.Start,
			End:     c.f.End,
		})
	}
	res.Content = out
	return res
}
