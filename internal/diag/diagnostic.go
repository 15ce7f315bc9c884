package diag

import (
	"rlint/internal/source"
)

// Fix is a textual replacement for the span [Start, End) of the file the
// diagnostic points at. ToSkip is set when the span contains interior
// comments that a blind replacement would destroy; such fixes are reported
// but never applied.
type Fix struct {
	Content string
	Start   uint32
	End     uint32
	ToSkip  bool
}

// Diagnostic is one lint finding. Row and Col are back-filled by the checker
// from Primary before the diagnostic leaves a check pass: Row is 1-based,
// Col is 0-based.
type Diagnostic struct {
	Rule       RuleName
	Severity   Severity
	Message    string
	Suggestion string
	Primary    source.Span
	Row        uint32
	Col        uint32
	Fix        *Fix
}

// New constructs a diagnostic without location back-fill.
func New(sev Severity, rule RuleName, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Rule:     rule,
		Severity: sev,
		Primary:  primary,
		Message:  msg,
	}
}

func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestion = s
	return d
}

func (d Diagnostic) WithFix(content string, start, end uint32, toSkip bool) Diagnostic {
	d.Fix = &Fix{Content: content, Start: start, End: end, ToSkip: toSkip}
	return d
}
