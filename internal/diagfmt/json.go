package diagfmt

import (
	"encoding/json"
	"io"
	"strings"

	"rlint/internal/diag"
)

// FixJSON is the machine-readable form of an autofix. ToSkip marks fixes the
// engine reports but refuses to apply.
type FixJSON struct {
	Content string `json:"content"`
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
	ToSkip  bool   `json:"to_skip"`
}

// DiagnosticJSON is one finding. Start and End are byte offsets into the
// file; Row is 1-based and Col is 0-based.
type DiagnosticJSON struct {
	File       string   `json:"file"`
	Rule       string   `json:"rule"`
	Severity   string   `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Start      uint32   `json:"start"`
	End        uint32   `json:"end"`
	Row        uint32   `json:"row"`
	Col        uint32   `json:"col"`
	Fix        *FixJSON `json:"fix,omitempty"`
}

// Output is the top-level JSON document.
type Output struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// JSON writes every diagnostic as one indented JSON document. The
// diagnostics array is always present, so a clean run still emits
// well-formed output.
func JSON(w io.Writer, files []File, opts JSONOpts) error {
	out := Output{Diagnostics: []DiagnosticJSON{}}
	for _, f := range files {
		path := displayPath(f.Path, opts.PathMode)
		for _, d := range f.Diags {
			out.Diagnostics = append(out.Diagnostics, makeDiagnostic(path, d))
		}
	}
	out.Count = len(out.Diagnostics)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&out)
}

func makeDiagnostic(path string, d diag.Diagnostic) DiagnosticJSON {
	j := DiagnosticJSON{
		File:       path,
		Rule:       string(d.Rule),
		Severity:   strings.ToLower(d.Severity.String()),
		Message:    d.Message,
		Suggestion: d.Suggestion,
		Start:      d.Primary.Start,
		End:        d.Primary.End,
		Row:        d.Row,
		Col:        d.Col,
	}
	if d.Fix != nil {
		j.Fix = &FixJSON{
			Content: d.Fix.Content,
			Start:   d.Fix.Start,
			End:     d.Fix.End,
			ToSkip:  d.Fix.ToSkip,
		}
	}
	return j
}
