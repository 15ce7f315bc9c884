package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"rlint/internal/diag"
	"rlint/internal/source"
)

func TestJSONShape(t *testing.T) {
	d := located(diag.New(diag.SevWarning, diag.RuleSemicolons,
		source.Span{Start: 6, End: 7}, "trailing semicolon").
		WithSuggestion("remove the semicolon").
		WithFix("", 6, 7, false), 1, 6)

	var buf strings.Builder
	if err := JSON(&buf, []File{{Path: "a.R", Diags: []diag.Diagnostic{d}}}, JSONOpts{}); err != nil {
		t.Fatalf("json: %v", err)
	}

	var out Output
	if err := json.Unmarshal([]byte(buf.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("unexpected output %+v", out)
	}
	got := out.Diagnostics[0]
	if got.File != "a.R" || got.Rule != "semicolons" || got.Severity != "warning" {
		t.Fatalf("unexpected identity fields %+v", got)
	}
	if got.Start != 6 || got.End != 7 || got.Row != 1 || got.Col != 6 {
		t.Fatalf("unexpected location %+v", got)
	}
	if got.Fix == nil || got.Fix.Content != "" || got.Fix.End != 7 || got.Fix.ToSkip {
		t.Fatalf("unexpected fix %+v", got.Fix)
	}
}

func TestJSONOmitsEmptyOptionalFields(t *testing.T) {
	d := located(diag.New(diag.SevWarning, diag.RuleDuplicateDefinition,
		source.Span{Start: 0, End: 6}, "shared is also defined in b.R"), 1, 0)

	var buf strings.Builder
	if err := JSON(&buf, []File{{Path: "a.R", Diags: []diag.Diagnostic{d}}}, JSONOpts{}); err != nil {
		t.Fatalf("json: %v", err)
	}
	if strings.Contains(buf.String(), "\"fix\"") || strings.Contains(buf.String(), "\"suggestion\"") {
		t.Fatalf("optional fields must be omitted when empty:\n%s", buf.String())
	}
}

func TestJSONCleanRun(t *testing.T) {
	var buf strings.Builder
	if err := JSON(&buf, []File{{Path: "a.R"}}, JSONOpts{}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out Output
	if err := json.Unmarshal([]byte(buf.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != 0 || out.Diagnostics == nil {
		t.Fatalf("clean run must emit an empty array, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "\"diagnostics\": []") {
		t.Fatalf("diagnostics array missing:\n%s", buf.String())
	}
}

func TestJSONToSkipSurvives(t *testing.T) {
	d := located(diag.New(diag.SevWarning, diag.RuleSemicolons,
		source.Span{Start: 6, End: 7}, "trailing semicolon").
		WithFix("", 6, 7, true), 1, 6)

	var buf strings.Builder
	if err := JSON(&buf, []File{{Path: "a.R", Diags: []diag.Diagnostic{d}}}, JSONOpts{}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out Output
	if err := json.Unmarshal([]byte(buf.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Diagnostics[0].Fix == nil || !out.Diagnostics[0].Fix.ToSkip {
		t.Fatalf("to_skip flag lost: %+v", out.Diagnostics[0].Fix)
	}
}
