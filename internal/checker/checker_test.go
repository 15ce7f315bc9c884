package checker

import (
	"strings"
	"testing"

	"rlint/internal/diag"
	"rlint/internal/parser"
	"rlint/internal/source"
)

func runCheck(t *testing.T, src string, opts Options) []diag.Diagnostic {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.R", []byte(src))
	file, err := parser.Parse(fs.Get(id), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return Check(file, fs, opts)
}

func onlyRule(t *testing.T, diags []diag.Diagnostic, rule diag.RuleName) diag.Diagnostic {
	t.Helper()
	var out []diag.Diagnostic
	for _, d := range diags {
		if d.Rule == rule {
			out = append(out, d)
		}
	}
	if len(out) != 1 {
		t.Fatalf("expected exactly 1 %s diagnostic, got %d: %v", rule, len(out), out)
	}
	return out[0]
}

func TestTrailingSemicolon(t *testing.T) {
	d := onlyRule(t, runCheck(t, "x <- 1;\n", Options{}), diag.RuleSemicolons)
	if d.Fix == nil || d.Fix.Content != "" {
		t.Fatalf("expected deletion fix, got %+v", d.Fix)
	}
	if d.Fix.End-d.Fix.Start != 1 {
		t.Fatalf("fix must cover exactly the semicolon, got [%d,%d)", d.Fix.Start, d.Fix.End)
	}
	if d.Row != 1 || d.Col != 6 {
		t.Fatalf("expected row 1 col 6, got row %d col %d", d.Row, d.Col)
	}
}

func TestCompoundSemicolon(t *testing.T) {
	d := onlyRule(t, runCheck(t, "a <- 1; b <- 2\n", Options{}), diag.RuleSemicolons)
	if d.Fix == nil || !strings.HasPrefix(d.Fix.Content, "\n") {
		t.Fatalf("expected newline fix, got %+v", d.Fix)
	}
}

func TestCompoundSemicolonKeepsIndent(t *testing.T) {
	d := onlyRule(t, runCheck(t, "f <- function() {\n  a <- 1; b <- 2\n}\n", Options{}), diag.RuleSemicolons)
	if d.Fix == nil || d.Fix.Content != "\n  " {
		t.Fatalf("expected fix to keep two-space indent, got %+v", d.Fix)
	}
}

func TestTrueFalseSymbol(t *testing.T) {
	d := onlyRule(t, runCheck(t, "x <- T\n", Options{}), diag.RuleTrueFalseSymbol)
	if d.Fix == nil || d.Fix.Content != "TRUE" {
		t.Fatalf("expected TRUE replacement, got %+v", d.Fix)
	}
}

func TestTrueFalseSymbolSkipsBindingTarget(t *testing.T) {
	diags := runCheck(t, "T <- 1\n", Options{})
	for _, d := range diags {
		if d.Rule == diag.RuleTrueFalseSymbol {
			t.Fatalf("rebinding T must not be flagged: %v", d)
		}
	}
}

func TestEqualsNA(t *testing.T) {
	d := onlyRule(t, runCheck(t, "y <- x == NA\n", Options{}), diag.RuleEqualsNA)
	if d.Fix == nil || d.Fix.Content != "is.na(x)" {
		t.Fatalf("expected is.na(x), got %+v", d.Fix)
	}
}

func TestNotEqualsNA(t *testing.T) {
	d := onlyRule(t, runCheck(t, "y <- x != NA\n", Options{}), diag.RuleEqualsNA)
	if d.Fix == nil || d.Fix.Content != "!is.na(x)" {
		t.Fatalf("expected !is.na(x), got %+v", d.Fix)
	}
}

func TestSeqAlong(t *testing.T) {
	d := onlyRule(t, runCheck(t, "for (i in 1:length(x)) print(i)\n", Options{}), diag.RuleSeqAlong)
	if d.Fix == nil || d.Fix.Content != "seq_along(x)" {
		t.Fatalf("expected seq_along(x), got %+v", d.Fix)
	}
}

func TestSeqAlongIgnoresOtherRanges(t *testing.T) {
	diags := runCheck(t, "for (i in 2:length(x)) print(i)\n", Options{})
	for _, d := range diags {
		if d.Rule == diag.RuleSeqAlong {
			t.Fatalf("2:length(x) must not be flagged: %v", d)
		}
	}
}

func TestNameNormalization(t *testing.T) {
	// "cafe" with a combining acute accent, not the precomposed code point
	d := onlyRule(t, runCheck(t, "caf\u0065\u0301 <- 1\n", Options{}), diag.RuleNameNormalization)
	if d.Fix == nil || d.Fix.Content != "caf\u00e9" {
		t.Fatalf("expected precomposed replacement, got %+v", d.Fix)
	}
}

func TestUnreachableThroughCheck(t *testing.T) {
	d := onlyRule(t, runCheck(t, "f <- function() {\n  return(1)\n  x <- 5\n}\n", Options{}),
		diag.RuleUnreachableCode)
	if !strings.Contains(d.Message, "after return") {
		t.Fatalf("unexpected message %q", d.Message)
	}
	if d.Fix == nil || d.Fix.Content != "" {
		t.Fatalf("expected deletion fix, got %+v", d.Fix)
	}
	if d.Row != 3 {
		t.Fatalf("expected row 3, got %d", d.Row)
	}
}

func TestSuppressionRoundTrip(t *testing.T) {
	// flagged without the comment
	if diags := runCheck(t, "x <- 1;\n", Options{}); len(diags) == 0 {
		t.Fatalf("expected a finding without suppression")
	}
	// silenced with it, and the suppression counts as used
	diags := runCheck(t, "# ignore semicolons: legacy terminator\nx <- 1;\n", Options{})
	for _, d := range diags {
		if d.Rule == diag.RuleSemicolons {
			t.Fatalf("suppressed finding leaked: %v", d)
		}
		if d.Rule == diag.RuleUnusedSuppression {
			t.Fatalf("suppression that fired must not be unused: %v", d)
		}
	}
}

func TestUnusedSuppressionSurfaces(t *testing.T) {
	d := onlyRule(t, runCheck(t, "# ignore semicolons: nothing here\nx <- 1\n", Options{}),
		diag.RuleUnusedSuppression)
	if d.Row != 1 {
		t.Fatalf("unused report must point at the comment, got row %d", d.Row)
	}
}

func TestFixSkippedOverInteriorComment(t *testing.T) {
	src := "f <- function() {\n  return(1)\n  x <- 5 # keep?\n  y <- 6\n}\n"
	d := onlyRule(t, runCheck(t, src, Options{}), diag.RuleUnreachableCode)
	if d.Fix == nil || !d.Fix.ToSkip {
		t.Fatalf("fix over a comment must be marked to skip, got %+v", d.Fix)
	}
}

func TestDisabledRule(t *testing.T) {
	diags := runCheck(t, "x <- 1;\n", Options{
		Enabled: map[diag.RuleName]bool{diag.RuleSemicolons: false},
	})
	for _, d := range diags {
		if d.Rule == diag.RuleSemicolons {
			t.Fatalf("disabled rule still reported: %v", d)
		}
	}
}

func TestDuplicateDefinition(t *testing.T) {
	fs := source.NewFileSet()
	idA := fs.AddVirtual("a.R", []byte("shared <- 1\n"))
	idB := fs.AddVirtual("b.R", []byte("shared <- 2\n"))
	fileA, err := parser.Parse(fs.Get(idA), nil)
	if err != nil {
		t.Fatalf("parse a: %v", err)
	}
	fileB, err := parser.Parse(fs.Get(idB), nil)
	if err != nil {
		t.Fatalf("parse b: %v", err)
	}

	ix := NewIndex()
	ix.AddFile("a.R", fileA)
	ix.AddFile("b.R", fileB)

	d := onlyRule(t, Check(fileA, fs, Options{Index: ix, Path: "a.R"}), diag.RuleDuplicateDefinition)
	if !strings.Contains(d.Message, "b.R") {
		t.Fatalf("message must name the other file: %q", d.Message)
	}

	// a lone definition stays quiet
	lone := NewIndex()
	lone.AddFile("a.R", fileA)
	for _, d := range Check(fileA, fs, Options{Index: lone, Path: "a.R"}) {
		if d.Rule == diag.RuleDuplicateDefinition {
			t.Fatalf("single definition flagged: %v", d)
		}
	}
}

func TestDiagnosticsSorted(t *testing.T) {
	diags := runCheck(t, "y <- x == NA\nz <- T\n", Options{})
	for i := 1; i < len(diags); i++ {
		if diags[i].Primary.Start < diags[i-1].Primary.Start {
			t.Fatalf("diagnostics out of order: %v", diags)
		}
	}
}
