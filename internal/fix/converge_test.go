package fix

import (
	"testing"

	"rlint/internal/checker"
	"rlint/internal/diag"
	"rlint/internal/source"
)

func spanAt(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestConvergeFixedPoint(t *testing.T) {
	fs := source.NewFileSet()
	res := Converge(fs, "test.R", []byte("x <- T;\n"), 10, checker.Options{})
	if !res.Converged {
		t.Fatalf("expected convergence")
	}
	if got := string(res.Content); got != "x <- TRUE\n" {
		t.Fatalf("unexpected content %q", got)
	}
	if res.AppliedTotal != 2 {
		t.Fatalf("expected 2 applied fixes, got %d", res.AppliedTotal)
	}
	if res.Iterations != 2 {
		t.Fatalf("expected 2 iterations (fix, verify), got %d", res.Iterations)
	}
	for _, d := range res.Diags {
		if d.Fix != nil && !d.Fix.ToSkip {
			t.Fatalf("converged output still carries an applicable fix: %v", d)
		}
	}
}

func TestConvergeCleanInput(t *testing.T) {
	fs := source.NewFileSet()
	res := Converge(fs, "test.R", []byte("x <- 1\n"), 10, checker.Options{})
	if !res.Converged || res.Iterations != 1 || res.AppliedTotal != 0 {
		t.Fatalf("clean input must converge in one pass, got %+v", res)
	}
}

func TestConvergeParseError(t *testing.T) {
	fs := source.NewFileSet()
	res := Converge(fs, "test.R", []byte("x <- (\n"), 10, checker.Options{})
	if !res.Converged {
		t.Fatalf("unparseable input must stop the loop")
	}
	found := false
	for _, d := range res.Diags {
		if d.Rule == diag.RuleParseError {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a parse_error diagnostic, got %v", res.Diags)
	}
}

func TestConvergeIterationCap(t *testing.T) {
	fs := source.NewFileSet()
	res := Converge(fs, "test.R", []byte("x <- T;\n"), 1, checker.Options{})
	if res.Converged {
		t.Fatalf("cap of 1 must not report convergence when a pass applied fixes")
	}
	if got := string(res.Content); got != "x <- TRUE\n" {
		t.Fatalf("the single pass should still have applied its fixes, got %q", got)
	}
}
