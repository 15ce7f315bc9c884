package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rlint/internal/config"
	"rlint/internal/diag"
	"rlint/internal/source"
)

func spanOf(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.R", "x <- 1\n")
	writeFile(t, dir, "b.r", "y <- 2\n")
	writeFile(t, dir, "doc.Rmd", "```{r}\nz <- 3\n```\n")
	writeFile(t, dir, "notes.txt", "not code\n")
	writeFile(t, dir, "renv/activate.R", "ignore <- TRUE\n")
	writeFile(t, dir, ".hidden/h.R", "h <- 1\n")

	cfg := config.Default()
	cfg.Files.Exclude = []string{"renv/"}

	files, err := Discover([]string{dir}, cfg)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %v", files)
	}
	for _, f := range files {
		base := filepath.Base(f)
		if base != "a.R" && base != "b.r" && base != "doc.Rmd" {
			t.Fatalf("unexpected file %s", f)
		}
	}
}

func TestRunCheckMode(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeFile(t, dir, "a.R", "x <- T\n")

	results, err := Run(context.Background(), []string{dir}, Options{Config: config.Default()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	found := false
	for _, d := range results[0].Diags {
		if d.Rule == diag.RuleTrueFalseSymbol {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a true_false_symbol finding, got %v", results[0].Diags)
	}
	if results[0].Fixed {
		t.Fatalf("check mode must not rewrite files")
	}
}

func TestRunCachedSecondPass(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeFile(t, dir, "a.R", "x <- T\n")

	opts := Options{Config: config.Default()}
	first, err := Run(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := Run(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(first[0].Diags) != len(second[0].Diags) {
		t.Fatalf("cached run disagrees: %v vs %v", first[0].Diags, second[0].Diags)
	}
	for i := range first[0].Diags {
		a, b := first[0].Diags[i], second[0].Diags[i]
		if a.Rule != b.Rule || a.Message != b.Message || a.Row != b.Row || a.Col != b.Col {
			t.Fatalf("cached diagnostic differs: %+v vs %+v", a, b)
		}
	}
}

func TestRunFixMode(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.R", "x <- T;\n")

	results, err := Run(context.Background(), []string{dir}, Options{
		Config: config.Default(),
		Fix:    true,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 1 || !results[0].Fixed {
		t.Fatalf("expected a fixed file, got %+v", results)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "x <- TRUE\n" {
		t.Fatalf("unexpected rewritten content %q", got)
	}
}

func TestRunFixDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.R", "x <- T;\n")

	results, err := Run(context.Background(), []string{dir}, Options{
		Config: config.Default(),
		Fix:    true,
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 1 || !results[0].Fixed {
		t.Fatalf("dry run must still report the file as fixable, got %+v", results)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "x <- T;\n" {
		t.Fatalf("dry run must not touch the file, got %q", got)
	}
}

func TestRunDuplicateDefinitionAcrossFiles(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeFile(t, dir, "a.R", "shared <- 1\n")
	writeFile(t, dir, "b.R", "shared <- 2\n")

	results, err := Run(context.Background(), []string{dir}, Options{Config: config.Default()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	dupes := 0
	for _, r := range results {
		for _, d := range r.Diags {
			if d.Rule == diag.RuleDuplicateDefinition {
				dupes++
			}
		}
	}
	if dupes != 2 {
		t.Fatalf("expected both files flagged, got %d", dupes)
	}
}

func TestRunIsolatesBrokenFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeFile(t, dir, "bad.R", "x <- (\n")
	writeFile(t, dir, "good.R", "y <- T\n")

	results, err := Run(context.Background(), []string{dir}, Options{Config: config.Default()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var parseErrs, findings int
	for _, r := range results {
		for _, d := range r.Diags {
			switch d.Rule {
			case diag.RuleParseError:
				parseErrs++
			case diag.RuleTrueFalseSymbol:
				findings++
			}
		}
	}
	if parseErrs == 0 || findings != 1 {
		t.Fatalf("expected parse error plus healthy finding, got %+v", results)
	}
	if !HasErrors(results) {
		t.Fatalf("parse errors must surface through HasErrors")
	}
}

func TestCachedDiagRoundTrip(t *testing.T) {
	in := []diag.Diagnostic{
		diag.New(diag.SevWarning, diag.RuleSemicolons, spanOf(3, 4), "trailing semicolon").
			WithSuggestion("remove the semicolon").
			WithFix("", 3, 4, true),
	}
	in[0].Row = 1
	in[0].Col = 3
	out := fromCached(toCached(in))
	if len(out) != 1 {
		t.Fatalf("expected 1 diagnostic")
	}
	a, b := in[0], out[0]
	if a.Rule != b.Rule || a.Message != b.Message || a.Suggestion != b.Suggestion ||
		a.Row != b.Row || a.Col != b.Col || a.Primary.Start != b.Primary.Start {
		t.Fatalf("round trip lost fields: %+v vs %+v", a, b)
	}
	if b.Fix == nil || !b.Fix.ToSkip || b.Fix.End != 4 {
		t.Fatalf("fix lost in round trip: %+v", b.Fix)
	}
}
