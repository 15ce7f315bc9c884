package config

import (
	"os"
	"path/filepath"
	"testing"

	"rlint/internal/diag"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
jobs = 4

[rules]
disable = ["equals_na"]

[files]
exclude = ["renv/", "*.gen.R"]

[fix]
max_iterations = 3

[output]
format = "json"
path_mode = "relative"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Jobs != 4 || c.Fix.MaxIterations != 3 || c.Output.Format != "json" {
		t.Fatalf("unexpected config %+v", c)
	}
	enabled := c.EnabledRules()
	if v, ok := enabled[diag.RuleEqualsNA]; !ok || v {
		t.Fatalf("equals_na must be disabled, got %v", enabled)
	}
	if _, ok := enabled[diag.RuleSemicolons]; ok {
		t.Fatalf("unlisted rules must keep their default")
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "jobs = 2\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Fix.MaxIterations != 10 || c.Output.Format != "pretty" || c.Output.PathMode != "auto" {
		t.Fatalf("defaults not preserved: %+v", c)
	}
	if c.EnabledRules() != nil {
		t.Fatalf("no rule lists must yield nil overrides")
	}
}

func TestLoadRejectsUnknownRule(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[rules]\ndisable = [\"no_such_rule\"]\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an unknown rule name")
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "speling = true\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an unknown key")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "jobs = 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("find: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("expected manifest at root, got %s", path)
	}
}

func TestExcluded(t *testing.T) {
	var c Config
	c.Files.Exclude = []string{"renv/", "*.gen.R", "scripts/tmp.R"}
	cases := []struct {
		path string
		want bool
	}{
		{"renv/activate.R", true},
		{"renv", true},
		{"renvlike/x.R", false},
		{"deep/model.gen.R", true},
		{"scripts/tmp.R", true},
		{"scripts/main.R", false},
	}
	for _, tc := range cases {
		if got := c.Excluded(tc.path); got != tc.want {
			t.Fatalf("Excluded(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
