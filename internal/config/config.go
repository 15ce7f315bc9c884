// Package config loads rlint.toml, the per-project configuration. The file
// is discovered by walking up from the working directory, so invoking the
// linter anywhere inside a project picks up the project's settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"rlint/internal/diag"
)

// ManifestName is the configuration file rlint looks for.
const ManifestName = "rlint.toml"

// Config mirrors the rlint.toml layout.
type Config struct {
	// Jobs bounds the per-file worker count; 0 means one per CPU.
	Jobs int `toml:"jobs"`

	Rules struct {
		Enable  []string `toml:"enable"`
		Disable []string `toml:"disable"`
	} `toml:"rules"`

	Files struct {
		// Exclude holds glob patterns; a pattern ending in / excludes the
		// whole directory subtree.
		Exclude []string `toml:"exclude"`
	} `toml:"files"`

	Fix struct {
		MaxIterations int `toml:"max_iterations"`
	} `toml:"fix"`

	Output struct {
		Format   string `toml:"format"`    // pretty | json
		PathMode string `toml:"path_mode"` // auto | absolute | relative | basename
	} `toml:"output"`
}

// Default returns the configuration used when no rlint.toml exists.
func Default() Config {
	var c Config
	c.Fix.MaxIterations = 10
	c.Output.Format = "pretty"
	c.Output.PathMode = "auto"
	return c
}

// Load parses and validates the manifest at path.
func Load(path string) (Config, error) {
	c := Default()
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return c, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := c.validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Find walks up from startDir looking for rlint.toml.
func Find(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func (c Config) validate() error {
	for _, name := range append(append([]string(nil), c.Rules.Enable...), c.Rules.Disable...) {
		if !diag.KnownRule(diag.RuleName(name)) {
			return fmt.Errorf("unknown rule %q", name)
		}
	}
	switch c.Output.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	switch c.Output.PathMode {
	case "auto", "absolute", "relative", "basename":
	default:
		return fmt.Errorf("unknown path mode %q", c.Output.PathMode)
	}
	if c.Fix.MaxIterations < 1 {
		return fmt.Errorf("fix.max_iterations must be at least 1")
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative")
	}
	return nil
}

// EnabledRules resolves the enable/disable lists into checker overrides.
// Rules named in neither list keep their registry default.
func (c Config) EnabledRules() map[diag.RuleName]bool {
	if len(c.Rules.Enable) == 0 && len(c.Rules.Disable) == 0 {
		return nil
	}
	out := make(map[diag.RuleName]bool, len(c.Rules.Enable)+len(c.Rules.Disable))
	for _, name := range c.Rules.Enable {
		out[diag.RuleName(name)] = true
	}
	// disable wins when a rule appears in both lists
	for _, name := range c.Rules.Disable {
		out[diag.RuleName(name)] = false
	}
	return out
}

// Excluded reports whether the slash-normalized relative path matches an
// exclude pattern.
func (c Config) Excluded(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range c.Files.Exclude {
		pattern = filepath.ToSlash(pattern)
		if dir, ok := strings.CutSuffix(pattern, "/"); ok {
			if relPath == dir || strings.HasPrefix(relPath, dir+"/") {
				return true
			}
			continue
		}
		if matched, err := filepath.Match(pattern, relPath); err == nil && matched {
			return true
		}
		// also match against the basename, so "*.gen.R" works at any depth
		if matched, err := filepath.Match(pattern, filepath.Base(relPath)); err == nil && matched {
			return true
		}
	}
	return false
}
