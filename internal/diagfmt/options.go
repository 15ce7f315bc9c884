// Package diagfmt renders diagnostics for humans and for tools. The pretty
// formatter writes compiler-style reports with a source excerpt; the JSON
// formatter emits the stable machine-readable shape editors consume.
package diagfmt

import (
	"os"
	"path/filepath"
	"strings"

	"rlint/internal/diag"
)

// PathMode controls how file paths appear in output.
type PathMode uint8

const (
	// PathAuto prints paths exactly as they were given on the command line.
	PathAuto PathMode = iota
	PathAbsolute
	PathRelative
	PathBasename
)

// ParsePathMode maps a config string to a PathMode. Config validation
// rejects unknown values before they reach here; anything else is auto.
func ParsePathMode(s string) PathMode {
	switch s {
	case "absolute":
		return PathAbsolute
	case "relative":
		return PathRelative
	case "basename":
		return PathBasename
	}
	return PathAuto
}

// File pairs a path and the content its diagnostics refer to. Content backs
// the pretty formatter's source excerpts; the JSON formatter ignores it.
type File struct {
	Path    string
	Content []byte
	Diags   []diag.Diagnostic
}

// PrettyOpts configures the human-readable formatter.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
}

// JSONOpts configures the machine-readable formatter.
type JSONOpts struct {
	PathMode PathMode
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathRelative:
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
				return rel
			}
		}
	case PathBasename:
		return filepath.Base(path)
	}
	return path
}

// Count totals the diagnostics across files.
func Count(files []File) int {
	n := 0
	for _, f := range files {
		n += len(f.Diags)
	}
	return n
}
