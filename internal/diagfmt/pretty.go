package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rlint/internal/diag"
)

// Pretty writes compiler-style reports:
//
//	<path>:<row>:<col>: <SEVERITY> <rule>: <message>
//	  <source line>
//	      ^~~~
//	  = <suggestion>
//
// Rows and columns are printed 1-based for editors. The underline covers the
// span's portion of its first line; widths are measured in display cells so
// wide runes and tabs keep the caret aligned.
func Pretty(w io.Writer, files []File, opts PrettyOpts) error {
	for _, f := range files {
		path := displayPath(f.Path, opts.PathMode)
		for _, d := range f.Diags {
			if err := prettyOne(w, path, f.Content, d, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettyOne(w io.Writer, path string, content []byte, d diag.Diagnostic, opts PrettyOpts) error {
	sev := d.Severity.String()
	rule := string(d.Rule)
	if opts.Color {
		sev = sevColor(d.Severity).Sprint(sev)
		rule = color.New(color.Bold).Sprint(rule)
	}
	if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, d.Row, d.Col+1, sev, rule, d.Message); err != nil {
		return err
	}

	if line, off, ok := lineAt(content, d); ok {
		marker := "^"
		if extra := spanWidth(line, off, d) - 1; extra > 0 {
			marker += strings.Repeat("~", extra)
		}
		if opts.Color {
			marker = sevColor(d.Severity).Sprint(marker)
		}
		pad := strings.Repeat(" ", runewidth.StringWidth(expandTabs(line[:off])))
		if _, err := fmt.Fprintf(w, "  %s\n  %s%s\n", expandTabs(line), pad, marker); err != nil {
			return err
		}
	}

	if d.Suggestion != "" {
		if _, err := fmt.Fprintf(w, "  = %s\n", d.Suggestion); err != nil {
			return err
		}
	}
	return nil
}

// lineAt recovers the diagnostic's first line from content. Col is a byte
// column, so the line starts Col bytes before the span.
func lineAt(content []byte, d diag.Diagnostic) (line string, off int, ok bool) {
	start := int(d.Primary.Start) - int(d.Col)
	if start < 0 || int(d.Primary.Start) > len(content) {
		return "", 0, false
	}
	end := start
	for end < len(content) && content[end] != '\n' {
		end++
	}
	line = string(content[start:end])
	off = int(d.Col)
	if off > len(line) {
		off = len(line)
	}
	return line, off, true
}

// spanWidth measures the display width of the span's slice of the line,
// clamped to the line end and never below one cell.
func spanWidth(line string, off int, d diag.Diagnostic) int {
	n := int(d.Primary.End) - int(d.Primary.Start)
	if off+n > len(line) {
		n = len(line) - off
	}
	if n < 1 {
		return 1
	}
	return max(1, runewidth.StringWidth(expandTabs(line[off:off+n])))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func sevColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	}
	return color.New(color.FgCyan, color.Bold)
}
