// Package rmd lints the R chunks of an R Markdown document. Chunks are
// extracted by fence scanning, parsed as standalone virtual files, and their
// findings remapped onto document offsets. Rmd documents are checked only:
// rewriting a chunk in place would require tracking the prose around it, so
// fixes are stripped from the remapped diagnostics.
package rmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"rlint/internal/ast"
	"rlint/internal/checker"
	"rlint/internal/diag"
	"rlint/internal/parser"
	"rlint/internal/source"
	"rlint/internal/suppress"
)

// Chunk is one fenced R code block. Offset is the byte position of Code
// within the document.
type Chunk struct {
	Label  string
	Code   []byte
	Offset uint32
}

// IsRmdPath reports whether path looks like an R Markdown document.
func IsRmdPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".rmd")
}

// ExtractChunks scans for ```{r ...} fences and returns the enclosed code.
// Fences for other engines (```{python} and plain ``` blocks) are skipped.
func ExtractChunks(content []byte) []Chunk {
	var chunks []Chunk
	var cur *Chunk
	var code []byte

	offset := 0
	for offset < len(content) {
		lineEnd := offset
		for lineEnd < len(content) && content[lineEnd] != '\n' {
			lineEnd++
		}
		line := content[offset:lineEnd]
		nextOffset := lineEnd
		if nextOffset < len(content) {
			nextOffset++ // past the newline
		}

		trimmed := bytes.TrimSpace(line)
		switch {
		case cur == nil:
			if label, ok := chunkHeader(trimmed); ok {
				cur = &Chunk{Label: label, Offset: uint32(nextOffset)}
				code = code[:0]
			}
		case bytes.Equal(trimmed, []byte("```")):
			cur.Code = append([]byte(nil), code...)
			chunks = append(chunks, *cur)
			cur = nil
		default:
			code = append(code, content[offset:nextOffset]...)
		}
		offset = nextOffset
	}
	// an unclosed fence at EOF still yields its chunk
	if cur != nil {
		cur.Code = append([]byte(nil), code...)
		chunks = append(chunks, *cur)
	}
	return chunks
}

// chunkHeader matches ```{r}, ```{r label} and ```{r label, opts} fences.
func chunkHeader(line []byte) (label string, ok bool) {
	if !bytes.HasPrefix(line, []byte("```{r")) {
		return "", false
	}
	rest := line[len("```{r"):]
	if len(rest) == 0 || (rest[0] != '}' && rest[0] != ' ' && rest[0] != ',') {
		return "", false // another engine, e.g. ```{ruby}
	}
	header := strings.TrimSuffix(strings.TrimSpace(string(rest)), "}")
	header = strings.Trim(header, ", ")
	if idx := strings.IndexAny(header, ",="); idx >= 0 {
		if header[idx] == '=' {
			return "", true // first entry is an option, not a label
		}
		header = header[:idx]
	}
	return strings.TrimSpace(header), true
}

type parsedChunk struct {
	chunk Chunk
	file  *ast.File
	mgr   *suppress.Manager
}

// Check lints every chunk of the document and returns diagnostics in
// document coordinates. A chunk that fails to parse contributes its parse
// diagnostics without stopping the others. File-level suppressions thread
// forward: a directive in an early chunk covers the rest of the document.
func Check(fileSet *source.FileSet, path string, content []byte, opts checker.Options) []diag.Diagnostic {
	docID := fileSet.AddVirtual(path, content)

	var out []diag.Diagnostic
	var parsed []parsedChunk
	for i, ch := range ExtractChunks(content) {
		name := fmt.Sprintf("%s#chunk%d", path, i+1)
		id := fileSet.AddVirtual(name, ch.Code)

		bag := diag.NewBag(64)
		f, err := parser.Parse(fileSet.Get(id), diag.BagReporter{Bag: bag})
		if err != nil {
			for _, d := range bag.Items() {
				out = append(out, remap(fileSet, docID, ch, d))
			}
			continue
		}
		parsed = append(parsed, parsedChunk{chunk: ch, file: f, mgr: suppress.FromFile(f)})
	}

	// each manager transitively carries its predecessor's file-level entries
	for i := 1; i < len(parsed); i++ {
		parsed[i].mgr.ThreadFileLevel(parsed[i-1].mgr)
	}

	for _, pc := range parsed {
		chunkOpts := opts
		chunkOpts.Suppress = pc.mgr
		chunkOpts.DeferUnused = true
		for _, d := range checker.Check(pc.file, fileSet, chunkOpts) {
			out = append(out, remap(fileSet, docID, pc.chunk, d))
		}
	}
	// unused reports run last, after every chunk had its chance to use a
	// threaded suppression
	for _, pc := range parsed {
		for _, d := range checker.UnusedSuppressions(pc.mgr, pc.file, fileSet, opts) {
			out = append(out, remap(fileSet, docID, pc.chunk, d))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Primary.Start != out[j].Primary.Start {
			return out[i].Primary.Start < out[j].Primary.Start
		}
		return out[i].Rule < out[j].Rule
	})
	return out
}

// remap moves a chunk-local diagnostic onto document coordinates.
func remap(fileSet *source.FileSet, docID source.FileID, ch Chunk, d diag.Diagnostic) diag.Diagnostic {
	d.Primary = d.Primary.ShiftRight(ch.Offset)
	d.Primary.File = docID
	start, _ := fileSet.Resolve(d.Primary)
	d.Row = start.Line
	d.Col = start.Col
	d.Fix = nil
	return d
}
