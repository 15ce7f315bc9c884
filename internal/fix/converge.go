package fix

import (
	"rlint/internal/checker"
	"rlint/internal/diag"
	"rlint/internal/parser"
	"rlint/internal/source"
)

// Result summarises a convergence run over one file.
type Result struct {
	Content      []byte
	Diags        []diag.Diagnostic
	Iterations   int
	AppliedTotal int
	Converged    bool
}

// Converge runs check-and-apply passes over content until a pass yields no
// applicable fixes, or maxIterations passes have run. Each pass registers the
// rewritten text as the latest version of path, reparses, and rechecks, so
// every fix lands on offsets of the text it was computed for. The final
// diagnostics always describe the returned content.
func Converge(fileSet *source.FileSet, path string, content []byte, maxIterations int, opts checker.Options) Result {
	res := Result{Content: content}
	if maxIterations < 1 {
		maxIterations = 1
	}

	for {
		diags, ok := checkOnce(fileSet, path, res.Content, opts)
		res.Diags = diags
		if !ok {
			// unparseable text: nothing to apply, report and stop
			res.Converged = true
			return res
		}
		res.Iterations++

		ar := Apply(res.Content, res.Diags)
		if len(ar.Applied) == 0 {
			res.Converged = true
			return res
		}
		res.Content = ar.Content
		res.AppliedTotal += len(ar.Applied)

		if res.Iterations >= maxIterations {
			// cap reached: one more check so the diagnostics match the
			// content being returned, but nothing further is applied
			res.Diags, _ = checkOnce(fileSet, path, res.Content, opts)
			return res
		}
	}
}

// checkOnce registers content as the latest version of path, parses, and
// checks it. On parse failure it returns the parse diagnostics with ok false.
func checkOnce(fileSet *source.FileSet, path string, content []byte, opts checker.Options) (diags []diag.Diagnostic, ok bool) {
	id := fileSet.AddVirtual(path, content)
	srcFile := fileSet.Get(id)

	bag := diag.NewBag(64)
	parsed, err := parser.Parse(srcFile, diag.BagReporter{Bag: bag})
	if err != nil {
		out := append([]diag.Diagnostic(nil), bag.Items()...)
		for i := range out {
			start, _ := fileSet.Resolve(out[i].Primary)
			out[i].Row = start.Line
			out[i].Col = start.Col
		}
		return out, false
	}
	return checker.Check(parsed, fileSet, opts), true
}
