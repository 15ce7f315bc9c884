package checker

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"rlint/internal/ast"
	"rlint/internal/diag"
)

// checkNameNormalization flags identifiers that are not NFC-normalized.
// R treats `café` (precomposed) and `café` (combining accent) as distinct
// bindings even though editors render them identically.
func checkNameNormalization(p *pass) {
	ast.Walk(p.file.Prog, func(n *ast.Node) bool {
		if n.Kind != ast.KindIdent || n.Text == "" {
			return true
		}
		if norm.NFC.IsNormalString(n.Text) {
			return true
		}
		fixed := norm.NFC.String(n.Text)
		p.report(diag.New(diag.SevWarning, diag.RuleNameNormalization, n.Span,
			fmt.Sprintf("identifier %q is not NFC-normalized", n.Text)).
			WithSuggestion("normalize the name to its precomposed form").
			WithFix(fixed, n.Span.Start, n.Span.End, false))
		return true
	})
}
