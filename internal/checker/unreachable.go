package checker

import (
	"fmt"

	"rlint/internal/ast"
	"rlint/internal/cfg"
	"rlint/internal/diag"
)

// checkUnreachable builds one control-flow graph per function body plus one
// for the top level, and reports each unreachable region once with its
// causal reason. The fix deletes the region.
func checkUnreachable(p *pass) {
	reportUnreachable(p, p.file.Prog)
	ast.Walk(p.file.Prog, func(n *ast.Node) bool {
		if n.Kind == ast.KindFunction {
			reportUnreachable(p, n.FnBody())
		}
		return true
	})
}

func reportUnreachable(p *pass, body *ast.Node) {
	if body == nil {
		return
	}
	g := cfg.Build(body)
	for _, info := range cfg.FindUnreachable(g, p.src) {
		p.report(diag.New(diag.SevWarning, diag.RuleUnreachableCode, info.Span,
			fmt.Sprintf("unreachable code: %s", info.Reason)).
			WithSuggestion("remove the dead code").
			WithFix("", info.Span.Start, info.Span.End, false))
	}
}
