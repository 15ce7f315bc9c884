package checker

import (
	"fmt"

	"rlint/internal/ast"
	"rlint/internal/diag"
	"rlint/internal/lexer"
	"rlint/internal/token"
)

// checkSemicolons re-lexes the document so it sees the semicolons the tree
// dropped. A semicolon followed by a newline or EOF is a trailing
// terminator; one followed by another token on the same line separates
// compound statements.
func checkSemicolons(p *pass) {
	toks := lexer.Tokenize(p.srcFile, nil)
	for i, tok := range toks {
		if tok.Kind != token.Semicolon || i+1 >= len(toks) {
			continue
		}
		next := toks[i+1]
		if next.Kind == token.EOF || next.NewlineBefore() {
			p.report(diag.New(diag.SevWarning, diag.RuleSemicolons, tok.Span,
				"trailing semicolon").
				WithSuggestion("remove the semicolon").
				WithFix("", tok.Span.Start, tok.Span.End, false))
			continue
		}
		indent := lineIndent(p.src, tok.Span.Start)
		p.report(diag.New(diag.SevWarning, diag.RuleSemicolons, tok.Span,
			"semicolon separates statements on one line").
			WithSuggestion("put each statement on its own line").
			WithFix("\n"+indent, tok.Span.Start, next.Span.Start, false))
	}
}

// lineIndent returns the leading whitespace of the line containing off.
func lineIndent(src []byte, off uint32) string {
	start := off
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := start
	for int(end) < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}

// checkTrueFalseSymbol flags the single-letter aliases T and F. Unlike TRUE
// and FALSE they are ordinary bindings and can be reassigned, so code
// reading them is one `T <- 0` away from silent breakage. Positions where
// the alias is being (re)bound or called are left alone.
func checkTrueFalseSymbol(p *pass) {
	ast.Walk(p.file.Prog, func(n *ast.Node) bool {
		if n.Kind != ast.KindIdent || (n.Text != "T" && n.Text != "F") {
			return true
		}
		if parent := n.Parent; parent != nil {
			if parent.AssignTarget() == n {
				return true
			}
			if parent.Kind == ast.KindCall && parent.Callee() == n {
				return true
			}
		}
		repl := "TRUE"
		if n.Text == "F" {
			repl = "FALSE"
		}
		p.report(diag.New(diag.SevWarning, diag.RuleTrueFalseSymbol, n.Span,
			fmt.Sprintf("%s is a rebindable alias for %s", n.Text, repl)).
			WithSuggestion("write "+repl).
			WithFix(repl, n.Span.Start, n.Span.End, false))
		return true
	})
}

// checkEqualsNA flags == and != against NA, which always evaluate to NA.
func checkEqualsNA(p *pass) {
	ast.Walk(p.file.Prog, func(n *ast.Node) bool {
		if n.Kind != ast.KindBinary || (n.Op != token.EqEq && n.Op != token.BangEq) {
			return true
		}
		var other *ast.Node
		switch {
		case isNA(n.LHS()):
			other = n.RHS()
		case isNA(n.RHS()):
			other = n.LHS()
		default:
			return true
		}
		repl := fmt.Sprintf("is.na(%s)", p.text(other.Span))
		if n.Op == token.BangEq {
			repl = "!" + repl
		}
		p.report(diag.New(diag.SevWarning, diag.RuleEqualsNA, n.Span,
			"comparison with NA always yields NA").
			WithSuggestion("use is.na()").
			WithFix(repl, n.Span.Start, n.Span.End, false))
		return true
	})
}

func isNA(n *ast.Node) bool {
	return n != nil && n.Kind == ast.KindNA
}

// checkSeqAlong flags 1:length(x), which iterates 1:0 when x is empty.
func checkSeqAlong(p *pass) {
	ast.Walk(p.file.Prog, func(n *ast.Node) bool {
		if n.Kind != ast.KindBinary || n.Op != token.Colon {
			return true
		}
		lhs, rhs := n.LHS(), n.RHS()
		if lhs == nil || lhs.Kind != ast.KindNumber || lhs.Text != "1" {
			return true
		}
		if !rhs.IsCallTo("length") || len(rhs.Args()) != 1 {
			return true
		}
		arg := rhs.Args()[0]
		if arg.Kind == ast.KindMissing || arg.Kind == ast.KindArg {
			return true
		}
		p.report(diag.New(diag.SevWarning, diag.RuleSeqAlong, n.Span,
			"1:length(x) counts down from 1 when x is empty").
			WithSuggestion("use seq_along()").
			WithFix(fmt.Sprintf("seq_along(%s)", p.text(arg.Span)), n.Span.Start, n.Span.End, false))
		return true
	})
}
