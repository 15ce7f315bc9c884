// Package parser builds the syntax tree for a pragmatic subset of R: enough
// of the grammar to drive control-flow analysis, suppression attachment, and
// the pattern rules. Parsing is strict per file: any syntax error makes the
// whole file unanalyzable, but never stops sibling files in a batch run.
package parser

import (
	"errors"
	"fmt"

	"rlint/internal/ast"
	"rlint/internal/diag"
	"rlint/internal/lexer"
	"rlint/internal/source"
	"rlint/internal/token"
)

// ErrParse is wrapped by every error returned from Parse.
var ErrParse = errors.New("parse error")

type parser struct {
	toks     []token.Token
	pos      int
	reporter diag.Reporter
	errCount int
	firstMsg string
	// groupDepth tracks open ( and [ pairs; newlines only terminate
	// expressions when it is zero, matching the R grammar.
	groupDepth int
}

// Parse lexes and parses one file. Lexical and syntactic diagnostics are
// forwarded to reporter; a non-nil error means the file did not parse and
// must be skipped by the caller.
func Parse(file *source.File, reporter diag.Reporter) (*ast.File, error) {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	lx := lexer.New(file, reporter)
	toks := make([]token.Token, 0, len(file.Content)/4)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	p := &parser{toks: toks, reporter: reporter}
	prog := p.parseProgram(file)

	out := &ast.File{
		Prog:     prog,
		FileID:   file.ID,
		Src:      file.Content,
		Comments: lx.Comments(),
	}
	if p.errCount > 0 {
		return out, fmt.Errorf("%w: %s", ErrParse, p.firstMsg)
	}
	return out, nil
}

func (p *parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

func (p *parser) bump() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.bump(), true
	}
	p.errorAt(p.peek(), fmt.Sprintf("expected %q, found %q", k.String(), p.peek().Kind.String()))
	return p.peek(), false
}

func (p *parser) errorAt(tok token.Token, msg string) {
	p.errCount++
	if p.firstMsg == "" {
		p.firstMsg = msg
	}
	diag.ReportError(p.reporter, diag.RuleParseError, tok.Span, msg).Emit()
}

func (p *parser) parseProgram(file *source.File) *ast.Node {
	prog := ast.NewNode(ast.KindProgram, source.Span{File: file.ID})
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.bump()
			continue
		}
		before := p.pos
		stmt := p.parseExpr()
		prog.AddChild(stmt)
		if p.pos == before {
			// no progress; drop the offending token to guarantee termination
			p.errorAt(p.peek(), fmt.Sprintf("unexpected %q", p.peek().Kind.String()))
			p.bump()
		}
	}
	return prog
}
