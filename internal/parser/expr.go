package parser

import (
	"rlint/internal/ast"
	"rlint/internal/source"
	"rlint/internal/token"
)

// binaryLevel returns the precedence level for a binary operator token.
// Higher binds tighter. The second result reports right associativity.
func binaryLevel(k token.Kind) (int, bool, bool) {
	switch k {
	case token.Assign, token.SuperAssign, token.Eq:
		return 1, true, true
	case token.RightAssign:
		return 1, false, true
	case token.Tilde:
		return 2, false, true
	case token.PipePipe, token.Pipe:
		return 3, false, true
	case token.AmpAmp, token.Amp:
		return 4, false, true
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return 6, false, true
	case token.Plus, token.Minus:
		return 7, false, true
	case token.Star, token.Slash:
		return 8, false, true
	case token.Percent:
		return 9, false, true
	case token.Colon:
		return 10, false, true
	default:
		return 0, false, false
	}
}

func (p *parser) parseExpr() *ast.Node {
	return p.parseBinary(1)
}

func (p *parser) parseBinary(minLevel int) *ast.Node {
	left := p.parseUnary()
	for {
		tok := p.peek()
		lvl, rightAssoc, ok := binaryLevel(tok.Kind)
		if !ok || lvl < minLevel {
			break
		}
		// An operator at the start of a new line begins a new statement;
		// inside ( or [ groups newlines are insignificant.
		if p.groupDepth == 0 && tok.NewlineBefore() {
			break
		}
		p.bump()
		nextMin := lvl + 1
		if rightAssoc {
			nextMin = lvl
		}
		right := p.parseBinary(nextMin)

		n := ast.NewNode(ast.KindBinary, left.Span)
		n.Op = tok.Kind
		n.Leading = left.Leading
		n.AddChild(left)
		n.AddChild(right)
		left = n
	}
	return left
}

func (p *parser) parseUnary() *ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.Bang, token.Minus, token.Plus, token.Tilde:
		p.bump()
		n := ast.NewNode(ast.KindUnary, tok.Span)
		n.Op = tok.Kind
		n.Leading = tok.Leading
		n.AddChild(p.parseUnary())
		return n
	}
	return p.parsePower()
}

func (p *parser) parsePower() *ast.Node {
	left := p.parsePostfix(p.parsePrimary())
	if p.at(token.Caret) && !(p.groupDepth == 0 && p.peek().NewlineBefore()) {
		op := p.bump()
		n := ast.NewNode(ast.KindBinary, left.Span)
		n.Op = op.Kind
		n.Leading = left.Leading
		n.AddChild(left)
		n.AddChild(p.parseUnary()) // right associative
		return n
	}
	return left
}

func (p *parser) parsePostfix(n *ast.Node) *ast.Node {
	for {
		tok := p.peek()
		if p.groupDepth == 0 && tok.NewlineBefore() {
			return n
		}
		switch tok.Kind {
		case token.LParen:
			n = p.parseCall(n)
		case token.LBracket:
			n = p.parseIndex(n)
		case token.Dollar, token.At, token.ColonColon:
			op := p.bump()
			sel := p.parseSelector()
			b := ast.NewNode(ast.KindBinary, n.Span)
			b.Op = op.Kind
			b.Leading = n.Leading
			b.AddChild(n)
			b.AddChild(sel)
			n = b
		default:
			return n
		}
	}
}

// parseSelector parses the right side of $, @, or ::.
func (p *parser) parseSelector() *ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident, token.StrLit:
		p.bump()
		kind := ast.KindIdent
		if tok.Kind == token.StrLit {
			kind = ast.KindString
		}
		n := ast.NewNode(kind, tok.Span)
		n.Text = tok.Text
		n.Leading = tok.Leading
		return n
	}
	p.errorAt(tok, "expected name after selector operator")
	return ast.NewNode(ast.KindMissing, source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start})
}

func (p *parser) parseCall(callee *ast.Node) *ast.Node {
	open, _ := p.expect(token.LParen)
	n := ast.NewNode(ast.KindCall, callee.Span.Cover(open.Span))
	n.Leading = callee.Leading
	n.AddChild(callee)
	p.parseArgList(n, token.RParen)
	return n
}

func (p *parser) parseIndex(target *ast.Node) *ast.Node {
	open, _ := p.expect(token.LBracket)
	double := p.at(token.LBracket)
	if double {
		p.bump()
	}
	n := ast.NewNode(ast.KindIndex, target.Span.Cover(open.Span))
	n.Leading = target.Leading
	n.AddChild(target)
	p.parseArgList(n, token.RBracket)
	if double {
		if closeTok, ok := p.expect(token.RBracket); ok {
			n.Span = n.Span.Cover(closeTok.Span)
		}
	}
	return n
}

// parseArgList parses a comma-separated argument list up to closing. Empty
// positions (as in x[, 1]) become Missing nodes.
func (p *parser) parseArgList(parent *ast.Node, closing token.Kind) {
	p.groupDepth++
	defer func() { p.groupDepth-- }()

	expectArg := false
	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			p.errorAt(tok, "unexpected end of file in argument list")
			return
		}
		if tok.Kind == closing {
			if expectArg {
				parent.AddChild(missingAt(tok.Span))
			}
			closeTok := p.bump()
			parent.Span = parent.Span.Cover(closeTok.Span)
			return
		}
		if tok.Kind == token.Comma {
			p.bump()
			if expectArg || len(parent.Children) == 1 {
				parent.AddChild(missingAt(tok.Span))
			}
			expectArg = true
			continue
		}
		parent.AddChild(p.parseArg())
		expectArg = false
	}
}

// parseArg parses one argument, wrapping `name = value` in an Arg node.
func (p *parser) parseArg() *ast.Node {
	tok := p.peek()
	if (tok.Kind == token.Ident || tok.Kind == token.StrLit) && p.toks[p.pos+1].Kind == token.Eq {
		name := p.bump()
		p.bump() // =
		arg := ast.NewNode(ast.KindArg, name.Span)
		arg.Text = name.Text
		arg.Leading = name.Leading
		arg.AddChild(p.parseExpr())
		return arg
	}
	return p.parseExpr()
}

func missingAt(sp source.Span) *ast.Node {
	return ast.NewNode(ast.KindMissing, source.Span{File: sp.File, Start: sp.Start, End: sp.Start})
}
