package parser

import (
	"rlint/internal/ast"
	"rlint/internal/token"
)

func (p *parser) parsePrimary() *ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.bump()
		return leaf(ast.KindIdent, tok)
	case token.NumLit:
		p.bump()
		return leaf(ast.KindNumber, tok)
	case token.StrLit:
		p.bump()
		return leaf(ast.KindString, tok)
	case token.TrueLit, token.FalseLit:
		p.bump()
		return leaf(ast.KindBool, tok)
	case token.NullLit:
		p.bump()
		return leaf(ast.KindNull, tok)
	case token.NaLit:
		p.bump()
		return leaf(ast.KindNA, tok)
	case token.InfLit:
		p.bump()
		return leaf(ast.KindInf, tok)
	case token.NanLit:
		p.bump()
		return leaf(ast.KindNaN, tok)
	case token.KwBreak:
		p.bump()
		return leaf(ast.KindBreak, tok)
	case token.KwNext:
		p.bump()
		return leaf(ast.KindNext, tok)
	case token.LParen:
		return p.parseParen()
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwRepeat:
		return p.parseRepeat()
	case token.KwFunction:
		return p.parseFunction()
	default:
		p.errorAt(tok, "expected expression, found "+tok.Kind.String())
		return missingAt(tok.Span)
	}
}

func leaf(kind ast.Kind, tok token.Token) *ast.Node {
	n := ast.NewNode(kind, tok.Span)
	n.Text = tok.Text
	n.Leading = tok.Leading
	return n
}

func (p *parser) parseParen() *ast.Node {
	open := p.bump()
	p.groupDepth++
	inner := p.parseExpr()
	p.groupDepth--
	n := ast.NewNode(ast.KindParen, open.Span)
	n.Leading = open.Leading
	n.AddChild(inner)
	if closeTok, ok := p.expect(token.RParen); ok {
		n.Span = n.Span.Cover(closeTok.Span)
	}
	return n
}

func (p *parser) parseBlock() *ast.Node {
	open := p.bump()
	n := ast.NewNode(ast.KindBlock, open.Span)
	n.Leading = open.Leading

	// Braces reopen statement context even inside a call argument.
	savedDepth := p.groupDepth
	p.groupDepth = 0
	defer func() { p.groupDepth = savedDepth }()

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.bump()
			continue
		}
		before := p.pos
		n.AddChild(p.parseExpr())
		if p.pos == before {
			p.errorAt(p.peek(), "unexpected "+p.peek().Kind.String())
			p.bump()
		}
	}
	if closeTok, ok := p.expect(token.RBrace); ok {
		n.Span = n.Span.Cover(closeTok.Span)
	}
	return n
}

// parseCondParen parses the parenthesized condition of if/while and returns
// the inner expression.
func (p *parser) parseCondParen() *ast.Node {
	if _, ok := p.expect(token.LParen); !ok {
		return missingAt(p.peek().Span)
	}
	p.groupDepth++
	cond := p.parseExpr()
	p.groupDepth--
	p.expect(token.RParen)
	return cond
}

func (p *parser) parseIf() *ast.Node {
	kw := p.bump()
	n := ast.NewNode(ast.KindIf, kw.Span)
	n.Leading = kw.Leading
	n.AddChild(p.parseCondParen())
	n.AddChild(p.parseExpr())
	if p.at(token.KwElse) {
		p.bump()
		n.AddChild(p.parseExpr())
	}
	return n
}

func (p *parser) parseWhile() *ast.Node {
	kw := p.bump()
	n := ast.NewNode(ast.KindWhile, kw.Span)
	n.Leading = kw.Leading
	n.AddChild(p.parseCondParen())
	n.AddChild(p.parseExpr())
	return n
}

func (p *parser) parseRepeat() *ast.Node {
	kw := p.bump()
	n := ast.NewNode(ast.KindRepeat, kw.Span)
	n.Leading = kw.Leading
	n.AddChild(p.parseExpr())
	return n
}

func (p *parser) parseFor() *ast.Node {
	kw := p.bump()
	n := ast.NewNode(ast.KindFor, kw.Span)
	n.Leading = kw.Leading
	if _, ok := p.expect(token.LParen); !ok {
		return n
	}
	p.groupDepth++
	if varTok, ok := p.expect(token.Ident); ok {
		n.AddChild(leaf(ast.KindIdent, varTok))
	} else {
		n.AddChild(missingAt(p.peek().Span))
	}
	p.expect(token.KwIn)
	n.AddChild(p.parseExpr())
	p.groupDepth--
	p.expect(token.RParen)
	n.AddChild(p.parseExpr())
	return n
}

func (p *parser) parseFunction() *ast.Node {
	kw := p.bump()
	n := ast.NewNode(ast.KindFunction, kw.Span)
	n.Leading = kw.Leading
	if _, ok := p.expect(token.LParen); !ok {
		return n
	}
	p.groupDepth++
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if nameTok, ok := p.expect(token.Ident); ok {
			param := ast.NewNode(ast.KindParam, nameTok.Span)
			param.Text = nameTok.Text
			param.Leading = nameTok.Leading
			if p.at(token.Eq) {
				p.bump()
				param.AddChild(p.parseExpr())
			}
			n.AddChild(param)
		} else {
			p.bump()
		}
		if !p.at(token.Comma) {
			break
		}
		p.bump()
	}
	p.groupDepth--
	p.expect(token.RParen)
	n.AddChild(p.parseExpr())
	return n
}
