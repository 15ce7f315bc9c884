// Package lexer turns R source text into a token stream with attached
// comment and whitespace trivia. Comments are never dropped: the suppression
// manager reads them back out of the token stream.
package lexer

import (
	"rlint/internal/diag"
	"rlint/internal/source"
	"rlint/internal/token"
)

// Lexer scans one file into tokens.
type Lexer struct {
	file     *source.File
	cursor   cursor
	reporter diag.Reporter
	hold     []token.Trivia
	comments []token.Trivia
}

// New constructs a Lexer for the given file. The reporter receives lexical
// diagnostics (unterminated strings and the like) and may be nil.
func New(file *source.File, reporter diag.Reporter) *Lexer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lexer{
		file:     file,
		cursor:   newCursor(file),
		reporter: reporter,
	}
}

// Tokenize scans the whole file and returns the token stream, terminated by
// an EOF token carrying any trailing trivia.
func Tokenize(file *source.File, reporter diag.Reporter) []token.Token {
	lx := New(file, reporter)
	toks := make([]token.Token, 0, len(file.Content)/4)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Comments returns every comment trivia scanned so far, in source order.
func (lx *Lexer) Comments() []token.Trivia {
	return lx.comments
}

// Next scans and returns the next token.
func (lx *Lexer) Next() token.Token {
	lx.collectLeadingTrivia()
	leading := append([]token.Trivia(nil), lx.hold...)

	start := lx.cursor.Mark()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(start), Leading: leading}
	}

	b := lx.cursor.Peek()
	var kind token.Kind
	switch {
	case isIdentStart(b):
		kind = lx.scanIdentOrKeyword()
	case b >= '0' && b <= '9':
		kind = lx.scanNumber()
	case b == '.' && lx.cursor.PeekAt(1) >= '0' && lx.cursor.PeekAt(1) <= '9':
		kind = lx.scanNumber()
	case b == '"' || b == '\'':
		kind = lx.scanString(b)
	case b == '`':
		kind = lx.scanBacktickName()
	case b == '%':
		kind = lx.scanPercentOp()
	default:
		kind = lx.scanOperator()
	}

	span := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:    kind,
		Span:    span,
		Text:    lx.cursor.text(span),
		Leading: leading,
	}
}

func isIdentStart(b byte) bool {
	return b == '.' || b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func (lx *Lexer) scanIdentOrKeyword() token.Kind {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentCont(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.text(lx.cursor.SpanFrom(start))
	return token.LookupKeyword(text)
}

func (lx *Lexer) scanNumber() token.Kind {
	// Hex
	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		for isHexDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.cursor.Eat('L')
		return token.NumLit
	}

	for isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && isDigit(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		lx.cursor.Eat('.')
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(lx.cursor.PeekAt(2))) {
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '+' || b == '-' {
				lx.cursor.Bump()
			}
			for isDigit(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}
	// Integer suffix and complex suffix
	if !lx.cursor.Eat('L') {
		lx.cursor.Eat('i')
	}
	return token.NumLit
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func (lx *Lexer) scanString(quote byte) token.Kind {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		}
		if b == quote {
			lx.cursor.Bump()
			return token.StrLit
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	diag.ReportError(lx.reporter, diag.RuleParseError, sp, "unterminated string constant").Emit()
	return token.StrLit
}

// scanBacktickName lexes a `quoted` identifier.
func (lx *Lexer) scanBacktickName() token.Kind {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '`' && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	if !lx.cursor.Eat('`') {
		sp := lx.cursor.SpanFrom(start)
		diag.ReportError(lx.reporter, diag.RuleParseError, sp, "unterminated quoted name").Emit()
	}
	return token.Ident
}

// scanPercentOp lexes %%, %/%, %in%, %o%, and user-defined %...% operators
// as a single Percent token.
func (lx *Lexer) scanPercentOp() token.Kind {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '%' && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	if !lx.cursor.Eat('%') {
		sp := lx.cursor.SpanFrom(start)
		diag.ReportError(lx.reporter, diag.RuleParseError, sp, "unterminated %% operator").Emit()
		return token.Invalid
	}
	return token.Percent
}

func (lx *Lexer) scanOperator() token.Kind {
	c := &lx.cursor
	b := c.Peek()
	c.Bump()
	switch b {
	case '<':
		if c.Peek() == '-' {
			c.Bump()
			return token.Assign
		}
		if c.Peek() == '<' && c.PeekAt(1) == '-' {
			c.Bump()
			c.Bump()
			return token.SuperAssign
		}
		if c.Eat('=') {
			return token.LtEq
		}
		return token.Lt
	case '>':
		if c.Eat('=') {
			return token.GtEq
		}
		return token.Gt
	case '-':
		if c.Eat('>') {
			return token.RightAssign
		}
		return token.Minus
	case '=':
		if c.Eat('=') {
			return token.EqEq
		}
		return token.Eq
	case '!':
		if c.Eat('=') {
			return token.BangEq
		}
		return token.Bang
	case '&':
		if c.Eat('&') {
			return token.AmpAmp
		}
		return token.Amp
	case '|':
		if c.Eat('|') {
			return token.PipePipe
		}
		return token.Pipe
	case ':':
		if c.Eat(':') {
			c.Eat(':') // ::: lexes the same as ::
			return token.ColonColon
		}
		return token.Colon
	case '+':
		return token.Plus
	case '*':
		return token.Star
	case '/':
		return token.Slash
	case '^':
		return token.Caret
	case '~':
		return token.Tilde
	case '?':
		return token.Question
	case '$':
		return token.Dollar
	case '@':
		return token.At
	case '(':
		return token.LParen
	case ')':
		return token.RParen
	case '{':
		return token.LBrace
	case '}':
		return token.RBrace
	case '[':
		return token.LBracket
	case ']':
		return token.RBracket
	case ',':
		return token.Comma
	case ';':
		return token.Semicolon
	default:
		sp := c.SpanFrom(c.Mark() - 1)
		diag.ReportError(lx.reporter, diag.RuleParseError, sp, "unexpected character").Emit()
		return token.Invalid
	}
}
