package token

import (
	"rlint/internal/source"
)

// Token represents a single source token with its location and leading trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// NewlineBefore reports whether a line break occurs in the token's leading
// trivia. The parser uses it to end expressions at statement boundaries the
// way the R grammar does.
func (t Token) NewlineBefore() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

// IsLiteral reports whether the token is a literal or reserved constant.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumLit, StrLit, TrueLit, FalseLit, NullLit, NaLit, InfLit, NanLit:
		return true
	default:
		return false
	}
}

// IsAssignOp reports whether the token is one of R's assignment operators.
func (t Token) IsAssignOp() bool {
	switch t.Kind {
	case Assign, SuperAssign, RightAssign, Eq:
		return true
	default:
		return false
	}
}
