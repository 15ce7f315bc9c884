package token

// Kind enumerates R token kinds.
type Kind uint8

const (
	EOF Kind = iota
	Invalid

	// Literals and names
	Ident
	NumLit
	StrLit
	TrueLit
	FalseLit
	NullLit
	NaLit
	InfLit
	NanLit

	// Keywords
	KwIf
	KwElse
	KwFor
	KwWhile
	KwRepeat
	KwFunction
	KwBreak
	KwNext
	KwIn

	// Operators
	Assign      // <-
	SuperAssign // <<-
	RightAssign // ->
	Eq          // =
	Plus
	Minus
	Star
	Slash
	Caret
	Percent // %% %/% %in% and friends, lexed as one token
	EqEq
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	Bang
	Amp
	AmpAmp
	Pipe
	PipePipe
	Tilde
	Question
	Colon
	ColonColon
	Dollar
	At

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
)

var kindNames = map[Kind]string{
	EOF:         "EOF",
	Invalid:     "Invalid",
	Ident:       "Ident",
	NumLit:      "NumLit",
	StrLit:      "StrLit",
	TrueLit:     "TRUE",
	FalseLit:    "FALSE",
	NullLit:     "NULL",
	NaLit:       "NA",
	InfLit:      "Inf",
	NanLit:      "NaN",
	KwIf:        "if",
	KwElse:      "else",
	KwFor:       "for",
	KwWhile:     "while",
	KwRepeat:    "repeat",
	KwFunction:  "function",
	KwBreak:     "break",
	KwNext:      "next",
	KwIn:        "in",
	Assign:      "<-",
	SuperAssign: "<<-",
	RightAssign: "->",
	Eq:          "=",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Caret:       "^",
	Percent:     "%op%",
	EqEq:        "==",
	BangEq:      "!=",
	Lt:          "<",
	LtEq:        "<=",
	Gt:          ">",
	GtEq:        ">=",
	Bang:        "!",
	Amp:         "&",
	AmpAmp:      "&&",
	Pipe:        "|",
	PipePipe:    "||",
	Tilde:       "~",
	Question:    "?",
	Colon:       ":",
	ColonColon:  "::",
	Dollar:      "$",
	At:          "@",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Comma:       ",",
	Semicolon:   ";",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}
