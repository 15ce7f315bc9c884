package token

// keywords maps reserved words and reserved constants to their kinds.
// T and F are deliberately absent: they are ordinary identifiers that can be
// reassigned, which is exactly why the true_false_symbol rule exists.
var keywords = map[string]Kind{
	"if":       KwIf,
	"else":     KwElse,
	"for":      KwFor,
	"while":    KwWhile,
	"repeat":   KwRepeat,
	"function": KwFunction,
	"break":    KwBreak,
	"next":     KwNext,
	"in":       KwIn,
	"TRUE":     TrueLit,
	"FALSE":    FalseLit,
	"NULL":     NullLit,
	"NA":       NaLit,
	"Inf":      InfLit,
	"NaN":      NanLit,
}

// LookupKeyword returns the keyword kind for an identifier text, or Ident.
func LookupKeyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}
