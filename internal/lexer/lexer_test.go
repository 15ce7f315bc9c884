package lexer

import (
	"testing"

	"rlint/internal/diag"
	"rlint/internal/source"
	"rlint/internal/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.R", []byte(src))
	return Tokenize(fs.Get(id), nil)
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeAssignment(t *testing.T) {
	toks := tokenize(t, "x <- 42\n")
	want := []token.Kind{token.Ident, token.Assign, token.NumLit, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if toks[0].Text != "x" || toks[2].Text != "42" {
		t.Fatalf("unexpected token texts: %q %q", toks[0].Text, toks[2].Text)
	}
}

func TestCommentBecomesTrivia(t *testing.T) {
	toks := tokenize(t, "# header\nx <- 1\n")
	if toks[0].Kind != token.Ident {
		t.Fatalf("comment must not surface as a token, got %v", toks[0].Kind)
	}
	var comment *token.Trivia
	for i := range toks[0].Leading {
		if toks[0].Leading[i].Kind == token.TriviaLineComment {
			comment = &toks[0].Leading[i]
		}
	}
	if comment == nil || comment.Text != "# header" {
		t.Fatalf("comment trivia missing or wrong: %+v", toks[0].Leading)
	}
}

func TestNewlineBeforeFlag(t *testing.T) {
	toks := tokenize(t, "x <- 1\ny <- 2\n")
	// x Assign 1 y Assign 2 EOF
	if toks[3].Kind != token.Ident || toks[3].Text != "y" {
		t.Fatalf("unexpected token stream %v", kinds(toks))
	}
	if !toks[3].NewlineBefore() {
		t.Fatalf("statement-starting token must see the newline")
	}
	if toks[1].NewlineBefore() {
		t.Fatalf("mid-statement token must not see a newline")
	}
}

func TestPercentOperatorIsOneToken(t *testing.T) {
	toks := tokenize(t, "a %in% b\n")
	if toks[1].Kind != token.Percent || toks[1].Text != "%in%" {
		t.Fatalf("expected one %%in%% token, got %v %q", toks[1].Kind, toks[1].Text)
	}
}

func TestBacktickedName(t *testing.T) {
	toks := tokenize(t, "`odd name` <- 1\n")
	if toks[0].Kind != token.Ident || toks[0].Text != "`odd name`" {
		t.Fatalf("unexpected backticked ident: %v %q", toks[0].Kind, toks[0].Text)
	}
}

func TestUnterminatedStringReported(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.R", []byte("x <- \"oops\n"))
	bag := diag.NewBag(8)
	Tokenize(fs.Get(id), diag.BagReporter{Bag: bag})
	if !bag.HasErrors() {
		t.Fatalf("expected an unterminated string diagnostic")
	}
}

func TestEOFCarriesTrailingTrivia(t *testing.T) {
	toks := tokenize(t, "x <- 1\n# trailing\n")
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF {
		t.Fatalf("stream must end with EOF")
	}
	found := false
	for _, tr := range eof.Leading {
		if tr.Kind == token.TriviaLineComment && tr.Text == "# trailing" {
			found = true
		}
	}
	if !found {
		t.Fatalf("trailing comment lost: %+v", eof.Leading)
	}
}
