package parser

import (
	"testing"

	"rlint/internal/ast"
	"rlint/internal/diag"
	"rlint/internal/source"
	"rlint/internal/token"
)

func parseSource(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.R", []byte(src))
	file, err := Parse(fs.Get(id), nil)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return file
}

func TestParseAssignment(t *testing.T) {
	file := parseSource(t, "x <- 1 + 2\n")
	if len(file.Prog.Children) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(file.Prog.Children))
	}
	stmt := file.Prog.Children[0]
	if stmt.Kind != ast.KindBinary || stmt.Op != token.Assign {
		t.Fatalf("expected assignment, got %s op %s", stmt.Kind, stmt.Op)
	}
	if stmt.LHS().Kind != ast.KindIdent || stmt.LHS().Text != "x" {
		t.Fatalf("unexpected lhs: %v", stmt.LHS())
	}
	rhs := stmt.RHS()
	if rhs.Kind != ast.KindBinary || rhs.Op != token.Plus {
		t.Fatalf("expected plus on rhs, got %s", rhs.Op)
	}
}

func TestNewlineEndsStatement(t *testing.T) {
	file := parseSource(t, "x <- 1\n- y\n")
	if got := len(file.Prog.Children); got != 2 {
		t.Fatalf("expected 2 statements, got %d", got)
	}
}

func TestOperatorAtLineEndContinues(t *testing.T) {
	file := parseSource(t, "x <- 1 +\n  2\n")
	if got := len(file.Prog.Children); got != 1 {
		t.Fatalf("expected 1 statement, got %d", got)
	}
}

func TestParseIfElse(t *testing.T) {
	file := parseSource(t, "if (a > 1) {\n  b\n} else {\n  c\n}\n")
	stmt := file.Prog.Children[0]
	if stmt.Kind != ast.KindIf {
		t.Fatalf("expected if, got %s", stmt.Kind)
	}
	if stmt.IfCond() == nil || stmt.IfThen() == nil || stmt.IfElse() == nil {
		t.Fatalf("missing if fields")
	}
	if stmt.IfElse().Kind != ast.KindBlock {
		t.Fatalf("expected block else, got %s", stmt.IfElse().Kind)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	file := parseSource(t, "if (x) y\n")
	stmt := file.Prog.Children[0]
	if stmt.IfElse() != nil {
		t.Fatalf("expected nil else")
	}
}

func TestParseFunction(t *testing.T) {
	file := parseSource(t, "f <- function(a, b = 2) {\n  a + b\n}\n")
	fn := file.Prog.Children[0].RHS()
	if fn.Kind != ast.KindFunction {
		t.Fatalf("expected function, got %s", fn.Kind)
	}
	params := fn.FnParams()
	if len(params) != 2 || params[0].Text != "a" || params[1].Text != "b" {
		t.Fatalf("unexpected params: %v", params)
	}
	if fn.FnBody().Kind != ast.KindBlock {
		t.Fatalf("expected block body")
	}
}

func TestParseForLoop(t *testing.T) {
	file := parseSource(t, "for (i in 1:10) print(i)\n")
	stmt := file.Prog.Children[0]
	if stmt.Kind != ast.KindFor {
		t.Fatalf("expected for, got %s", stmt.Kind)
	}
	if stmt.ForVar().Text != "i" {
		t.Fatalf("unexpected loop var %q", stmt.ForVar().Text)
	}
	if stmt.ForSeq().Kind != ast.KindBinary || stmt.ForSeq().Op != token.Colon {
		t.Fatalf("expected colon sequence")
	}
	if !stmt.LoopBody().IsCallTo("print") {
		t.Fatalf("expected print call body")
	}
}

func TestParseCallWithNamedArgs(t *testing.T) {
	file := parseSource(t, "mean(x, na.rm = TRUE)\n")
	call := file.Prog.Children[0]
	if !call.IsCallTo("mean") {
		t.Fatalf("expected mean call")
	}
	args := call.Args()
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	if args[1].Kind != ast.KindArg || args[1].Text != "na.rm" {
		t.Fatalf("expected named arg na.rm, got %v", args[1])
	}
}

func TestParseIndexing(t *testing.T) {
	file := parseSource(t, "df[, 1]\nlst[[2]]\n")
	first := file.Prog.Children[0]
	if first.Kind != ast.KindIndex {
		t.Fatalf("expected index, got %s", first.Kind)
	}
	if first.Args()[0].Kind != ast.KindMissing {
		t.Fatalf("expected missing first index arg")
	}
	second := file.Prog.Children[1]
	if second.Kind != ast.KindIndex {
		t.Fatalf("expected double-bracket index, got %s", second.Kind)
	}
}

func TestParseErrorIsFatal(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.R", []byte("if (x {\n"))
	bag := diag.NewBag(16)
	_, err := Parse(fs.Get(id), diag.BagReporter{Bag: bag})
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if bag.Len() == 0 {
		t.Fatalf("expected reported diagnostics")
	}
	if bag.Items()[0].Rule != diag.RuleParseError {
		t.Fatalf("expected parse_error rule, got %s", bag.Items()[0].Rule)
	}
}

func TestCommentsCollected(t *testing.T) {
	file := parseSource(t, "# top\nx <- 1 # trailing\n")
	if len(file.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(file.Comments))
	}
	if file.Comments[0].Text != "# top" {
		t.Fatalf("unexpected comment text %q", file.Comments[0].Text)
	}
}
