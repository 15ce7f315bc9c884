package source

import (
	"testing"
)

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.R", []byte("x <- 1\ny <- 2\nz <- 3\n"))

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 0},
		{5, 1, 5},
		{6, 1, 6},  // the newline itself
		{7, 2, 0},  // start of second line
		{14, 3, 0}, // start of third line
		{19, 3, 5},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start.Line != tc.line || start.Col != tc.col {
			t.Fatalf("offset %d: expected %d:%d, got %d:%d", tc.off, tc.line, tc.col, start.Line, start.Col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.R", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Fatalf("line 1: got %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Fatalf("line 2: got %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("line 3: got %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("line 4: expected empty, got %q", got)
	}
}

func TestAddKeepsLatestVersion(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("script.R", []byte("a"))
	second := fs.AddVirtual("script.R", []byte("b"))

	if first == second {
		t.Fatalf("expected distinct file ids")
	}
	latest, ok := fs.GetLatest("script.R")
	if !ok || latest != second {
		t.Fatalf("expected latest id %d, got %d (ok=%v)", second, latest, ok)
	}
}

func TestSpanCoverAndOverlap(t *testing.T) {
	a := Span{File: 0, Start: 2, End: 5}
	b := Span{File: 0, Start: 4, End: 9}

	if !a.Overlaps(b) {
		t.Fatalf("expected overlap")
	}
	cov := a.Cover(b)
	if cov.Start != 2 || cov.End != 9 {
		t.Fatalf("unexpected cover: %v", cov)
	}

	c := Span{File: 0, Start: 5, End: 6}
	if a.Overlaps(c) {
		t.Fatalf("half-open spans touching at 5 must not overlap")
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed {
		t.Fatalf("expected change")
	}
	if string(out) != "a\nb\rc" {
		t.Fatalf("got %q", out)
	}
}
