package lsp

import (
	"testing"

	"rlint/internal/source"
)

func TestPositionForOffsetUTF16(t *testing.T) {
	fs := source.NewFileSet()
	// the emoji is 4 bytes and 2 UTF-16 units
	id := fs.AddVirtual("test.R", []byte("a\U0001F600b\nc\n"))
	file := fs.Get(id)

	cases := []struct {
		off  uint32
		line int
		char int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{5, 0, 3}, // after the emoji
		{7, 1, 0}, // start of second line
		{8, 1, 1},
	}
	for _, tc := range cases {
		got := positionForOffsetInFile(file, tc.off)
		if got.Line != tc.line || got.Character != tc.char {
			t.Fatalf("offset %d: expected %d:%d, got %d:%d", tc.off, tc.line, tc.char, got.Line, got.Character)
		}
	}
}

func TestRangeForSpanClampsToContent(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.R", []byte("x <- 1\n"))
	file := fs.Get(id)

	r := rangeForSpan(file, source.Span{Start: 5, End: 100})
	if r.Start.Line != 0 || r.Start.Character != 5 {
		t.Fatalf("unexpected start %+v", r.Start)
	}
	if r.End.Line != 1 || r.End.Character != 0 {
		t.Fatalf("end must clamp to content, got %+v", r.End)
	}
}
