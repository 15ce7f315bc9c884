package fuzztests

import (
	"testing"

	"rlint/internal/diag"
	"rlint/internal/parser"
	"rlint/internal/source"
	"rlint/internal/testkit"
)

func FuzzParser(f *testing.F) {
	addCorpusSeeds(f)

	f.Fuzz(func(t *testing.T, src []byte) {
		if len(src) > maxFuzzInput {
			t.Skip("input too large")
		}
		fileSet := source.NewFileSet()
		id := fileSet.AddVirtual("fuzz.R", src)
		file := fileSet.Get(id)

		bag := diag.NewBag(1024)
		parsed, err := parser.Parse(file, diag.BagReporter{Bag: bag})
		if err != nil {
			// rejected input must come with at least one diagnostic
			if bag.Len() == 0 {
				t.Fatalf("parse failed without a diagnostic: %v", err)
			}
			return
		}
		if err := testkit.CheckSpanInvariants(parsed, file); err != nil {
			t.Fatalf("span invariants violated: %v", err)
		}
	})
}
