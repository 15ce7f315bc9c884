package diag

import (
	"testing"

	"rlint/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(New(SevWarning, RuleSemicolons, span(1, 0, 1), "one")) {
		t.Fatalf("first add must succeed")
	}
	if !bag.Add(New(SevWarning, RuleSemicolons, span(1, 2, 3), "two")) {
		t.Fatalf("second add must succeed")
	}
	if bag.Add(New(SevWarning, RuleSemicolons, span(1, 4, 5), "three")) {
		t.Fatalf("bag over capacity must drop")
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	bag := NewBag(4)
	bag.Add(New(SevWarning, RuleSemicolons, span(1, 0, 1), "warn"))
	if bag.HasErrors() {
		t.Fatalf("warning alone must not count as error")
	}
	if !bag.HasWarnings() {
		t.Fatalf("warning must surface through HasWarnings")
	}
	bag.Add(New(SevError, RuleParseError, span(1, 2, 3), "boom"))
	if !bag.HasErrors() {
		t.Fatalf("error must surface through HasErrors")
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(8)
	bag.Add(New(SevWarning, RuleSemicolons, span(2, 0, 1), "other file"))
	bag.Add(New(SevWarning, RuleSemicolons, span(1, 10, 11), "late"))
	bag.Add(New(SevError, RuleParseError, span(1, 10, 11), "same span, higher severity"))
	bag.Add(New(SevWarning, RuleSemicolons, span(1, 2, 3), "early"))
	bag.Sort()

	items := bag.Items()
	if items[0].Message != "early" {
		t.Fatalf("expected earliest span first, got %q", items[0].Message)
	}
	if items[1].Severity != SevError {
		t.Fatalf("equal spans must order by severity desc, got %v", items[1].Severity)
	}
	if items[3].Primary.File != 2 {
		t.Fatalf("other file must sort last, got %+v", items[3].Primary)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(4)
	bag.Add(New(SevWarning, RuleSemicolons, span(1, 0, 1), "a"))
	bag.Add(New(SevWarning, RuleSemicolons, span(1, 0, 1), "b"))
	bag.Add(New(SevWarning, RuleEqualsNA, span(1, 0, 1), "c"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected rule+span duplicates collapsed, got %d items", bag.Len())
	}
}

func TestBagMergeGrowsCapacity(t *testing.T) {
	a := NewBag(1)
	a.Add(New(SevWarning, RuleSemicolons, span(1, 0, 1), "a"))
	b := NewBag(1)
	b.Add(New(SevWarning, RuleSemicolons, span(1, 2, 3), "b"))
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("merge lost items: %d", a.Len())
	}
	if a.Cap() < 2 {
		t.Fatalf("merge must grow the limit, cap %d", a.Cap())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(4)
	b := ReportWarning(BagReporter{Bag: bag}, RuleSemicolons, span(1, 0, 1), "trailing semicolon").
		WithSuggestion("remove it").
		WithFix("", 0, 1, false)
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("builder must emit exactly once, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Suggestion != "remove it" || d.Fix == nil || d.Fix.End != 1 {
		t.Fatalf("builder dropped details: %+v", d)
	}
}

func TestRuleRegistry(t *testing.T) {
	if !KnownRule(RuleUnreachableCode) {
		t.Fatalf("registry must know unreachable_code")
	}
	if KnownRule("no_such_rule") {
		t.Fatalf("registry must reject unknown names")
	}
	info, ok := LookupRule(RuleDuplicateDefinition)
	if !ok || info.FixSafe {
		t.Fatalf("duplicate_definition must be known and not fix-safe: %+v", info)
	}
	if len(AllRules()) == 0 {
		t.Fatalf("registry must list rules")
	}
}
