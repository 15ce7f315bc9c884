package diag

import (
	"sort"
	"sync"
)

// RuleName identifies a lint rule. Suppression comments and config entries
// refer to rules by these names.
type RuleName string

const (
	// RuleParseError is the pseudo-rule carried by lexer and parser errors.
	// It cannot be disabled or suppressed.
	RuleParseError RuleName = "parse_error"

	RuleUnreachableCode           RuleName = "unreachable_code"
	RuleSemicolons                RuleName = "semicolons"
	RuleTrueFalseSymbol           RuleName = "true_false_symbol"
	RuleEqualsNA                  RuleName = "equals_na"
	RuleSeqAlong                  RuleName = "seq_along"
	RuleNameNormalization         RuleName = "name_normalization"
	RuleDuplicateDefinition       RuleName = "duplicate_definition"
	RuleUnmatchedRangeSuppression RuleName = "unmatched_range_suppression"
	RuleUnusedSuppression         RuleName = "unused_suppression"
)

// Category groups rules for documentation and config.
type Category uint8

const (
	CategoryCorrectness Category = iota
	CategoryStyle
	CategorySuppression
)

func (c Category) String() string {
	switch c {
	case CategoryCorrectness:
		return "correctness"
	case CategoryStyle:
		return "style"
	case CategorySuppression:
		return "suppression"
	}
	return "unknown"
}

// RuleInfo is the registry metadata for one rule.
type RuleInfo struct {
	Name           RuleName
	Category       Category
	DefaultEnabled bool
	FixSafe        bool // fixes from this rule may be applied automatically
	Doc            string
}

// registry is the process-wide, read-only rule table. Built once, never
// mutated afterwards.
var registry = sync.OnceValue(func() map[RuleName]RuleInfo {
	infos := []RuleInfo{
		{RuleUnreachableCode, CategoryCorrectness, true, true, "code that no execution path can reach"},
		{RuleSemicolons, CategoryStyle, true, true, "trailing or compound semicolons"},
		{RuleTrueFalseSymbol, CategoryStyle, true, true, "T/F instead of TRUE/FALSE"},
		{RuleEqualsNA, CategoryCorrectness, true, true, "comparison to NA instead of is.na()"},
		{RuleSeqAlong, CategoryCorrectness, true, true, "1:length(x) instead of seq_along(x)"},
		{RuleNameNormalization, CategoryStyle, true, true, "identifier is not NFC-normalized"},
		{RuleDuplicateDefinition, CategoryCorrectness, true, false, "top-level binding defined in more than one file"},
		{RuleUnmatchedRangeSuppression, CategorySuppression, true, false, "ignore-start/ignore-end pair does not balance"},
		{RuleUnusedSuppression, CategorySuppression, true, false, "suppression comment that silences nothing"},
	}
	m := make(map[RuleName]RuleInfo, len(infos))
	for _, info := range infos {
		m[info.Name] = info
	}
	return m
})

// LookupRule returns registry metadata for a rule name.
func LookupRule(name RuleName) (RuleInfo, bool) {
	info, ok := registry()[name]
	return info, ok
}

// KnownRule reports whether name refers to a registered rule.
func KnownRule(name RuleName) bool {
	_, ok := registry()[name]
	return ok
}

// AllRules returns registry entries sorted by name.
func AllRules() []RuleInfo {
	m := registry()
	out := make([]RuleInfo, 0, len(m))
	for _, info := range m {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
