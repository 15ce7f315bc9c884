// Package suppress scans comment trivia for suppression directives and
// answers, per diagnostic, whether it is silenced. The manager lives for one
// check pass over one document and is discarded afterwards.
package suppress

import (
	"strings"

	"rlint/internal/diag"
	"rlint/internal/source"
)

// DirectiveKind classifies a suppression comment.
type DirectiveKind uint8

const (
	DirectiveNode DirectiveKind = iota
	DirectiveStart
	DirectiveEnd
	DirectiveFile
)

// Directive is one parsed suppression comment.
//
// Syntax:
//
//	# ignore RULE[, RULE...]: EXPLANATION
//	# ignore                              (blanket, all rules)
//	# ignore-start RULE: EXPLANATION
//	# ignore-end RULE
//	# ignore-file RULE: EXPLANATION
type Directive struct {
	Kind        DirectiveKind
	Rules       []diag.RuleName // empty means blanket
	Explanation string
	Span        source.Span
}

// ParseDirective parses a comment's text. It returns nil for ordinary
// comments and for malformed directives (a node or range directive without
// its mandatory explanation suppresses nothing).
func ParseDirective(text string, span source.Span) *Directive {
	body := strings.TrimSpace(strings.TrimLeft(text, "#"))
	if !strings.HasPrefix(body, "ignore") {
		return nil
	}

	switch {
	case strings.HasPrefix(body, "ignore-start"):
		rule, expl, ok := splitRuleExplanation(body[len("ignore-start"):])
		if !ok || rule == "" {
			return nil
		}
		return &Directive{Kind: DirectiveStart, Rules: []diag.RuleName{diag.RuleName(rule)}, Explanation: expl, Span: span}

	case strings.HasPrefix(body, "ignore-end"):
		rule := strings.TrimSpace(body[len("ignore-end"):])
		if rule == "" || strings.ContainsAny(rule, " :") {
			return nil
		}
		return &Directive{Kind: DirectiveEnd, Rules: []diag.RuleName{diag.RuleName(rule)}, Span: span}

	case strings.HasPrefix(body, "ignore-file"):
		rule, expl, ok := splitRuleExplanation(body[len("ignore-file"):])
		if !ok || rule == "" {
			return nil
		}
		return &Directive{Kind: DirectiveFile, Rules: []diag.RuleName{diag.RuleName(rule)}, Explanation: expl, Span: span}

	default:
		rest := body[len("ignore"):]
		if strings.TrimSpace(rest) == "" {
			// bare `# ignore`: blanket suppression of all rules
			return &Directive{Kind: DirectiveNode, Span: span}
		}
		if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
			// e.g. `# ignoreme`: not a directive
			return nil
		}
		ruleList, expl, ok := splitRuleExplanation(rest)
		if !ok || ruleList == "" {
			return nil
		}
		var rules []diag.RuleName
		for _, r := range strings.Split(ruleList, ",") {
			r = strings.TrimSpace(r)
			if r != "" {
				rules = append(rules, diag.RuleName(r))
			}
		}
		if len(rules) == 0 {
			return nil
		}
		return &Directive{Kind: DirectiveNode, Rules: rules, Explanation: expl, Span: span}
	}
}

// splitRuleExplanation splits "RULES: EXPLANATION" and enforces that the
// explanation is present and non-empty.
func splitRuleExplanation(s string) (rules, explanation string, ok bool) {
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return "", "", false
	}
	rules = strings.TrimSpace(s[:idx])
	explanation = strings.TrimSpace(s[idx+1:])
	if explanation == "" {
		return "", "", false
	}
	return rules, explanation, true
}
