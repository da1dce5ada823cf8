package analysis

import (
	"fmt"
	"regexp"
)

// ReplaceRule is a single pattern-replacement rewrite applied to raw text
// before tokenization. Pattern is a regular expression.
type ReplaceRule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

type compiledRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// CharFilter rewrites whole strings before tokenization. It must run on the
// full text, not per token, because a replacement can merge or split word
// boundaries. Unmatched patterns are no-ops; the filter never fails on input.
type CharFilter struct {
	rules []compiledRule
}

// NewCharFilter compiles the given rules, preserving their order of
// application. An invalid pattern is a configuration error.
func NewCharFilter(rules ...ReplaceRule) (*CharFilter, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid char filter pattern %q: %w", rule.Pattern, err)
		}
		compiled = append(compiled, compiledRule{pattern: re, replacement: rule.Replacement})
	}
	return &CharFilter{rules: compiled}, nil
}

// Filter applies every rule in declared order and returns the rewritten text.
// Pure function: no state, same input always yields the same output.
func (f *CharFilter) Filter(text string) string {
	for _, rule := range f.rules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return text
}
