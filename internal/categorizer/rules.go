package categorizer

import (
	"regexp"

	"fjacquet/camt-ynab/internal/config"
	"fjacquet/camt-ynab/internal/pipelineerror"
)

// Rule sets the payee of an entry to Label when Pattern finds a match in the
// entry's remittance text.
type Rule struct {
	Label   string
	Pattern *regexp.Regexp
}

// CompileRules compiles specs in order. The first pattern that does not compile
// is reported as a PatternError and no rules are returned.
func CompileRules(specs []config.PayeeRuleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, &pipelineerror.PatternError{
				Label:   spec.Label,
				Pattern: spec.Pattern,
				Err:     err,
			}
		}
		rules = append(rules, Rule{Label: spec.Label, Pattern: re})
	}
	return rules, nil
}

// MustCompileRules is like CompileRules but panics on a bad pattern. Only for
// rules written in code.
func MustCompileRules(specs ...config.PayeeRuleSpec) []Rule {
	rules, err := CompileRules(specs)
	if err != nil {
		panic(err)
	}
	return rules
}

// match returns the first rule whose pattern is found in text.
func match(rules []Rule, text string) (Rule, bool) {
	if text == "" {
		return Rule{}, false
	}
	for _, rule := range rules {
		if rule.Pattern.MatchString(text) {
			return rule, true
		}
	}
	return Rule{}, false
}
