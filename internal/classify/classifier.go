// Package classify assigns catalog products to the pharmacy category
// taxonomy using an ordered table of keyword rules.
package classify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Rule is one entry in the classification table. All listed patterns must
// match the combined product text, and none of the Not patterns may match,
// for the rule to fire. Rules are evaluated tier by tier, table order
// within a tier; the first rule that fires wins.
type Rule struct {
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Subcategory string   `yaml:"subcategory"`
	Reason      string   `yaml:"reason"`
	All         []string `yaml:"all"`
	Not         []string `yaml:"not"`
	Tier        int      `yaml:"tier"`
	Confidence  float64  `yaml:"confidence"`
}

// Result is the outcome of classifying one product. Fallback is true when
// no rule matched and the default category was applied; callers should
// surface those products for manual review instead of trusting the label.
type Result struct {
	Category    string
	Subcategory string
	Path        string
	Reason      string
	Rule        string
	Confidence  float64
	Fallback    bool
}

type compiledRule struct {
	rule Rule
	all  []*regexp.Regexp
	not  []*regexp.Regexp
}

// Classifier evaluates an ordered rule table. It is safe for concurrent
// use once constructed; Classify is a pure function of its inputs.
type Classifier struct {
	rules []compiledRule
}

// NewClassifier compiles the given rules. Patterns are made
// case-insensitive unless they already carry a (?i) flag. Rules are
// ordered by ascending tier, preserving table order inside a tier.
func NewClassifier(rules []Rule) (*Classifier, error) {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Tier < ordered[j].Tier
	})

	compiled := make([]compiledRule, 0, len(ordered))
	for _, r := range ordered {
		if len(r.All) == 0 {
			return nil, fmt.Errorf("rule %q has no match patterns", r.Name)
		}
		cr := compiledRule{rule: r}

		for _, p := range r.All {
			re, err := compilePattern(p)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", r.Name, err)
			}
			cr.all = append(cr.all, re)
		}
		for _, p := range r.Not {
			re, err := compilePattern(p)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", r.Name, err)
			}
			cr.not = append(cr.not, re)
		}

		compiled = append(compiled, cr)
	}

	return &Classifier{rules: compiled}, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if !strings.HasPrefix(pattern, "(?i)") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
	}
	return re, nil
}

// Classify routes a product by its name and description. The first rule
// whose patterns all match (and whose exclusions all miss) decides the
// category; when nothing matches, the fallback category is returned with
// low confidence. Classify never fails, performs no I/O, and treats empty
// input as empty text.
func (c *Classifier) Classify(name, description string) Result {
	text := strings.ToLower(strings.TrimSpace(name + " " + description))

	for _, cr := range c.rules {
		if cr.matches(text) {
			r := cr.rule
			return Result{
				Category:    r.Category,
				Subcategory: r.Subcategory,
				Path:        joinPath(r.Category, r.Subcategory),
				Confidence:  r.Confidence,
				Reason:      r.Reason,
				Rule:        r.Name,
			}
		}
	}

	return fallbackResult()
}

func (cr *compiledRule) matches(text string) bool {
	for _, re := range cr.all {
		if !re.MatchString(text) {
			return false
		}
	}
	for _, re := range cr.not {
		if re.MatchString(text) {
			return false
		}
	}
	return true
}

// RuleCount returns the number of compiled rules.
func (c *Classifier) RuleCount() int {
	return len(c.rules)
}

func joinPath(category, subcategory string) string {
	if subcategory == "" {
		return category
	}
	return category + " > " + subcategory
}

// Fallback category applied when no rule fires. Inherited from the
// original catalog tooling; a poor default, which is why Fallback results
// are reported separately rather than silently persisted as trustworthy.
const (
	FallbackCategory    = "Dermokozmetike"
	FallbackSubcategory = "Fytyra"
	FallbackConfidence  = 0.5
)

func fallbackResult() Result {
	return Result{
		Category:    FallbackCategory,
		Subcategory: FallbackSubcategory,
		Path:        joinPath(FallbackCategory, FallbackSubcategory),
		Confidence:  FallbackConfidence,
		Reason:      "no keyword rule matched; default category applied",
		Rule:        "fallback",
		Fallback:    true,
	}
}
