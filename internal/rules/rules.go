// Package rules implements glob-pattern validation policy.
//
// A rule set is an ordered list of match predicates evaluated in declaration
// order. Dispatch is by pattern, never by type: every rule whose pattern
// matches a path participates in the decision for that path.
package rules

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mrz1836/integrityforge/internal/digest"
	"github.com/mrz1836/integrityforge/internal/errors"
)

// Severity controls how an unsatisfied rule affects the outcome.
type Severity string

// Rule severities.
const (
	// SeverityError fails the entry when the rule is not satisfied.
	SeverityError Severity = "error"

	// SeverityWarning logs the violation but does not fail the entry.
	SeverityWarning Severity = "warning"
)

// RequireMode selects the semantics of "required" when multiple rules match
// a path: ANY means at least one matching required rule must be satisfied,
// ALL means every matching required rule must be satisfied.
type RequireMode string

// Require modes.
const (
	RequireAny RequireMode = "any"
	RequireAll RequireMode = "all"
)

// ParseRequireMode parses a case-insensitive require mode name.
func ParseRequireMode(name string) (RequireMode, error) {
	switch RequireMode(strings.ToLower(strings.TrimSpace(name))) {
	case RequireAny:
		return RequireAny, nil
	case RequireAll:
		return RequireAll, nil
	default:
		return "", errors.Wrapf(errors.ErrConfigInvalid, "require_mode must be %q or %q, got %q", RequireAny, RequireAll, name)
	}
}

// Rule is a single validation policy entry. Rules are loaded once from
// configuration and are immutable for the run.
type Rule struct {
	// Name identifies the rule in results and logs.
	Name string

	// Patterns is the ordered glob-pattern list ('**' is supported).
	// A rule matches a path when any of its patterns matches.
	Patterns []string

	// Required marks the rule as one that must be satisfied, subject to
	// the set's RequireMode.
	Required bool

	// Algorithms is the allowed-algorithm set for matching paths.
	// Empty means any allowed algorithm satisfies the rule.
	Algorithms []digest.Algorithm

	// Severity controls whether an unsatisfied rule fails the entry.
	Severity Severity

	// Actions carries optional caller-defined action tags. The engine does
	// not interpret them; they travel with match results.
	Actions []string
}

// permits reports whether the rule allows the given algorithm.
func (r Rule) permits(algo digest.Algorithm) bool {
	if len(r.Algorithms) == 0 {
		return true
	}
	for _, a := range r.Algorithms {
		if a == algo {
			return true
		}
	}
	return false
}

// matches reports whether any of the rule's patterns matches the path.
func (r Rule) matches(path string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range r.Patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Set is an ordered, immutable collection of rules plus the global policy
// knobs that govern evaluation.
type Set struct {
	rules  []Rule
	strict bool
	mode   RequireMode
}

// NewSet builds a rule set, validating every pattern up front so malformed
// policy fails fast at configuration time.
func NewSet(rules []Rule, strict bool, mode RequireMode) (*Set, error) {
	if mode == "" {
		mode = RequireAny
	}
	if mode != RequireAny && mode != RequireAll {
		return nil, errors.Wrapf(errors.ErrConfigInvalid, "unknown require_mode %q", mode)
	}

	for _, r := range rules {
		if r.Name == "" {
			return nil, errors.Wrap(errors.ErrConfigInvalid, "rule name must not be empty")
		}
		if len(r.Patterns) == 0 {
			return nil, errors.Wrapf(errors.ErrConfigInvalid, "rule %q has no patterns", r.Name)
		}
		for _, p := range r.Patterns {
			if !doublestar.ValidatePattern(p) {
				return nil, errors.Wrapf(errors.ErrConfigInvalid, "rule %q has malformed pattern %q", r.Name, p)
			}
		}
		if r.Severity != "" && r.Severity != SeverityError && r.Severity != SeverityWarning {
			return nil, errors.Wrapf(errors.ErrConfigInvalid, "rule %q has unknown severity %q", r.Name, r.Severity)
		}
	}

	return &Set{rules: rules, strict: strict, mode: mode}, nil
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}

// Strict reports whether strict mode is enabled for this set.
func (s *Set) Strict() bool {
	return s.strict
}

// Match returns every rule whose pattern matches path, in declaration order.
func (s *Set) Match(path string) []Rule {
	var matched []Rule
	for _, r := range s.rules {
		if r.matches(path) {
			matched = append(matched, r)
		}
	}
	return matched
}

// Evaluate applies the set's policy to a path validated with the given
// algorithm. It returns the matching rules (declaration order) and a nil
// error when the policy is satisfied.
//
// A path matching zero rules is unconstrained and passes by default, unless
// strict mode is set, in which case it fails with ErrNoMatchingRule.
// Warning-severity rules never fail the entry; their violations are left to
// the caller to report.
func (s *Set) Evaluate(path string, algo digest.Algorithm) ([]Rule, error) {
	matched := s.Match(path)

	if len(matched) == 0 {
		if s.strict {
			return nil, errors.Wrapf(errors.ErrNoMatchingRule, "%s", path)
		}
		return nil, nil
	}

	var required, satisfied int
	var firstUnsatisfied string
	for _, r := range matched {
		if !r.Required || r.Severity == SeverityWarning {
			continue
		}
		required++
		if r.permits(algo) {
			satisfied++
		} else if firstUnsatisfied == "" {
			firstUnsatisfied = r.Name
		}
	}

	if required == 0 {
		return matched, nil
	}

	switch s.mode {
	case RequireAll:
		if satisfied < required {
			return matched, errors.Wrapf(errors.ErrRuleUnsatisfied,
				"rule %q does not permit algorithm %q for %s", firstUnsatisfied, algo, path)
		}
	case RequireAny:
		if satisfied == 0 {
			return matched, errors.Wrapf(errors.ErrRuleUnsatisfied,
				"no matching required rule permits algorithm %q for %s", algo, path)
		}
	}

	return matched, nil
}

// Warnings returns the names of matched warning-severity rules that do not
// permit the algorithm, so callers can surface them without failing.
func (s *Set) Warnings(path string, algo digest.Algorithm) []string {
	var names []string
	for _, r := range s.Match(path) {
		if r.Severity == SeverityWarning && !r.permits(algo) {
			names = append(names, r.Name)
		}
	}
	return names
}
