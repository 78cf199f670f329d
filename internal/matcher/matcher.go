// Package matcher matches object type tags against glob and regex patterns.
// The reconciler uses it to restrict a session to target types.
package matcher

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// PatternType is the syntax of a type pattern.
type PatternType int

const (
	// Glob uses shell-style wildcards (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto picks Regex when the pattern holds regex-only metacharacters.
	Auto
)

// pattern is one compiled target type. Type tags compare case-insensitively
// and regexes are anchored at both ends.
type pattern struct {
	source string
	kind   PatternType
	glob   string
	re     *regexp.Regexp
}

func compile(kind PatternType, source string) (*pattern, error) {
	p := &pattern{source: source, kind: kind}
	if kind == Auto {
		p.kind = detectPatternType(source)
	}

	switch p.kind {
	case Glob:
		p.glob = strings.ToLower(source)
		if _, err := path.Match(p.glob, ""); err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", source, err)
		}
	case Regex:
		expr := source
		if !strings.HasPrefix(expr, "^") {
			expr = "^" + expr
		}
		if !strings.HasSuffix(expr, "$") {
			expr += "$"
		}
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", source, err)
		}
		p.re = re
	default:
		return nil, fmt.Errorf("unsupported pattern type %d for %q", kind, source)
	}
	return p, nil
}

func (p *pattern) match(typeName string) bool {
	if p.re != nil {
		return p.re.MatchString(typeName)
	}
	ok, _ := path.Match(p.glob, strings.ToLower(typeName))
	return ok
}

// detectPatternType treats a pattern as regex when it holds metacharacters
// that have no glob meaning.
func detectPatternType(s string) PatternType {
	for _, meta := range []string{
		"^", "$", `\d`, `\w`, `\s`,
		"(?:", "(?i)", "{", "}", "+", "|", "(", ")", ".*",
	} {
		if strings.Contains(s, meta) {
			return Regex
		}
	}
	return Glob
}

// TypeFilter matches a type tag against any of several patterns.
// An empty filter matches everything. Filters are immutable and safe for
// concurrent use.
type TypeFilter struct {
	patterns []*pattern
}

// NewTypeFilter compiles patterns, detecting glob or regex syntax for each.
// Blank patterns are skipped.
func NewTypeFilter(patterns ...string) (*TypeFilter, error) {
	return newTypeFilter(Auto, patterns)
}

// NewTypeFilterOf compiles every pattern with the given syntax.
func NewTypeFilterOf(kind PatternType, patterns ...string) (*TypeFilter, error) {
	return newTypeFilter(kind, patterns)
}

func newTypeFilter(kind PatternType, patterns []string) (*TypeFilter, error) {
	f := &TypeFilter{patterns: make([]*pattern, 0, len(patterns))}
	for _, s := range patterns {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		p, err := compile(kind, s)
		if err != nil {
			return nil, err
		}
		f.patterns = append(f.patterns, p)
	}
	return f, nil
}

// Match reports whether typeName matches any pattern.
func (f *TypeFilter) Match(typeName string) bool {
	if f.IsEmpty() {
		return true
	}
	for _, p := range f.patterns {
		if p.match(typeName) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the filter accepts everything.
func (f *TypeFilter) IsEmpty() bool {
	return f == nil || len(f.patterns) == 0
}

// Patterns returns the patterns as given.
func (f *TypeFilter) Patterns() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.patterns))
	for i, p := range f.patterns {
		out[i] = p.source
	}
	return out
}
