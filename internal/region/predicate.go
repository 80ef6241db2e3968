package region

import (
	"regexp"
	"strings"

	"github.com/roach88/tiaki/internal/textnorm"
)

// Predicate tests normalized location text. Implementations must be pure.
type Predicate interface {
	Match(normalized string) bool
}

// Pattern matches any of its terms as whole words using a single
// alternation regexp.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern builds a word-bounded alternation over terms. Terms are
// normalized first, so macrons in sources do not matter.
func NewPattern(terms ...string) Pattern {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		n := textnorm.Normalize(term)
		if n == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(n))
	}
	if len(quoted) == 0 {
		return Pattern{}
	}
	return Pattern{re: regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)}
}

// Match implements Predicate.
func (p Pattern) Match(normalized string) bool {
	if p.re == nil {
		return false
	}
	return p.re.MatchString(normalized)
}

func (p Pattern) String() string {
	if p.re == nil {
		return ""
	}
	return p.re.String()
}

// Contains matches when any of its substrings occurs in the text.
type Contains []string

// NewContains normalizes each substring.
func NewContains(subs ...string) Contains {
	c := make(Contains, 0, len(subs))
	for _, s := range subs {
		if n := textnorm.Normalize(s); n != "" {
			c = append(c, n)
		}
	}
	return c
}

// Match implements Predicate.
func (c Contains) Match(normalized string) bool {
	for _, s := range c {
		if strings.Contains(normalized, s) {
			return true
		}
	}
	return false
}

// PredicateFunc adapts a function to Predicate.
type PredicateFunc func(normalized string) bool

// Match implements Predicate.
func (f PredicateFunc) Match(normalized string) bool {
	return f(normalized)
}
