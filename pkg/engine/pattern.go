package engine

import (
	"regexp"
	"strings"
)

// Matcher is a case-insensitive alternation of literal keywords.
// The zero value matches nothing, including the empty string.
type Matcher struct {
	re *regexp.Regexp
}

// BuildMatcher drops blank keywords, quotes every remaining one and joins them
// into a single case-insensitive alternation. An empty result matches nothing.
func BuildMatcher(keywords []string) Matcher {
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if strings.TrimSpace(k) == "" {
			continue
		}
		// invalid utf-8 would make the pattern fail to compile
		quoted = append(quoted, regexp.QuoteMeta(strings.ToValidUTF8(k, "�")))
	}
	if len(quoted) == 0 {
		return Matcher{}
	}
	return Matcher{re: regexp.MustCompile("(?i)(?:" + strings.Join(quoted, "|") + ")")}
}

// Match reports whether any keyword occurs in s
func (m Matcher) Match(s string) bool {
	if m.re == nil || s == "" {
		return false
	}
	return m.re.MatchString(s)
}

// Find returns the first keyword occurrence in s, as it appears in s
func (m Matcher) Find(s string) (string, bool) {
	if m.re == nil || s == "" {
		return "", false
	}
	loc := m.re.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	return s[loc[0]:loc[1]], true
}

// Empty reports whether the matcher was built from no usable keywords
func (m Matcher) Empty() bool {
	return m.re == nil
}
