package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMatcher(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		input    string
		want     bool
	}{
		{name: "plain keyword", keywords: []string{"music"}, input: "Some Music Video", want: true},
		{name: "case insensitive", keywords: []string{"MV"}, input: "official mv", want: true},
		{name: "no match", keywords: []string{"song"}, input: "Weekly Vlog Day 12", want: false},
		{name: "dot is literal", keywords: []string{"feat."}, input: "artist feat. someone", want: true},
		{name: "dot does not match any char", keywords: []string{"feat."}, input: "featx", want: false},
		{name: "japanese keyword", keywords: []string{"踊ってみた"}, input: "【踊ってみた】新曲", want: true},
		{name: "blank entries dropped", keywords: []string{"", "  ", "live"}, input: "LIVE at Budokan", want: true},
		{name: "duplicates fine", keywords: []string{"live", "live"}, input: "live", want: true},
		{name: "empty list matches nothing", keywords: nil, input: "anything", want: false},
		{name: "blank list matches nothing", keywords: []string{" ", "\t"}, input: "anything", want: false},
		{name: "empty list never matches empty string", keywords: []string{}, input: "", want: false},
		{name: "alternation char is literal", keywords: []string{"a|b"}, input: "b", want: false},
		{name: "alternation char matched verbatim", keywords: []string{"a|b"}, input: "xa|by", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildMatcher(tt.keywords)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestBuildMatcher_Metacharacters(t *testing.T) {
	keywords := []string{`.`, `*`, `+`, `?`, `^`, `$`, `{`, `}`, `(`, `)`, `|`, `[`, `]`, `\`, `(?i)`, `[a-z]+`, `\d{2,}`}
	m := BuildMatcher(keywords)
	assert.False(t, m.Empty())

	for _, k := range keywords {
		assert.True(t, m.Match("prefix "+k+" suffix"), "keyword %q should match verbatim", k)
	}
	assert.False(t, m.Match("abc"), "character classes must not be interpreted")
	assert.False(t, m.Match("12345"))

	assert.NotPanics(t, func() { BuildMatcher([]string{"\xff\xfe broken utf8", "ok"}) })
	assert.True(t, BuildMatcher([]string{"\xff\xfe", "ok"}).Match("OK"))
}

func TestMatcher_Find(t *testing.T) {
	m := BuildMatcher([]string{"cover", "live"})

	kw, ok := m.Find("Acoustic COVER session")
	assert.True(t, ok)
	assert.Equal(t, "COVER", kw)

	_, ok = m.Find("nothing here")
	assert.False(t, ok)

	_, ok = Matcher{}.Find("cover")
	assert.False(t, ok)
}
