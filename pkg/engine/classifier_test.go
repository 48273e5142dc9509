package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/speednorm/pkg/domain"
)

func TestClassifier_Classify(t *testing.T) {
	defaults := domain.DefaultCriteria()

	withExclude := domain.DefaultCriteria()
	withExclude.ExcludeKeywords = []string{"shorts"}

	noFlags := domain.Criteria{Keywords: []string{"music"}}

	emptyKeywords := domain.DefaultCriteria()
	emptyKeywords.Keywords = nil

	tests := []struct {
		name     string
		title    string
		channel  string
		criteria domain.Criteria
		aux      AuxSignals
		want     domain.Result
	}{
		{
			name:     "bracket title shape",
			title:    "Artist「Song Title」Official MV",
			channel:  "Artist Official",
			criteria: defaults,
			want:     domain.Result{Match: true, Rule: domain.RuleTitleFormat},
		},
		{
			name:     "vlog has no hit",
			title:    "Weekly Vlog Day 12",
			channel:  "SomeVlogger",
			criteria: defaults,
			want:     domain.Result{Match: false, Rule: domain.RuleNone},
		},
		{
			name:     "exclusion beats dash shape and keywords",
			title:    "Official MV - Song (Shorts)",
			criteria: withExclude,
			want:     domain.Result{Match: false, Rule: domain.RuleExcluded, Keyword: "Shorts"},
		},
		{
			name:     "exclusion in channel when searching channel",
			title:    "My Song",
			channel:  "Shorts Factory",
			criteria: withExclude,
			aux:      AuxSignals{OfficialBadge: true},
			want:     domain.Result{Match: false, Rule: domain.RuleExcluded, Keyword: "Shorts"},
		},
		{
			name:    "exclusion in channel ignored without channel search",
			title:   "My Song",
			channel: "Shorts Factory",
			criteria: domain.Criteria{
				Keywords: []string{"song"}, ExcludeKeywords: []string{"shorts"},
			},
			want: domain.Result{Match: true, Rule: domain.RuleTitleKeyword, Keyword: "Song"},
		},
		{
			name:     "official badge",
			title:    "untitled",
			criteria: defaults,
			aux:      AuxSignals{OfficialBadge: true},
			want:     domain.Result{Match: true, Rule: domain.RuleOfficialBadge},
		},
		{
			name:     "badge disabled",
			title:    "untitled",
			criteria: noFlags,
			aux:      AuxSignals{OfficialBadge: true, MusicSection: true},
			want:     domain.Result{Match: false, Rule: domain.RuleNone},
		},
		{
			name:     "music section",
			title:    "untitled",
			criteria: defaults,
			aux:      AuxSignals{MusicSection: true},
			want:     domain.Result{Match: true, Rule: domain.RuleMusicSection},
		},
		{
			name:     "dash shape with full-width dash",
			title:    "アーティスト － 曲名",
			criteria: emptyKeywords,
			want:     domain.Result{Match: true, Rule: domain.RuleTitleFormat},
		},
		{
			name:     "slash shape",
			title:    "Band / Track",
			criteria: emptyKeywords,
			want:     domain.Result{Match: true, Rule: domain.RuleTitleFormat},
		},
		{
			name:     "title pattern disabled",
			title:    "Band / Track",
			criteria: noFlags,
			want:     domain.Result{Match: false, Rule: domain.RuleNone},
		},
		{
			name:     "title shape ignores channel",
			title:    "nothing",
			channel:  "Band / Track",
			criteria: emptyKeywords,
			want:     domain.Result{Match: false, Rule: domain.RuleNone},
		},
		{
			name:     "keyword in title",
			title:    "best cover ever",
			criteria: defaults,
			want:     domain.Result{Match: true, Rule: domain.RuleTitleKeyword, Keyword: "cover"},
		},
		{
			name:     "keyword in channel",
			title:    "untitled",
			channel:  "Night Live Channel",
			criteria: defaults,
			want:     domain.Result{Match: true, Rule: domain.RuleChannelKeyword, Keyword: "Live"},
		},
		{
			name:     "official never matches channel",
			title:    "untitled",
			channel:  "Acme Official",
			criteria: defaults,
			want:     domain.Result{Match: false, Rule: domain.RuleNone},
		},
		{
			name:     "official still matches title",
			title:    "the official thing",
			criteria: defaults,
			want:     domain.Result{Match: true, Rule: domain.RuleTitleKeyword, Keyword: "official"},
		},
		{
			name:     "missing title and channel",
			criteria: defaults,
			want:     domain.Result{Match: false, Rule: domain.RuleNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.title, tt.channel, tt.criteria, tt.aux)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifier_EmptyIncludeNeverMatchesByKeyword(t *testing.T) {
	c := domain.Criteria{SearchInChannel: true}
	titles := []string{"", "music", "official MV", "song", "anything at all"}
	for _, title := range titles {
		for _, channel := range []string{"", "Music Official", "live"} {
			res := Classify(title, channel, c, AuxSignals{})
			assert.False(t, res.Match, "title %q channel %q", title, channel)
		}
	}
}

func TestClassifier_ExclusionAlwaysWins(t *testing.T) {
	for _, kw := range domain.DefaultKeywords {
		c := domain.DefaultCriteria()
		c.ExcludeKeywords = []string{kw}
		res := Classify("x 「"+kw+"」 - y", "", c, AuxSignals{OfficialBadge: true, MusicSection: true})
		assert.False(t, res.Match, "keyword %q", kw)
		assert.Equal(t, domain.RuleExcluded, res.Rule)
	}
}

func TestClassifier_CriteriaIsolated(t *testing.T) {
	c := domain.Criteria{Keywords: []string{"song"}}
	cl := NewClassifier(c)
	c.Keywords[0] = "changed"
	assert.Equal(t, []string{"song"}, cl.Criteria().Keywords)
}

func TestHasMusicSection(t *testing.T) {
	assert.True(t, HasMusicSection([]string{"Chapters", " Music "}))
	assert.True(t, HasMusicSection([]string{"音楽"}))
	assert.True(t, HasMusicSection([]string{"music"}))
	assert.False(t, HasMusicSection([]string{"Musical theatre", "Transcript"}))
	assert.False(t, HasMusicSection(nil))
}

func TestIsArtistTitleFormat(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Artist「Song」", true},
		{"Artist『Song』", true},
		{"「Song」", false},
		{"Artist - Song", true},
		{"Artist — Song", true},
		{"Artist – Song", true},
		{"Artist ｰ Song", true},
		{"Artist-Song", false},
		{"Artist / Song", true},
		{"Artist ／ Song", true},
		{`Artist \ Song`, true},
		{"Artist/Song", false},
		{"plain title", false},
		{"   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, IsArtistTitleFormat(tt.title))
		})
	}
}
