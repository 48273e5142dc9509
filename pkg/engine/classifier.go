package engine

import (
	"regexp"
	"strings"

	"github.com/umputun/speednorm/pkg/domain"
)

// AuxKind names an auxiliary boolean signal read from the metadata provider
type AuxKind string

const (
	AuxOfficialBadge AuxKind = "official_badge"
	AuxMusicSection  AuxKind = "music_section"
)

// AuxSignals carries auxiliary signals observed for the current item
type AuxSignals struct {
	OfficialBadge bool
	MusicSection  bool
}

// channelStopword is never used for channel matching, channel names carry it as branding
const channelStopword = "official"

// artist/title shapes, checked against the title only
var (
	quoteShape = regexp.MustCompile(`[^「」『』]+[「『][^「」『』]+[」』]`)
	dashShape  = regexp.MustCompile(`.+?\s[-−‐‒–—－ーｰ]\s.+`)
	slashShape = regexp.MustCompile(`.+?\s[\\/／＼]\s.+`)
)

// musicSectionMarkers are the section headers that identify a structured music section
var musicSectionMarkers = []string{"Music", "音楽"}

// Classifier evaluates criteria against title, channel and aux signals.
// It is immutable once built and safe to share.
type Classifier struct {
	criteria domain.Criteria
	include  Matcher
	channel  Matcher
	exclude  Matcher
}

// NewClassifier compiles matchers for the given criteria
func NewClassifier(c domain.Criteria) *Classifier {
	channelKeywords := make([]string, 0, len(c.Keywords))
	for _, k := range c.Keywords {
		if strings.EqualFold(k, channelStopword) {
			continue
		}
		channelKeywords = append(channelKeywords, k)
	}
	return &Classifier{
		criteria: c.Clone(),
		include:  BuildMatcher(c.Keywords),
		channel:  BuildMatcher(channelKeywords),
		exclude:  BuildMatcher(c.ExcludeKeywords),
	}
}

// Criteria returns a copy of the criteria the classifier was built from
func (c *Classifier) Criteria() domain.Criteria {
	return c.criteria.Clone()
}

// Classify applies rules in order, first applicable rule wins:
// exclusion, official badge, music section, title format, title keyword, channel keyword.
func (c *Classifier) Classify(title, channel string, aux AuxSignals) domain.Result {
	if kw, ok := c.exclude.Find(title); ok {
		return domain.Result{Match: false, Rule: domain.RuleExcluded, Keyword: kw}
	}
	if c.criteria.SearchInChannel {
		if kw, ok := c.exclude.Find(channel); ok {
			return domain.Result{Match: false, Rule: domain.RuleExcluded, Keyword: kw}
		}
	}

	if c.criteria.UseOfficialBadge && aux.OfficialBadge {
		return domain.Result{Match: true, Rule: domain.RuleOfficialBadge}
	}
	if c.criteria.UseDescriptionSection && aux.MusicSection {
		return domain.Result{Match: true, Rule: domain.RuleMusicSection}
	}
	if c.criteria.UseTitlePattern && IsArtistTitleFormat(title) {
		return domain.Result{Match: true, Rule: domain.RuleTitleFormat}
	}
	if kw, ok := c.include.Find(title); ok {
		return domain.Result{Match: true, Rule: domain.RuleTitleKeyword, Keyword: kw}
	}
	if c.criteria.SearchInChannel {
		if kw, ok := c.channel.Find(channel); ok {
			return domain.Result{Match: true, Rule: domain.RuleChannelKeyword, Keyword: kw}
		}
	}
	return domain.Result{Match: false, Rule: domain.RuleNone}
}

// Classify is a convenience wrapper compiling criteria for a single call
func Classify(title, channel string, c domain.Criteria, aux AuxSignals) domain.Result {
	return NewClassifier(c).Classify(title, channel, aux)
}

// IsArtistTitleFormat reports whether the title has an "artist「title」",
// "artist - title" or "artist / title" shape
func IsArtistTitleFormat(title string) bool {
	t := strings.TrimSpace(title)
	if t == "" {
		return false
	}
	return quoteShape.MatchString(t) || dashShape.MatchString(t) || slashShape.MatchString(t)
}

// HasMusicSection scans section headers for a structured music section marker
func HasMusicSection(headers []string) bool {
	for _, h := range headers {
		h = strings.TrimSpace(h)
		for _, m := range musicSectionMarkers {
			if strings.EqualFold(h, m) {
				return true
			}
		}
	}
	return false
}
