package domain

import "time"

// Rule names the classification rule that decided a result
type Rule string

const (
	RuleNone           Rule = "none"
	RuleExcluded       Rule = "excluded"
	RuleOfficialBadge  Rule = "official_badge"
	RuleMusicSection   Rule = "music_section"
	RuleTitleFormat    Rule = "title_format"
	RuleTitleKeyword   Rule = "title_keyword"
	RuleChannelKeyword Rule = "channel_keyword"
)

// Result is the outcome of one classification. Rule and Keyword are diagnostics only.
type Result struct {
	Match   bool   `json:"match"`
	Rule    Rule   `json:"rule"`
	Keyword string `json:"keyword,omitempty"`
}

// Decision is a journaled classification of one content item
type Decision struct {
	ID        int64     `json:"id"`
	ContentID string    `json:"content_id"`
	Title     string    `json:"title"`
	Channel   string    `json:"channel"`
	Match     bool      `json:"match"`
	Rule      Rule      `json:"rule"`
	Keyword   string    `json:"keyword,omitempty"`
	Rate      float64   `json:"rate"`
	DecidedAt time.Time `json:"decided_at"`
}
