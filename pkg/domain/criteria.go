package domain

// Criteria holds user-configured matching rules for one classification call
type Criteria struct {
	Keywords              []string `json:"keywords"`
	ExcludeKeywords       []string `json:"exclude_keywords"`
	SearchInChannel       bool     `json:"search_in_channel"`
	UseTitlePattern       bool     `json:"use_title_pattern"`
	UseOfficialBadge      bool     `json:"use_official_badge"`
	UseDescriptionSection bool     `json:"use_description_section"`
}

// settings keys used by the configuration store
const (
	KeyKeywords              = "keywords"
	KeyExcludeKeywords       = "excludeKeywords"
	KeySearchInChannel       = "searchInChannel"
	KeyUseTitlePattern       = "enableTitlePatternMatch"
	KeyUseOfficialBadge      = "enableOfficialArtistMatch"
	KeyUseDescriptionSection = "enableMusicSectionMatch"
)

// DefaultKeywords is the compiled-in include keyword list
var DefaultKeywords = []string{
	"Music", "MV", "song", "feat.", "Live", "dance", "cover", "video", "official",
	"lyric", "tour", "ASMR", "Choreography", "Remix", "Acoustic",
	"音楽", "歌", "曲", "ツアー", "ラップ", "ソング", "ライブ", "ダンス", "弾き語",
	"踊ってみた", "叩いてみた", "カバー", "生誕祭", "コント", "漫才", "落語", "ネタ",
	"環境音", "立体音響",
}

// DefaultExcludeKeywords is the compiled-in exclude keyword list, empty by default
var DefaultExcludeKeywords = []string{}

// DefaultCriteria returns compiled-in criteria. Slices are copies and safe to modify.
func DefaultCriteria() Criteria {
	return Criteria{
		Keywords:              append([]string{}, DefaultKeywords...),
		ExcludeKeywords:       append([]string{}, DefaultExcludeKeywords...),
		SearchInChannel:       true,
		UseTitlePattern:       true,
		UseOfficialBadge:      true,
		UseDescriptionSection: true,
	}
}

// Clone returns a deep copy of criteria
func (c Criteria) Clone() Criteria {
	res := c
	res.Keywords = append([]string{}, c.Keywords...)
	res.ExcludeKeywords = append([]string{}, c.ExcludeKeywords...)
	return res
}

// KeywordList identifies one of the two keyword lists
type KeywordList string

const (
	ListInclude KeywordList = "include"
	ListExclude KeywordList = "exclude"
)

// Valid reports whether the list name is known
func (l KeywordList) Valid() bool {
	return l == ListInclude || l == ListExclude
}
