// Package criteria keeps the user-editable classification criteria in a
// key-value setting store. Every key falls back to its compiled-in default on
// its own, so a damaged or missing value never blocks classification.
package criteria

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/speednorm/pkg/domain"
)

//go:generate moq -out mocks/setting_store.go -pkg mocks -skip-ensure -fmt goimports . SettingStore

// ErrUnknownList is returned for a keyword list other than include or exclude
var ErrUnknownList = errors.New("unknown keyword list")

// SettingStore is a string key-value store, found is false for missing keys
type SettingStore interface {
	GetSetting(ctx context.Context, key string) (value string, found bool, err error)
	SetSetting(ctx context.Context, key, value string) error
}

// Config holds manager dependencies
type Config struct {
	Store SettingStore
	// compiled-in criteria, used for missing or broken keys
	Defaults domain.Criteria
	// called after every persisted change, optional
	OnChange func(ctx context.Context, c domain.Criteria) error
}

// Manager loads, edits and persists criteria
type Manager struct {
	store    SettingStore
	defaults domain.Criteria
	onChange func(ctx context.Context, c domain.Criteria) error

	mu      sync.Mutex
	current domain.Criteria
}

// NewManager makes a manager, current criteria are the defaults until Load
func NewManager(cfg Config) *Manager {
	return &Manager{
		store:    cfg.Store,
		defaults: cfg.Defaults.Clone(),
		onChange: cfg.OnChange,
		current:  cfg.Defaults.Clone(),
	}
}

// Load reads criteria from the store. It never fails: unreadable keys fall back
// to defaults, and keyword lists that were never stored are seeded with defaults.
func (m *Manager) Load(ctx context.Context) domain.Criteria {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.defaults.Clone()
	c.Keywords = m.loadList(ctx, domain.KeyKeywords, m.defaults.Keywords)
	c.ExcludeKeywords = m.loadList(ctx, domain.KeyExcludeKeywords, m.defaults.ExcludeKeywords)
	c.SearchInChannel = m.loadFlag(ctx, domain.KeySearchInChannel, m.defaults.SearchInChannel)
	c.UseTitlePattern = m.loadFlag(ctx, domain.KeyUseTitlePattern, m.defaults.UseTitlePattern)
	c.UseOfficialBadge = m.loadFlag(ctx, domain.KeyUseOfficialBadge, m.defaults.UseOfficialBadge)
	c.UseDescriptionSection = m.loadFlag(ctx, domain.KeyUseDescriptionSection, m.defaults.UseDescriptionSection)

	m.current = c
	lgr.Printf("[DEBUG] criteria loaded: %d keywords, %d exclude keywords, channel=%v title=%v badge=%v section=%v",
		len(c.Keywords), len(c.ExcludeKeywords), c.SearchInChannel, c.UseTitlePattern, c.UseOfficialBadge, c.UseDescriptionSection)
	return c.Clone()
}

// Criteria returns the current criteria
func (m *Manager) Criteria() domain.Criteria {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone()
}

// Save replaces all criteria. Keyword lists are trimmed, blanks and duplicates dropped.
func (m *Manager) Save(ctx context.Context, c domain.Criteria) (domain.Criteria, error) {
	return m.update(ctx, func(cur *domain.Criteria) {
		*cur = c.Clone()
		cur.Keywords = normalize(cur.Keywords)
		cur.ExcludeKeywords = normalize(cur.ExcludeKeywords)
	})
}

// AddKeyword appends a keyword to a list. Blank and already present keywords are ignored.
func (m *Manager) AddKeyword(ctx context.Context, list domain.KeywordList, keyword string) (domain.Criteria, error) {
	if !list.Valid() {
		return domain.Criteria{}, fmt.Errorf("add keyword to %q: %w", list, ErrUnknownList)
	}
	keyword = strings.TrimSpace(keyword)
	return m.update(ctx, func(cur *domain.Criteria) {
		kws := listOf(cur, list)
		if keyword == "" || slices.Contains(*kws, keyword) {
			return
		}
		*kws = append(*kws, keyword)
	})
}

// RemoveKeyword drops every occurrence of a keyword from a list
func (m *Manager) RemoveKeyword(ctx context.Context, list domain.KeywordList, keyword string) (domain.Criteria, error) {
	if !list.Valid() {
		return domain.Criteria{}, fmt.Errorf("remove keyword from %q: %w", list, ErrUnknownList)
	}
	return m.update(ctx, func(cur *domain.Criteria) {
		kws := listOf(cur, list)
		*kws = slices.DeleteFunc(*kws, func(k string) bool { return k == keyword })
	})
}

// ResetKeywords restores a list to its compiled-in default
func (m *Manager) ResetKeywords(ctx context.Context, list domain.KeywordList) (domain.Criteria, error) {
	if !list.Valid() {
		return domain.Criteria{}, fmt.Errorf("reset keywords of %q: %w", list, ErrUnknownList)
	}
	defaults := m.defaults.Clone()
	return m.update(ctx, func(cur *domain.Criteria) {
		*listOf(cur, list) = *listOf(&defaults, list)
	})
}

// update applies fn to a copy of the current criteria, persists changed keys and notifies
func (m *Manager) update(ctx context.Context, fn func(cur *domain.Criteria)) (domain.Criteria, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.current.Clone()
	fn(&next)

	changed, err := m.persist(ctx, m.current, next)
	if err != nil {
		return m.current.Clone(), err
	}
	if !changed {
		return next, nil
	}
	m.current = next

	if m.onChange != nil {
		if err := m.onChange(ctx, next.Clone()); err != nil {
			return next.Clone(), fmt.Errorf("notify criteria change: %w", err)
		}
	}
	return next.Clone(), nil
}

// persist writes keys whose values differ between prev and next
func (m *Manager) persist(ctx context.Context, prev, next domain.Criteria) (bool, error) {
	type kv struct {
		key        string
		prev, next any
	}
	values := []kv{
		{domain.KeyKeywords, prev.Keywords, next.Keywords},
		{domain.KeyExcludeKeywords, prev.ExcludeKeywords, next.ExcludeKeywords},
		{domain.KeySearchInChannel, prev.SearchInChannel, next.SearchInChannel},
		{domain.KeyUseTitlePattern, prev.UseTitlePattern, next.UseTitlePattern},
		{domain.KeyUseOfficialBadge, prev.UseOfficialBadge, next.UseOfficialBadge},
		{domain.KeyUseDescriptionSection, prev.UseDescriptionSection, next.UseDescriptionSection},
	}

	changed := false
	for _, v := range values {
		prevVal, err := encode(v.prev)
		if err != nil {
			return false, err
		}
		nextVal, err := encode(v.next)
		if err != nil {
			return false, err
		}
		if prevVal == nextVal {
			continue
		}
		if err := m.store.SetSetting(ctx, v.key, nextVal); err != nil {
			return false, fmt.Errorf("save %s: %w", v.key, err)
		}
		lgr.Printf("[DEBUG] criteria %s set to %s", v.key, nextVal)
		changed = true
	}
	return changed, nil
}

func (m *Manager) loadList(ctx context.Context, key string, def []string) []string {
	raw, found, err := m.store.GetSetting(ctx, key)
	if err != nil {
		lgr.Printf("[WARN] failed to read %s, using defaults: %v", key, err)
		return slices.Clone(def)
	}
	if !found {
		// never stored, seed with defaults so the user can edit them
		res := slices.Clone(def)
		if val, err := encode(res); err == nil {
			if err := m.store.SetSetting(ctx, key, val); err != nil {
				lgr.Printf("[WARN] failed to seed %s: %v", key, err)
			}
		}
		return res
	}
	var res []string
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		lgr.Printf("[WARN] malformed %s, using defaults: %v", key, err)
		return slices.Clone(def)
	}
	if res == nil {
		res = []string{} // stored empty list stays empty
	}
	return res
}

func (m *Manager) loadFlag(ctx context.Context, key string, def bool) bool {
	raw, found, err := m.store.GetSetting(ctx, key)
	if err != nil {
		lgr.Printf("[WARN] failed to read %s, using default %v: %v", key, def, err)
		return def
	}
	if !found {
		return def
	}
	var res bool
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		lgr.Printf("[WARN] malformed %s, using default %v: %v", key, def, err)
		return def
	}
	return res
}

func listOf(c *domain.Criteria, list domain.KeywordList) *[]string {
	if list == domain.ListExclude {
		return &c.ExcludeKeywords
	}
	return &c.Keywords
}

func normalize(keywords []string) []string {
	res := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" || slices.Contains(res, k) {
			continue
		}
		res = append(res, k)
	}
	return res
}

func encode(v any) (string, error) {
	if s, ok := v.([]string); ok && s == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode setting: %w", err)
	}
	return string(b), nil
}
