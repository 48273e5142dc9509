package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/speednorm/pkg/domain"
	"github.com/umputun/speednorm/pkg/engine"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Player   PlayerConfig     `yaml:"player" json:"player" jsonschema:"description=mpv connection"`
	Engine   EngineConfig     `yaml:"engine" json:"engine" jsonschema:"description=Rate engine timing"`
	Database DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Server   ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Defaults CriteriaDefaults `yaml:"defaults" json:"defaults" jsonschema:"description=Overrides for compiled-in classification criteria, used when nothing is stored yet"`
}

// PlayerConfig holds the mpv IPC connection settings
type PlayerConfig struct {
	Socket      string        `yaml:"socket" json:"socket" jsonschema:"default=/tmp/mpv.sock,description=mpv --input-ipc-server socket path"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=2s,description=Request timeout for mpv commands"`
	DialRetries int           `yaml:"dial_retries" json:"dial_retries" jsonschema:"default=30,minimum=1,description=Connection attempts while mpv is starting"`
}

// EngineConfig holds the rate engine timing
type EngineConfig struct {
	NormalRate         float64       `yaml:"normal_rate" json:"normal_rate" jsonschema:"default=1.0,description=Playback rate forced for matching content"`
	RetryInterval      time.Duration `yaml:"retry_interval" json:"retry_interval" jsonschema:"default=500ms,description=Delay between readiness polls"`
	MaxAttempts        int           `yaml:"max_attempts" json:"max_attempts" jsonschema:"default=10,minimum=1,description=Readiness polls before giving up"`
	GuardInterval      time.Duration `yaml:"guard_interval" json:"guard_interval" jsonschema:"default=100ms,description=Transition guard tick"`
	GuardCeiling       time.Duration `yaml:"guard_ceiling" json:"guard_ceiling" jsonschema:"default=5s,description=Transition guard gives up after this long"`
	GuardIgnoreWindow  time.Duration `yaml:"guard_ignore_window" json:"guard_ignore_window" jsonschema:"default=1500ms,description=Rate notifications ignored after a forced write"`
	VisibilityDebounce time.Duration `yaml:"visibility_debounce" json:"visibility_debounce" jsonschema:"default=100ms,description=Delay before reconciling after the player is shown again"`
	WriteTagWindow     time.Duration `yaml:"write_tag_window" json:"write_tag_window" jsonschema:"default=1s,description=How long an engine write waits for its change notification"`
}

// DatabaseConfig holds the sqlite settings
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn" json:"dsn" jsonschema:"default=file:speednorm.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns     int           `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=4,description=Maximum number of open connections"`
	MaxIdleConns     int           `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=2,description=Maximum number of idle connections"`
	ConnMaxLifetime  int           `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	JournalRetention time.Duration `yaml:"journal_retention" json:"journal_retention" jsonschema:"default=720h,description=Decisions older than this are pruned"`
}

// ServerConfig holds the REST API settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=127.0.0.1:8090,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// CriteriaDefaults overrides the compiled-in criteria, nil fields keep compiled-in values
type CriteriaDefaults struct {
	Keywords              []string `yaml:"keywords" json:"keywords,omitempty" jsonschema:"description=Include keywords"`
	ExcludeKeywords       []string `yaml:"exclude_keywords" json:"exclude_keywords,omitempty" jsonschema:"description=Exclude keywords"`
	SearchInChannel       *bool    `yaml:"search_in_channel" json:"search_in_channel,omitempty" jsonschema:"description=Match keywords in channel names"`
	UseTitlePattern       *bool    `yaml:"use_title_pattern" json:"use_title_pattern,omitempty" jsonschema:"description=Match artist-title shaped titles"`
	UseOfficialBadge      *bool    `yaml:"use_official_badge" json:"use_official_badge,omitempty" jsonschema:"description=Match official artist badges"`
	UseDescriptionSection *bool    `yaml:"use_description_section" json:"use_description_section,omitempty" jsonschema:"description=Match music sections in descriptions"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults, used when no file is given
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	// player
	if cfg.Player.Socket == "" {
		cfg.Player.Socket = "/tmp/mpv.sock"
	}
	if cfg.Player.Timeout == 0 {
		cfg.Player.Timeout = 2 * time.Second
	}
	if cfg.Player.DialRetries == 0 {
		cfg.Player.DialRetries = 30
	}

	// engine
	def := engine.DefaultConfig()
	if cfg.Engine.NormalRate == 0 {
		cfg.Engine.NormalRate = def.NormalRate
	}
	if cfg.Engine.RetryInterval == 0 {
		cfg.Engine.RetryInterval = def.RetryInterval
	}
	if cfg.Engine.MaxAttempts == 0 {
		cfg.Engine.MaxAttempts = def.MaxAttempts
	}
	if cfg.Engine.GuardInterval == 0 {
		cfg.Engine.GuardInterval = def.GuardInterval
	}
	if cfg.Engine.GuardCeiling == 0 {
		cfg.Engine.GuardCeiling = def.GuardCeiling
	}
	if cfg.Engine.GuardIgnoreWindow == 0 {
		cfg.Engine.GuardIgnoreWindow = def.GuardIgnoreWindow
	}
	if cfg.Engine.VisibilityDebounce == 0 {
		cfg.Engine.VisibilityDebounce = def.VisibilityDebounce
	}
	if cfg.Engine.WriteTagWindow == 0 {
		cfg.Engine.WriteTagWindow = time.Second
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:speednorm.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 4
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}
	if cfg.Database.JournalRetention == 0 {
		cfg.Database.JournalRetention = 30 * 24 * time.Hour
	}

	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = "127.0.0.1:8090"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Engine.NormalRate <= 0 || cfg.Engine.NormalRate > 16 {
		return fmt.Errorf("engine.normal_rate must be in (0, 16]")
	}
	if cfg.Engine.MaxAttempts < 1 {
		return fmt.Errorf("engine.max_attempts must be at least 1")
	}
	durations := map[string]time.Duration{
		"engine.retry_interval":      cfg.Engine.RetryInterval,
		"engine.guard_interval":      cfg.Engine.GuardInterval,
		"engine.guard_ceiling":       cfg.Engine.GuardCeiling,
		"engine.guard_ignore_window": cfg.Engine.GuardIgnoreWindow,
		"engine.visibility_debounce": cfg.Engine.VisibilityDebounce,
		"engine.write_tag_window":    cfg.Engine.WriteTagWindow,
		"player.timeout":             cfg.Player.Timeout,
		"database.journal_retention": cfg.Database.JournalRetention,
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if cfg.Engine.GuardInterval >= cfg.Engine.GuardCeiling {
		return fmt.Errorf("engine.guard_interval must be shorter than engine.guard_ceiling")
	}
	if cfg.Player.DialRetries < 1 {
		return fmt.Errorf("player.dial_retries must be at least 1")
	}
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	return nil
}

// EngineSettings returns the engine configuration
func (c *Config) EngineSettings() engine.Config {
	return engine.Config{
		NormalRate:         c.Engine.NormalRate,
		RetryInterval:      c.Engine.RetryInterval,
		MaxAttempts:        c.Engine.MaxAttempts,
		GuardInterval:      c.Engine.GuardInterval,
		GuardCeiling:       c.Engine.GuardCeiling,
		GuardIgnoreWindow:  c.Engine.GuardIgnoreWindow,
		VisibilityDebounce: c.Engine.VisibilityDebounce,
	}
}

// DefaultCriteria returns compiled-in criteria with the configured overrides applied
func (c *Config) DefaultCriteria() domain.Criteria {
	res := domain.DefaultCriteria()
	d := c.Defaults
	if d.Keywords != nil {
		res.Keywords = append([]string{}, d.Keywords...)
	}
	if d.ExcludeKeywords != nil {
		res.ExcludeKeywords = append([]string{}, d.ExcludeKeywords...)
	}
	if d.SearchInChannel != nil {
		res.SearchInChannel = *d.SearchInChannel
	}
	if d.UseTitlePattern != nil {
		res.UseTitlePattern = *d.UseTitlePattern
	}
	if d.UseOfficialBadge != nil {
		res.UseOfficialBadge = *d.UseOfficialBadge
	}
	if d.UseDescriptionSection != nil {
		res.UseDescriptionSection = *d.UseDescriptionSection
	}
	return res
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
