package config

import (
	"fmt"
	"strings"
	"time"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RedditConfig controls the listing source.
type RedditConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	UserAgent  string `mapstructure:"user_agent"`
	Timeout    string `mapstructure:"timeout"`     // duration string, e.g., "20s"
	FetchDelay string `mapstructure:"fetch_delay"` // pause after every forum fetch
	Window     string `mapstructure:"window"`      // day, week or month
	Limit      int    `mapstructure:"limit"`
}

// ForumsConfig lists the forums to scan, in order.
type ForumsConfig struct {
	List    []string `mapstructure:"list"`
	Primary []string `mapstructure:"primary"` // always relevant, keyword filter bypassed
}

// FilterConfig holds the topical keyword phrases for non-primary forums.
type FilterConfig struct {
	Keywords []string `mapstructure:"keywords"`
}

// DrafterConfig selects the outreach drafting strategy.
type DrafterConfig struct {
	Strategy string `mapstructure:"strategy"` // template or openai
	Delay    string `mapstructure:"delay"`    // optional pause before each generative call
}

// OpenAIConfig configures the generative drafter.
type OpenAIConfig struct {
	APIKey      string   `mapstructure:"api_key"`
	Model       string   `mapstructure:"model"`
	BaseURL     string   `mapstructure:"base_url"`    // optional
	Temperature *float32 `mapstructure:"temperature"` // nil means 0.7; an explicit 0 is kept
	Timeout     string   `mapstructure:"timeout"`
}

// OutputConfig controls report selection and persistence.
type OutputConfig struct {
	Path          string `mapstructure:"path"`
	TopN          int    `mapstructure:"top_n"` // 0 keeps every scored post
	ContentLimit  int    `mapstructure:"content_limit"`
	Markdown      string `mapstructure:"markdown"`       // optional digest path
	MarkdownTitle string `mapstructure:"markdown_title"` // supports {.CurrentDate}
}

// CacheConfig enables the redis-backed draft cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	TTL     string `mapstructure:"ttl"`
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Reddit  RedditConfig  `mapstructure:"reddit"`
	Forums  ForumsConfig  `mapstructure:"forums"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Drafter DrafterConfig `mapstructure:"drafter"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Output  OutputConfig  `mapstructure:"output"`
	Cache   CacheConfig   `mapstructure:"cache"`
}

// DefaultTemperature is the sampling temperature used when none is configured.
const DefaultTemperature float32 = 0.7

const (
	StrategyTemplate = "template"
	StrategyOpenAI   = "openai"
)

// DefaultForums is the ordered forum list scanned when none is configured.
var DefaultForums = []string{
	"nobuy",
	"shoppingaddiction",
	"debtfree",
	"personalfinance",
	"frugal",
	"minimalism",
}

// DefaultPrimaryForums are included without keyword checks.
var DefaultPrimaryForums = []string{"nobuy", "shoppingaddiction"}

// DefaultKeywords gate posts from non-primary forums.
var DefaultKeywords = []string{
	"impulse buy", "impulse purchase", "impulse spending",
	"can't stop spending", "can't stop buying",
	"shopping addiction", "compulsive buying",
	"can't save money", "unable to save",
	"buying things i don't need",
	"overspending", "overspent",
	"retail therapy",
	"shopping habit", "spending habit",
	"buy too much", "spent too much",
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Reddit.BaseURL == "" {
		c.Reddit.BaseURL = "https://old.reddit.com"
	}
	if c.Reddit.UserAgent == "" {
		c.Reddit.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	}
	if c.Reddit.Timeout == "" {
		c.Reddit.Timeout = "20s"
	}
	if c.Reddit.FetchDelay == "" {
		c.Reddit.FetchDelay = "2s"
	}
	if c.Reddit.Window == "" {
		c.Reddit.Window = "month"
	}
	if c.Reddit.Limit == 0 {
		c.Reddit.Limit = 100
	}
	if len(c.Forums.List) == 0 {
		c.Forums.List = append([]string(nil), DefaultForums...)
	}
	if c.Forums.Primary == nil {
		c.Forums.Primary = append([]string(nil), DefaultPrimaryForums...)
	}
	if len(c.Filter.Keywords) == 0 {
		c.Filter.Keywords = append([]string(nil), DefaultKeywords...)
	}
	if c.Drafter.Strategy == "" {
		c.Drafter.Strategy = StrategyTemplate
	}
	c.Drafter.Strategy = strings.ToLower(strings.TrimSpace(c.Drafter.Strategy))
	if c.Drafter.Delay == "" {
		c.Drafter.Delay = "0s"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.Temperature == nil {
		t := DefaultTemperature
		c.OpenAI.Temperature = &t
	}
	if c.OpenAI.Timeout == "" {
		c.OpenAI.Timeout = "60s"
	}
	if c.Output.Path == "" {
		c.Output.Path = "data/report.json"
	}
	if c.Output.ContentLimit == 0 {
		c.Output.ContentLimit = 500
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "168h"
	}
}

// Validate reports configuration errors that must stop a run before any fetching.
func Validate(c Config) error {
	switch c.Drafter.Strategy {
	case StrategyTemplate:
	case StrategyOpenAI:
		if strings.TrimSpace(c.OpenAI.APIKey) == "" {
			return fmt.Errorf("openai.api_key is required for the openai drafter (set OPENAI_API_KEY)")
		}
	default:
		return fmt.Errorf("unknown drafter.strategy %q (want %q or %q)", c.Drafter.Strategy, StrategyTemplate, StrategyOpenAI)
	}
	switch strings.ToLower(c.Reddit.Window) {
	case "day", "week", "month":
	default:
		return fmt.Errorf("unknown reddit.window %q (want day, week or month)", c.Reddit.Window)
	}
	if len(c.Forums.List) == 0 {
		return fmt.Errorf("forums.list must not be empty")
	}
	if c.Reddit.Limit < 0 {
		return fmt.Errorf("reddit.limit must not be negative")
	}
	if c.Output.TopN < 0 {
		return fmt.Errorf("output.top_n must not be negative")
	}
	if c.Output.ContentLimit < 0 {
		return fmt.Errorf("output.content_limit must not be negative")
	}
	for name, v := range map[string]string{
		"reddit.timeout":     c.Reddit.Timeout,
		"reddit.fetch_delay": c.Reddit.FetchDelay,
		"drafter.delay":      c.Drafter.Delay,
		"openai.timeout":     c.OpenAI.Timeout,
		"cache.ttl":          c.Cache.TTL,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// Duration parses a duration string that has already passed Validate.
func Duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
