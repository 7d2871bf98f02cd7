package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Catalog source kinds
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceSupabase = "supabase"
)

// Config is the complete runtime configuration
type Config struct {
	Catalog     CatalogConfig     `yaml:"catalog" mapstructure:"catalog"`
	Supabase    SupabaseConfig    `yaml:"supabase" mapstructure:"supabase"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// CatalogConfig selects where materials and etchants come from
type CatalogConfig struct {
	Source   string `yaml:"source" mapstructure:"source" validate:"oneof=embedded file supabase"`
	File     string `yaml:"file,omitempty" mapstructure:"file" validate:"required_if=Source file"`
	ShopBase string `yaml:"shop_base" mapstructure:"shop_base" validate:"omitempty,url"` // Product search base for purchase links
}

// SupabaseConfig holds the PostgREST endpoint settings
type SupabaseConfig struct {
	URL               string  `yaml:"url" mapstructure:"url" validate:"omitempty,url"`
	AnonKey           string  `yaml:"-" mapstructure:"anon_key"` // Prefer ETCHANT_SUPABASE_ANON_KEY
	MaterialsTable    string  `yaml:"materials_table" mapstructure:"materials_table" validate:"required"`
	EtchantsTable     string  `yaml:"etchants_table" mapstructure:"etchants_table" validate:"required"`
	PublishedOnly     bool    `yaml:"published_only" mapstructure:"published_only"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `yaml:"burst" mapstructure:"burst" validate:"gte=1"`
}

// HTTPConfig contains outbound HTTP settings
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent" validate:"required"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes" validate:"gt=0"`
	MaxAttempts  int           `yaml:"max_attempts" mapstructure:"max_attempts" validate:"gte=1,lte=10"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls caching of catalog responses
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=1"`
}

// LLMConfig configures the optional narrative summary
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider" validate:"omitempty,oneof=openai anthropic claude ollama"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"` // Never written to config files
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	Strict    bool   `yaml:"strict" mapstructure:"strict"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr" validate:"required"`
	RateLimit       int           `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=1"`
	RateWindow      time.Duration `yaml:"rate_window" mapstructure:"rate_window" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
	MaxResults    int  `yaml:"max_results" mapstructure:"max_results" validate:"gte=1,lte=10"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Source:   SourceEmbedded,
			ShopBase: "https://shop.metallographic.com",
		},
		Supabase: SupabaseConfig{
			MaterialsTable:    "materials",
			EtchantsTable:     "etchants",
			PublishedOnly:     true,
			RequestsPerSecond: 5,
			Burst:             5,
		},
		HTTP: HTTPConfig{
			Timeout:      20 * time.Second,
			UserAgent:    "etchant/0.3 (+https://github.com/ppiankov/etchant)",
			MaxBodyBytes: 8_000_000,
			MaxAttempts:  3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   6 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		LLM: LLMConfig{
			Timeout:   30,
			Strict:    true,
			MaxTokens: 600,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			RateLimit:       120,
			RateWindow:      time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Output: OutputConfig{
			IncludeFooter: true,
			MaxResults:    10,
		},
	}
}

// defaultCacheDir prefers the user cache directory and falls back to a local dir
func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "etchant")
	}
	return ".etchant-cache"
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the configuration for values the tool cannot run with
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Catalog.Source == SourceSupabase && c.Supabase.URL == "" {
		return fmt.Errorf("invalid config: supabase.url is required when catalog.source is %q", SourceSupabase)
	}

	return nil
}
