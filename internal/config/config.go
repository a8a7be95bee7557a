// Package config loads run settings from defaults, an optional YAML file,
// AGT_* environment variables and CLI flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "AGT"

// Backend names accepted by the provider package.
const (
	BackendGemini    = "gemini"
	BackendAnthropic = "anthropic"
	BackendOpenAI    = "openai"
)

// Config is the resolved configuration for one invocation.
type Config struct {
	Backend string `mapstructure:"backend"`
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`

	MaxSteps         int `mapstructure:"max_steps"`
	PlanningInterval int `mapstructure:"planning_interval"`

	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	DefaultURL     string        `mapstructure:"default_url"`
	PromptLimit    int           `mapstructure:"prompt_limit"`
	BodyLimit      int           `mapstructure:"body_limit"`
	BrowseMarkdown bool          `mapstructure:"browse_markdown"`
	FetchCacheSize int           `mapstructure:"fetch_cache_size"`
	FetchCacheTTL  time.Duration `mapstructure:"fetch_cache_ttl"`

	ReadRoot string    `mapstructure:"read_root"`
	Log      LogConfig `mapstructure:"log"`
}

// LogConfig selects the slog handler. An empty File discards logs.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("backend", BackendGemini)
	v.SetDefault("model", "")
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "")
	v.SetDefault("max_steps", 3)
	v.SetDefault("planning_interval", 2)
	v.SetDefault("fetch_timeout", 5*time.Second)
	v.SetDefault("default_url", "http://example.com")
	v.SetDefault("prompt_limit", 500)
	v.SetDefault("body_limit", 1000)
	v.SetDefault("browse_markdown", false)
	v.SetDefault("fetch_cache_size", 64)
	v.SetDefault("fetch_cache_ttl", 15*time.Minute)
	v.SetDefault("read_root", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (explicit path, or ./taskrunner.yaml when present)
// and decodes v into a validated Config.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("taskrunner")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.APIKey == "" {
		cfg.APIKey = apiKeyFromEnv(cfg.Backend)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the step loop cannot run with.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendGemini, BackendAnthropic, BackendOpenAI:
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", c.Backend, BackendGemini, BackendAnthropic, BackendOpenAI)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be >= 0, got %d", c.MaxSteps)
	}
	if c.PlanningInterval < 1 {
		return fmt.Errorf("planning_interval must be >= 1, got %d", c.PlanningInterval)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.PromptLimit < 0 || c.BodyLimit < 0 {
		return fmt.Errorf("prompt_limit and body_limit must be >= 0")
	}
	return nil
}

// apiKeyFromEnv falls back to each SDK's conventional variable.
func apiKeyFromEnv(backend string) string {
	var names []string
	switch backend {
	case BackendGemini:
		names = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	case BackendAnthropic:
		names = []string{"ANTHROPIC_API_KEY"}
	case BackendOpenAI:
		names = []string{"OPENAI_API_KEY"}
	}
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
