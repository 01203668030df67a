package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// ProviderConfig holds one vendor's credentials and model.
type ProviderConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL"`
	BaseURL string `env:"BASE_URL"`
}

// RetryConfig configures retries of transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"MULTIPLIER" envDefault:"2"`
}

// Config selects and configures a provider. An empty Provider disables
// LLM features.
type Config struct {
	Provider string        `env:"KIDBOARD_LLM_PROVIDER"`
	Timeout  time.Duration `env:"KIDBOARD_LLM_TIMEOUT" envDefault:"20s"`

	Anthropic  ProviderConfig `envPrefix:"KIDBOARD_ANTHROPIC_"`
	OpenAI     ProviderConfig `envPrefix:"KIDBOARD_OPENAI_"`
	Gemini     ProviderConfig `envPrefix:"KIDBOARD_GEMINI_"`
	OpenRouter ProviderConfig `envPrefix:"KIDBOARD_OPENROUTER_"`

	Retry RetryConfig `envPrefix:"KIDBOARD_LLM_RETRY_"`
}

// Default models per provider, as aliases understood by resolveModel.
var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
}

// DefaultRetry returns the retry settings used when none are configured.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2,
	}
}

// ConfigFromEnv reads the process environment.
func ConfigFromEnv() (Config, error) {
	return ConfigFrom(env.ToMap(os.Environ()))
}

// ConfigFrom reads configuration from environ. When KIDBOARD_LLM_PROVIDER is
// unset the standard vendor key variables are checked by DiscoverConfig.
func ConfigFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return cfg, fmt.Errorf("parse LLM env: %w", err)
	}
	if cfg.Provider == "" {
		if found, ok := DiscoverConfig(environ); ok {
			found.Timeout = cfg.Timeout
			found.Retry = cfg.Retry
			cfg = found
		}
	}
	cfg.applyModelDefaults()
	return cfg, nil
}

// DiscoverConfig picks the first provider whose standard key variable is
// set, in the order Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig(environ map[string]string) (Config, bool) {
	cfg := Config{Timeout: 20 * time.Second, Retry: DefaultRetry()}
	candidates := []struct {
		name string
		key  string
		dst  *ProviderConfig
	}{
		{ProviderGemini, "GEMINI_API_KEY", &cfg.Gemini},
		{ProviderOpenAI, "OPENAI_API_KEY", &cfg.OpenAI},
		{ProviderAnthropic, "ANTHROPIC_API_KEY", &cfg.Anthropic},
		{ProviderOpenRouter, "OPENROUTER_API_KEY", &cfg.OpenRouter},
	}
	for _, p := range candidates {
		if k := environ[p.key]; k != "" {
			cfg.Provider = p.name
			p.dst.APIKey = k
			cfg.applyModelDefaults()
			return cfg, true
		}
	}
	return Config{}, false
}

func (c *Config) applyModelDefaults() {
	for name, pc := range map[string]*ProviderConfig{
		ProviderAnthropic:  &c.Anthropic,
		ProviderOpenAI:     &c.OpenAI,
		ProviderGemini:     &c.Gemini,
		ProviderOpenRouter: &c.OpenRouter,
	} {
		if pc.Model == "" {
			pc.Model = defaultModels[name]
		}
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Selected returns the settings of the chosen provider.
func (c Config) Selected() ProviderConfig {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenAI:
		return c.OpenAI
	case ProviderGemini:
		return c.Gemini
	case ProviderOpenRouter:
		return c.OpenRouter
	default:
		return ProviderConfig{}
	}
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case "":
		return ErrNotConfigured
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.Selected().APIKey == "" {
			return fmt.Errorf("KIDBOARD_%s_API_KEY is required for the %s provider",
				envName(c.Provider), c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}

func envName(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI"
	case ProviderOpenRouter:
		return "OPENROUTER"
	case ProviderGemini:
		return "GEMINI"
	default:
		return "ANTHROPIC"
	}
}
