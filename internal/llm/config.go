package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in configuration.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Config holds all LLM provider configuration.
type Config struct {
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call, retries included.
	Timeout time.Duration
}

// ProviderConfig holds credentials and model selection for one provider.
// An empty BaseURL uses the vendor endpoint.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with small, fast models; hints are short.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// section returns the per-provider block for name.
func (c *Config) section(name string) *ProviderConfig {
	switch name {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// envPrefix maps provider names to their SQLCHALLENGE_* variable stem.
var envPrefix = map[string]string{
	ProviderAnthropic:  "SQLCHALLENGE_ANTHROPIC",
	ProviderOpenAI:     "SQLCHALLENGE_OPENAI",
	ProviderGemini:     "SQLCHALLENGE_GEMINI",
	ProviderOpenRouter: "SQLCHALLENGE_OPENROUTER",
}

// ConfigFromEnv builds a Config from SQLCHALLENGE_* variables. ok is false
// when SQLCHALLENGE_LLM_PROVIDER is unset.
func ConfigFromEnv() (cfg Config, ok bool) {
	cfg = DefaultConfig()

	p := os.Getenv("SQLCHALLENGE_LLM_PROVIDER")
	if p == "" {
		return cfg, false
	}
	cfg.Provider = p

	for name, prefix := range envPrefix {
		sec := cfg.section(name)
		if v := os.Getenv(prefix + "_API_KEY"); v != "" {
			sec.APIKey = v
		}
		if v := os.Getenv(prefix + "_MODEL"); v != "" {
			sec.Model = v
		}
		if v := os.Getenv(prefix + "_BASE_URL"); v != "" {
			sec.BaseURL = v
		}
	}
	if v := os.Getenv("SQLCHALLENGE_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg, true
}

// DiscoverConfig checks the vendors' standard API key variables in priority
// order (Anthropic, OpenAI, Gemini, OpenRouter) and configures the first
// one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, c := range []struct{ provider, env string }{
		{ProviderAnthropic, "ANTHROPIC_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderGemini, "GEMINI_API_KEY"},
		{ProviderOpenRouter, "OPENROUTER_API_KEY"},
	} {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			cfg.section(c.provider).APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// ResolveConfig prefers explicit SQLCHALLENGE_* settings, then discovery.
func ResolveConfig() (Config, bool) {
	if cfg, ok := ConfigFromEnv(); ok {
		return cfg, true
	}
	return DiscoverConfig()
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	sec := c.section(c.Provider)
	if sec == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if sec.APIKey == "" {
		return fmt.Errorf("%s_API_KEY is required for the %s provider", envPrefix[c.Provider], c.Provider)
	}
	return nil
}
