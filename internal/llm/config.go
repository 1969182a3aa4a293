package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "deepseek", "openai", "anthropic", "gemini", "mock"
	Provider string

	DeepSeek  DeepSeekConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
	Retry     RetryConfig
}

// DeepSeekConfig holds DeepSeek-specific configuration.
type DeepSeekConfig struct {
	APIKey        string
	Model         string // Default: "deepseek-chat"
	ReasonerModel string // Default: "deepseek-reasoner"
	BaseURL       string // Default: "https://api.deepseek.com"
}

// OpenAIConfig holds OpenAI-specific configuration. BaseURL makes the
// provider usable against any OpenAI-compatible API.
type OpenAIConfig struct {
	APIKey        string
	Model         string // Default: "gpt-4o-mini"
	ReasonerModel string // Default: "o4-mini"
	BaseURL       string
}

// AnthropicConfig holds Anthropic-specific configuration. Reasoning
// requests keep the same model but enable extended thinking.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"

	// ThinkingBudget is the extended-thinking token budget used when a
	// request asks for reasoning. Default: 4096.
	ThinkingBudget int
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey        string
	Model         string // Default: "gemini-flash"
	ReasonerModel string // Default: "gemini-2.5-pro"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// RequestTimeout bounds a single attempt; a stalled completion is
	// cut off and retried with a fresh deadline. Default: 60s —
	// reasoning requests routinely take the better part of it.
	// Zero disables the per-request bound.
	RequestTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "deepseek",
		DeepSeek: DeepSeekConfig{
			Model:         "deepseek-chat",
			ReasonerModel: "deepseek-reasoner",
			BaseURL:       defaultDeepSeekBaseURL,
		},
		OpenAI: OpenAIConfig{
			Model:         "gpt-4o-mini",
			ReasonerModel: "o4-mini",
		},
		Anthropic: AnthropicConfig{
			Model:          "claude-haiku",
			ThinkingBudget: 4096,
		},
		Gemini: GeminiConfig{
			Model:         "gemini-flash",
			ReasonerModel: "gemini-2.5-pro",
		},
		Retry: RetryConfig{
			MaxAttempts:    3,
			InitialWait:    1 * time.Second,
			MaxWait:        10 * time.Second,
			Multiplier:     2.0,
			RequestTimeout: 60 * time.Second,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("QUIZPILOT_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if d := os.Getenv("QUIZPILOT_LLM_TIMEOUT"); d != "" {
		if t, err := time.ParseDuration(d); err == nil {
			cfg.Retry.RequestTimeout = t
		}
	}

	if k := os.Getenv("QUIZPILOT_DEEPSEEK_API_KEY"); k != "" {
		cfg.DeepSeek.APIKey = k
	}
	if m := os.Getenv("QUIZPILOT_DEEPSEEK_MODEL"); m != "" {
		cfg.DeepSeek.Model = m
	}
	if m := os.Getenv("QUIZPILOT_DEEPSEEK_REASONER_MODEL"); m != "" {
		cfg.DeepSeek.ReasonerModel = m
	}
	if u := os.Getenv("QUIZPILOT_DEEPSEEK_BASE_URL"); u != "" {
		cfg.DeepSeek.BaseURL = u
	}

	if k := os.Getenv("QUIZPILOT_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("QUIZPILOT_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if m := os.Getenv("QUIZPILOT_OPENAI_REASONER_MODEL"); m != "" {
		cfg.OpenAI.ReasonerModel = m
	}
	if u := os.Getenv("QUIZPILOT_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("QUIZPILOT_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("QUIZPILOT_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("QUIZPILOT_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("QUIZPILOT_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}
	if m := os.Getenv("QUIZPILOT_GEMINI_REASONER_MODEL"); m != "" {
		cfg.Gemini.ReasonerModel = m
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (DeepSeek → OpenAI → Anthropic → Gemini) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none
// found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("DEEPSEEK_API_KEY"); k != "" {
		cfg.Provider = "deepseek"
		cfg.DeepSeek.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "deepseek":
		if c.DeepSeek.APIKey == "" {
			return fmt.Errorf("QUIZPILOT_DEEPSEEK_API_KEY is required for the deepseek provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("QUIZPILOT_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("QUIZPILOT_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("QUIZPILOT_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
