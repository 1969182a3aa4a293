package llm

import (
	"testing"
	"time"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"QUIZPILOT_LLM_PROVIDER", "QUIZPILOT_LLM_TIMEOUT",
		"QUIZPILOT_DEEPSEEK_API_KEY", "QUIZPILOT_OPENAI_API_KEY",
		"QUIZPILOT_ANTHROPIC_API_KEY", "QUIZPILOT_GEMINI_API_KEY",
		"DEEPSEEK_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "deepseek" {
		t.Errorf("unexpected default provider: %q", cfg.Provider)
	}
	if cfg.DeepSeek.Model != "deepseek-chat" || cfg.DeepSeek.ReasonerModel != "deepseek-reasoner" {
		t.Errorf("unexpected deepseek defaults: %+v", cfg.DeepSeek)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("unexpected retry attempts: %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.RequestTimeout != 60*time.Second {
		t.Errorf("unexpected request timeout: %v", cfg.Retry.RequestTimeout)
	}
}

func TestConfigFromEnvTimeout(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("QUIZPILOT_LLM_TIMEOUT", "90s")

	cfg := ConfigFromEnv()
	if cfg.Retry.RequestTimeout != 90*time.Second {
		t.Errorf("timeout override lost: %v", cfg.Retry.RequestTimeout)
	}

	t.Setenv("QUIZPILOT_LLM_TIMEOUT", "not-a-duration")
	cfg = ConfigFromEnv()
	if cfg.Retry.RequestTimeout != 60*time.Second {
		t.Errorf("bad duration should keep the default, got %v", cfg.Retry.RequestTimeout)
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("QUIZPILOT_LLM_PROVIDER", "openai")
	t.Setenv("QUIZPILOT_OPENAI_API_KEY", "sk-test")
	t.Setenv("QUIZPILOT_OPENAI_REASONER_MODEL", "o3")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("unexpected provider: %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.ReasonerModel != "o3" {
		t.Errorf("env overrides lost: %+v", cfg.OpenAI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestDiscoverConfigPriority(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("GEMINI_API_KEY", "sk-gemini")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "openai" {
		t.Errorf("openai should win over gemini, got %q", cfg.Provider)
	}

	t.Setenv("DEEPSEEK_API_KEY", "sk-deepseek")
	cfg, _ = DiscoverConfig()
	if cfg.Provider != "deepseek" {
		t.Errorf("deepseek should win over all, got %q", cfg.Provider)
	}
}

func TestDiscoverConfigNothingSet(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected discovery to fail with no keys set")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("deepseek without key should fail validation")
	}

	cfg.DeepSeek.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}

	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock needs no key: %v", err)
	}

	cfg.Provider = "something-else"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown provider should fail validation")
	}
}
