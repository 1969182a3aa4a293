package llm

import "fmt"

const defaultDeepSeekBaseURL = "https://api.deepseek.com"

// DeepSeekProvider wraps OpenAIProvider with DeepSeek-specific defaults.
// DeepSeek exposes an OpenAI-compatible API, so the underlying SDK is
// reused; the reasoning switch maps to the deepseek-reasoner model.
type DeepSeekProvider struct {
	*OpenAIProvider
}

// NewDeepSeekProvider creates a provider targeting the DeepSeek API.
func NewDeepSeekProvider(cfg DeepSeekConfig) (*DeepSeekProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("deepseek API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultDeepSeekBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "deepseek-chat"
	}
	reasoner := cfg.ReasonerModel
	if reasoner == "" {
		reasoner = "deepseek-reasoner"
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:        cfg.APIKey,
		Model:         model,
		ReasonerModel: reasoner,
		BaseURL:       baseURL,
	})
	if err != nil {
		return nil, err
	}

	return &DeepSeekProvider{OpenAIProvider: inner}, nil
}
