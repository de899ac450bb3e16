// Package llm provides centralized LLM configuration and client abstractions.
// Voice analysis talks to whichever provider is configured through the Client interface.
package llm

import "fmt"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction, basic summarization
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for nuanced analysis such as brand voice profiling
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider
	ProviderOpenAI Provider = "openai"
)

const (
	// DefaultTemperature keeps profile output repeatable across calls.
	DefaultTemperature float32 = 0.3
	// DefaultMaxOutputTokens bounds the size of a generated profile.
	DefaultMaxOutputTokens int32 = 2000
)

// Config holds the model configuration for the application
type Config struct {
	Provider        Provider
	Models          map[ModelTier]string
	Temperature     float32
	MaxOutputTokens int32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
			TierAdvanced: "gpt-4o",
		},
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// ConfigForProvider returns the default configuration for a named provider.
func ConfigForProvider(name string) (*Config, error) {
	switch Provider(name) {
	case ProviderGemini, "":
		return DefaultGeminiConfig(), nil
	case ProviderOpenAI:
		return DefaultOpenAIConfig(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", name)
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:        c.Provider,
		Models:          make(map[ModelTier]string),
		Temperature:     c.Temperature,
		MaxOutputTokens: c.MaxOutputTokens,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

func (c *Config) temperature() float32 {
	if c.Temperature <= 0 {
		return DefaultTemperature
	}
	return c.Temperature
}

func (c *Config) maxOutputTokens() int32 {
	if c.MaxOutputTokens <= 0 {
		return DefaultMaxOutputTokens
	}
	return c.MaxOutputTokens
}
