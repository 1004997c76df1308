package model

import "strings"

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"

	DefaultProvider = ProviderOpenAI

	DefaultOpenAIModel = "gpt-5-mini"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// ParseProvider accepts only the exact provider tags.
func ParseProvider(value string) (Provider, bool) {
	switch Provider(value) {
	case ProviderOpenAI, ProviderGemini:
		return Provider(value), true
	default:
		return "", false
	}
}

func (p Provider) DisplayName() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderGemini:
		return "Gemini"
	default:
		if p == "" {
			return "Provider"
		}
		return string(p)
	}
}

type ProviderSettings struct {
	PreferredProvider string `json:"preferred_provider,omitempty" yaml:"preferred_provider,omitempty" jsonschema:"enum=openai,enum=gemini"`
	OpenAIAPIKey      string `json:"openai_api_key,omitempty" yaml:"openai_api_key,omitempty"`
	OpenAIModel       string `json:"openai_model,omitempty" yaml:"openai_model,omitempty"`
	GeminiAPIKey      string `json:"gemini_api_key,omitempty" yaml:"gemini_api_key,omitempty"`
	GeminiModel       string `json:"gemini_model,omitempty" yaml:"gemini_model,omitempty"`
}

// APIKey returns the trimmed key stored for provider.
func (s ProviderSettings) APIKey(provider Provider) string {
	switch provider {
	case ProviderGemini:
		return strings.TrimSpace(s.GeminiAPIKey)
	default:
		return strings.TrimSpace(s.OpenAIAPIKey)
	}
}

// Model returns the configured model for provider, or its default.
func (s ProviderSettings) Model(provider Provider) string {
	switch provider {
	case ProviderGemini:
		if m := strings.TrimSpace(s.GeminiModel); m != "" {
			return m
		}
		return DefaultGeminiModel
	default:
		if m := strings.TrimSpace(s.OpenAIModel); m != "" {
			return m
		}
		return DefaultOpenAIModel
	}
}

// StoredSettings is everything the settings store persists for the summarizer.
type StoredSettings struct {
	ProviderSettings         `yaml:",inline"`
	DefaultPromptPreset      string `json:"default_prompt_preset,omitempty" yaml:"default_prompt_preset,omitempty"`
	DefaultPromptBehavior    string `json:"default_prompt_behavior,omitempty" yaml:"default_prompt_behavior,omitempty" jsonschema:"enum=custom_only,enum=append_guidance,enum=no_custom_prompt"`
	DefaultCustomInstruction string `json:"default_custom_instruction,omitempty" yaml:"default_custom_instruction,omitempty"`
}

// PromptDefaults exposes the stored prompt defaults as an override layer.
// Empty stored values are treated as unset.
func (s StoredSettings) PromptDefaults() PromptOverride {
	var layer PromptOverride
	if v := strings.TrimSpace(s.DefaultPromptPreset); v != "" {
		layer.Preset = &v
	}
	if v := strings.TrimSpace(s.DefaultPromptBehavior); v != "" {
		layer.Behavior = &v
	}
	if v := s.DefaultCustomInstruction; v != "" {
		layer.CustomInstruction = &v
	}
	return layer
}
