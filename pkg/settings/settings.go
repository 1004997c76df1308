package settings

import (
	"context"
	"strings"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/prompt"
)

// Source supplies the stored user settings. The summarizer only reads.
type Source interface {
	Load(ctx context.Context) (model.StoredSettings, error)
}

// Store is a Source that can also persist settings.
type Store interface {
	Source
	Save(ctx context.Context, stored model.StoredSettings) error
}

const missingKeysMessage = "Please provide at least one API key."

// ResolveProvider picks the explicit provider when it is an exact tag, then
// the stored preference, then the default.
func ResolveProvider(override string, stored model.ProviderSettings) model.Provider {
	if provider, ok := model.ParseProvider(override); ok {
		return provider
	}
	if provider, ok := model.ParseProvider(stored.PreferredProvider); ok {
		return provider
	}
	return model.DefaultProvider
}

// ResolvePromptConfig merges override over stored over the hardcoded
// defaults. A nil or blank preset/behavior defers to the next layer; a non-nil
// custom instruction wins even when empty.
func ResolvePromptConfig(override, stored model.PromptOverride) model.PromptConfig {
	cfg := model.PromptConfig{
		Preset:   model.DefaultPromptPreset,
		Behavior: model.DefaultPromptBehavior,
	}

	if v, ok := firstNonBlank(override.Preset, stored.Preset); ok {
		cfg.Preset = prompt.NormalizePreset(v)
	}
	if v, ok := firstNonBlank(override.Behavior, stored.Behavior); ok {
		cfg.Behavior = prompt.NormalizeBehavior(v)
	}
	switch {
	case override.CustomInstruction != nil:
		cfg.CustomInstruction = *override.CustomInstruction
	case stored.CustomInstruction != nil:
		cfg.CustomInstruction = *stored.CustomInstruction
	}

	return prompt.NormalizeConfig(cfg)
}

func firstNonBlank(layers ...*string) (string, bool) {
	for _, layer := range layers {
		if layer != nil && strings.TrimSpace(*layer) != "" {
			return *layer, true
		}
	}
	return "", false
}

// Normalize returns the settings as they should be persisted: values trimmed,
// provider and prompt enums canonicalized, models defaulted when blank.
func Normalize(stored model.StoredSettings) model.StoredSettings {
	out := stored
	out.PreferredProvider = string(ResolveProvider("", stored.ProviderSettings))
	out.OpenAIAPIKey = strings.TrimSpace(stored.OpenAIAPIKey)
	out.GeminiAPIKey = strings.TrimSpace(stored.GeminiAPIKey)
	out.OpenAIModel = stored.Model(model.ProviderOpenAI)
	out.GeminiModel = stored.Model(model.ProviderGemini)
	out.DefaultPromptPreset = string(prompt.NormalizePreset(stored.DefaultPromptPreset))
	out.DefaultPromptBehavior = string(prompt.NormalizeBehavior(stored.DefaultPromptBehavior))
	out.DefaultCustomInstruction = strings.TrimSpace(stored.DefaultCustomInstruction)
	return out
}

// Validate rejects settings that carry no API key at all.
func Validate(stored model.StoredSettings) error {
	if stored.APIKey(model.ProviderOpenAI) == "" && stored.APIKey(model.ProviderGemini) == "" {
		return &model.ConfigError{Message: missingKeysMessage}
	}
	return nil
}

// Save normalizes and validates stored before writing it to store.
func Save(ctx context.Context, store Store, stored model.StoredSettings) (model.StoredSettings, error) {
	normalized := Normalize(stored)
	if err := Validate(normalized); err != nil {
		return model.StoredSettings{}, err
	}
	if err := store.Save(ctx, normalized); err != nil {
		return model.StoredSettings{}, err
	}
	return normalized, nil
}
