package settings

import (
	"context"
	"errors"
	"os"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
	"github.com/joho/godotenv"
)

const (
	EnvPreferredProvider        = "PREFERRED_PROVIDER"
	EnvOpenAIAPIKey             = "OPENAI_API_KEY"
	EnvOpenAIModel              = "OPENAI_MODEL"
	EnvGeminiAPIKey             = "GEMINI_API_KEY"
	EnvGeminiKeyFallback        = "GEMINI_KEY"
	EnvGeminiModel              = "GEMINI_MODEL"
	EnvDefaultPromptPreset      = "DEFAULT_PROMPT_PRESET"
	EnvDefaultPromptBehavior    = "DEFAULT_PROMPT_BEHAVIOR"
	EnvDefaultCustomInstruction = "DEFAULT_CUSTOM_INSTRUCTION"
)

// EnvSource reads settings from an optional dotenv file overlaid by the
// process environment. It is read-only.
type EnvSource struct {
	dotenvPath string
	lookup     func(string) (string, bool)
}

func NewEnvSource(dotenvPath string) *EnvSource {
	return &EnvSource{dotenvPath: dotenvPath, lookup: os.LookupEnv}
}

func (e *EnvSource) Load(_ context.Context) (model.StoredSettings, error) {
	values := map[string]string{}
	if e.dotenvPath != "" {
		fileValues, err := godotenv.Read(e.dotenvPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return model.StoredSettings{}, utils.WrapIfNotNil(err, e.dotenvPath)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}

	get := func(key string) string {
		if e.lookup != nil {
			if v, ok := e.lookup(key); ok {
				return v
			}
		}
		return values[key]
	}

	geminiKey := get(EnvGeminiAPIKey)
	if geminiKey == "" {
		geminiKey = get(EnvGeminiKeyFallback)
	}

	return model.StoredSettings{
		ProviderSettings: model.ProviderSettings{
			PreferredProvider: get(EnvPreferredProvider),
			OpenAIAPIKey:      get(EnvOpenAIAPIKey),
			OpenAIModel:       get(EnvOpenAIModel),
			GeminiAPIKey:      geminiKey,
			GeminiModel:       get(EnvGeminiModel),
		},
		DefaultPromptPreset:      get(EnvDefaultPromptPreset),
		DefaultPromptBehavior:    get(EnvDefaultPromptBehavior),
		DefaultCustomInstruction: get(EnvDefaultCustomInstruction),
	}, nil
}
