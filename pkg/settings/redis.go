package settings

import (
	"context"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "lecture-summarizer:settings"

const (
	fieldPreferredProvider        = "preferred_provider"
	fieldOpenAIAPIKey             = "openai_api_key"
	fieldOpenAIModel              = "openai_model"
	fieldGeminiAPIKey             = "gemini_api_key"
	fieldGeminiModel              = "gemini_model"
	fieldDefaultPromptPreset      = "default_prompt_preset"
	fieldDefaultPromptBehavior    = "default_prompt_behavior"
	fieldDefaultCustomInstruction = "default_custom_instruction"
)

// RedisStore keeps settings as one Redis hash, one field per setting.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Load(ctx context.Context) (model.StoredSettings, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		logging.NewLogger(ctx).Errorf("settings.RedisStore.Load key=%s error: %v", r.key, err)
		return model.StoredSettings{}, utils.WrapIfNotNil(err, r.key)
	}

	return model.StoredSettings{
		ProviderSettings: model.ProviderSettings{
			PreferredProvider: fields[fieldPreferredProvider],
			OpenAIAPIKey:      fields[fieldOpenAIAPIKey],
			OpenAIModel:       fields[fieldOpenAIModel],
			GeminiAPIKey:      fields[fieldGeminiAPIKey],
			GeminiModel:       fields[fieldGeminiModel],
		},
		DefaultPromptPreset:      fields[fieldDefaultPromptPreset],
		DefaultPromptBehavior:    fields[fieldDefaultPromptBehavior],
		DefaultCustomInstruction: fields[fieldDefaultCustomInstruction],
	}, nil
}

func (r *RedisStore) Save(ctx context.Context, stored model.StoredSettings) error {
	_, err := r.client.HSet(ctx, r.key, map[string]interface{}{
		fieldPreferredProvider:        stored.PreferredProvider,
		fieldOpenAIAPIKey:             stored.OpenAIAPIKey,
		fieldOpenAIModel:              stored.OpenAIModel,
		fieldGeminiAPIKey:             stored.GeminiAPIKey,
		fieldGeminiModel:              stored.GeminiModel,
		fieldDefaultPromptPreset:      stored.DefaultPromptPreset,
		fieldDefaultPromptBehavior:    stored.DefaultPromptBehavior,
		fieldDefaultCustomInstruction: stored.DefaultCustomInstruction,
	}).Result()
	if err != nil {
		logging.NewLogger(ctx).Errorf("settings.RedisStore.Save key=%s error: %v", r.key, err)
		return utils.WrapIfNotNil(err, r.key)
	}
	return nil
}
