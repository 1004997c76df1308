package history

import (
	"context"
	"encoding/json"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "lecture-summarizer:history"

// RedisStore keeps history as a capped Redis list of JSON entries, newest at
// the head.
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

func (r *RedisStore) Add(ctx context.Context, entry Entry) ([]Entry, error) {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key, string(jsonData))
	pipe.LTrim(ctx, r.key, 0, MaxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		logging.NewLogger(ctx).Errorf("history.RedisStore.Add key=%s error: %v", r.key, err)
		return nil, utils.WrapIfNotNil(err, r.key)
	}

	return r.List(ctx)
}

func (r *RedisStore) List(ctx context.Context) ([]Entry, error) {
	values, err := r.client.LRange(ctx, r.key, 0, MaxEntries-1).Result()
	if err != nil {
		return nil, utils.WrapIfNotNil(err, r.key)
	}

	entries := make([]Entry, 0, len(values))
	for _, value := range values {
		var entry Entry
		if err := json.Unmarshal([]byte(value), &entry); err != nil {
			logging.NewLogger(ctx).Warnf("history.RedisStore.List skipping malformed entry: %v", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
