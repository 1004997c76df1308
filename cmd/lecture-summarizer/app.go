package main

import (
	"context"
	"errors"
	"os"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/config"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/history"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/settings"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/summarizer"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// app holds the wiring shared by every subcommand.
type app struct {
	cfg      *config.Config
	settings settings.Source
	history  history.Store
	redis    *redis.Client
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logging.Configure(cfg.Logging.Level, cfg.Logging.Format)

	if err := godotenv.Load(cfg.Settings.DotenvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.NewLogger(ctx).Warnf("main.newApp dotenv=%s error: %v", cfg.Settings.DotenvFile, err)
	}

	a := &app{cfg: cfg}
	if cfg.UsesRedis() {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			_ = a.redis.Close()
			return nil, utils.WrapIfNotNil(err, cfg.Redis.Addr)
		}
	}

	switch cfg.Settings.Backend {
	case config.SettingsBackendFile:
		a.settings = settings.NewFileStore(cfg.Settings.File)
	case config.SettingsBackendRedis:
		a.settings = settings.NewRedisStore(a.redis, cfg.Settings.RedisKey)
	default:
		a.settings = settings.NewEnvSource("")
	}

	switch cfg.History.Backend {
	case config.HistoryBackendFile:
		a.history = history.NewFileStore(cfg.History.File)
	case config.HistoryBackendRedis:
		a.history = history.NewRedisStore(a.redis, cfg.History.RedisKey)
	}

	return a, nil
}

func (a *app) summarizer() *summarizer.Summarizer {
	opts := []summarizer.Option{}
	if a.history != nil {
		opts = append(opts, summarizer.WithHistory(a.history))
	}
	return summarizer.New(a.settings, opts...)
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
