package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
	"gopkg.in/yaml.v3"
)

const (
	SettingsBackendFile  = "file"
	SettingsBackendEnv   = "env"
	SettingsBackendRedis = "redis"

	HistoryBackendNone  = "none"
	HistoryBackendFile  = "file"
	HistoryBackendRedis = "redis"
)

type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Paths       PathsConfig       `yaml:"paths"`
	Performance PerformanceConfig `yaml:"performance"`
	Settings    SettingsConfig    `yaml:"settings"`
	History     HistoryConfig     `yaml:"history"`
	Redis       RedisConfig       `yaml:"redis"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PathsConfig struct {
	Inbox   string `yaml:"inbox"`
	Output  string `yaml:"output"`
	Archive string `yaml:"archive"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type SettingsConfig struct {
	Backend    string `yaml:"backend"`
	File       string `yaml:"file"`
	DotenvFile string `yaml:"dotenv_file"`
	RedisKey   string `yaml:"redis_key"`
}

type HistoryConfig struct {
	Backend  string `yaml:"backend"`
	File     string `yaml:"file"`
	RedisKey string `yaml:"redis_key"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Default is the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Load reads a YAML config file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.WrapIfNotNil(err, path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, utils.WrapIfNotNil(err, path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, utils.WrapIfNotNil(err, path)
	}
	return &cfg, nil
}

// Validate fills defaults and rejects unknown backends.
func (c *Config) Validate() error {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archive == "" {
		c.Paths.Archive = "data/archive"
	}
	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 2
	}

	c.Settings.Backend = strings.ToLower(strings.TrimSpace(c.Settings.Backend))
	switch c.Settings.Backend {
	case "":
		c.Settings.Backend = SettingsBackendEnv
	case SettingsBackendFile, SettingsBackendEnv, SettingsBackendRedis:
	default:
		return fmt.Errorf("settings.backend %q is not one of file, env, redis", c.Settings.Backend)
	}
	if c.Settings.File == "" {
		c.Settings.File = "data/settings.yaml"
	}
	if c.Settings.DotenvFile == "" {
		c.Settings.DotenvFile = ".env"
	}

	c.History.Backend = strings.ToLower(strings.TrimSpace(c.History.Backend))
	switch c.History.Backend {
	case "":
		c.History.Backend = HistoryBackendFile
	case HistoryBackendNone, HistoryBackendFile, HistoryBackendRedis:
	default:
		return fmt.Errorf("history.backend %q is not one of none, file, redis", c.History.Backend)
	}
	if c.History.File == "" {
		c.History.File = "data/history.yaml"
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	return nil
}

// UsesRedis reports whether any backend needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Settings.Backend == SettingsBackendRedis || c.History.Backend == HistoryBackendRedis
}
