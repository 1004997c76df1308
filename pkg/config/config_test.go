package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestValidateFillsDefaults() {
	cfg := &Config{}
	s.Require().NoError(cfg.Validate())

	s.Equal("info", cfg.Logging.Level)
	s.Equal("text", cfg.Logging.Format)
	s.Equal("data/inbox", cfg.Paths.Inbox)
	s.Equal("data/output", cfg.Paths.Output)
	s.Equal("data/archive", cfg.Paths.Archive)
	s.Equal(2, cfg.Performance.MaxConcurrent)
	s.Equal(SettingsBackendEnv, cfg.Settings.Backend)
	s.Equal(".env", cfg.Settings.DotenvFile)
	s.Equal(HistoryBackendFile, cfg.History.Backend)
	s.Equal("localhost:6379", cfg.Redis.Addr)
	s.False(cfg.UsesRedis())
}

func (s *ConfigSuite) TestValidateKeepsExplicitValues() {
	cfg := &Config{
		Paths:       PathsConfig{Inbox: "in"},
		Performance: PerformanceConfig{MaxConcurrent: 4},
		Settings:    SettingsConfig{Backend: " Redis "},
	}
	s.Require().NoError(cfg.Validate())

	s.Equal("in", cfg.Paths.Inbox)
	s.Equal(4, cfg.Performance.MaxConcurrent)
	s.Equal(SettingsBackendRedis, cfg.Settings.Backend)
	s.True(cfg.UsesRedis())
}

func (s *ConfigSuite) TestValidateRejectsUnknownBackends() {
	s.Error((&Config{Settings: SettingsConfig{Backend: "s3"}}).Validate())
	s.Error((&Config{History: HistoryConfig{Backend: "sql"}}).Validate())
}

func (s *ConfigSuite) TestLoadYAML() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	content := `
logging:
  level: debug
  format: json
paths:
  inbox: captions
performance:
  max_concurrent: 3
settings:
  backend: file
  file: my-settings.yaml
history:
  backend: none
`
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal("debug", cfg.Logging.Level)
	s.Equal("json", cfg.Logging.Format)
	s.Equal("captions", cfg.Paths.Inbox)
	s.Equal("data/output", cfg.Paths.Output)
	s.Equal(3, cfg.Performance.MaxConcurrent)
	s.Equal(SettingsBackendFile, cfg.Settings.Backend)
	s.Equal("my-settings.yaml", cfg.Settings.File)
	s.Equal(HistoryBackendNone, cfg.History.Backend)
}

func (s *ConfigSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "nope.yaml"))
	s.Require().Error(err)
}

func (s *ConfigSuite) TestDefault() {
	cfg := Default()
	s.Equal(2, cfg.Performance.MaxConcurrent)
}
