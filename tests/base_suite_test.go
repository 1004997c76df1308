package tests

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/settings"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/summarizer"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// IntegrationSuite resolves provider settings through the same env source the
// CLI uses: SETTINGS_FILE (or $HOME/.env) overlaid by the process environment.
type IntegrationSuite struct {
	suite.Suite
	settingsFile string
	source       settings.Source
	stored       model.StoredSettings
}

func (s *IntegrationSuite) SetupSuite() {
	settingsFile := strings.TrimSpace(os.Getenv("SETTINGS_FILE"))
	explicit := settingsFile != ""
	if !explicit {
		homeDir, err := os.UserHomeDir()
		require.NoError(s.T(), err)
		settingsFile = filepath.Join(homeDir, ".env")
	}

	if _, err := os.Stat(settingsFile); err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
		require.NoError(s.T(), err)
	}

	s.settingsFile = settingsFile
	s.source = settings.NewEnvSource(settingsFile)
	stored, err := s.source.Load(context.Background())
	require.NoError(s.T(), err)
	s.stored = stored
}

func (s *IntegrationSuite) SettingsFile() string {
	return s.settingsFile
}

func (s *IntegrationSuite) Stored() model.StoredSettings {
	return s.stored
}

// requireKey skips the suite when provider has no key configured.
func (s *IntegrationSuite) requireKey(provider model.Provider) {
	if s.stored.APIKey(provider) == "" {
		s.T().Skipf("no %s API key in %s or the environment; skipping external dependency integration test",
			provider.DisplayName(), s.settingsFile)
	}
}

// newSummarizer wires the env source into the summarizer. <PROVIDER>_BASE_URL
// points a provider at a proxy or compatible endpoint.
func (s *IntegrationSuite) newSummarizer(source settings.Source) *summarizer.Summarizer {
	opts := []summarizer.Option{}
	if url := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); url != "" {
		opts = append(opts, summarizer.WithProviderOptions(model.ProviderOpenAI, model.WithURL(url)))
	}
	if url := strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")); url != "" {
		opts = append(opts, summarizer.WithProviderOptions(model.ProviderGemini, model.WithURL(url)))
	}
	return summarizer.New(source, opts...)
}
