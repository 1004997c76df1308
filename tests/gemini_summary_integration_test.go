package tests

import (
	"context"
	"strings"
	"testing"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/settings"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/summarizer"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

type GeminiSummaryIntegrationSuite struct {
	IntegrationSuite
}

func (s *GeminiSummaryIntegrationSuite) SetupSuite() {
	s.IntegrationSuite.SetupSuite()
	s.requireKey(model.ProviderGemini)
}

func (s *GeminiSummaryIntegrationSuite) TestSummarizeStudyGuide() {
	t, err := transcript.Build(lectureCaptions)
	require.NoError(s.T(), err)

	preset := string(model.PromptPresetStudyGuide)
	result, err := s.newSummarizer(s.source).Summarize(context.Background(), summarizer.Request{
		TranscriptText: t.Text,
		Provider:       string(model.ProviderGemini),
		Prompt:         model.PromptOverride{Preset: &preset},
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), model.ProviderGemini, result.Provider)
	assert.NotEmpty(s.T(), strings.TrimSpace(result.OutputText))
	assert.NotEmpty(s.T(), result.Metadata[model.MetadataKeyTotalTokens])
}

func (s *GeminiSummaryIntegrationSuite) TestInvalidKeyKeepsRawErrorBody() {
	stored := s.Stored()
	stored.GeminiAPIKey = "invalid-key"

	_, err := s.newSummarizer(settings.NewMemoryStore(stored)).Summarize(context.Background(), summarizer.Request{
		TranscriptText: "a\nb\nc",
		Provider:       string(model.ProviderGemini),
	})
	require.Error(s.T(), err)

	var providerErr *model.ProviderError
	require.ErrorAs(s.T(), err, &providerErr)
	assert.GreaterOrEqual(s.T(), providerErr.StatusCode, 400)
	assert.True(s.T(), gjson.Get(providerErr.Body, "error.message").Exists(), providerErr.Body)
}

func TestGeminiSummaryIntegrationSuite(t *testing.T) {
	suite.Run(t, new(GeminiSummaryIntegrationSuite))
}
