package llms

import (
	"fmt"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/llms/gemini"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/llms/openai_response"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
)

// Factory builds the adapter for one provider.
type Factory func(provider model.Provider, opts ...model.GeneratorOption) (model.SummaryProvider, error)

// New returns the adapter registered for provider.
func New(provider model.Provider, opts ...model.GeneratorOption) (model.SummaryProvider, error) {
	switch provider {
	case model.ProviderOpenAI:
		return openai_response.NewSummaryProvider(opts...)
	case model.ProviderGemini:
		return gemini.NewSummaryProvider(opts...)
	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
}
