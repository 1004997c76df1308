package summarizer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/history"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/llms"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/prompt"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/settings"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
)

// Request is one summarization call. Provider is an optional explicit
// provider tag; Prompt fields left nil fall back to stored defaults.
type Request struct {
	TranscriptText string
	Provider       string
	Prompt         model.PromptOverride

	// Used only for history entries.
	CaptionCount int
	SourceTitle  string
}

// Summarizer resolves settings, composes instructions and calls exactly one
// provider adapter per request. It holds no per-request state.
type Summarizer struct {
	settings     settings.Source
	factory      llms.Factory
	providerOpts map[model.Provider][]model.GeneratorOption
	history      history.Store
	timeout      time.Duration
	now          func() time.Time
}

func New(source settings.Source, opts ...Option) *Summarizer {
	s := &Summarizer{
		settings:     source,
		factory:      llms.New,
		providerOpts: map[model.Provider][]model.GeneratorOption{},
		timeout:      DefaultTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Summarizer) Summarize(ctx context.Context, req Request) (model.SummaryResult, error) {
	const fn = "summarizer.Summarize"
	log := logging.NewLogger(ctx)

	if strings.TrimSpace(req.TranscriptText) == "" {
		return model.SummaryResult{}, &model.ExtractionError{Kind: model.ExtractionEmptyTranscript}
	}

	stored, err := s.settings.Load(ctx)
	if err != nil {
		log.Errorf("%s error loading settings: %v", fn, err)
		return model.SummaryResult{}, utils.WrapIfNotNil(err)
	}

	provider := settings.ResolveProvider(req.Provider, stored.ProviderSettings)
	promptCfg := settings.ResolvePromptConfig(req.Prompt, stored.PromptDefaults())

	apiKey := stored.APIKey(provider)
	if apiKey == "" {
		err := model.NewMissingAPIKeyError(provider)
		log.Warnf("%s provider=%s error: %v", fn, provider, err)
		return model.SummaryResult{}, err
	}
	modelName := stored.Model(provider)

	adapter, err := s.factory(provider, s.providerOpts[provider]...)
	if err != nil {
		log.Errorf("%s provider=%s error building adapter: %v", fn, provider, err)
		return model.SummaryResult{}, utils.WrapIfNotNil(err)
	}

	log.Infof(
		"%s provider=%s model=%s preset=%s behavior=%s transcript_chars=%d",
		fn,
		provider,
		modelName,
		promptCfg.Preset,
		promptCfg.Behavior,
		len(req.TranscriptText),
	)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	output, meta, err := adapter.Summarize(callCtx, model.SummaryRequest{
		TranscriptText: req.TranscriptText,
		Instructions:   prompt.Compose(promptCfg),
		Model:          modelName,
		APIKey:         apiKey,
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = &model.TimeoutError{Provider: provider, Timeout: s.timeout}
		}
		log.Errorf("%s provider=%s error: %v", fn, provider, err)
		return model.SummaryResult{}, err
	}

	result := model.SummaryResult{
		Provider:   provider,
		Model:      modelName,
		Prompt:     promptCfg,
		OutputText: output,
		Metadata:   meta,
	}
	s.record(ctx, req, result)
	return result, nil
}

func (s *Summarizer) record(ctx context.Context, req Request, result model.SummaryResult) {
	if s.history == nil {
		return
	}

	entry := history.NewEntry(history.Record{
		Result:         result,
		TranscriptText: req.TranscriptText,
		CaptionCount:   req.CaptionCount,
		SourceTitle:    req.SourceTitle,
		GeneratedAt:    s.now(),
	})
	if _, err := s.history.Add(ctx, entry); err != nil {
		logging.NewLogger(ctx).Warnf("summarizer.record id=%s error: %v", entry.ID, err)
	}
}
