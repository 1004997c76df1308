package summarizer

import (
	"time"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/history"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/llms"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
)

// DefaultTimeout bounds one provider call.
const DefaultTimeout = 120 * time.Second

type Option func(*Summarizer)

// WithTimeout replaces DefaultTimeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Summarizer) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithProviderOptions passes adapter options (base URL, HTTP client) to the
// adapter for provider.
func WithProviderOptions(provider model.Provider, opts ...model.GeneratorOption) Option {
	return func(s *Summarizer) {
		s.providerOpts[provider] = append(s.providerOpts[provider], opts...)
	}
}

// WithHistory records every successful summary in store.
func WithHistory(store history.Store) Option {
	return func(s *Summarizer) {
		s.history = store
	}
}

// WithProviderFactory swaps the adapter registry.
func WithProviderFactory(factory llms.Factory) Option {
	return func(s *Summarizer) {
		if factory != nil {
			s.factory = factory
		}
	}
}

// WithClock sets the time source used for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Summarizer) {
		if now != nil {
			s.now = now
		}
	}
}
