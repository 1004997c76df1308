package model

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type ExtractionKind string

const (
	ExtractionNoCaptions      ExtractionKind = "no_captions"
	ExtractionTooShort        ExtractionKind = "too_short"
	ExtractionEmptyTranscript ExtractionKind = "empty_transcript"
)

// ExtractionError means the captions on the page were missing or too thin to
// summarize. The user fixes it on the lecture page.
type ExtractionError struct {
	Kind ExtractionKind
}

func (e *ExtractionError) Error() string {
	switch e.Kind {
	case ExtractionNoCaptions:
		return "No captions found. Open the transcript/captions panel on the lecture page and try again."
	case ExtractionTooShort:
		return "Transcript is too short to summarize reliably."
	case ExtractionEmptyTranscript:
		return "No transcript text was provided."
	default:
		return "Caption extraction failed."
	}
}

// ConfigError means the selected provider cannot be called with the stored
// settings. Message names the settings surface to visit.
type ConfigError struct {
	Provider Provider
	Message  string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func NewMissingAPIKeyError(provider Provider) *ConfigError {
	name := provider.DisplayName()
	return &ConfigError{
		Provider: provider,
		Message:  fmt.Sprintf("Missing %s API key. Open Settings and add your %s API key.", name, name),
	}
}

// ProviderError is a failed backend call. StatusCode is zero when the request
// never produced an HTTP response.
type ProviderError struct {
	Provider   Provider
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed (%d): %s", e.Provider.DisplayName(), e.StatusCode, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Provider.DisplayName(), e.Err)
	}
	return fmt.Sprintf("%s request failed.", e.Provider.DisplayName())
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NoOutputError is a successful call whose envelope carried no text.
type NoOutputError struct {
	Provider Provider
}

func (e *NoOutputError) Error() string {
	return fmt.Sprintf("No summary text returned from %s.", e.Provider.DisplayName())
}

type TimeoutError struct {
	Provider Provider
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s request timed out after %s.", e.Provider.DisplayName(), e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}

// DisplayMessage returns the message of the first typed summarizer error in
// err's chain, falling back to err.Error().
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}

	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr.Error()
	}
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Error()
	}
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return timeoutErr.Error()
	}
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Error()
	}
	var noOutputErr *NoOutputError
	if errors.As(err, &noOutputErr) {
		return noOutputErr.Error()
	}
	return err.Error()
}
