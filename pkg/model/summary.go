package model

import "context"

// SummaryRequest is what an adapter needs for one summarization call.
type SummaryRequest struct {
	TranscriptText string
	Instructions   string
	Model          string
	APIKey         string
}

// SummaryProvider is implemented once per LLM backend. Implementations encode
// their own request envelope and decode their own response envelope.
type SummaryProvider interface {
	Summarize(ctx context.Context, req SummaryRequest) (string, GenerationMetadata, error)
}

type SummaryResult struct {
	Provider   Provider           `json:"provider"`
	Model      string             `json:"model"`
	Prompt     PromptConfig       `json:"prompt"`
	OutputText string             `json:"output_markdown"`
	Metadata   GenerationMetadata `json:"metadata,omitempty"`
}

type GenerationMetadata map[string]string

const (
	MetadataKeyProvider       = "provider"
	MetadataKeyModel          = "model"
	MetadataKeyLatencyMs      = "latency_ms"
	MetadataKeyInputTokens    = "input_tokens"
	MetadataKeyOutputTokens   = "output_tokens"
	MetadataKeyTotalTokens    = "total_tokens"
	MetadataKeyResponseID     = "response_id"
	MetadataKeyResponseStatus = "response_status"
)
