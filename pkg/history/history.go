package history

import (
	"context"
	"time"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/google/uuid"
)

const (
	MaxEntries      = 5
	MaxSnippetChars = 12000
)

// Entry is one saved summary. TranscriptSnippet keeps at most
// MaxSnippetChars characters of the transcript for later follow-up work.
type Entry struct {
	ID                string         `json:"id" yaml:"id"`
	GeneratedAt       time.Time      `json:"generated_at" yaml:"generated_at"`
	Provider          model.Provider `json:"provider" yaml:"provider"`
	Model             string         `json:"model,omitempty" yaml:"model,omitempty"`
	CaptionCount      int            `json:"caption_count" yaml:"caption_count"`
	SourceTitle       string         `json:"source_title,omitempty" yaml:"source_title,omitempty"`
	SummaryMarkdown   string         `json:"summary_markdown" yaml:"summary_markdown"`
	TranscriptSnippet string         `json:"transcript_snippet" yaml:"transcript_snippet"`
}

// Store keeps the most recent MaxEntries summaries, newest first.
type Store interface {
	Add(ctx context.Context, entry Entry) ([]Entry, error)
	List(ctx context.Context) ([]Entry, error)
}

// Record carries what the summarizer knows about a finished request.
type Record struct {
	Result         model.SummaryResult
	TranscriptText string
	CaptionCount   int
	SourceTitle    string
	GeneratedAt    time.Time
}

func NewEntry(rec Record) Entry {
	generatedAt := rec.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	return Entry{
		ID:                uuid.NewString(),
		GeneratedAt:       generatedAt.UTC(),
		Provider:          rec.Result.Provider,
		Model:             rec.Result.Model,
		CaptionCount:      rec.CaptionCount,
		SourceTitle:       rec.SourceTitle,
		SummaryMarkdown:   rec.Result.OutputText,
		TranscriptSnippet: Snippet(rec.TranscriptText),
	}
}

// Snippet truncates text to MaxSnippetChars runes.
func Snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxSnippetChars {
		return text
	}
	return string(runes[:MaxSnippetChars])
}

func prepend(entry Entry, existing []Entry) []Entry {
	updated := make([]Entry, 0, MaxEntries)
	updated = append(updated, entry)
	for _, e := range existing {
		if len(updated) == MaxEntries {
			break
		}
		updated = append(updated, e)
	}
	return updated
}
