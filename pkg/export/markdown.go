package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/history"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
)

// Context is a finished summary together with the transcript it came from.
type Context struct {
	GeneratedAt     time.Time
	Provider        model.Provider
	CaptionCount    int
	SummaryMarkdown string
	TranscriptText  string
}

// FromEntry rebuilds a Context from a history entry. The transcript is the
// stored snippet.
func FromEntry(entry history.Entry) Context {
	return Context{
		GeneratedAt:     entry.GeneratedAt,
		Provider:        entry.Provider,
		CaptionCount:    entry.CaptionCount,
		SummaryMarkdown: entry.SummaryMarkdown,
		TranscriptText:  entry.TranscriptSnippet,
	}
}

// ContextMarkdown renders the summary and transcript as one Markdown document
// suitable for pasting into another assistant.
func ContextMarkdown(c Context) string {
	summary := c.SummaryMarkdown
	if summary == "" {
		summary = "(empty)"
	}

	lines := []string{
		"# Lecture Summary Context",
		"",
		"## Metadata",
		"- Generated at: " + c.GeneratedAt.UTC().Format(time.RFC3339),
		"- Source provider: " + string(c.Provider),
		"- Caption lines: " + strconv.Itoa(c.CaptionCount),
		"",
		"## Summary",
		summary,
		"",
		"## Sanitized Transcript",
		"```text",
		c.TranscriptText,
		"```",
		"",
	}
	return strings.Join(lines, "\n")
}

// ForkPrompt is the follow-up chat seed: three blank lines for the user's
// question, then the summary and transcript as reference.
func ForkPrompt(c Context) string {
	summary := strings.TrimSpace(c.SummaryMarkdown)
	if summary == "" {
		summary = "(empty summary)"
	}

	lines := []string{
		"",
		"",
		"",
		"below is a summary of the lecture to reference",
		"",
		summary,
		"",
		"sanitized transcript excerpt (for extra context):",
		"```text",
		strings.TrimSpace(c.TranscriptText),
		"```",
	}
	return strings.Join(lines, "\n")
}
