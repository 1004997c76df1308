package transcript

import (
	"regexp"
	"strings"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
)

// MinEntries is the fewest kept caption rows a transcript needs to be summarized.
const MinEntries = 3

var (
	nonWordOrSpace = regexp.MustCompile(`[^\w\s]`)
	fillerWord     = regexp.MustCompile(`^(um+|uh+|hmm+|mm+|ah+|er+)$`)
)

// NormalizeLine collapses Unicode whitespace runs (NBSP, em spaces and the
// byte order mark included) to a single space and trims the result.
func NormalizeLine(text string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(text, "\ufeff", " ")), " ")
}

// IsNoise reports whether a normalized line carries no lecture content.
func IsNoise(line string) bool {
	if line == "" {
		return true
	}

	stripped := strings.ToLower(strings.TrimSpace(nonWordOrSpace.ReplaceAllString(line, "")))
	if stripped == "" {
		return true
	}
	if strings.Contains(line, "<@") && strings.Contains(line, "@>") {
		return true
	}
	return fillerWord.MatchString(stripped)
}

// Normalize drops noise and caption-refresh repeats, keeping page order.
// A row is a repeat when it matches the last kept row, ignoring case.
func Normalize(entries []model.CaptionEntry) model.Transcript {
	cleaned := make([]model.CleanedEntry, 0, len(entries))
	previous := ""

	for _, entry := range entries {
		line := NormalizeLine(entry.Text)
		if IsNoise(line) {
			continue
		}
		if strings.EqualFold(line, previous) {
			continue
		}
		previous = line
		cleaned = append(cleaned, model.CleanedEntry{
			Text: line,
			Time: entry.Time,
		})
	}

	return model.Transcript{
		Entries: cleaned,
		Text:    Render(cleaned),
	}
}

// Render joins entries one per line, prefixing "[time] " when a time is known.
func Render(entries []model.CleanedEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Time != "" {
			lines = append(lines, "["+entry.Time+"] "+entry.Text)
			continue
		}
		lines = append(lines, entry.Text)
	}
	return strings.Join(lines, "\n")
}

// Build normalizes entries and applies the usability gate.
func Build(entries []model.CaptionEntry) (model.Transcript, error) {
	if len(entries) == 0 {
		return model.Transcript{}, &model.ExtractionError{Kind: model.ExtractionNoCaptions}
	}

	t := Normalize(entries)
	if t.Text == "" || len(t.Entries) < MinEntries {
		return model.Transcript{}, &model.ExtractionError{Kind: model.ExtractionTooShort}
	}
	return t, nil
}
