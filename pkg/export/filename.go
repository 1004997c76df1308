package export

import (
	"regexp"
	"strings"
	"time"
)

const (
	fallbackSlug    = "lecture-summary"
	maxSlugWords    = 8
	maxFilenameRune = 80
)

var (
	reBulletPrefix = regexp.MustCompile(`^[-*]\s+`)
	rePunctuation  = regexp.MustCompile("[`~*_#\\[\\](){}:;,.!?'\"|\\\\/]+")
	reWhitespace   = regexp.MustCompile(`\s+`)
	reUnsafeChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	reRepeatedDash = regexp.MustCompile(`-+`)
)

// TopicSlug derives a short filename slug from the first bullet of the
// summary, or its first line when there are no bullets.
func TopicSlug(summaryMarkdown string) string {
	var firstLine, firstBullet string
	for _, line := range strings.Split(summaryMarkdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if firstLine == "" {
			firstLine = line
		}
		if reBulletPrefix.MatchString(line) {
			firstBullet = line
			break
		}
	}

	source := firstBullet
	if source == "" {
		source = firstLine
	}
	if source == "" {
		source = fallbackSlug
	}
	source = reBulletPrefix.ReplaceAllString(source, "")

	cleaned := rePunctuation.ReplaceAllString(source, " ")
	words := strings.Fields(cleaned)
	if len(words) > maxSlugWords {
		words = words[:maxSlugWords]
	}

	slug := SanitizeFilename(strings.Join(words, "-"))
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// SanitizeFilename replaces characters that are unsafe in file names,
// collapses dashes, caps the length and lowercases the result.
func SanitizeFilename(input string) string {
	out := reUnsafeChars.ReplaceAllString(input, "-")
	out = reWhitespace.ReplaceAllString(out, "-")
	out = reRepeatedDash.ReplaceAllString(out, "-")

	runes := []rune(out)
	if len(runes) > maxFilenameRune {
		out = string(runes[:maxFilenameRune])
	}
	out = strings.TrimPrefix(out, "-")
	out = strings.TrimSuffix(out, "-")
	return strings.ToLower(out)
}

// Filename is "<YYYY-MM-DD>-<topic-slug>.md", dated in UTC.
func Filename(generatedAt time.Time, summaryMarkdown string) string {
	return generatedAt.UTC().Format("2006-01-02") + "-" + TopicSlug(summaryMarkdown) + ".md"
}
