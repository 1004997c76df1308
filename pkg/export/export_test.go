package export

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/history"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/stretchr/testify/suite"
)

type ExportSuite struct {
	suite.Suite
}

func TestExportSuite(t *testing.T) {
	suite.Run(t, new(ExportSuite))
}

var generatedAt = time.Date(2025, 4, 9, 15, 30, 0, 0, time.UTC)

func (s *ExportSuite) TestContextMarkdownLayout() {
	doc := ContextMarkdown(Context{
		GeneratedAt:     generatedAt,
		Provider:        model.ProviderGemini,
		CaptionCount:    12,
		SummaryMarkdown: "- Entropy increases",
		TranscriptText:  "[00:01] hello",
	})

	expected := strings.Join([]string{
		"# Lecture Summary Context",
		"",
		"## Metadata",
		"- Generated at: 2025-04-09T15:30:00Z",
		"- Source provider: gemini",
		"- Caption lines: 12",
		"",
		"## Summary",
		"- Entropy increases",
		"",
		"## Sanitized Transcript",
		"```text",
		"[00:01] hello",
		"```",
		"",
	}, "\n")
	s.Equal(expected, doc)
}

func (s *ExportSuite) TestContextMarkdownEmptySummary() {
	s.Contains(ContextMarkdown(Context{GeneratedAt: generatedAt}), "## Summary\n(empty)\n")
}

func (s *ExportSuite) TestForkPrompt() {
	prompt := ForkPrompt(FromEntry(history.Entry{
		SummaryMarkdown:   "  - a  ",
		TranscriptSnippet: " t ",
	}))

	s.True(strings.HasPrefix(prompt, "\n\n\nbelow is a summary of the lecture to reference\n\n- a\n"))
	s.True(strings.HasSuffix(prompt, "```text\nt\n```"))
}

func (s *ExportSuite) TestTopicSlugUsesFirstBullet() {
	summary := "## Overview\n\n- **Entropy**: the arrow of time, explained simply today in class!\n- second"
	s.Equal("entropy-the-arrow-of-time-explained-simply-today", TopicSlug(summary))
}

func (s *ExportSuite) TestTopicSlugFallsBackToFirstLine() {
	s.Equal("overview-of-thermodynamics", TopicSlug("Overview of Thermodynamics.\nmore"))
	s.Equal("lecture-summary", TopicSlug(""))
	s.Equal("lecture-summary", TopicSlug("- ???"))
}

func (s *ExportSuite) TestSanitizeFilename() {
	s.Equal("a-b-c", SanitizeFilename("-A<>B  C-"))
	s.Len(SanitizeFilename(strings.Repeat("x", 200)), 80)
}

func (s *ExportSuite) TestFilename() {
	s.Equal("2025-04-09-heat-engines.md", Filename(generatedAt, "- Heat engines"))
}

func (s *ExportSuite) TestWriteDocx() {
	path := filepath.Join(s.T().TempDir(), "summary.docx")

	err := WriteDocx("Thermo Notes", "# Key Points\n- **Entropy** grows\n1. First law\nplain line", path)
	s.Require().NoError(err)

	reader, err := zip.OpenReader(path)
	s.Require().NoError(err)
	defer reader.Close()

	var body string
	for _, f := range reader.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		s.Require().NoError(err)
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		s.Require().NoError(err)
		body = string(data)
	}
	s.Contains(body, "Thermo Notes")
	s.Contains(body, "Entropy")
	s.Contains(body, "First law")
}
