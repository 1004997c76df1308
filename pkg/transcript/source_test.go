package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/stretchr/testify/suite"
)

type SourceSuite struct {
	suite.Suite
}

func TestSourceSuite(t *testing.T) {
	suite.Run(t, new(SourceSuite))
}

func (s *SourceSuite) TestParseSRTJoinsCueLinesAndDropsMillis() {
	srt := "1\n00:00:00,000 --> 00:00:01,830\nI'm happy to\nhave you here today.\n\n2\r\n00:00:01,910 --> 00:00:03,610\r\nLet's begin.\r\n"
	entries := ParseSRT(srt)

	s.Equal([]model.CaptionEntry{
		{Time: "00:00:00", Text: "I'm happy to have you here today."},
		{Time: "00:00:01", Text: "Let's begin."},
	}, entries)
}

func (s *SourceSuite) TestParseSRTKeepsNumericCueText() {
	entries := ParseSRT("1\n00:00:05,000 --> 00:00:06,000\n42\n")
	s.Require().Len(entries, 1)
	s.Equal("42", entries[0].Text)
}

func (s *SourceSuite) TestParseSRTIgnoresByteOrderMark() {
	srt := "\ufeff1\r\n00:00:01,000 --> 00:00:02,000\r\nHello class\r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\nToday we cover cells\r\n"
	entries := ParseSRT(srt)

	s.Equal([]model.CaptionEntry{
		{Time: "00:00:01", Text: "Hello class"},
		{Time: "00:00:03", Text: "Today we cover cells"},
	}, entries)

	_, err := Build(entries)
	var extractionErr *model.ExtractionError
	s.Require().ErrorAs(err, &extractionErr)
	s.Equal(model.ExtractionTooShort, extractionErr.Kind)
}

func (s *SourceSuite) TestParseLinesIgnoresByteOrderMark() {
	entries, err := ParseLines(strings.NewReader("\ufeffone\ntwo"))
	s.Require().NoError(err)
	s.Equal([]model.CaptionEntry{{Text: "one"}, {Text: "two"}}, entries)
}

func (s *SourceSuite) TestParseSRTEmpty() {
	s.Empty(ParseSRT("  \n"))
}

func (s *SourceSuite) TestParseJSON() {
	entries, err := ParseJSON(strings.NewReader(`[{"time":"0:01","text":"hello"},{"text":"world"}]`))
	s.Require().NoError(err)
	s.Equal([]model.CaptionEntry{{Time: "0:01", Text: "hello"}, {Text: "world"}}, entries)
}

func (s *SourceSuite) TestParseJSONIgnoresByteOrderMark() {
	entries, err := ParseJSON(strings.NewReader("\ufeff" + `[{"time":"0:01","text":"hello"}]`))
	s.Require().NoError(err)
	s.Equal([]model.CaptionEntry{{Time: "0:01", Text: "hello"}}, entries)
}

func (s *SourceSuite) TestParseJSONInvalid() {
	_, err := ParseJSON(strings.NewReader(`{"text":`))
	s.Error(err)
}

func (s *SourceSuite) TestLoadFileDispatchesOnExtension() {
	dir := s.T().TempDir()

	txtPath := filepath.Join(dir, "lecture.txt")
	s.Require().NoError(os.WriteFile(txtPath, []byte("one\ntwo\n"), 0o644))
	entries, err := LoadFile(txtPath)
	s.Require().NoError(err)
	s.Len(entries, 2)

	jsonPath := filepath.Join(dir, "lecture.JSON")
	s.Require().NoError(os.WriteFile(jsonPath, []byte(`[{"text":"a"}]`), 0o644))
	entries, err = LoadFile(jsonPath)
	s.Require().NoError(err)
	s.Len(entries, 1)

	badPath := filepath.Join(dir, "lecture.mp4")
	s.Require().NoError(os.WriteFile(badPath, []byte("x"), 0o644))
	_, err = LoadFile(badPath)
	s.Require().Error(err)
	s.Contains(err.Error(), "unsupported caption file")
}

func (s *SourceSuite) TestIsSupportedFile() {
	s.True(IsSupportedFile("/in/a.srt"))
	s.True(IsSupportedFile("/in/a.TXT"))
	s.False(IsSupportedFile("/in/a.mp4"))
}
