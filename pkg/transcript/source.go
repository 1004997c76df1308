package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
)

const byteOrderMark = "\ufeff"

// SupportedExtensions lists the caption dump formats LoadFile understands.
var SupportedExtensions = []string{".json", ".srt", ".txt"}

func IsSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// LoadFile reads a caption dump, choosing the parser from the file extension.
func LoadFile(path string) ([]model.CaptionEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, utils.WrapIfNotNil(err, path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		entries, err := ParseJSON(f)
		return entries, utils.WrapIfNotNil(err, path)
	case ".srt":
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, utils.WrapIfNotNil(err, path)
		}
		return ParseSRT(string(data)), nil
	case ".txt":
		entries, err := ParseLines(f)
		return entries, utils.WrapIfNotNil(err, path)
	default:
		return nil, utils.WrapIfNotNil(fmt.Errorf("unsupported caption file %q", filepath.Base(path)))
	}
}

// ParseJSON decodes a scraper dump: [{"time":"0:01","text":"..."}, ...].
func ParseJSON(r io.Reader) ([]model.CaptionEntry, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(byteOrderMark)); err == nil && string(head) == byteOrderMark {
		_, _ = br.Discard(len(byteOrderMark))
	}

	var entries []model.CaptionEntry
	if err := json.NewDecoder(br).Decode(&entries); err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return entries, nil
}

// ParseLines treats every line as an untimed caption row.
func ParseLines(r io.Reader) ([]model.CaptionEntry, error) {
	var entries []model.CaptionEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(entries) == 0 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		entries = append(entries, model.CaptionEntry{Text: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return entries, nil
}

// ParseSRT converts SRT cues into caption rows.
//
//	1
//	00:00:01,910 --> 00:00:03,610
//	As I'm sure you're all
//	aware, there's going
//
// becomes {Time: "00:00:01", Text: "As I'm sure you're all aware, there's going"}.
func ParseSRT(text string) []model.CaptionEntry {
	text = strings.TrimPrefix(text, byteOrderMark)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var entries []model.CaptionEntry
	var cueTime string
	var cueText []string

	flush := func() {
		if len(cueText) > 0 {
			entries = append(entries, model.CaptionEntry{
				Time: cueTime,
				Text: strings.Join(cueText, " "),
			})
		}
		cueTime = ""
		cueText = nil
	}

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		if strings.Contains(line, "-->") {
			flush()
			start := strings.TrimSpace(strings.SplitN(line, "-->", 2)[0])
			if idx := strings.IndexAny(start, ",."); idx >= 0 {
				start = start[:idx]
			}
			cueTime = start
			continue
		}
		if cueTime == "" && len(cueText) == 0 && isDigitOnly(line) {
			continue
		}
		cueText = append(cueText, line)
	}
	flush()

	return entries
}

func isDigitOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
