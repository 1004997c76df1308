package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/export"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/summarizer"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/transcript"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
)

// Summarizer is the part of summarizer.Summarizer the pipeline needs.
type Summarizer interface {
	Summarize(ctx context.Context, req summarizer.Request) (model.SummaryResult, error)
}

type Paths struct {
	Output  string
	Archive string
}

// Outputs lists the files written for one caption file.
type Outputs struct {
	Summary string
	Context string
	Docx    string
}

// Processor turns one caption dump into summary files and archives the
// source.
type Processor struct {
	summarizer Summarizer
	paths      Paths
	provider   string
	prompt     model.PromptOverride
	now        func() time.Time
}

type Option func(*Processor)

func WithProvider(provider string) Option {
	return func(p *Processor) {
		p.provider = provider
	}
}

func WithPrompt(override model.PromptOverride) Option {
	return func(p *Processor) {
		p.prompt = override
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

func New(s Summarizer, paths Paths, opts ...Option) *Processor {
	p := &Processor{summarizer: s, paths: paths, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process matches watcher.EventHandler.
func (p *Processor) Process(ctx context.Context, path string) error {
	_, err := p.Run(ctx, path)
	return err
}

func (p *Processor) Run(ctx context.Context, path string) (Outputs, error) {
	const fn = "pipeline.Processor.Run"
	log := logging.NewLogger(ctx)
	start := time.Now()

	entries, err := transcript.LoadFile(path)
	if err != nil {
		log.Errorf("%s file=%s error: %v", fn, path, err)
		return Outputs{}, err
	}
	t, err := transcript.Build(entries)
	if err != nil {
		log.Warnf("%s file=%s captions=%d error: %v", fn, path, len(entries), err)
		return Outputs{}, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	result, err := p.summarizer.Summarize(ctx, summarizer.Request{
		TranscriptText: t.Text,
		Provider:       p.provider,
		Prompt:         p.prompt,
		CaptionCount:   len(t.Entries),
		SourceTitle:    stem,
	})
	if err != nil {
		return Outputs{}, err
	}

	outputs, err := p.writeOutputs(stem, t, result)
	if err != nil {
		log.Errorf("%s file=%s error writing outputs: %v", fn, path, err)
		return Outputs{}, err
	}

	if err := p.archive(path); err != nil {
		log.Warnf("%s file=%s failed to archive: %v", fn, path, err)
	}

	log.Infof(
		"%s file=%s provider=%s summary=%s duration=%s",
		fn,
		path,
		result.Provider,
		outputs.Summary,
		time.Since(start),
	)
	return outputs, nil
}

func (p *Processor) writeOutputs(stem string, t model.Transcript, result model.SummaryResult) (Outputs, error) {
	if err := os.MkdirAll(p.paths.Output, 0o755); err != nil {
		return Outputs{}, utils.WrapIfNotNil(err, p.paths.Output)
	}

	generatedAt := p.now()
	// One export per source file, even when date and topic slug match.
	contextName := stem + "." + export.Filename(generatedAt, result.OutputText)
	outputs := Outputs{
		Summary: filepath.Join(p.paths.Output, stem+".summary.md"),
		Context: filepath.Join(p.paths.Output, contextName),
		Docx:    filepath.Join(p.paths.Output, strings.TrimSuffix(contextName, ".md")+".docx"),
	}

	if err := os.WriteFile(outputs.Summary, []byte(result.OutputText+"\n"), 0o644); err != nil {
		return Outputs{}, utils.WrapIfNotNil(err, outputs.Summary)
	}

	contextDoc := export.ContextMarkdown(export.Context{
		GeneratedAt:     generatedAt,
		Provider:        result.Provider,
		CaptionCount:    len(t.Entries),
		SummaryMarkdown: result.OutputText,
		TranscriptText:  t.Text,
	})
	if err := os.WriteFile(outputs.Context, []byte(contextDoc), 0o644); err != nil {
		return Outputs{}, utils.WrapIfNotNil(err, outputs.Context)
	}

	if err := export.WriteDocx(stem, result.OutputText, outputs.Docx); err != nil {
		return Outputs{}, err
	}
	return outputs, nil
}

func (p *Processor) archive(path string) error {
	if p.paths.Archive == "" {
		return nil
	}
	if err := os.MkdirAll(p.paths.Archive, 0o755); err != nil {
		return utils.WrapIfNotNil(err, p.paths.Archive)
	}
	dest := filepath.Join(p.paths.Archive, filepath.Base(path))
	return utils.WrapIfNotNil(os.Rename(path, dest), dest)
}
