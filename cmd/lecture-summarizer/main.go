package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/export"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/mcp"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/pipeline"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/prompt"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/settings"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/summarizer"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/transcript"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/watcher"
)

const version = "0.1.0"

const usage = `usage: lecture-summarizer [-config config.yaml] <command> [flags]

commands:
  summarize  summarize a caption file (json, srt, txt) or stdin
  watch      summarize every caption file dropped into the inbox
  mcp        serve the summarizer as MCP tools over stdio
  history    list recent summaries or export one as Markdown
  settings   validate and save provider settings
  prompt     print the instructions for a preset
  schema     print the settings JSON Schema
`

func main() {
	global := flag.NewFlagSet("lecture-summarizer", flag.ExitOnError)
	configPath := global.String("config", "config.yaml", "path to the YAML config file")
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	_ = global.Parse(os.Args[1:])

	args := global.Args()
	if len(args) == 0 {
		global.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, model.DisplayMessage(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, command string, args []string) error {
	switch command {
	case "prompt":
		return runPrompt(args)
	case "schema":
		return runSchema()
	}

	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	switch command {
	case "summarize":
		return runSummarize(ctx, a, args)
	case "watch":
		return runWatch(ctx, a)
	case "mcp":
		return mcp.ServeStdio(mcp.NewServer(a.summarizer(), version))
	case "history":
		return runHistory(ctx, a, args)
	case "settings":
		return runSettings(ctx, a, args)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", command, usage)
	}
}

type promptFlags struct {
	preset      *string
	behavior    *string
	instruction *string
	set         map[string]bool
}

func addPromptFlags(fs *flag.FlagSet) *promptFlags {
	return &promptFlags{
		preset:      fs.String("preset", "", "output preset (bullet_points, summary, quiz_creator, study_guide, detailed_notes, custom_instruction_only)"),
		behavior:    fs.String("behavior", "", "custom instruction behavior (custom_only, append_guidance, no_custom_prompt)"),
		instruction: fs.String("instruction", "", "custom instruction"),
		set:         map[string]bool{},
	}
}

// override returns only the flags given on the command line.
func (p *promptFlags) override(fs *flag.FlagSet) model.PromptOverride {
	fs.Visit(func(f *flag.Flag) { p.set[f.Name] = true })

	var o model.PromptOverride
	if p.set["preset"] {
		o.Preset = p.preset
	}
	if p.set["behavior"] {
		o.Behavior = p.behavior
	}
	if p.set["instruction"] {
		o.CustomInstruction = p.instruction
	}
	return o
}

func runPrompt(args []string) error {
	fs := flag.NewFlagSet("prompt", flag.ExitOnError)
	pf := addPromptFlags(fs)
	_ = fs.Parse(args)

	cfg := settings.ResolvePromptConfig(pf.override(fs), model.PromptOverride{})
	fmt.Println(prompt.Compose(cfg))
	return nil
}

func runSchema() error {
	data, err := settings.Schema()
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runSummarize(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)
	provider := fs.String("provider", "", "openai or gemini; defaults to the stored preference")
	contextOut := fs.String("context-out", "", "directory to write the Markdown context export into")
	docxOut := fs.String("docx", "", "path of a .docx rendering of the summary")
	pf := addPromptFlags(fs)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("summarize needs one caption file, or - for stdin")
	}
	source := fs.Arg(0)

	entries, err := readCaptions(source)
	if err != nil {
		return err
	}
	t, err := transcript.Build(entries)
	if err != nil {
		return err
	}

	title := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	result, err := a.summarizer().Summarize(ctx, summarizer.Request{
		TranscriptText: t.Text,
		Provider:       *provider,
		Prompt:         pf.override(fs),
		CaptionCount:   len(t.Entries),
		SourceTitle:    title,
	})
	if err != nil {
		return err
	}
	fmt.Println(result.OutputText)

	log := logging.NewLogger(ctx)
	if *contextOut != "" {
		c := export.Context{
			GeneratedAt:     time.Now(),
			Provider:        result.Provider,
			CaptionCount:    len(t.Entries),
			SummaryMarkdown: result.OutputText,
			TranscriptText:  t.Text,
		}
		if err := os.MkdirAll(*contextOut, 0o755); err != nil {
			return err
		}
		path := filepath.Join(*contextOut, export.Filename(c.GeneratedAt, c.SummaryMarkdown))
		if err := os.WriteFile(path, []byte(export.ContextMarkdown(c)), 0o644); err != nil {
			return err
		}
		log.Infof("main.runSummarize context=%s", path)
	}
	if *docxOut != "" {
		if err := export.WriteDocx(title, result.OutputText, *docxOut); err != nil {
			return err
		}
		log.Infof("main.runSummarize docx=%s", *docxOut)
	}
	return nil
}

func readCaptions(source string) ([]model.CaptionEntry, error) {
	if source != "-" {
		return transcript.LoadFile(source)
	}
	return transcript.ParseLines(os.Stdin)
}

func runWatch(ctx context.Context, a *app) error {
	log := logging.NewLogger(ctx)
	cfg := a.cfg

	for _, dir := range []string{cfg.Paths.Inbox, cfg.Paths.Output, cfg.Paths.Archive} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	proc := pipeline.New(a.summarizer(), pipeline.Paths{Output: cfg.Paths.Output, Archive: cfg.Paths.Archive})
	w, err := watcher.New(cfg.Paths.Inbox, proc.Process, cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Infof("main.runWatch inbox=%s output=%s archive=%s", cfg.Paths.Inbox, cfg.Paths.Output, cfg.Paths.Archive)
	err = w.Start(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("main.runWatch shutdown complete")
		return nil
	}
	return err
}

func runHistory(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	exportIndex := fs.Int("export", 0, "print entry N (1 = newest) as a Markdown context document")
	fork := fs.Bool("fork", false, "with -export, print the follow-up chat prompt instead")
	_ = fs.Parse(args)

	if a.history == nil {
		return errors.New("history is disabled (history.backend: none)")
	}
	entries, err := a.history.List(ctx)
	if err != nil {
		return err
	}

	if *exportIndex > 0 {
		if *exportIndex > len(entries) {
			return fmt.Errorf("history has %d entries", len(entries))
		}
		c := export.FromEntry(entries[*exportIndex-1])
		if *fork {
			fmt.Println(export.ForkPrompt(c))
			return nil
		}
		fmt.Print(export.ContextMarkdown(c))
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("No saved summaries.")
		return nil
	}
	for i, e := range entries {
		fmt.Printf("%d. %s  %s  %s  (%d caption lines)\n",
			i+1, e.GeneratedAt.Local().Format("2006-01-02 15:04"), e.Provider, e.SourceTitle, e.CaptionCount)
	}
	return nil
}

func runSettings(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	show := fs.Bool("show", false, "print the stored settings with keys masked")
	provider := fs.String("provider", "", "preferred provider")
	openaiKey := fs.String("openai-key", "", "OpenAI API key")
	openaiModel := fs.String("openai-model", "", "OpenAI model")
	geminiKey := fs.String("gemini-key", "", "Gemini API key")
	geminiModel := fs.String("gemini-model", "", "Gemini model")
	preset := fs.String("preset", "", "default prompt preset")
	behavior := fs.String("behavior", "", "default prompt behavior")
	instruction := fs.String("instruction", "", "default custom instruction")
	_ = fs.Parse(args)

	current, err := a.settings.Load(ctx)
	if err != nil {
		return err
	}
	if *show {
		printSettings(current)
		return nil
	}

	store, ok := a.settings.(settings.Store)
	if !ok {
		return errors.New("settings.backend env is read-only; edit the .env file instead")
	}

	updated := current
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "provider":
			updated.PreferredProvider = *provider
		case "openai-key":
			updated.OpenAIAPIKey = *openaiKey
		case "openai-model":
			updated.OpenAIModel = *openaiModel
		case "gemini-key":
			updated.GeminiAPIKey = *geminiKey
		case "gemini-model":
			updated.GeminiModel = *geminiModel
		case "preset":
			updated.DefaultPromptPreset = *preset
		case "behavior":
			updated.DefaultPromptBehavior = *behavior
		case "instruction":
			updated.DefaultCustomInstruction = *instruction
		}
	})

	saved, err := settings.Save(ctx, store, updated)
	if err != nil {
		return err
	}
	fmt.Println("Saved.")
	printSettings(saved)
	return nil
}

func printSettings(s model.StoredSettings) {
	fmt.Printf("preferred_provider: %s\n", s.PreferredProvider)
	fmt.Printf("openai_api_key: %s\n", mask(s.OpenAIAPIKey))
	fmt.Printf("openai_model: %s\n", s.Model(model.ProviderOpenAI))
	fmt.Printf("gemini_api_key: %s\n", mask(s.GeminiAPIKey))
	fmt.Printf("gemini_model: %s\n", s.Model(model.ProviderGemini))
	fmt.Printf("default_prompt_preset: %s\n", s.DefaultPromptPreset)
	fmt.Printf("default_prompt_behavior: %s\n", s.DefaultPromptBehavior)
	fmt.Printf("default_custom_instruction: %s\n", s.DefaultCustomInstruction)
}

func mask(key string) string {
	key = strings.TrimSpace(key)
	if len(key) <= 4 {
		if key == "" {
			return "(unset)"
		}
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
