package mcp

import (
	"context"
	"strings"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/prompt"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/settings"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/summarizer"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/transcript"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName = "lecture-summarizer"

	ToolNormalizeCaptions   = "normalize_captions"
	ToolComposePrompt       = "compose_prompt"
	ToolSummarizeTranscript = "summarize_transcript"

	argCaptions          = "captions"
	argFormat            = "format"
	argTranscript        = "transcript"
	argProvider          = "provider"
	argPreset            = "preset"
	argBehavior          = "behavior"
	argCustomInstruction = "custom_instruction"
)

type Summarizer interface {
	Summarize(ctx context.Context, req summarizer.Request) (model.SummaryResult, error)
}

type handlers struct {
	summarizer Summarizer
}

// NewServer exposes caption cleanup, prompt composition and summarization as
// MCP tools.
func NewServer(s Summarizer, version string) *server.MCPServer {
	srv := server.NewMCPServer(ServerName, version, server.WithToolCapabilities(false))
	h := &handlers{summarizer: s}

	srv.AddTool(mcp.NewTool(ToolNormalizeCaptions,
		mcp.WithDescription("Clean a raw caption dump into a timestamped transcript. Drops filler and repeated rows."),
		mcp.WithString(argCaptions, mcp.Required(), mcp.Description("Caption dump contents.")),
		mcp.WithString(argFormat, mcp.Description("Format of the dump. Defaults to txt."), mcp.Enum("json", "srt", "txt")),
	), h.normalizeCaptions)

	srv.AddTool(mcp.NewTool(ToolComposePrompt,
		mcp.WithDescription("Return the system instructions used for a preset, behavior and optional instruction."),
		promptPresetArg(),
		promptBehaviorArg(),
		mcp.WithString(argCustomInstruction, mcp.Description("Optional user instruction.")),
	), h.composePrompt)

	srv.AddTool(mcp.NewTool(ToolSummarizeTranscript,
		mcp.WithDescription("Summarize a lecture transcript with the configured LLM provider."),
		mcp.WithString(argTranscript, mcp.Required(), mcp.Description("Cleaned transcript text.")),
		mcp.WithString(argProvider, mcp.Description("Provider override."), mcp.Enum(string(model.ProviderOpenAI), string(model.ProviderGemini))),
		promptPresetArg(),
		promptBehaviorArg(),
		mcp.WithString(argCustomInstruction, mcp.Description("Optional user instruction.")),
	), h.summarizeTranscript)

	return srv
}

// ServeStdio blocks serving srv over stdin/stdout.
func ServeStdio(srv *server.MCPServer) error {
	return server.ServeStdio(srv)
}

func promptPresetArg() mcp.ToolOption {
	values := make([]string, 0, len(prompt.Presets()))
	for _, p := range prompt.Presets() {
		values = append(values, string(p))
	}
	return mcp.WithString(argPreset, mcp.Description("Output preset."), mcp.Enum(values...))
}

func promptBehaviorArg() mcp.ToolOption {
	values := make([]string, 0, len(prompt.Behaviors()))
	for _, b := range prompt.Behaviors() {
		values = append(values, string(b))
	}
	return mcp.WithString(argBehavior, mcp.Description("How the custom instruction combines with the preset."), mcp.Enum(values...))
}

func (h *handlers) normalizeCaptions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	captions, err := req.RequireString(argCaptions)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var entries []model.CaptionEntry
	switch strings.ToLower(req.GetString(argFormat, "txt")) {
	case "json":
		entries, err = transcript.ParseJSON(strings.NewReader(captions))
	case "srt":
		entries = transcript.ParseSRT(captions)
	default:
		entries, err = transcript.ParseLines(strings.NewReader(captions))
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t, err := transcript.Build(entries)
	if err != nil {
		logging.NewLogger(ctx).Debugf("mcp.normalizeCaptions rows=%d error: %v", len(entries), err)
		return mcp.NewToolResultError(model.DisplayMessage(err)), nil
	}
	return mcp.NewToolResultText(t.Text), nil
}

func (h *handlers) composePrompt(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := settings.ResolvePromptConfig(promptOverride(req), model.PromptOverride{})
	return mcp.NewToolResultText(prompt.Compose(cfg)), nil
}

func (h *handlers) summarizeTranscript(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString(argTranscript)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.summarizer.Summarize(ctx, summarizer.Request{
		TranscriptText: text,
		Provider:       req.GetString(argProvider, ""),
		Prompt:         promptOverride(req),
	})
	if err != nil {
		logging.NewLogger(ctx).Errorf("mcp.summarizeTranscript error: %v", err)
		return mcp.NewToolResultError(model.DisplayMessage(err)), nil
	}
	return mcp.NewToolResultText(result.OutputText), nil
}

// promptOverride only sets the fields the caller actually sent.
func promptOverride(req mcp.CallToolRequest) model.PromptOverride {
	args := req.GetArguments()
	var override model.PromptOverride
	if v, ok := args[argPreset].(string); ok {
		override.Preset = &v
	}
	if v, ok := args[argBehavior].(string); ok {
		override.Behavior = &v
	}
	if v, ok := args[argCustomInstruction].(string); ok {
		override.CustomInstruction = &v
	}
	return override
}
