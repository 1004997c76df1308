package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"google.golang.org/genai"
)

type summaryProvider struct {
	cfg model.GeneratorConfig
}

// NewSummaryProvider returns the generateContent adapter. The API key travels
// with each request, so the genai client is built per call.
func NewSummaryProvider(opts ...model.GeneratorOption) (model.SummaryProvider, error) {
	return &summaryProvider{cfg: model.ResolveGeneratorOpts(opts...)}, nil
}

func (p *summaryProvider) Summarize(ctx context.Context, req model.SummaryRequest) (string, model.GenerationMetadata, error) {
	const fn = "gemini.summaryProvider.Summarize"
	start := time.Now()
	modelName := resolveModelName(p.cfg, req)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(p.cfg.AuthToken)
	}
	if apiKey == "" {
		err := model.NewMissingAPIKeyError(providerName)
		log.Errorf("%s error: %v", fn, err)
		return "", meta, err
	}

	log.Infof(
		"%s model=%s instructions_chars=%d transcript_chars=%d url=%q",
		fn,
		modelName,
		len(req.Instructions),
		len(req.TranscriptText),
		p.cfg.URL,
	)

	client, capture, err := newAPIClient(ctx, p.cfg, apiKey)
	if err != nil {
		log.Errorf("%s error: %v", fn, err)
		return "", meta, &model.ProviderError{Provider: providerName, Err: err}
	}

	response, err := client.Models.GenerateContent(ctx, modelName, encodeContents(req), nil)
	if err != nil {
		providerErr := toProviderError(err, capture.Body())
		log.Errorf("%s error: %v", fn, providerErr)
		return "", meta, providerErr
	}
	applyGenerateMetadata(meta, response)

	output := decodeOutputText(response)
	if output == "" {
		err := &model.NoOutputError{Provider: providerName}
		log.Errorf("%s error: %v", fn, err)
		return "", meta, err
	}
	return output, meta, nil
}

// encodeContents sends a single user turn: instructions, a blank line, then
// the transcript.
func encodeContents(req model.SummaryRequest) []*genai.Content {
	return genai.Text(req.Instructions + "\n\nTranscript:\n" + req.TranscriptText)
}

// decodeOutputText joins the parts of the first candidate. Parts without text
// contribute an empty line.
func decodeOutputText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 {
		return ""
	}
	candidate := response.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	chunks := make([]string, 0, len(candidate.Content.Parts))
	for _, part := range candidate.Content.Parts {
		if part == nil {
			chunks = append(chunks, "")
			continue
		}
		chunks = append(chunks, part.Text)
	}
	return strings.TrimSpace(strings.Join(chunks, "\n"))
}

// toProviderError prefers the raw response body captured by the transport;
// genai only keeps the parsed error.message.
func toProviderError(err error, rawBody string) *model.ProviderError {
	providerErr := &model.ProviderError{Provider: providerName, Err: err}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		providerErr.StatusCode = apiErr.Code
		providerErr.Body = apiErr.Message
		if rawBody != "" {
			providerErr.Body = rawBody
		}
	}
	return providerErr
}
