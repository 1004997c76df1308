package gemini

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
	"google.golang.org/genai"
)

const (
	providerName     = model.ProviderGemini
	defaultModelName = model.DefaultGeminiModel
)

// errorBodyCapture records the raw body of the last failed response and hands
// an identical copy on to genai.
type errorBodyCapture struct {
	next http.RoundTripper

	mu   sync.Mutex
	body string
}

func (c *errorBodyCapture) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := c.next.RoundTrip(req)
	if err != nil || resp.StatusCode < http.StatusBadRequest || resp.Body == nil {
		return resp, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, utils.WrapIfNotNil(readErr)
	}
	resp.Body = io.NopCloser(bytes.NewReader(raw))

	c.mu.Lock()
	c.body = string(raw)
	c.mu.Unlock()
	return resp, nil
}

func (c *errorBodyCapture) Body() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.body
}

func withErrorBodyCapture(base *http.Client) (*http.Client, *errorBodyCapture) {
	if base == nil {
		base = http.DefaultClient
	}
	next := base.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	capture := &errorBodyCapture{next: next}
	wrapped := *base
	wrapped.Transport = capture
	return &wrapped, capture
}

func newAPIClient(ctx context.Context, cfg model.GeneratorConfig, apiKey string) (*genai.Client, *errorBodyCapture, error) {
	httpClient, capture := withErrorBodyCapture(cfg.HTTPClient)
	clientCfg := &genai.ClientConfig{
		Backend:    genai.BackendGeminiAPI,
		APIKey:     apiKey,
		HTTPClient: httpClient,
	}

	baseURL := strings.TrimSpace(cfg.URL)
	if baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{
			BaseURL: baseURL,
		}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, nil, utils.WrapIfNotNil(err)
	}
	return client, capture, nil
}

func initMetadata(modelName string) model.GenerationMetadata {
	if strings.TrimSpace(modelName) == "" {
		modelName = "unknown"
	}

	return model.GenerationMetadata{
		model.MetadataKeyProvider: string(providerName),
		model.MetadataKeyModel:    modelName,
	}
}

func setLatencyMetadata(meta model.GenerationMetadata, start time.Time) {
	if meta == nil {
		return
	}
	meta[model.MetadataKeyLatencyMs] = strconv.FormatInt(time.Since(start).Milliseconds(), 10)
}

func resolveModelName(cfg model.GeneratorConfig, req model.SummaryRequest) string {
	if name := strings.TrimSpace(req.Model); name != "" {
		return name
	}
	if cfg.Model != nil {
		name := strings.TrimSpace(*cfg.Model)
		if name != "" {
			return name
		}
	}
	return defaultModelName
}

func applyGenerateMetadata(meta model.GenerationMetadata, response *genai.GenerateContentResponse) {
	if meta == nil || response == nil {
		return
	}

	if usage := response.UsageMetadata; usage != nil {
		meta[model.MetadataKeyInputTokens] = strconv.FormatInt(int64(usage.PromptTokenCount), 10)
		meta[model.MetadataKeyOutputTokens] = strconv.FormatInt(int64(usage.CandidatesTokenCount), 10)
		meta[model.MetadataKeyTotalTokens] = strconv.FormatInt(int64(usage.TotalTokenCount), 10)
	}
	if strings.TrimSpace(response.ResponseID) != "" {
		meta[model.MetadataKeyResponseID] = response.ResponseID
	}
	if len(response.Candidates) > 0 && response.Candidates[0] != nil {
		meta[model.MetadataKeyResponseStatus] = string(response.Candidates[0].FinishReason)
	}
}
