package openai_response

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
	"github.com/tidwall/gjson"
)

const (
	defaultModelName = model.DefaultOpenAIModel
	providerName     = model.ProviderOpenAI
)

type client struct {
	apiClient openai.Client
	cfg       model.GeneratorConfig
}

// NewSummaryProvider returns the Responses API adapter. The SDK's own retries
// are disabled: a failed call is reported once.
func NewSummaryProvider(opts ...model.GeneratorOption) (model.SummaryProvider, error) {
	cfg := model.ResolveGeneratorOpts(opts...)
	return newClient(cfg), nil
}

func newClient(cfg model.GeneratorConfig) *client {
	requestOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.URL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(cfg.URL))
	}
	if cfg.AuthToken != "" {
		requestOpts = append(requestOpts, option.WithAPIKey(cfg.AuthToken))
	}
	if cfg.HTTPClient != nil {
		requestOpts = append(requestOpts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &client{apiClient: openai.NewClient(requestOpts...), cfg: cfg}
}

func (c *client) Summarize(ctx context.Context, req model.SummaryRequest) (string, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveModelName(c.cfg, req)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	log.Infof(
		"openai_response.Summarize model=%s instructions_chars=%d transcript_chars=%d",
		modelName,
		len(req.Instructions),
		len(req.TranscriptText),
	)

	var httpResp *http.Response
	requestOpts := []option.RequestOption{option.WithResponseInto(&httpResp)}
	if key := strings.TrimSpace(req.APIKey); key != "" {
		requestOpts = append(requestOpts, option.WithAPIKey(key))
	}

	response, err := c.apiClient.Responses.New(ctx, encodeRequest(modelName, req), requestOpts...)
	if err != nil {
		providerErr := toProviderError(err, httpResp)
		log.Errorf("error: %v", providerErr)
		return "", meta, providerErr
	}
	if response == nil {
		log.Errorf("error: responses API returned nil response")
		return "", meta, &model.NoOutputError{Provider: providerName}
	}
	applyResponseMetadata(meta, response)

	output := decodeOutputText(response.RawJSON())
	if output == "" {
		err := &model.NoOutputError{Provider: providerName}
		log.Errorf("error: %v", err)
		return "", meta, err
	}
	return output, meta, nil
}

// encodeRequest builds {model, input:[system instructions, user transcript]}.
func encodeRequest(modelName string, req model.SummaryRequest) responses.ResponseNewParams {
	return responses.ResponseNewParams{
		Model: shared.ResponsesModel(modelName),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				inputTextMessage(req.Instructions, responses.EasyInputMessageRoleSystem),
				inputTextMessage("Transcript:\n"+req.TranscriptText, responses.EasyInputMessageRoleUser),
			},
		},
	}
}

func inputTextMessage(text string, role responses.EasyInputMessageRole) responses.ResponseInputItemUnionParam {
	return responses.ResponseInputItemParamOfMessage(
		responses.ResponseInputMessageContentListParam{
			responses.ResponseInputContentParamOfInputText(text),
		},
		role,
	)
}

// decodeOutputText prefers the top-level output_text convenience field and
// otherwise joins every output[].content[].text chunk with newlines.
func decodeOutputText(raw string) string {
	if !gjson.Valid(raw) {
		return ""
	}

	direct := gjson.Get(raw, "output_text")
	if direct.Type == gjson.String && strings.TrimSpace(direct.Str) != "" {
		return strings.TrimSpace(direct.Str)
	}

	chunks := make([]string, 0)
	gjson.Get(raw, "output").ForEach(func(_, item gjson.Result) bool {
		content := item.Get("content")
		if !content.IsArray() {
			return true
		}
		content.ForEach(func(_, part gjson.Result) bool {
			text := part.Get("text")
			if text.Type == gjson.String {
				chunks = append(chunks, text.Str)
			}
			return true
		})
		return true
	})
	return strings.TrimSpace(strings.Join(chunks, "\n"))
}

// toProviderError keeps the HTTP status and the raw body exactly as sent.
func toProviderError(err error, httpResp *http.Response) *model.ProviderError {
	providerErr := &model.ProviderError{Provider: providerName, Err: err}

	if httpResp != nil && httpResp.StatusCode >= http.StatusBadRequest {
		providerErr.StatusCode = httpResp.StatusCode
		if httpResp.Body != nil {
			body, readErr := io.ReadAll(httpResp.Body)
			_ = httpResp.Body.Close()
			if readErr == nil {
				providerErr.Body = string(body)
			}
		}
		return providerErr
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		providerErr.StatusCode = apiErr.StatusCode
		providerErr.Body = apiErr.RawJSON()
	}
	return providerErr
}

func resolveModelName(cfg model.GeneratorConfig, req model.SummaryRequest) string {
	if name := strings.TrimSpace(req.Model); name != "" {
		return name
	}
	if cfg.Model != nil {
		if name := strings.TrimSpace(*cfg.Model); name != "" {
			return name
		}
	}
	return defaultModelName
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

func applyResponseMetadata(meta model.GenerationMetadata, response *responses.Response) {
	if meta == nil || response == nil {
		return
	}

	meta[model.MetadataKeyInputTokens] = strconv.FormatInt(response.Usage.InputTokens, 10)
	meta[model.MetadataKeyOutputTokens] = strconv.FormatInt(response.Usage.OutputTokens, 10)
	meta[model.MetadataKeyTotalTokens] = strconv.FormatInt(response.Usage.TotalTokens, 10)
	if response.ID != "" {
		meta[model.MetadataKeyResponseID] = response.ID
	}
	if response.Status != "" {
		meta[model.MetadataKeyResponseStatus] = string(response.Status)
	}
}
