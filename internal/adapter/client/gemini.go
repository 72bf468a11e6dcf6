package client

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"safeplate/internal/domain/entity"
)

// GeminiClient adapts the Gemini API to the Generator interface. Every call
// carries a fixed safety policy (block only high-severity dangerous
// content); tools, schema, and temperature come from the request. The
// adapter never retries.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient builds the adapter. An empty API key is not fatal here:
// the absence is reported as a typed failure on every Generate call so the
// gateway can still serve degraded results.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return &GeminiClient{}, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: c}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, req entity.GenerationRequest) (string, error) {
	if g.client == nil {
		return "", entity.NewGenerationError(entity.FailureMissingCredential,
			"GEMINI_API_KEY is not configured")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
		SafetySettings: []*genai.SafetySetting{
			{
				Category:  genai.HarmCategoryDangerousContent,
				Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
			},
		},
	}
	if req.UseSearch {
		cfg.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}
	if req.ForceJSON {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = schemaFor(req.Schema)
	}

	result, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", classifyBackendError(err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", entity.NewGenerationError(entity.FailureEmptyResponse,
			"model returned no text (possibly blocked by safety filters)")
	}
	return text, nil
}

// classifyBackendError turns a raw backend error into a typed kind. The
// structured HTTP code is checked first; substring matching on the message
// is the documented last resort for errors that arrive untyped.
func classifyBackendError(err error) *entity.GenerationError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return entity.NewGenerationError(entity.FailureQuotaExceeded, apiErr.Message)
		}
		return entity.NewGenerationError(entity.FailureBackendError, apiErr.Message)
	}

	if isQuotaMessage(err.Error()) {
		return entity.NewGenerationError(entity.FailureQuotaExceeded, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return entity.NewGenerationError(entity.FailureBackendError, "generation timed out")
	}
	return entity.NewGenerationError(entity.FailureBackendError, err.Error())
}

func isQuotaMessage(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "429") ||
		strings.Contains(m, "quota") ||
		strings.Contains(m, "rate limit") ||
		strings.Contains(m, "resource exhausted") ||
		strings.Contains(m, "resource_exhausted")
}
