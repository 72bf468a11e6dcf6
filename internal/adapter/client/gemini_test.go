package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"safeplate/internal/domain/entity"
)

func TestGenerateWithoutCredential(t *testing.T) {
	g, err := NewGeminiClient(context.Background(), "")
	require.NoError(t, err, "a missing key is a per-call condition, not a constructor failure")

	_, err = g.Generate(context.Background(), entity.GenerationRequest{
		Model:  "gemini-2.0-flash",
		Prompt: "test",
	})
	require.Error(t, err)
	assert.Equal(t, entity.FailureMissingCredential, entity.KindOf(err))
}

func TestClassifyBackendError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want entity.FailureKind
	}{
		{"structured 429", genai.APIError{Code: 429, Message: "quota exceeded"}, entity.FailureQuotaExceeded},
		{"structured 500", genai.APIError{Code: 500, Message: "internal"}, entity.FailureBackendError},
		{"429 in message", errors.New("googleapi: Error 429: too many requests"), entity.FailureQuotaExceeded},
		{"quota in message", errors.New("Quota exceeded for requests per minute"), entity.FailureQuotaExceeded},
		{"rate limit in message", errors.New("rate limit hit, slow down"), entity.FailureQuotaExceeded},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), entity.FailureQuotaExceeded},
		{"deadline", context.DeadlineExceeded, entity.FailureBackendError},
		{"generic", errors.New("connection reset by peer"), entity.FailureBackendError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyBackendError(tt.err)
			assert.Equal(t, tt.want, got.Kind)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestSchemaFor(t *testing.T) {
	assert.Nil(t, schemaFor(entity.SchemaNone))

	result := schemaFor(entity.SchemaResult)
	require.NotNil(t, result)
	assert.ElementsMatch(t, []string{"intent", "recommendations", "audit"}, result.Required)

	report := schemaFor(entity.SchemaRecommendations)
	require.NotNil(t, report)
	rec := report.Properties["recommendations"].Items
	require.NotNil(t, rec)
	assert.Contains(t, rec.Required, "name")
	assert.Contains(t, rec.Required, "reasoning")

	audit := schemaFor(entity.SchemaAudit)
	require.NotNil(t, audit)
	assert.ElementsMatch(t, []string{"overall_score", "headline", "summary_notes"}, audit.Required)
}
