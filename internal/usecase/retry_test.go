package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"safeplate/internal/domain/entity"
)

func newTestRetrier(inner *stubGenerator, maxRetries int) *retryingGenerator {
	return &retryingGenerator{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  time.Millisecond,
		logger:     zap.NewNop(),
	}
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	stub := &stubGenerator{responses: []stubResponse{
		{err: entity.NewGenerationError(entity.FailureQuotaExceeded, "429")},
		{text: "ok"},
	}}
	r := newTestRetrier(stub, 2)

	out, err := r.Generate(context.Background(), entity.GenerationRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 2, stub.callCount())
}

func TestRetrySkipsNonRetryableKinds(t *testing.T) {
	tests := []entity.FailureKind{entity.FailureMissingCredential, entity.FailureMalformedOutput}
	for _, kind := range tests {
		t.Run(string(kind), func(t *testing.T) {
			stub := &stubGenerator{responses: []stubResponse{
				{err: entity.NewGenerationError(kind, "nope")},
			}}
			r := newTestRetrier(stub, 3)

			_, err := r.Generate(context.Background(), entity.GenerationRequest{Prompt: "p"})
			require.Error(t, err)
			assert.Equal(t, kind, entity.KindOf(err))
			assert.Equal(t, 1, stub.callCount(), "non-retryable failures get exactly one attempt")
		})
	}
}

func TestRetryExhaustionReturnsLastError(t *testing.T) {
	stub := &stubGenerator{responses: []stubResponse{
		{err: entity.NewGenerationError(entity.FailureBackendError, "down")},
	}}
	r := newTestRetrier(stub, 2)

	_, err := r.Generate(context.Background(), entity.GenerationRequest{Prompt: "p"})
	require.Error(t, err)
	assert.Equal(t, entity.FailureBackendError, entity.KindOf(err))
	assert.Equal(t, 3, stub.callCount(), "initial attempt plus two retries")
}
