package usecase

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"safeplate/internal/domain/entity"
	"safeplate/internal/domain/repository"
)

// retryingGenerator wraps a Generator with kind-aware retries. The adapter
// itself never retries; this is the orchestrator-side policy. Missing
// credentials and malformed output are not retried since re-sending the same
// prompt cannot fix either.
type retryingGenerator struct {
	inner      repository.Generator
	maxRetries int
	baseDelay  time.Duration
	logger     *zap.Logger
}

func NewRetryingGenerator(inner repository.Generator, maxRetries int, logger *zap.Logger) repository.Generator {
	return &retryingGenerator{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  500 * time.Millisecond,
		logger:     logger,
	}
}

func (r *retryingGenerator) Generate(ctx context.Context, req entity.GenerationRequest) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		out, err := r.inner.Generate(ctx, req)
		if err == nil {
			return out, nil
		}
		lastErr = err

		kind := entity.KindOf(err)
		if !kind.Retryable() || attempt == r.maxRetries {
			break
		}

		wait := r.calculateBackoff(attempt)
		r.logger.Warn("generation failed, backing off",
			zap.String("kind", string(kind)),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait))

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", entity.NewGenerationError(entity.FailureBackendError, ctx.Err().Error())
		}
	}
	return "", lastErr
}

func (r *retryingGenerator) calculateBackoff(attempt int) time.Duration {
	backoff := float64(r.baseDelay) * float64(int(1)<<attempt)
	jitter := (rand.Float64() * 0.2) * backoff // 20% jitter
	return time.Duration(backoff + jitter)
}
