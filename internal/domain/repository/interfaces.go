package repository

import (
	"context"

	"safeplate/internal/domain/entity"
)

// ResultCache maps request fingerprints to previously computed results with
// absolute time-based expiry. Lookup must treat expired entries as absent.
type ResultCache interface {
	Lookup(ctx context.Context, fingerprint string) (*entity.Result, bool, error)
	Store(ctx context.Context, fingerprint string, res *entity.Result) error
}

// Generator wraps a single call to the text-generation backend. It performs
// no retries; a failed call returns a *entity.GenerationError.
type Generator interface {
	Generate(ctx context.Context, req entity.GenerationRequest) (string, error)
}
