package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"safeplate/internal/domain/entity"
	"safeplate/internal/domain/repository"
)

// PipelineMode selects how the model calls are arranged.
type PipelineMode string

const (
	// PipelineUnified issues one combined call whose prompt and schema
	// embed classification, vetting, and audit. Half the round-trips of
	// the staged chain; the recommended default.
	PipelineUnified PipelineMode = "unified"
	// PipelineStaged issues route, vet, and audit calls sequentially.
	// Each stage degrades independently; a failed vetting still gets an
	// audit attempt.
	PipelineStaged PipelineMode = "staged"
)

// Options configures the pipeline.
type Options struct {
	FastModel       string
	ProModel        string
	Temperature     float32
	Mode            PipelineMode
	GenerateTimeout time.Duration
}

// Orchestrator drives one fixed pipeline: cache check, prompt build,
// generation, normalization, cache store. ProcessRequest never fails; every
// internal failure degrades into a valid Result whose audit explains what
// went wrong.
type Orchestrator struct {
	cache     repository.ResultCache
	generator repository.Generator
	opts      Options
	logger    *zap.Logger
}

func NewOrchestrator(cache repository.ResultCache, generator repository.Generator, opts Options, logger *zap.Logger) *Orchestrator {
	if opts.Mode == "" {
		opts.Mode = PipelineUnified
	}
	if opts.GenerateTimeout <= 0 {
		opts.GenerateTimeout = 25 * time.Second
	}
	return &Orchestrator{cache: cache, generator: generator, opts: opts, logger: logger}
}

// ProcessRequest is the sole public entry point. The second return reports
// whether the result came from cache.
func (o *Orchestrator) ProcessRequest(ctx context.Context, req entity.Request) (*entity.Result, bool) {
	fingerprint := req.Fingerprint()
	log := o.logger.With(zap.String("fingerprint", fingerprint[:12]))

	cached, ok, err := o.cache.Lookup(ctx, fingerprint)
	if err != nil {
		// A broken cache degrades to a miss, never to a failed request.
		log.Warn("cache lookup failed", zap.Error(err))
	} else if ok {
		log.Info("cache hit")
		return cached, true
	}

	var res *entity.Result
	switch o.opts.Mode {
	case PipelineStaged:
		res = o.runStaged(ctx, req, log)
	default:
		res = o.runUnified(ctx, req, log)
	}

	if err := o.cache.Store(ctx, fingerprint, res); err != nil {
		log.Warn("cache store failed", zap.Error(err))
	}

	log.Info("request processed",
		zap.String("intent", string(res.Intent)),
		zap.Int("recommendations", len(res.Recommendations)),
		zap.String("audit_headline", res.Audit.Headline))
	return res, false
}

// generate bounds one backend call with the configured timeout; expiry
// surfaces as a BackendError-kind failure.
func (o *Orchestrator) generate(ctx context.Context, req entity.GenerationRequest) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, o.opts.GenerateTimeout)
	defer cancel()

	out, err := o.generator.Generate(genCtx, req)
	if err != nil && genCtx.Err() == context.DeadlineExceeded {
		return "", entity.NewGenerationError(entity.FailureBackendError,
			"generation timed out after "+o.opts.GenerateTimeout.String())
	}
	return out, err
}

func (o *Orchestrator) runUnified(ctx context.Context, req entity.Request, log *zap.Logger) *entity.Result {
	out, err := o.generate(ctx, entity.GenerationRequest{
		Model:       o.opts.ProModel,
		Prompt:      unifiedPrompt(req),
		UseSearch:   true,
		ForceJSON:   true,
		Schema:      entity.SchemaResult,
		Temperature: o.opts.Temperature,
	})
	if err != nil {
		log.Warn("unified generation failed", zap.String("kind", string(entity.KindOf(err))))
	}
	return NormalizeResult(out, err)
}

func (o *Orchestrator) runStaged(ctx context.Context, req entity.Request, log *zap.Logger) *entity.Result {
	// Stage 1: route. A failed or unparseable classification stays UNKNOWN.
	intent := entity.IntentUnknown
	routeOut, routeErr := o.generate(ctx, entity.GenerationRequest{
		Model:       o.opts.FastModel,
		Prompt:      routerPrompt(req),
		Temperature: o.opts.Temperature,
	})
	if routeErr != nil {
		log.Warn("route stage failed", zap.String("kind", string(entity.KindOf(routeErr))))
	} else {
		intent = entity.ParseIntent(routeOut)
	}

	// Stage 2: vet. Unknown intents take the restaurant rubric.
	vetOut, vetErr := o.generate(ctx, entity.GenerationRequest{
		Model:       o.opts.FastModel,
		Prompt:      vettingPrompt(intent, req),
		UseSearch:   true,
		ForceJSON:   true,
		Schema:      entity.SchemaRecommendations,
		Temperature: o.opts.Temperature,
	})
	recs := []entity.Recommendation{}
	if vetErr != nil {
		log.Warn("vet stage failed", zap.String("kind", string(entity.KindOf(vetErr))))
	} else {
		recs = parseRecommendationReport(vetOut)
	}

	// Stage 3: audit, attempted even over an empty vetting report.
	var audit entity.Audit
	auditOut, auditErr := o.generate(ctx, entity.GenerationRequest{
		Model:       o.opts.ProModel,
		Prompt:      auditPrompt(vetOut),
		ForceJSON:   true,
		Schema:      entity.SchemaAudit,
		Temperature: o.opts.Temperature,
	})
	if auditErr != nil {
		log.Warn("audit stage failed", zap.String("kind", string(entity.KindOf(auditErr))))
		audit = failureAudit(auditErr)
	} else {
		audit = normalizeAudit(json.RawMessage(auditOut))
	}
	if vetErr != nil {
		audit.SummaryNotes = append(audit.SummaryNotes,
			"vetting stage failed: "+entity.MessageOf(vetErr))
	}

	return &entity.Result{
		Intent:          intent,
		Recommendations: recs,
		Audit:           audit,
	}
}

// parseRecommendationReport extracts the recommendations array from a
// vetting-stage response, repairing entries field by field.
func parseRecommendationReport(raw string) []entity.Recommendation {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return []entity.Recommendation{}
	}
	return normalizeRecommendations(top["recommendations"])
}
