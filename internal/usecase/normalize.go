package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"safeplate/internal/domain/entity"
)

// The normalizer is total: whatever the backend produced, the caller gets a
// structurally valid Result. Structured-output modes are advisory, so every
// field is repaired independently; a malformed audit must not discard valid
// recommendations.

const (
	rawPreviewLimit = 120

	placeholderName      = "Unknown candidate"
	placeholderReasoning = "No reasoning provided"

	incompleteHeadline = "Incomplete Response"
	incompleteNote     = "System returned incomplete data"
	unknownHeadline    = "Unknown Status"
)

// NormalizeResult parses, validates, and repairs the backend output. genErr,
// when non-nil, takes precedence over raw.
func NormalizeResult(raw string, genErr error) *entity.Result {
	if genErr != nil {
		return FailureResult(genErr)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return malformedResult(err, raw)
	}

	return &entity.Result{
		Intent:          normalizeIntent(top["intent"]),
		Recommendations: normalizeRecommendations(top["recommendations"]),
		Audit:           normalizeAudit(top["audit"]),
	}
}

// FailureResult synthesizes the default Result for a failed generation: no
// recommendations, an audit headline reflecting the failure kind, and the
// failure message as a diagnostic note.
func FailureResult(genErr error) *entity.Result {
	return &entity.Result{
		Intent:          entity.IntentUnknown,
		Recommendations: []entity.Recommendation{},
		Audit:           failureAudit(genErr),
	}
}

func failureAudit(genErr error) entity.Audit {
	return entity.Audit{
		OverallScore: 0,
		Headline:     failureHeadline(entity.KindOf(genErr)),
		SummaryNotes: []string{entity.MessageOf(genErr)},
	}
}

func failureHeadline(kind entity.FailureKind) string {
	switch kind {
	case entity.FailureMissingCredential:
		return "Configuration Error"
	case entity.FailureEmptyResponse:
		return "Empty Model Response"
	case entity.FailureQuotaExceeded:
		return "Rate Limit Exceeded"
	case entity.FailureMalformedOutput:
		return "Processing Error"
	default:
		return "System Error"
	}
}

func malformedResult(parseErr error, raw string) *entity.Result {
	res := FailureResult(entity.NewGenerationError(entity.FailureMalformedOutput,
		fmt.Sprintf("could not parse model output: %v", parseErr)))
	res.Audit.SummaryNotes = append(res.Audit.SummaryNotes,
		"raw output preview: "+rawPreview(raw))
	return res
}

func rawPreview(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > rawPreviewLimit {
		return raw[:rawPreviewLimit] + "..."
	}
	return raw
}

func normalizeIntent(raw json.RawMessage) entity.Intent {
	if raw == nil {
		return entity.IntentUnknown
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return entity.IntentUnknown
	}
	switch entity.Intent(strings.ToUpper(strings.TrimSpace(s))) {
	case entity.IntentRestaurant:
		return entity.IntentRestaurant
	case entity.IntentGrocery:
		return entity.IntentGrocery
	default:
		return entity.IntentUnknown
	}
}

func normalizeRecommendations(raw json.RawMessage) []entity.Recommendation {
	recs := []entity.Recommendation{}
	if raw == nil {
		return recs
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return recs
	}
	for _, item := range items {
		recs = append(recs, normalizeRecommendation(item))
	}
	return recs
}

// normalizeRecommendation repairs one entry field by field. Required fields
// get placeholders instead of the entry vanishing without trace.
func normalizeRecommendation(item json.RawMessage) entity.Recommendation {
	rec := entity.Recommendation{SafeItems: []string{}}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
		rec.Name = placeholderName
		rec.Reasoning = "Malformed recommendation entry"
		return rec
	}

	rec.Name = stringField(obj, "name", placeholderName)
	rec.Address = stringField(obj, "address", "")
	rec.WebsiteURL = stringField(obj, "website_url", "")
	rec.SafeItems = stringSliceField(obj, "safe_items")
	rec.SafetyScore = scoreField(obj, "safety_score")
	rec.Reasoning = stringField(obj, "reasoning", placeholderReasoning)
	return rec
}

func normalizeAudit(raw json.RawMessage) entity.Audit {
	incomplete := entity.Audit{
		OverallScore: 0,
		Headline:     incompleteHeadline,
		SummaryNotes: []string{incompleteNote},
	}
	if raw == nil {
		return incomplete
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return incomplete
	}

	notes := stringSliceField(obj, "summary_notes")
	if len(notes) == 0 {
		notes = []string{incompleteNote}
	}
	return entity.Audit{
		OverallScore: scoreField(obj, "overall_score"),
		Headline:     stringField(obj, "headline", unknownHeadline),
		SummaryNotes: notes,
	}
}

func stringField(obj map[string]json.RawMessage, key, fallback string) string {
	raw, ok := obj[key]
	if !ok {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fallback
	}
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func stringSliceField(obj map[string]json.RawMessage, key string) []string {
	out := []string{}
	raw, ok := obj[key]
	if !ok {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// scoreField reads an integer score, accepting the float-shaped numbers
// generative backends tend to emit, and clamps it to [0, 100].
func scoreField(obj map[string]json.RawMessage, key string) int {
	raw, ok := obj[key]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	score := int(f)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
