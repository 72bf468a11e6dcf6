package client

import (
	"google.golang.org/genai"

	"safeplate/internal/domain/entity"
)

// Response schemas are advisory: the backend is instructed to conform but
// validation and repair stay in the normalizer.

func schemaFor(kind entity.SchemaKind) *genai.Schema {
	switch kind {
	case entity.SchemaResult:
		return resultSchema()
	case entity.SchemaRecommendations:
		return recommendationReportSchema()
	case entity.SchemaAudit:
		return auditSchema()
	default:
		return nil
	}
}

func recommendationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":        {Type: genai.TypeString},
			"address":     {Type: genai.TypeString},
			"website_url": {Type: genai.TypeString},
			"safe_items": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"safety_score": {Type: genai.TypeInteger},
			"reasoning": {
				Type:        genai.TypeString,
				Description: "Must include a verbatim quoted phrase from the source evidence.",
			},
		},
		Required: []string{"name", "safe_items", "reasoning"},
	}
}

func recommendationReportSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendations": {
				Type:  genai.TypeArray,
				Items: recommendationSchema(),
			},
		},
		Required: []string{"recommendations"},
	}
}

func auditSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overall_score": {Type: genai.TypeInteger},
			"headline":      {Type: genai.TypeString},
			"summary_notes": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"overall_score", "headline", "summary_notes"},
	}
}

func resultSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"intent": {
				Type: genai.TypeString,
				Enum: []string{string(entity.IntentRestaurant), string(entity.IntentGrocery)},
			},
			"recommendations": {
				Type:  genai.TypeArray,
				Items: recommendationSchema(),
			},
			"audit": auditSchema(),
		},
		Required: []string{"intent", "recommendations", "audit"},
	}
}
