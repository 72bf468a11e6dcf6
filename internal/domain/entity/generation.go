package entity

// SchemaKind names the structured-output contract requested from the
// backend. The schema itself is advisory; the adapter translates the kind
// into the provider's schema representation.
type SchemaKind int

const (
	SchemaNone SchemaKind = iota
	SchemaResult
	SchemaRecommendations
	SchemaAudit
)

// GenerationRequest is the declarative configuration for one backend call.
type GenerationRequest struct {
	Model       string
	Prompt      string
	UseSearch   bool
	ForceJSON   bool
	Schema      SchemaKind
	Temperature float32
}
