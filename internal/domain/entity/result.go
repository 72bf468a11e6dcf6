package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Intent classifies a dietary query as concerning restaurants or grocery
// products. Unknown is used whenever classification failed or the backend
// returned something unrecognizable, instead of guessing.
type Intent string

const (
	IntentRestaurant Intent = "RESTAURANT"
	IntentGrocery    Intent = "GROCERY"
	IntentUnknown    Intent = "UNKNOWN"
)

// ParseIntent coerces a free-text classifier answer into an Intent by
// substring match, so "It's a RESTAURANT query." still routes correctly.
func ParseIntent(s string) Intent {
	u := strings.ToUpper(s)
	switch {
	case strings.Contains(u, string(IntentRestaurant)):
		return IntentRestaurant
	case strings.Contains(u, string(IntentGrocery)):
		return IntentGrocery
	default:
		return IntentUnknown
	}
}

// Request is a single dietary-safety query. Immutable once received.
type Request struct {
	Query          string `json:"query"`
	DietaryProfile string `json:"dietary_profile"`
	Location       string `json:"location"`
}

// Fingerprint is the cache identity of the request: sha256 over the
// case-insensitive, whitespace-trimmed concatenation of all three fields.
func (r Request) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(normalizeField(r.Query)))
	h.Write([]byte{'|'})
	h.Write([]byte(normalizeField(r.DietaryProfile)))
	h.Write([]byte{'|'})
	h.Write([]byte(normalizeField(r.Location)))
	return hex.EncodeToString(h.Sum(nil))
}

func normalizeField(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Recommendation is one vetted candidate: a restaurant or a grocery product.
// Name and Reasoning are required; the normalizer fills placeholders rather
// than dropping them silently.
type Recommendation struct {
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	WebsiteURL  string   `json:"website_url,omitempty"`
	SafeItems   []string `json:"safe_items"`
	SafetyScore int      `json:"safety_score"`
	Reasoning   string   `json:"reasoning"`
}

// Audit is the aggregate confidence assessment over a recommendation set.
type Audit struct {
	OverallScore int      `json:"overall_score"`
	Headline     string   `json:"headline"`
	SummaryNotes []string `json:"summary_notes"`
}

// Result is the unit stored in cache and returned to the caller. Constructed
// once per non-cached request, immutable thereafter.
type Result struct {
	Intent          Intent           `json:"intent"`
	Recommendations []Recommendation `json:"recommendations"`
	Audit           Audit            `json:"audit"`
}
