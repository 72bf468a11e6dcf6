package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintNormalization(t *testing.T) {
	a := Request{Query: "Pizza", DietaryProfile: "celiac", Location: "Boston"}
	b := Request{Query: "  pizza ", DietaryProfile: "CELIAC", Location: "boston"}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint(),
		"case and surrounding whitespace must not change the fingerprint")
	assert.Len(t, a.Fingerprint(), 64)
}

func TestFingerprintDistinguishesFields(t *testing.T) {
	base := Request{Query: "pizza", DietaryProfile: "celiac", Location: "boston"}

	tests := []struct {
		name  string
		other Request
	}{
		{"different query", Request{Query: "pasta", DietaryProfile: "celiac", Location: "boston"}},
		{"different profile", Request{Query: "pizza", DietaryProfile: "nut allergy", Location: "boston"}},
		{"different location", Request{Query: "pizza", DietaryProfile: "celiac", Location: "denver"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base.Fingerprint(), tt.other.Fingerprint())
		})
	}
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in   string
		want Intent
	}{
		{"RESTAURANT", IntentRestaurant},
		{"restaurant", IntentRestaurant},
		{"It looks like a RESTAURANT query.", IntentRestaurant},
		{"GROCERY", IntentGrocery},
		{"grocery\n", IntentGrocery},
		{"BANANA", IntentUnknown},
		{"", IntentUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseIntent(tt.in), "input %q", tt.in)
	}
}
