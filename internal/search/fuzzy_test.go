package search

import (
	"testing"

	"hospguardian/internal/models"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target string
		want   bool
	}{
		{"empty query matches everything", "", "Monitor Multiparam", true},
		{"direct substring", "monitor", "Monitor Multiparam", true},
		{"case insensitive", "VENTILATOR", "ventilator pulmonar", true},
		{"substring ignores query spaces", "mon itor", "Monitor Multiparam", true},
		{"subsequence typeahead", "mnt", "Monitor", true},
		{"subsequence across words", "mlp", "Monitor - Leito Pediatrico", true},
		{"multi-word any order", "UTI monitor", "Monitor - UTI Adulto", true},
		{"multi-word missing one word", "UTI bomba", "Monitor - UTI Adulto", false},
		{"no match", "xyz", "Monitor", false},
		{"accent sensitive", "pressao", "Pressão Arterial", false},
		{"id fragment", "ast-0", "AST-0A1B2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.query, tt.target); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.query, tt.target, got, tt.want)
			}
		})
	}
}

func TestMatchAssetSearchesAllFields(t *testing.T) {
	asset := models.Asset{
		ID:           "AST-9X8Y7",
		Name:         "Infusion Pump",
		Location:     "ICU - Bed 12",
		Manufacturer: "Baxter",
	}

	for _, query := range []string{"pump", "9x8", "bed 12", "baxter"} {
		if !MatchAsset(query, asset) {
			t.Errorf("MatchAsset(%q) should match", query)
		}
	}
	if MatchAsset("autoclave", asset) {
		t.Error("MatchAsset should not match an unrelated query")
	}
}
