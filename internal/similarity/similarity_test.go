package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical", a: "krem", b: "krem", want: 0},
		{name: "empty vs word", a: "", b: "abc", want: 3},
		{name: "word vs empty", a: "abc", b: "", want: 3},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "single substitution", a: "serum", b: "sirum", want: 1},
		{name: "kitten sitting", a: "kitten", b: "sitting", want: 3},
		{name: "insertion", a: "spf50", b: "spf500", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EditDistance(tt.a, tt.b))
		})
	}
}

func TestEditDistanceSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"comfortzone", "comfortzonesun"},
		{"", "bebe"},
		{"shampo", "shampoo"},
		{"xyzzy", "paracetamol"},
	}
	for _, p := range pairs {
		assert.Equal(t, EditDistance(p[0], p[1]), EditDistance(p[1], p[0]),
			"distance must be symmetric for %q and %q", p[0], p[1])
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "tranquillity", b: "tranquillity", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "disjoint", a: "abc", b: "xyz", want: 0.0},
		{name: "half overlap", a: "ab", b: "ax", want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRatioBounds(t *testing.T) {
	pairs := [][2]string{
		{"comfortzonetranquillitycream", "comfortzonesunsoulmilk"},
		{"a", "completelydifferentstring"},
		{"", "x"},
		{"same", "same"},
	}
	for _, p := range pairs {
		r := Ratio(p[0], p[1])
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}

func TestTokenScore(t *testing.T) {
	tests := []struct {
		name   string
		brand  string
		image  string
		tokens []string
		want   int
	}{
		{
			name:   "all tokens contained",
			tokens: []string{"comfort", "zone", "cream"},
			brand:  "",
			image:  "comfortzonetranquillitycream",
			want:   3 * TokenWeight,
		},
		{
			name:   "brand bonus on top of tokens",
			tokens: []string{"tranquillity", "cream"},
			brand:  "comfortzone",
			image:  "comfortzonetranquillitycream",
			want:   2*TokenWeight + BrandBonus,
		},
		{
			name:   "no tokens match means zero even with brand",
			tokens: []string{"lotion", "body"},
			brand:  "comfortzone",
			image:  "comfortzonetranquillitycream",
			want:   0,
		},
		{
			name:   "empty brand gets no bonus",
			tokens: []string{"cream"},
			brand:  "",
			image:  "somecream",
			want:   TokenWeight,
		},
		{
			name:   "no tokens at all",
			tokens: nil,
			brand:  "comfortzone",
			image:  "comfortzonetranquillitycream",
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenScore(tt.tokens, tt.brand, tt.image))
		})
	}
}
