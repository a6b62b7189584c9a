package chatbot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"single vocab term", "do you have a laptop under 100k", []string{"laptop"}},
		{"plural form", "show me some earbuds", []string{"earbuds"}},
		{"multi-word model", "price of iphone 14", []string{"iphone 14"}},
		{"boundary keeps fan out of fantastic", "fantastic deals today", []string{}},
		{"nothing matches", "hello", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractKeywords(tc.text)
			require.NotNil(t, got)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestExtractKeywordsFreePhrase(t *testing.T) {
	// A product name outside the vocabulary is still captured after a search
	// verb, stopping at the price clause.
	got := ExtractKeywords("find me an anker soundcore under 10k")
	require.Equal(t, []string{"anker soundcore"}, got)

	// The free phrase is dropped when it duplicates a vocabulary hit.
	got = ExtractKeywords("i need a dyson hair dryer")
	require.Equal(t, []string{"dryer"}, got)

	// Too-short captures are noise, not product names.
	got = ExtractKeywords("show me it")
	require.Empty(t, got)
}

func TestInferCategory(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"cheap laptop for students", "Electronics"},
		{"latest smartphone", "Gadgets"},
		{"usb charger", "Accessories"},
		{"tell me a joke", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, InferCategory(tc.text), tc.text)
	}
}

func TestInferCategoryFirstMatchWins(t *testing.T) {
	// Mixed-category messages resolve to the first category in enumeration
	// order; categories are never combined.
	require.Equal(t, "Electronics", InferCategory("laptop and headphones"))
	require.Equal(t, "Gadgets", InferCategory("phone with a charger"))
}
