package chatbot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/electronix/assistant/internal/models"
)

func intPtr(n int) *int { return &n }

func TestExtractPriceRange(t *testing.T) {
	cases := []struct {
		name string
		text string
		want *models.PriceRange
	}{
		{"under with k suffix", "show me laptops under 50k", &models.PriceRange{Max: intPtr(50000)}},
		{"under plain", "anything below 80,000?", &models.PriceRange{Max: intPtr(80000)}},
		{"less than", "less than rs 25000", &models.PriceRange{Max: intPtr(25000)}},
		{"over", "phones over rs 20000", &models.PriceRange{Min: intPtr(20000)}},
		{"above k", "tv above 100k", &models.PriceRange{Min: intPtr(100000)}},
		{"between with rs dots", "between rs.1,000 and rs.5,000", &models.PriceRange{Min: intPtr(1000), Max: intPtr(5000)}},
		{"span", "something from 30000 to 60000", &models.PriceRange{Min: intPtr(30000), Max: intPtr(60000)}},
		{"span with k", "20k to 50k", &models.PriceRange{Min: intPtr(20000), Max: intPtr(50000)}},
		{"bare rs amount", "do you have it for rs. 15000", &models.PriceRange{Min: intPtr(15000), Max: intPtr(15000)}},
		{"fractional k", "earbuds under 1.5k", &models.PriceRange{Max: intPtr(1500)}},
		{"no price", "show me some headphones", nil},
		{"number without rs is not exact", "i want the iphone 14", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractPriceRange(tc.text)
			if tc.want == nil {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, tc.want.Min, got.Min)
			require.Equal(t, tc.want.Max, got.Max)
		})
	}
}

func TestExtractPriceRangeInvertedPassesThrough(t *testing.T) {
	// An inverted range is not reordered; the catalog query just matches nothing.
	got := ExtractPriceRange("between 5000 and 1000")
	require.NotNil(t, got)
	require.Equal(t, 5000, *got.Min)
	require.Equal(t, 1000, *got.Max)
}
