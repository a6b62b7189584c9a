package chatbot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/electronix/assistant/internal/models"
)

func TestBuildFilter(t *testing.T) {
	price := &models.PriceRange{Max: intPtr(50000)}

	f := BuildFilter([]string{"laptop"}, "Electronics", price)
	require.True(t, f.AvailableOnly)
	require.Equal(t, []string{"laptop"}, f.Terms)
	require.Equal(t, []string{"Electronics"}, f.Categories)
	require.Equal(t, price, f.Price)
}

func TestBuildFilterNoSlotsDefaultsToAllCategories(t *testing.T) {
	f := BuildFilter(nil, "", nil)
	require.True(t, f.AvailableOnly)
	require.Empty(t, f.Terms)
	require.Nil(t, f.Price)
	require.Equal(t, DefaultCategories, f.Categories)
}

func TestBuildFilterPriceOnly(t *testing.T) {
	// A price slot alone is a real constraint; the default category spread
	// must not kick in.
	f := BuildFilter(nil, "", &models.PriceRange{Min: intPtr(20000)})
	require.True(t, f.AvailableOnly)
	require.Empty(t, f.Categories)
	require.NotNil(t, f.Price)
}
