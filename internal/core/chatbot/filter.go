package chatbot

import (
	"github.com/electronix/assistant/internal/models"
)

// DefaultCategories is the filter applied when no slot could be extracted from
// a product query: the assistant still recommends from the known catalog
// rather than dumping it unconstrained or returning nothing.
var DefaultCategories = []string{"Electronics", "Gadgets", "Accessories"}

const (
	// resultPageSize keeps chat replies readable.
	resultPageSize  = 5
	suggestionLimit = 3
)

// BuildFilter turns extracted slots into a catalog filter. AvailableOnly is
// always set: the assistant never recommends out-of-stock items.
func BuildFilter(keywords []string, category string, price *models.PriceRange) models.ProductFilter {
	f := models.ProductFilter{AvailableOnly: true, Price: price}
	if len(keywords) > 0 {
		f.Terms = append(f.Terms, keywords...)
	}
	if category != "" {
		f.Categories = []string{category}
	}
	if len(f.Terms) == 0 && category == "" && price == nil {
		f.Categories = append([]string{}, DefaultCategories...)
	}
	return f
}
