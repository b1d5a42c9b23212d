package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const CategoryAll = "All"

// A Product is a catalog entry. Products are never created or changed at runtime.
type Product struct {
	ID           string
	Name         string
	Price        decimal.Decimal
	Image        string
	Description  string
	Category     string
	InStock      bool
	Prescription bool
}

// FilterProducts returns the products matching the search state and category.
//
// While searching, the query is matched case-insensitively against name,
// description and category. An empty category or [CategoryAll] keeps every category.
func FilterProducts(
	products []Product, search SearchState, category string,
) []Product {
	query := strings.ToLower(search.Query)
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchCategory(p, category) {
			continue
		}
		if search.Searching && !matchQuery(p, query) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchCategory(p Product, category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return p.Category == category
}

func matchQuery(p Product, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Category), lowerQuery)
}
