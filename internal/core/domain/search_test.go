package domain_test

import (
	"testing"

	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestReduceSearch(t *testing.T) {
	s := domain.ReduceSearch(domain.SearchState{}, domain.SetSearchQuery{Query: "Vit"})
	assert.Equal(t, domain.SearchState{Query: "Vit", Searching: true}, s)

	s = domain.ReduceSearch(s, domain.SetSearchQuery{Query: ""})
	assert.Equal(t, domain.SearchState{}, s)

	s = domain.ReduceSearch(s, domain.SetSearchQuery{Query: " "})
	assert.True(t, s.Searching)

	s = domain.ReduceSearch(s, domain.ClearSearch{})
	assert.Equal(t, domain.SearchState{}, s)
}

func TestFilterProducts(t *testing.T) {
	multivitamin := domain.Product{
		ID: "6", Name: "Multivitamin Complete",
		Description: "Daily multivitamin with essential nutrients.",
		Category:    "Vitamins",
	}
	omega := domain.Product{
		ID: "4", Name: "Omega-3 Fish Oil",
		Description: "Heart and brain health supplement.",
		Category:    "Supplements",
	}
	catalog := []domain.Product{ibuprofen, vitaminD, omega, multivitamin, metformin}

	t.Run("NotSearching", func(t *testing.T) {
		got := domain.FilterProducts(catalog, domain.SearchState{}, "")
		assert.Equal(t, catalog, got)
	})

	t.Run("QueryIsCaseInsensitive", func(t *testing.T) {
		search := domain.ReduceSearch(
			domain.SearchState{}, domain.SetSearchQuery{Query: "VITAMIN"},
		)
		got := domain.FilterProducts(catalog, search, domain.CategoryAll)
		assert.Equal(t, []domain.Product{vitaminD, multivitamin}, got)
	})

	t.Run("MatchesDescription", func(t *testing.T) {
		search := domain.SearchState{Query: "brain", Searching: true}
		got := domain.FilterProducts(catalog, search, "")
		assert.Equal(t, []domain.Product{omega}, got)
	})

	t.Run("MatchesCategory", func(t *testing.T) {
		search := domain.SearchState{Query: "prescrip", Searching: true}
		got := domain.FilterProducts(catalog, search, "")
		assert.Equal(t, []domain.Product{metformin}, got)
	})

	t.Run("Category", func(t *testing.T) {
		got := domain.FilterProducts(catalog, domain.SearchState{}, "Pain Relief")
		assert.Equal(t, []domain.Product{ibuprofen}, got)
	})

	t.Run("NoMatch", func(t *testing.T) {
		search := domain.SearchState{Query: "zzz", Searching: true}
		got := domain.FilterProducts(catalog, search, "")
		assert.Empty(t, got)
	})
}
