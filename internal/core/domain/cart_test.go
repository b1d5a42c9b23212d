package domain_test

import (
	"testing"

	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertMoney compares amounts by value, ignoring the decimal exponent.
func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, money(want).Equal(got), "expected %s, actual %s", want, got)
}

var (
	ibuprofen = domain.Product{
		ID: "1", Name: "Ibuprofen 200mg", Price: money("12.99"),
		Category: "Pain Relief", InStock: true,
	}
	vitaminD = domain.Product{
		ID: "2", Name: "Vitamin D3 1000 IU", Price: money("18.50"),
		Category: "Vitamins", InStock: true,
	}
	metformin = domain.Product{
		ID: "7", Name: "Metformin 500mg", Price: money("15.50"),
		Category: "Prescription", Prescription: true,
	}
)

func TestReduceCart(t *testing.T) {
	t.Run("AddSameProductIncrements", func(t *testing.T) {
		var s domain.CartState
		for range 5 {
			s = domain.ReduceCart(s, domain.AddCartItem{Product: ibuprofen})
		}
		require.Len(t, s.Lines, 1)
		assert.Equal(t, "1", s.Lines[0].ID)
		assert.Equal(t, 5, s.Lines[0].Quantity)
	})

	t.Run("AddKeepsInsertionOrder", func(t *testing.T) {
		var s domain.CartState
		s = domain.ReduceCart(s, domain.AddCartItem{Product: vitaminD})
		s = domain.ReduceCart(s, domain.AddCartItem{Product: ibuprofen})
		s = domain.ReduceCart(s, domain.AddCartItem{Product: vitaminD})
		require.Len(t, s.Lines, 2)
		assert.Equal(t, "2", s.Lines[0].ID)
		assert.Equal(t, 2, s.Lines[0].Quantity)
		assert.Equal(t, "1", s.Lines[1].ID)
	})

	t.Run("AddUnavailableIsAccepted", func(t *testing.T) {
		s := domain.ReduceCart(
			domain.CartState{}, domain.AddCartItem{Product: metformin},
		)
		require.Len(t, s.Lines, 1)
	})

	t.Run("UpdateQuantityIsVerbatim", func(t *testing.T) {
		s := domain.ReduceCart(
			domain.CartState{}, domain.AddCartItem{Product: ibuprofen},
		)

		s = domain.ReduceCart(s, domain.UpdateCartQuantity{ID: "1", Quantity: 7})
		assert.Equal(t, 7, s.Lines[0].Quantity)

		s = domain.ReduceCart(s, domain.UpdateCartQuantity{ID: "1", Quantity: -2})
		require.Len(t, s.Lines, 1)
		assert.Equal(t, -2, s.Lines[0].Quantity)
	})

	t.Run("UpdateUnknownIsNoop", func(t *testing.T) {
		s := domain.ReduceCart(
			domain.CartState{}, domain.AddCartItem{Product: ibuprofen},
		)
		next := domain.ReduceCart(s, domain.UpdateCartQuantity{ID: "9", Quantity: 3})
		assert.Equal(t, s, next)
	})

	t.Run("RemoveAndClear", func(t *testing.T) {
		var s domain.CartState
		s = domain.ReduceCart(s, domain.AddCartItem{Product: ibuprofen})
		s = domain.ReduceCart(s, domain.AddCartItem{Product: vitaminD})

		s = domain.ReduceCart(s, domain.RemoveCartItem{ID: "9"})
		assert.Len(t, s.Lines, 2)

		s = domain.ReduceCart(s, domain.RemoveCartItem{ID: "1"})
		require.Len(t, s.Lines, 1)
		assert.Equal(t, "2", s.Lines[0].ID)

		s = domain.ReduceCart(s, domain.ClearCart{})
		assert.True(t, s.Empty())
	})

	t.Run("PreviousSnapshotUntouched", func(t *testing.T) {
		before := domain.ReduceCart(
			domain.CartState{}, domain.AddCartItem{Product: ibuprofen},
		)
		_ = domain.ReduceCart(before, domain.AddCartItem{Product: ibuprofen})
		_ = domain.ReduceCart(before, domain.UpdateCartQuantity{ID: "1", Quantity: 9})
		_ = domain.ReduceCart(before, domain.RemoveCartItem{ID: "1"})

		require.Len(t, before.Lines, 1)
		assert.Equal(t, 1, before.Lines[0].Quantity)
	})
}

func TestCartStateTotal(t *testing.T) {
	var s domain.CartState
	s = domain.ReduceCart(s, domain.AddCartItem{Product: ibuprofen})
	s = domain.ReduceCart(s, domain.AddCartItem{Product: ibuprofen})
	s = domain.ReduceCart(s, domain.AddCartItem{Product: vitaminD})

	assertMoney(t, "44.48", s.Total())
	assert.Equal(t, 3, s.ItemCount())

	t.Run("AddRemoveRoundTrip", func(t *testing.T) {
		prior := s.Total()
		next := domain.ReduceCart(s, domain.AddCartItem{Product: metformin})
		next = domain.ReduceCart(next, domain.RemoveCartItem{ID: metformin.ID})
		assertMoney(t, prior.String(), next.Total())
	})

	t.Run("NoFloatDrift", func(t *testing.T) {
		var c domain.CartState
		c = domain.ReduceCart(c, domain.AddCartItem{Product: ibuprofen})
		c = domain.ReduceCart(c, domain.AddCartItem{Product: vitaminD})
		assert.Equal(t, "31.49", c.Total().String())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.True(t, domain.CartState{}.Total().IsZero())
		assert.Zero(t, domain.CartState{}.ItemCount())
	})
}
