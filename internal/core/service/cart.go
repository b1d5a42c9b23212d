package service

import (
	"sync"

	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// A Cart holds the shopper's cart snapshot.
//
// Every mutator runs one [domain.CartCommand] through [domain.ReduceCart]
// and returns the resulting snapshot. The cart itself performs no validation.
type Cart struct {
	mu    sync.RWMutex
	state domain.CartState
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) Dispatch(cmd domain.CartCommand) domain.CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = domain.ReduceCart(c.state, cmd)
	return c.state
}

func (c *Cart) State() domain.CartState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Cart) Total() decimal.Decimal {
	return c.State().Total()
}

func (c *Cart) AddItem(p domain.Product) domain.CartState {
	return c.Dispatch(domain.AddCartItem{Product: p})
}

// UpdateQuantity stores quantity as is, even when it is not positive.
func (c *Cart) UpdateQuantity(id string, quantity int) domain.CartState {
	return c.Dispatch(domain.UpdateCartQuantity{ID: id, Quantity: quantity})
}

// SetQuantity removes the line when quantity drops to zero or below,
// otherwise it updates the quantity.
func (c *Cart) SetQuantity(id string, quantity int) domain.CartState {
	if quantity <= 0 {
		return c.RemoveItem(id)
	}
	return c.UpdateQuantity(id, quantity)
}

func (c *Cart) RemoveItem(id string) domain.CartState {
	return c.Dispatch(domain.RemoveCartItem{ID: id})
}

func (c *Cart) Clear() domain.CartState {
	return c.Dispatch(domain.ClearCart{})
}

// Take empties the cart and returns the lines it held, under one lock, so
// an item added concurrently lands either in the result or in the cart.
func (c *Cart) Take() domain.CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	taken := c.state
	c.state = domain.ReduceCart(c.state, domain.ClearCart{})
	return taken
}
