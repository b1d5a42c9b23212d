package service

import (
	"sync"

	"github.com/niksmo/pharmacy/internal/core/domain"
)

type Wishlist struct {
	mu    sync.RWMutex
	state domain.WishlistState
}

func NewWishlist() *Wishlist {
	return &Wishlist{}
}

func (w *Wishlist) Dispatch(cmd domain.WishlistCommand) domain.WishlistState {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = domain.ReduceWishlist(w.state, cmd)
	return w.state
}

func (w *Wishlist) State() domain.WishlistState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *Wishlist) AddItem(p domain.Product) domain.WishlistState {
	return w.Dispatch(domain.AddWishlistItem{Product: p})
}

func (w *Wishlist) RemoveItem(id string) domain.WishlistState {
	return w.Dispatch(domain.RemoveWishlistItem{ID: id})
}

func (w *Wishlist) Clear() domain.WishlistState {
	return w.Dispatch(domain.ClearWishlist{})
}

func (w *Wishlist) IsInWishlist(id string) bool {
	return w.State().Contains(id)
}

// Toggle removes a saved product or saves an unsaved one.
func (w *Wishlist) Toggle(p domain.Product) domain.WishlistState {
	w.mu.Lock()
	defer w.mu.Unlock()
	var cmd domain.WishlistCommand = domain.AddWishlistItem{Product: p}
	if w.state.Contains(p.ID) {
		cmd = domain.RemoveWishlistItem{ID: p.ID}
	}
	w.state = domain.ReduceWishlist(w.state, cmd)
	return w.state
}
