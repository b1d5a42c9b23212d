package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/niksmo/pharmacy/internal/core/port"
)

var _ port.SessionKeeper = (*Service)(nil)
var _ port.CatalogReader = (*Service)(nil)
var _ port.CartManager = (*Service)(nil)
var _ port.WishlistManager = (*Service)(nil)
var _ port.AccountManager = (*Service)(nil)
var _ port.SearchManager = (*Service)(nil)
var _ port.CheckoutProcessor = (*Service)(nil)

// A Service resolves the shopper's session and drives its containers.
//
// Effects spanning two containers are made as two sequential calls.
type Service struct {
	sessions  *SessionManager
	catalog   port.Catalog
	publisher port.OrderPublisher
	pricing   domain.Pricing
	now       func() time.Time
	newCode   func(prefix string) string
}

// New returns a Service. publisher may be nil, then no order events are sent.
func New(
	sessions *SessionManager,
	catalog port.Catalog,
	publisher port.OrderPublisher,
	pricing domain.Pricing,
) Service {
	return Service{
		sessions:  sessions,
		catalog:   catalog,
		publisher: publisher,
		pricing:   pricing,
		now:       time.Now,
		newCode:   randomCode,
	}
}

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// randomCode returns prefix followed by 9 random base-36 characters.
func randomCode(prefix string) string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return prefix + string(b)
}

func (s Service) session(
	ctx context.Context, op, sessionID string,
) (*Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

func (s Service) product(op, productID string) (domain.Product, error) {
	p, ok := s.catalog.Product(productID)
	if !ok {
		return domain.Product{}, fmt.Errorf(
			"%s: %w: %q", op, domain.ErrProductNotFound, productID,
		)
	}
	return p, nil
}

func (s Service) StartSession(ctx context.Context) (string, error) {
	const op = "Service.StartSession"

	sess, err := s.sessions.Create(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return sess.ID, nil
}

func (s Service) EndSession(ctx context.Context, sessionID string) error {
	const op = "Service.EndSession"

	if err := s.sessions.End(ctx, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Service) Touch(ctx context.Context, sessionID string) error {
	_, err := s.session(ctx, "Service.Touch", sessionID)
	return err
}

func (s Service) Categories() []string {
	return s.catalog.Categories()
}

func (s Service) Product(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "Service.Product"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return s.product(op, id)
}

// Products lists the catalog narrowed by the session search and category.
func (s Service) Products(
	ctx context.Context, sessionID, category string,
) ([]domain.Product, error) {
	const op = "Service.Products"

	sess, err := s.session(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}
	return domain.FilterProducts(
		s.catalog.Products(), sess.Search.State(), category,
	), nil
}

func (s Service) Cart(
	ctx context.Context, sessionID string,
) (domain.CartState, error) {
	sess, err := s.session(ctx, "Service.Cart", sessionID)
	if err != nil {
		return domain.CartState{}, err
	}
	return sess.Cart.State(), nil
}

// AddToCart adds one unit of an in-stock product.
func (s Service) AddToCart(
	ctx context.Context, sessionID, productID string,
) (domain.CartState, error) {
	const op = "Service.AddToCart"

	sess, err := s.session(ctx, op, sessionID)
	if err != nil {
		return domain.CartState{}, err
	}
	p, err := s.product(op, productID)
	if err != nil {
		return domain.CartState{}, err
	}
	if !p.InStock {
		return domain.CartState{}, fmt.Errorf(
			"%s: %w: %q", op, domain.ErrOutOfStock, productID,
		)
	}
	return sess.Cart.AddItem(p), nil
}

func (s Service) SetCartQuantity(
	ctx context.Context, sessionID, productID string, quantity int,
) (domain.CartState, error) {
	sess, err := s.session(ctx, "Service.SetCartQuantity", sessionID)
	if err != nil {
		return domain.CartState{}, err
	}
	return sess.Cart.SetQuantity(productID, quantity), nil
}

func (s Service) RemoveFromCart(
	ctx context.Context, sessionID, productID string,
) (domain.CartState, error) {
	sess, err := s.session(ctx, "Service.RemoveFromCart", sessionID)
	if err != nil {
		return domain.CartState{}, err
	}
	return sess.Cart.RemoveItem(productID), nil
}

func (s Service) ClearCart(
	ctx context.Context, sessionID string,
) (domain.CartState, error) {
	sess, err := s.session(ctx, "Service.ClearCart", sessionID)
	if err != nil {
		return domain.CartState{}, err
	}
	return sess.Cart.Clear(), nil
}

func (s Service) Wishlist(
	ctx context.Context, sessionID string,
) (domain.WishlistState, error) {
	sess, err := s.session(ctx, "Service.Wishlist", sessionID)
	if err != nil {
		return domain.WishlistState{}, err
	}
	return sess.Wishlist.State(), nil
}

func (s Service) InWishlist(
	ctx context.Context, sessionID, productID string,
) (bool, error) {
	sess, err := s.session(ctx, "Service.InWishlist", sessionID)
	if err != nil {
		return false, err
	}
	return sess.Wishlist.IsInWishlist(productID), nil
}

func (s Service) AddToWishlist(
	ctx context.Context, sessionID, productID string,
) (domain.WishlistState, error) {
	const op = "Service.AddToWishlist"

	sess, err := s.session(ctx, op, sessionID)
	if err != nil {
		return domain.WishlistState{}, err
	}
	p, err := s.product(op, productID)
	if err != nil {
		return domain.WishlistState{}, err
	}
	return sess.Wishlist.AddItem(p), nil
}

func (s Service) RemoveFromWishlist(
	ctx context.Context, sessionID, productID string,
) (domain.WishlistState, error) {
	sess, err := s.session(ctx, "Service.RemoveFromWishlist", sessionID)
	if err != nil {
		return domain.WishlistState{}, err
	}
	return sess.Wishlist.RemoveItem(productID), nil
}

func (s Service) ToggleWishlist(
	ctx context.Context, sessionID, productID string,
) (domain.WishlistState, error) {
	const op = "Service.ToggleWishlist"

	sess, err := s.session(ctx, op, sessionID)
	if err != nil {
		return domain.WishlistState{}, err
	}
	p, err := s.product(op, productID)
	if err != nil {
		return domain.WishlistState{}, err
	}
	return sess.Wishlist.Toggle(p), nil
}

func (s Service) ClearWishlist(
	ctx context.Context, sessionID string,
) (domain.WishlistState, error) {
	sess, err := s.session(ctx, "Service.ClearWishlist", sessionID)
	if err != nil {
		return domain.WishlistState{}, err
	}
	return sess.Wishlist.Clear(), nil
}

// MoveToCart adds a saved product to the cart. The wishlist entry stays.
func (s Service) MoveToCart(
	ctx context.Context, sessionID, productID string,
) (domain.CartState, error) {
	const op = "Service.MoveToCart"

	sess, err := s.session(ctx, op, sessionID)
	if err != nil {
		return domain.CartState{}, err
	}

	var saved *domain.Product
	for _, p := range sess.Wishlist.State().Items {
		if p.ID == productID {
			saved = &p
			break
		}
	}
	if saved == nil {
		return domain.CartState{}, fmt.Errorf(
			"%s: %w: %q", op, domain.ErrProductNotFound, productID,
		)
	}
	if !saved.InStock {
		return domain.CartState{}, fmt.Errorf(
			"%s: %w: %q", op, domain.ErrOutOfStock, productID,
		)
	}
	return sess.Cart.AddItem(*saved), nil
}

func (s Service) Search(
	ctx context.Context, sessionID string,
) (domain.SearchState, error) {
	sess, err := s.session(ctx, "Service.Search", sessionID)
	if err != nil {
		return domain.SearchState{}, err
	}
	return sess.Search.State(), nil
}

func (s Service) SetSearchQuery(
	ctx context.Context, sessionID, query string,
) (domain.SearchState, error) {
	sess, err := s.session(ctx, "Service.SetSearchQuery", sessionID)
	if err != nil {
		return domain.SearchState{}, err
	}
	return sess.Search.SetQuery(query), nil
}

func (s Service) ClearSearch(
	ctx context.Context, sessionID string,
) (domain.SearchState, error) {
	sess, err := s.session(ctx, "Service.ClearSearch", sessionID)
	if err != nil {
		return domain.SearchState{}, err
	}
	return sess.Search.Clear(), nil
}
