package port

import (
	"context"

	"github.com/niksmo/pharmacy/internal/core/domain"
)

// Outbound ports.

type Catalog interface {
	Products() []domain.Product
	Product(id string) (domain.Product, bool)
	Categories() []string
}

// An AccountDirectory verifies credentials and opens accounts.
type AccountDirectory interface {
	// Authenticate reports false when the credentials do not match.
	Authenticate(
		ctx context.Context, email, password string,
	) (domain.Account, bool, error)
	Register(ctx context.Context, r domain.Registration) (domain.Account, error)
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, sessionID string, o domain.Order) error
}

type SearchQueryEmitter interface {
	EmitQuery(sessionID string, s domain.SearchState)
}

// Inbound ports.

type SessionKeeper interface {
	StartSession(context.Context) (sessionID string, err error)
	EndSession(ctx context.Context, sessionID string) error
	Touch(ctx context.Context, sessionID string) error
}

type CatalogReader interface {
	Categories() []string
	Product(ctx context.Context, id string) (domain.Product, error)
	Products(
		ctx context.Context, sessionID, category string,
	) ([]domain.Product, error)
}

type CartManager interface {
	Cart(ctx context.Context, sessionID string) (domain.CartState, error)
	AddToCart(
		ctx context.Context, sessionID, productID string,
	) (domain.CartState, error)
	SetCartQuantity(
		ctx context.Context, sessionID, productID string, quantity int,
	) (domain.CartState, error)
	RemoveFromCart(
		ctx context.Context, sessionID, productID string,
	) (domain.CartState, error)
	ClearCart(ctx context.Context, sessionID string) (domain.CartState, error)
}

type WishlistManager interface {
	Wishlist(ctx context.Context, sessionID string) (domain.WishlistState, error)
	InWishlist(ctx context.Context, sessionID, productID string) (bool, error)
	AddToWishlist(
		ctx context.Context, sessionID, productID string,
	) (domain.WishlistState, error)
	RemoveFromWishlist(
		ctx context.Context, sessionID, productID string,
	) (domain.WishlistState, error)
	ToggleWishlist(
		ctx context.Context, sessionID, productID string,
	) (domain.WishlistState, error)
	ClearWishlist(
		ctx context.Context, sessionID string,
	) (domain.WishlistState, error)
	MoveToCart(
		ctx context.Context, sessionID, productID string,
	) (domain.CartState, error)
}

type AccountManager interface {
	Login(
		ctx context.Context, sessionID, email, password string,
	) (domain.AuthState, error)
	Register(
		ctx context.Context, sessionID string, r domain.Registration,
	) (domain.AuthState, error)
	Logout(ctx context.Context, sessionID string) error
	Account(ctx context.Context, sessionID string) (domain.AuthState, error)
	UpdateProfile(
		ctx context.Context, sessionID string, patch domain.UserPatch,
	) (domain.AuthState, error)
	Orders(ctx context.Context, sessionID string) ([]domain.Order, error)
	Prescriptions(
		ctx context.Context, sessionID string,
	) ([]domain.Prescription, error)
}

type SearchManager interface {
	Search(ctx context.Context, sessionID string) (domain.SearchState, error)
	SetSearchQuery(
		ctx context.Context, sessionID, query string,
	) (domain.SearchState, error)
	ClearSearch(ctx context.Context, sessionID string) (domain.SearchState, error)
}

type CheckoutProcessor interface {
	Quote(ctx context.Context, sessionID string) (domain.Quote, error)
	Checkout(
		ctx context.Context, sessionID string, form domain.CheckoutForm,
	) (domain.Order, error)
}
