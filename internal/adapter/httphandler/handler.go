package httphandler

import (
	"net/http"

	"github.com/niksmo/pharmacy/internal/core/port"
)

// Ports are the inbound operations the REST API exposes.
type Ports struct {
	Sessions port.SessionKeeper
	Catalog  port.CatalogReader
	Cart     port.CartManager
	Wishlist port.WishlistManager
	Accounts port.AccountManager
	Search   port.SearchManager
	Checkout port.CheckoutProcessor
}

type middleware = func(http.Handler) http.Handler

// NewRouter registers every route on a new mux and returns it wrapped in
// AllowJSON.
func NewRouter(tokens TokenIssuer, p Ports) http.Handler {
	mux := http.NewServeMux()
	requireSession := RequireSession(tokens, p.Sessions)

	RegisterSessions(mux, requireSession, tokens, p.Sessions)
	RegisterCatalog(mux, requireSession, p.Catalog)
	RegisterSearch(mux, requireSession, p.Search)
	RegisterCart(mux, requireSession, p.Cart)
	RegisterWishlist(mux, requireSession, p.Wishlist)
	RegisterAccounts(mux, requireSession, p.Accounts)
	RegisterCheckout(mux, requireSession, p.Checkout)

	return AllowJSON(mux)
}

func handle(
	mux *http.ServeMux, pattern string, mw middleware, hf http.HandlerFunc,
) {
	mux.Handle(pattern, mw(hf))
}
