package httphandler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/niksmo/pharmacy/internal/adapter/catalog"
	"github.com/niksmo/pharmacy/internal/adapter/httphandler"
	"github.com/niksmo/pharmacy/internal/adapter/mockauth"
	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/niksmo/pharmacy/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	directory, err := mockauth.New(
		mockauth.LatencyOpt(0), mockauth.HashCostOpt(bcrypt.MinCost),
	)
	require.NoError(t, err)

	sessions := service.NewSessionManager(service.SessionConfig{
		IdleTimeout: time.Hour,
		Directory:   directory,
	})
	svc := service.New(sessions, catalog.New(), nil, domain.DefaultPricing())

	return httphandler.NewRouter(
		httphandler.NewTokenIssuer("test-secret", time.Hour),
		httphandler.Ports{
			Sessions: svc,
			Catalog:  svc,
			Cart:     svc,
			Wishlist: svc,
			Accounts: svc,
			Search:   svc,
			Checkout: svc,
		},
	)
}

func do(
	t *testing.T, h http.Handler, method, path, token string, body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

var checkoutForm = httphandler.CheckoutForm{
	FirstName: "John",
	LastName:  "Doe",
	Email:     "john.doe@email.com",
	Phone:     "(555) 123-4567",
	Address: httphandler.Address{
		Street: "1 Elm St", City: "Springfield", State: "IL", ZipCode: "62701",
	},
}

func startSession(t *testing.T, h http.Handler) string {
	t.Helper()
	w := do(t, h, http.MethodPost, "/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	s := decode[httphandler.Session](t, w)
	require.NotEmpty(t, s.Token)
	return s.Token
}

func TestSessions(t *testing.T) {
	h := newRouter(t)

	t.Run("MissingToken", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/cart", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("BadToken", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/cart", "nope", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("EndedSession", func(t *testing.T) {
		token := startSession(t, h)

		w := do(t, h, http.MethodDelete, "/v1/sessions", token, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, h, http.MethodGet, "/v1/cart", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCatalogRoutes(t *testing.T) {
	h := newRouter(t)

	w := do(t, h, http.MethodGet, "/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		[]string{"All", "Pain Relief", "Vitamins", "Supplements", "Prescription"},
		decode[[]string](t, w),
	)

	w = do(t, h, http.MethodGet, "/v1/products/3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[httphandler.Product](t, w).Prescription)

	w = do(t, h, http.MethodGet, "/v1/products/42", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	token := startSession(t, h)

	w = do(t, h, http.MethodGet, "/v1/products?category=Vitamins", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]httphandler.Product](t, w), 2)

	w = do(t, h, http.MethodPut, "/v1/search", token,
		httphandler.SearchQuery{Query: "OMEGA"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		httphandler.Search{Query: "OMEGA", Searching: true},
		decode[httphandler.Search](t, w),
	)

	w = do(t, h, http.MethodGet, "/v1/products", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	ps := decode[[]httphandler.Product](t, w)
	require.Len(t, ps, 1)
	assert.Equal(t, "4", ps[0].ID)

	w = do(t, h, http.MethodDelete, "/v1/search", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, httphandler.Search{}, decode[httphandler.Search](t, w))
}

func TestCartRoutes(t *testing.T) {
	h := newRouter(t)
	token := startSession(t, h)

	t.Run("UnsupportedMediaType", func(t *testing.T) {
		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart/items", strings.NewReader(`{"product_id":"1"}`),
		)
		r.Header.Set("Content-Type", "text/plain")
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart/items", strings.NewReader(`{`),
		)
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("OutOfStock", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/v1/cart/items", token,
			httphandler.ProductRef{ProductID: "7"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/v1/cart/items", token,
			httphandler.ProductRef{ProductID: "42"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("TotalInCents", func(t *testing.T) {
		for _, id := range []string{"1", "2"} {
			w := do(t, h, http.MethodPost, "/v1/cart/items", token,
				httphandler.ProductRef{ProductID: id})
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := do(t, h, http.MethodGet, "/v1/cart", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Total json.RawMessage `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "31.49", string(body.Total))

		w = do(t, h, http.MethodGet, "/v1/checkout/quote", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "31.49", decode[httphandler.Quote](t, w).Subtotal.String())

		w = do(t, h, http.MethodDelete, "/v1/cart", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("AddUpdateRemove", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/v1/cart/items", token,
			httphandler.ProductRef{ProductID: "2"})
		require.Equal(t, http.StatusOK, w.Code)

		w = do(t, h, http.MethodPatch, "/v1/cart/items/2", token,
			httphandler.QuantityUpdate{Quantity: 3})
		require.Equal(t, http.StatusOK, w.Code)
		cart := decode[httphandler.Cart](t, w)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.ItemCount)
		assert.Equal(t, "55.50", cart.Total.String())

		w = do(t, h, http.MethodPatch, "/v1/cart/items/2", token,
			httphandler.QuantityUpdate{Quantity: 0})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[httphandler.Cart](t, w).Items)
	})

	t.Run("ClearEmpty", func(t *testing.T) {
		w := do(t, h, http.MethodDelete, "/v1/cart", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, decode[httphandler.Cart](t, w).ItemCount)
	})
}

func TestWishlistRoutes(t *testing.T) {
	h := newRouter(t)
	token := startSession(t, h)

	w := do(t, h, http.MethodPost, "/v1/wishlist/items", token,
		httphandler.ProductRef{ProductID: "5"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/v1/wishlist/items/5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"in_wishlist":true}`, w.Body.String())

	w = do(t, h, http.MethodPost, "/v1/wishlist/items/5/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[httphandler.Cart](t, w).ItemCount)

	w = do(t, h, http.MethodPost, "/v1/wishlist/items/7/toggle", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[httphandler.Wishlist](t, w).Items, 2)

	w = do(t, h, http.MethodPost, "/v1/wishlist/items/7/cart", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodDelete, "/v1/wishlist/items/5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[httphandler.Wishlist](t, w).Items, 1)

	w = do(t, h, http.MethodDelete, "/v1/wishlist", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[httphandler.Wishlist](t, w).Items)
}

func TestAccountAndCheckoutRoutes(t *testing.T) {
	h := newRouter(t)
	token := startSession(t, h)

	t.Run("AnonymousAccount", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/account", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/v1/auth/login", token,
			httphandler.Credentials{Email: mockauth.DemoEmail, Password: "x"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid email or password"}`, w.Body.String())
	})

	t.Run("EmptyCartCheckout", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/v1/checkout", token, checkoutForm)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("IncompleteCheckoutForm", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/v1/cart/items", token,
			httphandler.ProductRef{ProductID: "5"})
		require.Equal(t, http.StatusOK, w.Code)

		w = do(t, h, http.MethodPost, "/v1/checkout", token,
			httphandler.CheckoutForm{Address: checkoutForm.Address})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid checkout form"}`, w.Body.String())

		w = do(t, h, http.MethodDelete, "/v1/cart", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("LoginAndCheckout", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/v1/auth/login", token,
			httphandler.Credentials{
				Email: mockauth.DemoEmail, Password: mockauth.DemoPassword,
			})
		require.Equal(t, http.StatusOK, w.Code)
		acc := decode[httphandler.Account](t, w)
		assert.Equal(t, "John", acc.User.FirstName)
		assert.Len(t, acc.Orders, 2)

		for range 2 {
			w = do(t, h, http.MethodPost, "/v1/cart/items", token,
				httphandler.ProductRef{ProductID: "1"})
			require.Equal(t, http.StatusOK, w.Code)
		}

		w = do(t, h, http.MethodGet, "/v1/checkout/quote", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"subtotal":25.98,"shipping":5.99,"tax":2.56,"total":34.53}`,
			w.Body.String())
		quote := decode[httphandler.Quote](t, w)

		w = do(t, h, http.MethodPost, "/v1/checkout", token, checkoutForm)
		require.Equal(t, http.StatusCreated, w.Code)
		order := decode[httphandler.Order](t, w)
		assert.Equal(t, "pending", order.Status)
		assert.Equal(t, quote.Total.String(), order.Total.String())
		assert.Equal(t, "1 Elm St, Springfield, IL 62701", order.ShippingAddress)
		assert.Regexp(t, `^ORD[0-9A-Z]{9}$`, order.ID)

		w = do(t, h, http.MethodGet, "/v1/account/orders", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		orders := decode[[]httphandler.Order](t, w)
		require.Len(t, orders, 3)
		assert.Equal(t, order.ID, orders[0].ID)

		w = do(t, h, http.MethodGet, "/v1/cart", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[httphandler.Cart](t, w).Items)
	})

	t.Run("PatchProfile", func(t *testing.T) {
		phone := "(555) 000-1111"
		w := do(t, h, http.MethodPatch, "/v1/account", token,
			httphandler.ProfilePatch{Phone: &phone})
		require.Equal(t, http.StatusOK, w.Code)
		acc := decode[httphandler.Account](t, w)
		assert.Equal(t, phone, acc.User.Phone)
		assert.Equal(t, "Doe", acc.User.LastName)
	})

	t.Run("Prescriptions", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/account/prescriptions", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		ps := decode[[]httphandler.Prescription](t, w)
		require.Len(t, ps, 2)
		assert.True(t, ps[0].Refillable)
	})

	t.Run("Logout", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/v1/auth/logout", token, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, h, http.MethodGet, "/v1/account/orders", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("RegisterMismatch", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/v1/auth/register", token,
			httphandler.Registration{
				Email: "ann@email.com", Password: "a", ConfirmPassword: "b",
			})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Register", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/v1/auth/register", token,
			httphandler.Registration{
				FirstName: "Ann", Email: "ann@email.com",
				Password: "pw", ConfirmPassword: "pw",
			})
		require.Equal(t, http.StatusCreated, w.Code)
		acc := decode[httphandler.Account](t, w)
		assert.Equal(t, "Ann", acc.User.FirstName)
		assert.True(t, acc.User.Preferences.EmailNotifications)
		assert.Empty(t, acc.Orders)
	})
}
