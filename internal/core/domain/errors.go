package domain

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrOutOfStock          = errors.New("product is out of stock")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidCheckoutForm = errors.New("invalid checkout form")
)
