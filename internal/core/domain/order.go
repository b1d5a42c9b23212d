package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// cents is the number of fraction digits every amount is rounded to.
const cents = 2

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type (
	Order struct {
		ID              string
		Date            string
		Status          OrderStatus
		Items           []OrderItem
		Total           decimal.Decimal
		ShippingAddress string
		TrackingNumber  string
	}

	OrderItem struct {
		ID           string
		Name         string
		Quantity     int
		Price        decimal.Decimal
		Prescription bool
	}
)

func OrderItemsFromCart(s CartState) []OrderItem {
	items := make([]OrderItem, len(s.Lines))
	for i, l := range s.Lines {
		items[i] = OrderItem{
			ID:           l.ID,
			Name:         l.Name,
			Quantity:     l.Quantity,
			Price:        l.Price,
			Prescription: l.Prescription,
		}
	}
	return items
}

type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(50),
		ShippingFee:           decimal.RequireFromString("5.99"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// QuoteCart prices the cart: shipping is free from the threshold on, and tax
// applies to subtotal plus shipping. Every amount is rounded to cents.
func QuoteCart(s CartState, p Pricing) Quote {
	subtotal := s.Total()
	shipping := p.ShippingFee.Round(cents)
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	taxable := subtotal.Add(shipping)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      taxable.Mul(p.TaxRate).Round(cents),
		Total:    taxable.Mul(decimal.NewFromInt(1).Add(p.TaxRate)).Round(cents),
	}
}

// A CheckoutForm is what the shopper submits. Payment fields are accepted
// and dropped.
type CheckoutForm struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Address      Address
	Instructions string
}

// Validate reports the contact and shipping fields left blank, wrapped in
// [ErrInvalidCheckoutForm]. Instructions are optional.
func (f CheckoutForm) Validate() error {
	fields := []struct{ name, value string }{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"street", f.Address.Street},
		{"city", f.Address.City},
		{"state", f.Address.State},
		{"zip_code", f.Address.ZipCode},
	}
	var missing []string
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) != 0 {
		return fmt.Errorf(
			"%w: missing %s", ErrInvalidCheckoutForm, strings.Join(missing, ", "),
		)
	}
	return nil
}

// ShippingLine formats the address as "street, city, state zip".
func (a Address) ShippingLine() string {
	return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.ZipCode)
}
