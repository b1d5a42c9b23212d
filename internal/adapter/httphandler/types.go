package httphandler

import (
	"time"

	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Money is an amount written as a JSON number with two fraction digits.
type Money decimal.Decimal

func (m Money) String() string {
	return decimal.Decimal(m).StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

type (
	Product struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Price        Money  `json:"price"`
		Image        string `json:"image"`
		Description  string `json:"description"`
		Category     string `json:"category"`
		InStock      bool   `json:"in_stock"`
		Prescription bool   `json:"prescription"`
	}

	CartLine struct {
		Product
		Quantity int `json:"quantity"`
	}

	Cart struct {
		Items     []CartLine `json:"items"`
		Total     Money      `json:"total"`
		ItemCount int        `json:"item_count"`
	}

	Wishlist struct {
		Items []Product `json:"items"`
	}

	Search struct {
		Query     string `json:"query"`
		Searching bool   `json:"searching"`
	}

	Session struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
)

type (
	Address struct {
		Street  string `json:"street"`
		City    string `json:"city"`
		State   string `json:"state"`
		ZipCode string `json:"zip_code"`
	}

	Insurance struct {
		Provider    string `json:"provider"`
		MemberID    string `json:"member_id"`
		GroupNumber string `json:"group_number"`
	}

	EmergencyContact struct {
		Name         string `json:"name"`
		Phone        string `json:"phone"`
		Relationship string `json:"relationship"`
	}

	Preferences struct {
		EmailNotifications bool `json:"email_notifications"`
		SMSNotifications   bool `json:"sms_notifications"`
		AutoRefill         bool `json:"auto_refill"`
	}

	User struct {
		ID               string           `json:"id"`
		FirstName        string           `json:"first_name"`
		LastName         string           `json:"last_name"`
		Email            string           `json:"email"`
		Phone            string           `json:"phone"`
		DateOfBirth      string           `json:"date_of_birth"`
		Address          Address          `json:"address"`
		Insurance        Insurance        `json:"insurance"`
		EmergencyContact EmergencyContact `json:"emergency_contact"`
		Preferences      Preferences      `json:"preferences"`
	}

	OrderItem struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Quantity     int    `json:"quantity"`
		Price        Money  `json:"price"`
		Prescription bool   `json:"prescription"`
	}

	Order struct {
		ID              string      `json:"id"`
		Date            string      `json:"date"`
		Status          string      `json:"status"`
		Items           []OrderItem `json:"items"`
		Total           Money       `json:"total"`
		ShippingAddress string      `json:"shipping_address"`
		TrackingNumber  string      `json:"tracking_number"`
	}

	Prescription struct {
		ID               string `json:"id"`
		MedicationName   string `json:"medication_name"`
		Dosage           string `json:"dosage"`
		Quantity         int    `json:"quantity"`
		RefillsRemaining int    `json:"refills_remaining"`
		PrescribedBy     string `json:"prescribed_by"`
		DateIssued       string `json:"date_issued"`
		ExpiryDate       string `json:"expiry_date"`
		Status           string `json:"status"`
		Instructions     string `json:"instructions"`
		Refillable       bool   `json:"refillable"`
	}

	Account struct {
		User          User           `json:"user"`
		Orders        []Order        `json:"orders"`
		Prescriptions []Prescription `json:"prescriptions"`
	}

	Quote struct {
		Subtotal Money `json:"subtotal"`
		Shipping Money `json:"shipping"`
		Tax      Money `json:"tax"`
		Total    Money `json:"total"`
	}
)

// Requests.
type (
	ProductRef struct {
		ProductID string `json:"product_id"`
	}

	QuantityUpdate struct {
		Quantity int `json:"quantity"`
	}

	SearchQuery struct {
		Query string `json:"query"`
	}

	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	Registration struct {
		FirstName        string            `json:"first_name"`
		LastName         string            `json:"last_name"`
		Email            string            `json:"email"`
		Phone            string            `json:"phone"`
		DateOfBirth      string            `json:"date_of_birth"`
		Address          *Address          `json:"address"`
		Insurance        *Insurance        `json:"insurance"`
		EmergencyContact *EmergencyContact `json:"emergency_contact"`
		Preferences      *Preferences      `json:"preferences"`
		Password         string            `json:"password"`
		ConfirmPassword  string            `json:"confirm_password"`
	}

	ProfilePatch struct {
		FirstName        *string           `json:"first_name"`
		LastName         *string           `json:"last_name"`
		Email            *string           `json:"email"`
		Phone            *string           `json:"phone"`
		DateOfBirth      *string           `json:"date_of_birth"`
		Address          *Address          `json:"address"`
		Insurance        *Insurance        `json:"insurance"`
		EmergencyContact *EmergencyContact `json:"emergency_contact"`
		Preferences      *Preferences      `json:"preferences"`
	}

	// CheckoutForm payment fields are not read.
	CheckoutForm struct {
		FirstName    string  `json:"first_name"`
		LastName     string  `json:"last_name"`
		Email        string  `json:"email"`
		Phone        string  `json:"phone"`
		Address      Address `json:"address"`
		Instructions string  `json:"instructions"`
	}
)

func fromProduct(p domain.Product) Product {
	return Product{
		ID:           p.ID,
		Name:         p.Name,
		Price:        Money(p.Price),
		Image:        p.Image,
		Description:  p.Description,
		Category:     p.Category,
		InStock:      p.InStock,
		Prescription: p.Prescription,
	}
}

func fromProducts(ps []domain.Product) []Product {
	return mapSlice(ps, fromProduct)
}

func fromCart(s domain.CartState) Cart {
	return Cart{
		Items: mapSlice(s.Lines, func(l domain.CartLine) CartLine {
			return CartLine{Product: fromProduct(l.Product), Quantity: l.Quantity}
		}),
		Total:     Money(s.Total()),
		ItemCount: s.ItemCount(),
	}
}

func fromWishlist(s domain.WishlistState) Wishlist {
	return Wishlist{Items: fromProducts(s.Items)}
}

func fromSearch(s domain.SearchState) Search {
	return Search{Query: s.Query, Searching: s.Searching}
}

func fromUser(u domain.User) User {
	return User{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		Phone:            u.Phone,
		DateOfBirth:      u.DateOfBirth,
		Address:          Address(u.Address),
		Insurance:        Insurance(u.Insurance),
		EmergencyContact: EmergencyContact(u.EmergencyContact),
		Preferences:      Preferences(u.Preferences),
	}
}

func fromOrder(o domain.Order) Order {
	return Order{
		ID:     o.ID,
		Date:   o.Date,
		Status: string(o.Status),
		Items: mapSlice(o.Items, func(i domain.OrderItem) OrderItem {
			return OrderItem{
				ID:           i.ID,
				Name:         i.Name,
				Quantity:     i.Quantity,
				Price:        Money(i.Price),
				Prescription: i.Prescription,
			}
		}),
		Total:           Money(o.Total),
		ShippingAddress: o.ShippingAddress,
		TrackingNumber:  o.TrackingNumber,
	}
}

func fromOrders(orders []domain.Order) []Order {
	return mapSlice(orders, fromOrder)
}

func fromPrescriptions(ps []domain.Prescription) []Prescription {
	return mapSlice(ps, func(p domain.Prescription) Prescription {
		return Prescription{
			ID:               p.ID,
			MedicationName:   p.MedicationName,
			Dosage:           p.Dosage,
			Quantity:         p.Quantity,
			RefillsRemaining: p.RefillsRemaining,
			PrescribedBy:     p.PrescribedBy,
			DateIssued:       p.DateIssued,
			ExpiryDate:       p.ExpiryDate,
			Status:           string(p.Status),
			Instructions:     p.Instructions,
			Refillable:       p.Refillable(),
		}
	})
}

// fromAuth expects an authenticated state.
func fromAuth(s domain.AuthState) Account {
	return Account{
		User:          fromUser(*s.User),
		Orders:        fromOrders(s.Orders),
		Prescriptions: fromPrescriptions(s.Prescriptions),
	}
}

func fromQuote(q domain.Quote) Quote {
	return Quote{
		Subtotal: Money(q.Subtotal),
		Shipping: Money(q.Shipping),
		Tax:      Money(q.Tax),
		Total:    Money(q.Total),
	}
}

func (r Registration) toDomain() domain.Registration {
	return domain.Registration{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		DateOfBirth:      r.DateOfBirth,
		Address:          convertPtr(Address.toDomain, r.Address),
		Insurance:        convertPtr(Insurance.toDomain, r.Insurance),
		EmergencyContact: convertPtr(EmergencyContact.toDomain, r.EmergencyContact),
		Preferences:      convertPtr(Preferences.toDomain, r.Preferences),
		Password:         r.Password,
		ConfirmPassword:  r.ConfirmPassword,
	}
}

func (p ProfilePatch) toDomain() domain.UserPatch {
	return domain.UserPatch{
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Email:            p.Email,
		Phone:            p.Phone,
		DateOfBirth:      p.DateOfBirth,
		Address:          convertPtr(Address.toDomain, p.Address),
		Insurance:        convertPtr(Insurance.toDomain, p.Insurance),
		EmergencyContact: convertPtr(EmergencyContact.toDomain, p.EmergencyContact),
		Preferences:      convertPtr(Preferences.toDomain, p.Preferences),
	}
}

func (f CheckoutForm) toDomain() domain.CheckoutForm {
	return domain.CheckoutForm{
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Email:        f.Email,
		Phone:        f.Phone,
		Address:      f.Address.toDomain(),
		Instructions: f.Instructions,
	}
}

func (a Address) toDomain() domain.Address                   { return domain.Address(a) }
func (i Insurance) toDomain() domain.Insurance               { return domain.Insurance(i) }
func (c EmergencyContact) toDomain() domain.EmergencyContact { return domain.EmergencyContact(c) }
func (p Preferences) toDomain() domain.Preferences           { return domain.Preferences(p) }

func convertPtr[S, D any](fn func(S) D, src *S) *D {
	if src == nil {
		return nil
	}
	d := fn(*src)
	return &d
}

func mapSlice[S, D any](src []S, fn func(S) D) []D {
	dst := make([]D, len(src))
	for i, v := range src {
		dst[i] = fn(v)
	}
	return dst
}
