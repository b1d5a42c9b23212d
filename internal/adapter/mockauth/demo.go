package mockauth

import (
	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Demo credentials. They are the only pair Authenticate accepts.
const (
	DemoEmail    = "john.doe@email.com"
	DemoPassword = "password"
)

func demoAccount() domain.Account {
	return domain.Account{
		User:          demoUser(),
		Orders:        demoOrders(),
		Prescriptions: demoPrescriptions(),
	}
}

func demoUser() domain.User {
	return domain.User{
		ID:          "1",
		FirstName:   "John",
		LastName:    "Doe",
		Email:       DemoEmail,
		Phone:       "(555) 123-4567",
		DateOfBirth: "1985-06-15",
		Address: domain.Address{
			Street:  "123 Main St",
			City:    "Anytown",
			State:   "CA",
			ZipCode: "12345",
		},
		Insurance: domain.Insurance{
			Provider:    "Blue Cross Blue Shield",
			MemberID:    "BC123456789",
			GroupNumber: "GRP001",
		},
		EmergencyContact: domain.EmergencyContact{
			Name:         "Jane Doe",
			Phone:        "(555) 987-6543",
			Relationship: "Spouse",
		},
		Preferences: domain.Preferences{
			EmailNotifications: true,
			SMSNotifications:   false,
			AutoRefill:         true,
		},
	}
}

func demoOrders() []domain.Order {
	const shippingAddress = "123 Main St, Anytown, CA 12345"
	return []domain.Order{
		{
			ID:     "ORD001",
			Date:   "2025-01-10",
			Status: domain.OrderDelivered,
			Items: []domain.OrderItem{
				{ID: "1", Name: "Ibuprofen 200mg", Quantity: 1, Price: decimal.RequireFromString("12.99")},
				{ID: "4", Name: "Omega-3 Fish Oil", Quantity: 1, Price: decimal.RequireFromString("22.99")},
			},
			Total:           decimal.RequireFromString("35.98"),
			ShippingAddress: shippingAddress,
			TrackingNumber:  "TRK123456789",
		},
		{
			ID:     "ORD002",
			Date:   "2025-01-05",
			Status: domain.OrderShipped,
			Items: []domain.OrderItem{
				{
					ID: "3", Name: "Lisinopril 10mg", Quantity: 1,
					Price: decimal.RequireFromString("25.00"), Prescription: true,
				},
			},
			Total:           decimal.RequireFromString("25.00"),
			ShippingAddress: shippingAddress,
			TrackingNumber:  "TRK987654321",
		},
	}
}

func demoPrescriptions() []domain.Prescription {
	return []domain.Prescription{
		{
			ID:               "RX001",
			MedicationName:   "Lisinopril 10mg",
			Dosage:           "10mg once daily",
			Quantity:         30,
			RefillsRemaining: 5,
			PrescribedBy:     "Dr. Smith",
			DateIssued:       "2024-12-15",
			ExpiryDate:       "2025-12-15",
			Status:           domain.PrescriptionActive,
			Instructions:     "Take with or without food. Monitor blood pressure regularly.",
		},
		{
			ID:               "RX002",
			MedicationName:   "Metformin 500mg",
			Dosage:           "500mg twice daily",
			Quantity:         60,
			RefillsRemaining: 2,
			PrescribedBy:     "Dr. Johnson",
			DateIssued:       "2024-11-20",
			ExpiryDate:       "2025-11-20",
			Status:           domain.PrescriptionActive,
			Instructions:     "Take with meals to reduce stomach upset.",
		},
	}
}
