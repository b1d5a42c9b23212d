package domain

type (
	User struct {
		ID               string
		FirstName        string
		LastName         string
		Email            string
		Phone            string
		DateOfBirth      string
		Address          Address
		Insurance        Insurance
		EmergencyContact EmergencyContact
		Preferences      Preferences
	}

	Address struct {
		Street  string
		City    string
		State   string
		ZipCode string
	}

	Insurance struct {
		Provider    string
		MemberID    string
		GroupNumber string
	}

	EmergencyContact struct {
		Name         string
		Phone        string
		Relationship string
	}

	Preferences struct {
		EmailNotifications bool
		SMSNotifications   bool
		AutoRefill         bool
	}
)

// A UserPatch holds the supplied fields of a profile update.
//
// Nil fields are left as they are. Sub-records are replaced as a whole.
type UserPatch struct {
	FirstName        *string
	LastName         *string
	Email            *string
	Phone            *string
	DateOfBirth      *string
	Address          *Address
	Insurance        *Insurance
	EmergencyContact *EmergencyContact
	Preferences      *Preferences
}

func (p UserPatch) apply(u User) User {
	setIf(&u.FirstName, p.FirstName)
	setIf(&u.LastName, p.LastName)
	setIf(&u.Email, p.Email)
	setIf(&u.Phone, p.Phone)
	setIf(&u.DateOfBirth, p.DateOfBirth)
	setIf(&u.Address, p.Address)
	setIf(&u.Insurance, p.Insurance)
	setIf(&u.EmergencyContact, p.EmergencyContact)
	setIf(&u.Preferences, p.Preferences)
	return u
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// A Registration carries the sign-up form. Nil sub-records fall back to
// their defaults.
type Registration struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	DateOfBirth      string
	Address          *Address
	Insurance        *Insurance
	EmergencyContact *EmergencyContact
	Preferences      *Preferences
	Password         string
	ConfirmPassword  string
}

func DefaultPreferences() Preferences {
	return Preferences{EmailNotifications: true}
}

// An Account is what the account directory hands back on sign in.
type Account struct {
	User          User
	Orders        []Order
	Prescriptions []Prescription
}

type PrescriptionStatus string

const (
	PrescriptionActive    PrescriptionStatus = "active"
	PrescriptionExpired   PrescriptionStatus = "expired"
	PrescriptionCancelled PrescriptionStatus = "cancelled"
)

type Prescription struct {
	ID               string
	MedicationName   string
	Dosage           string
	Quantity         int
	RefillsRemaining int
	PrescribedBy     string
	DateIssued       string
	ExpiryDate       string
	Status           PrescriptionStatus
	Instructions     string
}

func (p Prescription) Refillable() bool {
	return p.Status == PrescriptionActive && p.RefillsRemaining > 0
}

// An AuthState is anonymous while User is nil.
type AuthState struct {
	User          *User
	Orders        []Order
	Prescriptions []Prescription
}

func (s AuthState) Authenticated() bool {
	return s.User != nil
}

type AuthCommand interface {
	authCommand()
}

type (
	SignIn struct {
		Account Account
	}

	SignOut struct{}

	UpdateProfile struct {
		Patch UserPatch
	}

	// AddOrder prepends the order to the history.
	AddOrder struct {
		Order Order
	}
)

func (SignIn) authCommand()        {}
func (SignOut) authCommand()       {}
func (UpdateProfile) authCommand() {}
func (AddOrder) authCommand()      {}

// ReduceAuth applies cmd to s. Profile updates and new orders are ignored
// while anonymous.
func ReduceAuth(s AuthState, cmd AuthCommand) AuthState {
	switch c := cmd.(type) {
	case SignIn:
		u := c.Account.User
		return AuthState{
			User:          &u,
			Orders:        cloneSlice(c.Account.Orders),
			Prescriptions: cloneSlice(c.Account.Prescriptions),
		}
	case SignOut:
		return AuthState{}
	case UpdateProfile:
		if !s.Authenticated() {
			return s
		}
		u := c.Patch.apply(*s.User)
		return AuthState{
			User:          &u,
			Orders:        s.Orders,
			Prescriptions: s.Prescriptions,
		}
	case AddOrder:
		if !s.Authenticated() {
			return s
		}
		orders := make([]Order, 0, len(s.Orders)+1)
		orders = append(orders, c.Order)
		orders = append(orders, s.Orders...)
		return AuthState{
			User:          s.User,
			Orders:        orders,
			Prescriptions: s.Prescriptions,
		}
	default:
		return s
	}
}

func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
