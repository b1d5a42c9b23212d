// Package mockauth is a stand-in account directory.
//
// It accepts a single demo credential pair and opens any account it is
// asked to register. It must be replaced with real verification before
// serving real users.
package mockauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/niksmo/pharmacy/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

var _ port.AccountDirectory = (*Directory)(nil)

const defaultLatency = time.Second

type Opt func(*options) error

type options struct {
	latency  time.Duration
	hashCost int
	newID    func() string
}

// LatencyOpt sets the simulated round trip applied to every call.
func LatencyOpt(d time.Duration) Opt {
	return func(o *options) error {
		if d < 0 {
			return errors.New("latency is negative")
		}
		o.latency = d
		return nil
	}
}

func HashCostOpt(cost int) Opt {
	return func(o *options) error {
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return fmt.Errorf("bcrypt cost %d is out of range", cost)
		}
		o.hashCost = cost
		return nil
	}
}

func IDGeneratorOpt(fn func() string) Opt {
	return func(o *options) error {
		if fn == nil {
			return errors.New("id generator is nil")
		}
		o.newID = fn
		return nil
	}
}

type Directory struct {
	latency      time.Duration
	passwordHash []byte
	newID        func() string
}

func New(opts ...Opt) (Directory, error) {
	const op = "mockauth.New"

	o := options{
		latency:  defaultLatency,
		hashCost: bcrypt.DefaultCost,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return Directory{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), o.hashCost)
	if err != nil {
		return Directory{}, fmt.Errorf("%s: %w", op, err)
	}

	return Directory{
		latency:      o.latency,
		passwordHash: hash,
		newID:        o.newID,
	}, nil
}

// Authenticate reports false for anything but the demo credentials.
// Unknown e-mail and wrong password are not told apart.
func (d Directory) Authenticate(
	ctx context.Context, email, password string,
) (domain.Account, bool, error) {
	const op = "Directory.Authenticate"

	if err := d.wait(ctx); err != nil {
		return domain.Account{}, false, fmt.Errorf("%s: %w", op, err)
	}

	if email != DemoEmail {
		return domain.Account{}, false, nil
	}
	err := bcrypt.CompareHashAndPassword(d.passwordHash, []byte(password))
	if err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			slog.Warn("unexpected compare failure", "op", op, "err", err)
		}
		return domain.Account{}, false, nil
	}
	return demoAccount(), true, nil
}

// Register never fails once the latency has passed. The password is not
// kept.
func (d Directory) Register(
	ctx context.Context, r domain.Registration,
) (domain.Account, error) {
	const op = "Directory.Register"

	if err := d.wait(ctx); err != nil {
		return domain.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	u := domain.User{
		ID:          d.newID(),
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: r.DateOfBirth,
		Preferences: domain.DefaultPreferences(),
	}
	if r.Address != nil {
		u.Address = *r.Address
	}
	if r.Insurance != nil {
		u.Insurance = *r.Insurance
	}
	if r.EmergencyContact != nil {
		u.EmergencyContact = *r.EmergencyContact
	}
	if r.Preferences != nil {
		u.Preferences = *r.Preferences
	}

	return domain.Account{
		User:          u,
		Orders:        []domain.Order{},
		Prescriptions: []domain.Prescription{},
	}, nil
}

func (d Directory) wait(ctx context.Context) error {
	if d.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
