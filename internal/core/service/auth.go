package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/niksmo/pharmacy/internal/core/port"
)

// An Auth holds the session identity, its order history and prescriptions.
//
// It is anonymous until Login or Register succeeds. The directory call
// happens outside the lock, so other mutations are not blocked meanwhile.
type Auth struct {
	mu        sync.RWMutex
	state     domain.AuthState
	directory port.AccountDirectory
}

func NewAuth(directory port.AccountDirectory) *Auth {
	return &Auth{directory: directory}
}

func (a *Auth) Dispatch(cmd domain.AuthCommand) domain.AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = domain.ReduceAuth(a.state, cmd)
	return a.state
}

func (a *Auth) State() domain.AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Login reports false and keeps the current state when the credentials
// do not match.
func (a *Auth) Login(ctx context.Context, email, password string) (bool, error) {
	const op = "Auth.Login"

	account, ok, err := a.directory.Authenticate(ctx, email, password)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		slog.Debug("credentials mismatch", "op", op)
		return false, nil
	}
	a.Dispatch(domain.SignIn{Account: account})
	return true, nil
}

func (a *Auth) Register(ctx context.Context, r domain.Registration) error {
	const op = "Auth.Register"

	account, err := a.directory.Register(ctx, r)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	a.Dispatch(domain.SignIn{Account: account})
	return nil
}

func (a *Auth) Logout() domain.AuthState {
	return a.Dispatch(domain.SignOut{})
}

func (a *Auth) UpdateProfile(patch domain.UserPatch) domain.AuthState {
	return a.Dispatch(domain.UpdateProfile{Patch: patch})
}

func (a *Auth) AddOrder(o domain.Order) domain.AuthState {
	return a.Dispatch(domain.AddOrder{Order: o})
}
