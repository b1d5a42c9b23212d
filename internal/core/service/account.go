package service

import (
	"context"
	"fmt"

	"github.com/niksmo/pharmacy/internal/core/domain"
)

func (s Service) Login(
	ctx context.Context, sessionID, email, password string,
) (domain.AuthState, error) {
	const op = "Service.Login"

	sess, err := s.session(ctx, op, sessionID)
	if err != nil {
		return domain.AuthState{}, err
	}

	ok, err := sess.Auth.Login(ctx, email, password)
	if err != nil {
		return domain.AuthState{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return domain.AuthState{}, fmt.Errorf(
			"%s: %w", op, domain.ErrInvalidCredentials,
		)
	}
	return sess.Auth.State(), nil
}

// Register checks the password confirmation before handing the form to the
// auth container, which always signs the new user in.
func (s Service) Register(
	ctx context.Context, sessionID string, r domain.Registration,
) (domain.AuthState, error) {
	const op = "Service.Register"

	sess, err := s.session(ctx, op, sessionID)
	if err != nil {
		return domain.AuthState{}, err
	}

	if r.Password != r.ConfirmPassword {
		return domain.AuthState{}, fmt.Errorf(
			"%s: %w", op, domain.ErrPasswordMismatch,
		)
	}

	if err := sess.Auth.Register(ctx, r); err != nil {
		return domain.AuthState{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess.Auth.State(), nil
}

func (s Service) Logout(ctx context.Context, sessionID string) error {
	sess, err := s.session(ctx, "Service.Logout", sessionID)
	if err != nil {
		return err
	}
	sess.Auth.Logout()
	return nil
}

func (s Service) Account(
	ctx context.Context, sessionID string,
) (domain.AuthState, error) {
	const op = "Service.Account"

	sess, err := s.session(ctx, op, sessionID)
	if err != nil {
		return domain.AuthState{}, err
	}

	state := sess.Auth.State()
	if !state.Authenticated() {
		return domain.AuthState{}, fmt.Errorf(
			"%s: %w", op, domain.ErrNotAuthenticated,
		)
	}
	return state, nil
}

func (s Service) UpdateProfile(
	ctx context.Context, sessionID string, patch domain.UserPatch,
) (domain.AuthState, error) {
	const op = "Service.UpdateProfile"

	sess, err := s.session(ctx, op, sessionID)
	if err != nil {
		return domain.AuthState{}, err
	}

	if !sess.Auth.State().Authenticated() {
		return domain.AuthState{}, fmt.Errorf(
			"%s: %w", op, domain.ErrNotAuthenticated,
		)
	}
	return sess.Auth.UpdateProfile(patch), nil
}

func (s Service) Orders(
	ctx context.Context, sessionID string,
) ([]domain.Order, error) {
	state, err := s.Account(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return state.Orders, nil
}

func (s Service) Prescriptions(
	ctx context.Context, sessionID string,
) ([]domain.Prescription, error) {
	state, err := s.Account(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return state.Prescriptions, nil
}
