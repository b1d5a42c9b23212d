package httphandler

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "pharmacy"

var ErrInvalidToken = errors.New("invalid session token")

// A TokenIssuer signs session ids into HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer panics on an empty secret or a non-positive ttl.
func NewTokenIssuer(secret string, ttl time.Duration) TokenIssuer {
	const op = "httphandler.NewTokenIssuer"

	if secret == "" {
		panic(fmt.Errorf("%s: token secret is empty", op))
	}
	if ttl <= 0 {
		panic(fmt.Errorf("%s: token ttl must be positive", op))
	}
	return TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (ti TokenIssuer) Issue(sessionID string) (string, time.Time, error) {
	const op = "TokenIssuer.Issue"

	now := ti.now()
	expiresAt := now.Add(ti.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return token, expiresAt, nil
}

// Parse verifies the token and returns the session id it carries.
func (ti TokenIssuer) Parse(token string) (string, error) {
	const op = "TokenIssuer.Parse"

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) {
			return ti.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%s: %w: no subject", op, ErrInvalidToken)
	}
	return claims.Subject, nil
}
