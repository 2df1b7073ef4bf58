package remote

import (
	"context"
	"crypto/subtle"
	"errors"
)

// ErrUnauthorized rejects a player whose hello carries the wrong table token.
var ErrUnauthorized = errors.New("remote: unauthorized")

// Validator decides whether a joining player may take a seat.
type Validator interface {
	Validate(ctx context.Context, name, token string) error
}

// TokenValidator admits players presenting a shared table token.
type TokenValidator struct {
	token []byte
}

// NewTokenValidator creates a validator for token. An empty token admits
// nobody.
func NewTokenValidator(token string) *TokenValidator {
	return &TokenValidator{token: []byte(token)}
}

func (v *TokenValidator) Validate(_ context.Context, _, token string) error {
	if len(v.token) == 0 || subtle.ConstantTimeCompare(v.token, []byte(token)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// openValidator admits every player (dev mode).
type openValidator struct{}

func (openValidator) Validate(context.Context, string, string) error { return nil }
