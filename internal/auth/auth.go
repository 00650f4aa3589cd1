package auth

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("auth: invalid token")

// Identity is the verified caller of a request.
type Identity struct {
	UserID      string
	Email       string
	DisplayName string
}

// Name returns the display name, falling back to the email address.
func (i Identity) Name() string {
	if n := strings.TrimSpace(i.DisplayName); n != "" {
		return n
	}

	return i.Email
}

// Verifier turns a bearer token into an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, false
	}

	return id, true
}
