package identity

import (
	"context"
	"errors"
)

// Principal is the resolved identity and permission context for the current request.
// It is rebuilt from a verified token on every request and never persisted;
// only the underlying user document lives in storage.
type Principal struct {
	ID     string
	Email  string
	Name   string
	Role   string
	Active bool

	// Overrides, when non-nil, replaces the role's default permission matrix
	// (resource -> action -> allowed). Nil means "use the role default".
	Overrides map[string]map[string]bool
}

// ErrAccountDisabled marks a user whose token is valid but whose account
// has been deactivated. Callers must not reveal this distinction to clients.
var ErrAccountDisabled = errors.New("account disabled")

type ctxKey struct{}

// WithPrincipal attaches the authenticated principal to the request context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFrom extracts the principal placed by the auth middleware.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	v := ctx.Value(ctxKey{})
	if p, ok := v.(Principal); ok && p.ID != "" {
		return p, true
	}
	return Principal{}, false
}
