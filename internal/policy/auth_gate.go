// Package policy wires session authentication to role authorization.
// It is the only place that decides who may reach a handler.
package policy

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/crmkit/go-crm/auth"
	"github.com/crmkit/go-crm/gate"
	"github.com/crmkit/go-crm/httpx"
)

// AuthGate is the central authorization checkpoint. Role lookups go
// through a TTL cache so each request costs at most one query.
type AuthGate struct {
	Resolver *gate.CachedResolver
}

// NewAuthGate builds a gate backed by the database role resolver.
func NewAuthGate(db *gorm.DB, cacheTTL time.Duration) *AuthGate {
	return &AuthGate{
		Resolver: gate.NewCachedResolver(NewDBRoleResolver(db), cacheTTL),
	}
}

// NewAuthGateWithResolver is used by tests to supply a static resolver.
func NewAuthGateWithResolver(r gate.Resolver, cacheTTL time.Duration) *AuthGate {
	return &AuthGate{Resolver: gate.NewCachedResolver(r, cacheTTL)}
}

// Authorize checks the current user against the required roles using
// the single gate.Allowed predicate. Returns gate.ErrUnauthorized when
// no session is present and gate.ErrForbidden when the role does not
// qualify.
func (ag *AuthGate) Authorize(ctx context.Context, required ...gate.Role) error {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return gate.ErrUnauthorized
	}
	role, err := ag.Resolver.Resolve(ctx, userID)
	if err != nil {
		return gate.ErrForbidden
	}
	if !gate.Allowed(role, required...) {
		return gate.ErrForbidden
	}
	return nil
}

// Require returns middleware enforcing the given roles. An empty role
// list requires only an authenticated user with any valid role.
func (ag *AuthGate) Require(required ...gate.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch err := ag.Authorize(r.Context(), required...); err {
			case nil:
				next.ServeHTTP(w, r)
			case gate.ErrUnauthorized:
				httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
			default:
				httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
			}
		})
	}
}

// InvalidateUser clears the role cache for one user. Call after an
// admin changes that user's role.
func (ag *AuthGate) InvalidateUser(userID uint) {
	ag.Resolver.Invalidate(userID)
}
