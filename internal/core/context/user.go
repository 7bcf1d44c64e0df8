// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"inventaris/internal/core/id"
)

// Role names. An owner sees every division of their company; an admin is
// restricted to an explicit division allow-list.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserID    id.ID
	CompanyID id.ID
	Email     string
	Name      string
	Role      string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or the nil ID.
func GetUserID(ctx context.Context) id.ID {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return id.Nil()
}

// GetCompanyID returns company (tenant) ID from context or the nil ID.
func GetCompanyID(ctx context.Context) id.ID {
	if u := GetUser(ctx); u != nil {
		return u.CompanyID
	}
	return id.Nil()
}

// IsOwner reports whether the current user holds the unrestricted role.
func IsOwner(ctx context.Context) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == RoleOwner
}
