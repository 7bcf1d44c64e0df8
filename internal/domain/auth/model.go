// Package auth provides the authentication boundary: password login
// and the signed token that carries tenant and role claims into every
// request.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inventaris/internal/core/id"
)

// User is one account row. PasswordHash is a bcrypt hash and never
// leaves the package.
type User struct {
	ID           id.ID     `db:"id" json:"id"`
	CompanyID    id.ID     `db:"company_id" json:"companyId"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	Role         string    `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Claims is the token payload.
type Claims struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Repository reads accounts for login and token verification.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID id.ID) (*User, error)
}
