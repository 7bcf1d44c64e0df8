package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"inventaris/internal/core/apperror"
	appctx "inventaris/internal/core/context"
	"inventaris/internal/core/id"
	"inventaris/pkg/logger"
)

// tokenTTL is the access token lifetime.
const tokenTTL = 12 * time.Hour

// Service issues and verifies tokens.
type Service struct {
	repo   Repository
	secret []byte
}

// NewService creates the auth service. The secret signs tokens with
// HMAC-SHA256.
func NewService(repo Repository, secret []byte) *Service {
	return &Service{repo: repo, secret: secret}
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// Login verifies the password and issues a token. Unknown email and
// wrong password produce the same error, so the endpoint does not leak
// which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("Invalid email or password")
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewUnauthorized("Invalid email or password")
	}

	expiresAt := time.Now().Add(tokenTTL)
	claims := Claims{
		CompanyID: user.CompanyID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID, "company_id", user.CompanyID)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Verify parses and validates a token and converts its claims into the
// request user context.
func (s *Service) Verify(ctx context.Context, tokenStr string) (*appctx.UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.NewUnauthorized("Invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperror.NewUnauthorized("Invalid token claims")
	}

	userID, err := id.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.NewUnauthorized("Invalid token subject")
	}
	companyID, err := id.Parse(claims.CompanyID)
	if err != nil {
		return nil, apperror.NewUnauthorized("Invalid token company")
	}

	return &appctx.UserContext{
		UserID:    userID,
		CompanyID: companyID,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      claims.Role,
	}, nil
}

// HashPassword produces a bcrypt hash for seeding and account creation.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
