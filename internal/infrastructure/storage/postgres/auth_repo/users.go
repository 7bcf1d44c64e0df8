// Package auth_repo provides PostgreSQL persistence for accounts and
// division access grants.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/auth"
	"inventaris/internal/domain/scope"
	"inventaris/internal/infrastructure/storage/postgres"
)

var (
	_ auth.Repository        = (*UserRepo)(nil)
	_ scope.AccessRepository = (*UserRepo)(nil)
)

// UserRepo implements auth.Repository and scope.AccessRepository.
type UserRepo struct {
	txm *postgres.TxManager
}

// NewUserRepo creates the repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

var userCols = []string{"id", "company_id", "email", "name", "role", "password_hash", "created_at"}

// GetByEmail retrieves an account by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	sql, args, err := postgres.Builder().
		Select(userCols...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u auth.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// GetByID retrieves an account by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	sql, args, err := postgres.Builder().
		Select(userCols...).
		From("users").
		Where(squirrel.Eq{"id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u auth.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", userID.String())
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// DivisionIDs returns the divisions explicitly granted to a user.
// An empty result is a valid allow-list, not an error.
func (r *UserRepo) DivisionIDs(ctx context.Context, companyID, userID id.ID) ([]id.ID, error) {
	sql, args, err := postgres.Builder().
		Select("ud.division_id").
		From("user_divisions ud").
		Join("divisions d ON d.id = ud.division_id").
		Where(squirrel.Eq{"ud.user_id": userID, "d.company_id": companyID}).
		OrderBy("ud.division_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	ids := []id.ID{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("list division grants: %w", err)
	}
	return ids, nil
}
