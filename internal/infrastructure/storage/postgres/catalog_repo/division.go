// Package catalog_repo provides PostgreSQL implementations for the
// catalog repositories. Every query filters by company_id; tenant
// isolation is logical, not physical.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/catalogs/division"
	"inventaris/internal/domain/scope"
	"inventaris/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ division.Repository = (*DivisionRepo)(nil)

// DivisionRepo implements division.Repository.
type DivisionRepo struct {
	txm *postgres.TxManager
}

// NewDivisionRepo creates the repository.
func NewDivisionRepo(txm *postgres.TxManager) *DivisionRepo {
	return &DivisionRepo{txm: txm}
}

var divisionCols = []string{"id", "company_id", "name", "description", "created_at"}

// Create inserts a new division.
func (r *DivisionRepo) Create(ctx context.Context, d *division.Division) error {
	sql, args, err := postgres.Builder().
		Insert("divisions").
		Columns(divisionCols...).
		Values(d.ID, d.CompanyID, d.Name, d.Description, d.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert division: %w", err)
	}
	return nil
}

// Update modifies name and description.
func (r *DivisionRepo) Update(ctx context.Context, d *division.Division) error {
	sql, args, err := postgres.Builder().
		Update("divisions").
		Set("name", d.Name).
		Set("description", d.Description).
		Where(squirrel.Eq{"id": d.ID, "company_id": d.CompanyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update division: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("division", d.ID.String())
	}
	return nil
}

// Delete removes a division.
func (r *DivisionRepo) Delete(ctx context.Context, companyID, divisionID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete("divisions").
		Where(squirrel.Eq{"id": divisionID, "company_id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete division: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("division", divisionID.String())
	}
	return nil
}

// GetByID retrieves a division by ID.
func (r *DivisionRepo) GetByID(ctx context.Context, companyID, divisionID id.ID) (*division.Division, error) {
	sql, args, err := postgres.Builder().
		Select(divisionCols...).
		From("divisions").
		Where(squirrel.Eq{"id": divisionID, "company_id": companyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var d division.Division
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &d, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("division", divisionID.String())
		}
		return nil, fmt.Errorf("get division: %w", err)
	}
	return &d, nil
}

// GetByName retrieves a division by its unique name within a company.
func (r *DivisionRepo) GetByName(ctx context.Context, companyID id.ID, name string) (*division.Division, error) {
	sql, args, err := postgres.Builder().
		Select(divisionCols...).
		From("divisions").
		Where(squirrel.Eq{"company_id": companyID, "name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var d division.Division
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &d, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("division", name)
		}
		return nil, fmt.Errorf("get division by name: %w", err)
	}
	return &d, nil
}

// List returns divisions visible under the scope, ordered by name.
func (r *DivisionRepo) List(ctx context.Context, companyID id.ID, sc scope.Scope) ([]division.Division, error) {
	q := postgres.Builder().
		Select(divisionCols...).
		From("divisions").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("name ASC")
	q = postgres.ApplyScope(q, "id", sc)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	divisions := []division.Division{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &divisions, sql, args...); err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}
	return divisions, nil
}

// GroupCount counts the groups referencing a division.
func (r *DivisionRepo) GroupCount(ctx context.Context, companyID, divisionID id.ID) (int64, error) {
	sql, args, err := postgres.Builder().
		Select("COUNT(*)").
		From("item_groups").
		Where(squirrel.Eq{"company_id": companyID, "division_id": divisionID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count groups: %w", err)
	}
	return count, nil
}
