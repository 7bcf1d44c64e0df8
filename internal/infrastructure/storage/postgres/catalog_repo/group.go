package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/catalogs/group"
	"inventaris/internal/domain/scope"
	"inventaris/internal/infrastructure/storage/postgres"
)

var _ group.Repository = (*GroupRepo)(nil)

// GroupRepo implements group.Repository.
type GroupRepo struct {
	txm *postgres.TxManager
}

// NewGroupRepo creates the repository.
func NewGroupRepo(txm *postgres.TxManager) *GroupRepo {
	return &GroupRepo{txm: txm}
}

// groupJoinCols select the group plus its division name.
var groupJoinCols = []string{
	"g.id", "g.company_id", "g.division_id", "g.name", "g.description", "g.created_at",
	"d.name AS division_name",
}

func groupSelect() squirrel.SelectBuilder {
	return postgres.Builder().
		Select(groupJoinCols...).
		From("item_groups g").
		Join("divisions d ON d.id = g.division_id")
}

// Create inserts a new group.
func (r *GroupRepo) Create(ctx context.Context, g *group.Group) error {
	sql, args, err := postgres.Builder().
		Insert("item_groups").
		Columns("id", "company_id", "division_id", "name", "description", "created_at").
		Values(g.ID, g.CompanyID, g.DivisionID, g.Name, g.Description, g.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// Update modifies name, description, and owning division.
func (r *GroupRepo) Update(ctx context.Context, g *group.Group) error {
	sql, args, err := postgres.Builder().
		Update("item_groups").
		Set("name", g.Name).
		Set("description", g.Description).
		Set("division_id", g.DivisionID).
		Where(squirrel.Eq{"id": g.ID, "company_id": g.CompanyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("group", g.ID.String())
	}
	return nil
}

// Delete removes a group.
func (r *GroupRepo) Delete(ctx context.Context, companyID, groupID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete("item_groups").
		Where(squirrel.Eq{"id": groupID, "company_id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("group", groupID.String())
	}
	return nil
}

// GetByID retrieves a group with its division joined in.
func (r *GroupRepo) GetByID(ctx context.Context, companyID, groupID id.ID) (*group.Group, error) {
	sql, args, err := groupSelect().
		Where(squirrel.Eq{"g.id": groupID, "g.company_id": companyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var g group.Group
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &g, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("group", groupID.String())
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}

// GetByName retrieves a group by name within a division.
func (r *GroupRepo) GetByName(ctx context.Context, companyID, divisionID id.ID, name string) (*group.Group, error) {
	sql, args, err := groupSelect().
		Where(squirrel.Eq{"g.company_id": companyID, "g.division_id": divisionID, "g.name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var g group.Group
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &g, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("group", name)
		}
		return nil, fmt.Errorf("get group by name: %w", err)
	}
	return &g, nil
}

// List returns groups in scope ordered by (division name, group name).
func (r *GroupRepo) List(ctx context.Context, companyID id.ID, sc scope.Scope) ([]group.Group, error) {
	q := groupSelect().
		Where(squirrel.Eq{"g.company_id": companyID}).
		OrderBy("d.name ASC", "g.name ASC")
	q = postgres.ApplyScope(q, "g.division_id", sc)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	groups := []group.Group{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &groups, sql, args...); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// ItemCount counts the items owned by a group.
func (r *GroupRepo) ItemCount(ctx context.Context, companyID, groupID id.ID) (int64, error) {
	sql, args, err := postgres.Builder().
		Select("COUNT(*)").
		From("items").
		Where(squirrel.Eq{"company_id": companyID, "group_id": groupID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}
