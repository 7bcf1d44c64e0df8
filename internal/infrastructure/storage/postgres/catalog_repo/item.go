package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/catalogs/item"
	"inventaris/internal/domain/scope"
	"inventaris/internal/infrastructure/storage/postgres"
)

var _ item.Repository = (*ItemRepo)(nil)

// ItemRepo implements item.Repository.
type ItemRepo struct {
	txm *postgres.TxManager
}

// NewItemRepo creates the repository.
func NewItemRepo(txm *postgres.TxManager) *ItemRepo {
	return &ItemRepo{txm: txm}
}

var itemJoinCols = []string{
	"i.id", "i.company_id", "i.group_id", "i.name", "i.sku", "i.unit",
	"i.expiry_date", "i.min_stock", "i.created_at",
	"g.name AS group_name",
	"g.division_id AS division_id",
	"d.name AS division_name",
}

func itemSelect() squirrel.SelectBuilder {
	return postgres.Builder().
		Select(itemJoinCols...).
		From("items i").
		Join("item_groups g ON g.id = i.group_id").
		Join("divisions d ON d.id = g.division_id")
}

// Create inserts a new item.
func (r *ItemRepo) Create(ctx context.Context, i *item.Item) error {
	sql, args, err := postgres.Builder().
		Insert("items").
		Columns("id", "company_id", "group_id", "name", "sku", "unit", "expiry_date", "min_stock", "created_at").
		Values(i.ID, i.CompanyID, i.GroupID, i.Name, i.SKU, i.Unit, i.ExpiryDate, i.MinStock, i.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update modifies the mutable item fields.
func (r *ItemRepo) Update(ctx context.Context, i *item.Item) error {
	sql, args, err := postgres.Builder().
		Update("items").
		Set("group_id", i.GroupID).
		Set("name", i.Name).
		Set("sku", i.SKU).
		Set("unit", i.Unit).
		Set("expiry_date", i.ExpiryDate).
		Set("min_stock", i.MinStock).
		Where(squirrel.Eq{"id": i.ID, "company_id": i.CompanyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", i.ID.String())
	}
	return nil
}

// Delete removes an item.
func (r *ItemRepo) Delete(ctx context.Context, companyID, itemID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete("items").
		Where(squirrel.Eq{"id": itemID, "company_id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", itemID.String())
	}
	return nil
}

// GetByID retrieves an item with group and division joined in.
func (r *ItemRepo) GetByID(ctx context.Context, companyID, itemID id.ID) (*item.Item, error) {
	sql, args, err := itemSelect().
		Where(squirrel.Eq{"i.id": itemID, "i.company_id": companyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var i item.Item
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &i, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", itemID.String())
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}

// List returns items in scope in report order.
func (r *ItemRepo) List(ctx context.Context, companyID id.ID, sc scope.Scope) ([]item.Item, error) {
	q := itemSelect().
		Where(squirrel.Eq{"i.company_id": companyID}).
		OrderBy("d.name ASC", "g.name ASC", "i.name ASC", "i.expiry_date ASC NULLS FIRST")
	q = postgres.ApplyScope(q, "g.division_id", sc)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	items := []item.Item{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GroupDivision resolves the division owning a group.
func (r *ItemRepo) GroupDivision(ctx context.Context, companyID, groupID id.ID) (id.ID, error) {
	sql, args, err := postgres.Builder().
		Select("division_id").
		From("item_groups").
		Where(squirrel.Eq{"id": groupID, "company_id": companyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return id.Nil(), fmt.Errorf("build query: %w", err)
	}

	var divisionID id.ID
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&divisionID); err != nil {
		if pgxscan.NotFound(err) {
			return id.Nil(), apperror.NewNotFound("group", groupID.String())
		}
		return id.Nil(), fmt.Errorf("resolve group division: %w", err)
	}
	return divisionID, nil
}
