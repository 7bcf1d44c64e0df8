// Package backup_repo reads tenant-scoped relation dumps for the
// backup service.
package backup_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/backup"
	"inventaris/internal/domain/catalogs/division"
	"inventaris/internal/domain/catalogs/group"
	"inventaris/internal/domain/catalogs/item"
	"inventaris/internal/domain/events"
	"inventaris/internal/infrastructure/storage/postgres"
)

var _ backup.Repository = (*BackupRepo)(nil)

// BackupRepo implements backup.Repository.
type BackupRepo struct {
	txm *postgres.TxManager
}

// NewBackupRepo creates the repository.
func NewBackupRepo(txm *postgres.TxManager) *BackupRepo {
	return &BackupRepo{txm: txm}
}

// CompanyIDs lists every tenant with at least one user. Used by the
// backup worker to sweep all tenants.
func (r *BackupRepo) CompanyIDs(ctx context.Context) ([]id.ID, error) {
	sql, args, err := postgres.Builder().
		Select("DISTINCT company_id").
		From("users").
		OrderBy("company_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	ids := []id.ID{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return ids, nil
}

// FetchDivisions dumps the divisions catalog.
func (r *BackupRepo) FetchDivisions(ctx context.Context, companyID id.ID) ([]division.Division, error) {
	sql, args, err := postgres.Builder().
		Select("id", "company_id", "name", "description", "created_at").
		From("divisions").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows := []division.Division{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("dump divisions: %w", err)
	}
	return rows, nil
}

// FetchGroups dumps the groups catalog with division names joined in.
func (r *BackupRepo) FetchGroups(ctx context.Context, companyID id.ID) ([]group.Group, error) {
	sql, args, err := postgres.Builder().
		Select("g.id", "g.company_id", "g.division_id", "g.name", "g.description", "g.created_at",
			"d.name AS division_name").
		From("item_groups g").
		Join("divisions d ON d.id = g.division_id").
		Where(squirrel.Eq{"g.company_id": companyID}).
		OrderBy("d.name ASC", "g.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows := []group.Group{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("dump groups: %w", err)
	}
	return rows, nil
}

// FetchItems dumps the items catalog with group and division joined in.
func (r *BackupRepo) FetchItems(ctx context.Context, companyID id.ID) ([]item.Item, error) {
	sql, args, err := postgres.Builder().
		Select("i.id", "i.company_id", "i.group_id", "i.name", "i.sku", "i.unit",
			"i.expiry_date", "i.min_stock", "i.created_at",
			"g.name AS group_name", "g.division_id AS division_id", "d.name AS division_name").
		From("items i").
		Join("item_groups g ON g.id = i.group_id").
		Join("divisions d ON d.id = g.division_id").
		Where(squirrel.Eq{"i.company_id": companyID}).
		OrderBy("d.name ASC", "g.name ASC", "i.name ASC", "i.expiry_date ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows := []item.Item{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("dump items: %w", err)
	}
	return rows, nil
}

// FetchOpenings dumps opening rows in the range, chronological with
// seq as the tie-break.
func (r *BackupRepo) FetchOpenings(ctx context.Context, companyID id.ID, rng dateonly.Range) ([]events.OpeningBalance, error) {
	sql, args, err := postgres.Builder().
		Select("id", "seq", "company_id", "item_id", "qty", "price_per_unit",
			"note", "opening_date", "created_by", "created_at").
		From("opening_balances").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.GtOrEq{"opening_date": rng.Start}).
		Where(squirrel.LtOrEq{"opening_date": rng.End}).
		OrderBy("opening_date ASC", "seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows := []events.OpeningBalance{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("dump openings: %w", err)
	}
	return rows, nil
}

// FetchTransactions dumps transactions in the range.
func (r *BackupRepo) FetchTransactions(ctx context.Context, companyID id.ID, rng dateonly.Range) ([]events.Transaction, error) {
	sql, args, err := postgres.Builder().
		Select("id", "seq", "company_id", "item_id", "type", "qty", "price_per_unit",
			"proof_path", "note", "txn_date", "created_by", "created_at").
		From("transactions").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.GtOrEq{"txn_date": rng.Start}).
		Where(squirrel.LtOrEq{"txn_date": rng.End}).
		OrderBy("txn_date ASC", "seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows := []events.Transaction{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("dump transactions: %w", err)
	}
	return rows, nil
}

// FetchAdjustments dumps adjustments in the range.
func (r *BackupRepo) FetchAdjustments(ctx context.Context, companyID id.ID, rng dateonly.Range) ([]events.Adjustment, error) {
	sql, args, err := postgres.Builder().
		Select("id", "seq", "company_id", "item_id", "qty_delta",
			"proof_path", "note", "adj_date", "created_by", "created_at").
		From("adjustments").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.GtOrEq{"adj_date": rng.Start}).
		Where(squirrel.LtOrEq{"adj_date": rng.End}).
		OrderBy("adj_date ASC", "seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows := []events.Adjustment{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("dump adjustments: %w", err)
	}
	return rows, nil
}
