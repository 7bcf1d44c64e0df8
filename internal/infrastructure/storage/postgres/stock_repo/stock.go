// Package stock_repo provides the PostgreSQL aggregates behind the
// current stock service: cumulative balances for the deletion guards
// and the dashboard feeds.
package stock_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
	"inventaris/internal/domain/scope"
	"inventaris/internal/domain/stock"
	"inventaris/internal/infrastructure/storage/postgres"
)

var _ stock.Repository = (*StockRepo)(nil)

// StockRepo implements stock.Repository.
type StockRepo struct {
	txm *postgres.TxManager
}

// NewStockRepo creates the repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{txm: txm}
}

// ItemBalance sums all events of one item: openings plus inbound minus
// outbound plus adjustments, across all dates.
func (r *StockRepo) ItemBalance(ctx context.Context, companyID, itemID id.ID) (types.Quantity, error) {
	const query = `
		SELECT
			COALESCE((SELECT SUM(qty) FROM opening_balances
				WHERE company_id = $1 AND item_id = $2), 0)
			+ COALESCE((SELECT SUM(CASE WHEN type = 'IN' THEN qty ELSE -qty END) FROM transactions
				WHERE company_id = $1 AND item_id = $2), 0)
			+ COALESCE((SELECT SUM(qty_delta) FROM adjustments
				WHERE company_id = $1 AND item_id = $2), 0)
	`

	var balance types.Quantity
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, query, companyID, itemID).Scan(&balance); err != nil {
		return types.Zero(), fmt.Errorf("item balance: %w", err)
	}
	return balance, nil
}

// ItemEventCount counts event rows across the three streams.
func (r *StockRepo) ItemEventCount(ctx context.Context, companyID, itemID id.ID) (int64, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM opening_balances WHERE company_id = $1 AND item_id = $2)
			+ (SELECT COUNT(*) FROM transactions WHERE company_id = $1 AND item_id = $2)
			+ (SELECT COUNT(*) FROM adjustments WHERE company_id = $1 AND item_id = $2)
	`

	var count int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, query, companyID, itemID).Scan(&count); err != nil {
		return 0, fmt.Errorf("item event count: %w", err)
	}
	return count, nil
}

// GroupBalance sums cumulative balances over every item of a group.
func (r *StockRepo) GroupBalance(ctx context.Context, companyID, groupID id.ID) (types.Quantity, error) {
	const query = `
		SELECT
			COALESCE((SELECT SUM(o.qty) FROM opening_balances o
				JOIN items i ON i.id = o.item_id
				WHERE o.company_id = $1 AND i.group_id = $2), 0)
			+ COALESCE((SELECT SUM(CASE WHEN t.type = 'IN' THEN t.qty ELSE -t.qty END) FROM transactions t
				JOIN items i ON i.id = t.item_id
				WHERE t.company_id = $1 AND i.group_id = $2), 0)
			+ COALESCE((SELECT SUM(a.qty_delta) FROM adjustments a
				JOIN items i ON i.id = a.item_id
				WHERE a.company_id = $1 AND i.group_id = $2), 0)
	`

	var balance types.Quantity
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, query, companyID, groupID).Scan(&balance); err != nil {
		return types.Zero(), fmt.Errorf("group balance: %w", err)
	}
	return balance, nil
}

// GroupEventCount counts event rows across all items of a group.
func (r *StockRepo) GroupEventCount(ctx context.Context, companyID, groupID id.ID) (int64, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM opening_balances o JOIN items i ON i.id = o.item_id
				WHERE o.company_id = $1 AND i.group_id = $2)
			+ (SELECT COUNT(*) FROM transactions t JOIN items i ON i.id = t.item_id
				WHERE t.company_id = $1 AND i.group_id = $2)
			+ (SELECT COUNT(*) FROM adjustments a JOIN items i ON i.id = a.item_id
				WHERE a.company_id = $1 AND i.group_id = $2)
	`

	var count int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, query, companyID, groupID).Scan(&count); err != nil {
		return 0, fmt.Errorf("group event count: %w", err)
	}
	return count, nil
}

// MinStocks returns min_stock per item for items in scope.
func (r *StockRepo) MinStocks(ctx context.Context, companyID id.ID, sc scope.Scope) (map[id.ID]types.Quantity, error) {
	query := `
		SELECT i.id AS item_id, i.min_stock
		FROM items i
		JOIN item_groups g ON g.id = i.group_id
		WHERE i.company_id = $1
	`
	args := []any{companyID}

	fragment, scopeArgs := postgres.ScopeFragment("g.division_id", sc, len(args)+1)
	query += fragment
	args = append(args, scopeArgs...)

	var rows []struct {
		ItemID   id.ID          `db:"item_id"`
		MinStock types.Quantity `db:"min_stock"`
	}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("min stocks: %w", err)
	}

	out := make(map[id.ID]types.Quantity, len(rows))
	for _, row := range rows {
		out[row.ItemID] = row.MinStock
	}
	return out, nil
}

// DayTotals sums transaction quantities for one date.
func (r *StockRepo) DayTotals(ctx context.Context, companyID id.ID, day dateonly.Date, sc scope.Scope) (stock.DayTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN t.type = 'IN' THEN t.qty ELSE 0 END), 0) AS in_qty,
			COALESCE(SUM(CASE WHEN t.type = 'OUT' THEN t.qty ELSE 0 END), 0) AS out_qty
		FROM transactions t
		JOIN items i ON i.id = t.item_id
		JOIN item_groups g ON g.id = i.group_id
		WHERE t.company_id = $1 AND t.txn_date = $2
	`
	args := []any{companyID, day}

	fragment, scopeArgs := postgres.ScopeFragment("g.division_id", sc, len(args)+1)
	query += fragment
	args = append(args, scopeArgs...)

	var totals stock.DayTotals
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, query, args...).Scan(&totals.In, &totals.Out); err != nil {
		return stock.DayTotals{}, fmt.Errorf("day totals: %w", err)
	}
	return totals, nil
}

// RecentTransactions returns the latest transactions by insertion order.
func (r *StockRepo) RecentTransactions(ctx context.Context, companyID id.ID, sc scope.Scope, limit int) ([]stock.RecentTransaction, error) {
	query := `
		SELECT
			t.id,
			i.name AS item_name,
			g.name AS group_name,
			t.type,
			t.qty,
			t.txn_date,
			COALESCE(u.name, '') AS actor_name,
			t.created_at
		FROM transactions t
		JOIN items i ON i.id = t.item_id
		JOIN item_groups g ON g.id = i.group_id
		LEFT JOIN users u ON u.id = t.created_by
		WHERE t.company_id = $1
	`
	args := []any{companyID}

	fragment, scopeArgs := postgres.ScopeFragment("g.division_id", sc, len(args)+1)
	query += fragment
	args = append(args, scopeArgs...)

	query += fmt.Sprintf(" ORDER BY t.seq DESC LIMIT %d", limit)

	rows := []stock.RecentTransaction{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	return rows, nil
}
