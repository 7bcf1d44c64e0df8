// Package report_repo provides the PostgreSQL aggregate query behind
// the balance reconstruction engine.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/reports"
	"inventaris/internal/domain/scope"
	"inventaris/internal/infrastructure/storage/postgres"
)

var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates the repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

// FetchBalanceRows aggregates the three event streams into one row per
// item for the [start, end] window.
//
// Boundary rules, load-bearing and easy to get wrong:
//   - opening rows are summed at opening_date <= start (a reset is
//     effective from its date inclusive)
//   - opening rows dated after start and up to end are summed
//     separately as in-window resets that count toward closing
//   - "before" transaction/adjustment sums are strictly < start, so
//     same-day events at the window start count as period movement
//   - period sums are BETWEEN start AND end
//   - the price is the latest priced IN transaction or opening row
//     dated <= end, ties broken by later date then later seq
//
// Items are enumerated from the items relation via LEFT JOINs, so
// zero-activity items appear with zero aggregates.
func (r *ReportRepo) FetchBalanceRows(ctx context.Context, companyID id.ID, rng dateonly.Range, sc scope.Scope) ([]reports.RawRow, error) {
	query := `
		SELECT
			d.name AS division_name,
			g.name AS group_name,
			i.id AS item_id,
			i.name AS item_name,
			i.expiry_date,
			i.unit,
			COALESCE(ob.qty, 0) AS opening_qty,
			COALESCE(tb.in_qty, 0) AS in_before,
			COALESCE(tb.out_qty, 0) AS out_before,
			COALESCE(ab.qty, 0) AS adj_before,
			COALESCE(ow.qty, 0) AS opening_window,
			COALESCE(tw.in_qty, 0) AS in_qty,
			COALESCE(tw.out_qty, 0) AS out_qty,
			COALESCE(aw.qty, 0) AS adj_qty,
			pp.price AS price_per_unit
		FROM items i
		JOIN item_groups g ON g.id = i.group_id
		JOIN divisions d ON d.id = g.division_id
		LEFT JOIN (
			SELECT item_id, SUM(qty) AS qty
			FROM opening_balances
			WHERE company_id = $1 AND opening_date <= $2
			GROUP BY item_id
		) ob ON ob.item_id = i.id
		LEFT JOIN (
			SELECT item_id,
				SUM(CASE WHEN type = 'IN' THEN qty ELSE 0 END) AS in_qty,
				SUM(CASE WHEN type = 'OUT' THEN qty ELSE 0 END) AS out_qty
			FROM transactions
			WHERE company_id = $1 AND txn_date < $2
			GROUP BY item_id
		) tb ON tb.item_id = i.id
		LEFT JOIN (
			SELECT item_id, SUM(qty_delta) AS qty
			FROM adjustments
			WHERE company_id = $1 AND adj_date < $2
			GROUP BY item_id
		) ab ON ab.item_id = i.id
		LEFT JOIN (
			SELECT item_id, SUM(qty) AS qty
			FROM opening_balances
			WHERE company_id = $1 AND opening_date > $2 AND opening_date <= $3
			GROUP BY item_id
		) ow ON ow.item_id = i.id
		LEFT JOIN (
			SELECT item_id,
				SUM(CASE WHEN type = 'IN' THEN qty ELSE 0 END) AS in_qty,
				SUM(CASE WHEN type = 'OUT' THEN qty ELSE 0 END) AS out_qty
			FROM transactions
			WHERE company_id = $1 AND txn_date BETWEEN $2 AND $3
			GROUP BY item_id
		) tw ON tw.item_id = i.id
		LEFT JOIN (
			SELECT item_id, SUM(qty_delta) AS qty
			FROM adjustments
			WHERE company_id = $1 AND adj_date BETWEEN $2 AND $3
			GROUP BY item_id
		) aw ON aw.item_id = i.id
		LEFT JOIN LATERAL (
			SELECT p.price
			FROM (
				SELECT price_per_unit AS price, txn_date AS event_date, seq
				FROM transactions
				WHERE company_id = $1 AND item_id = i.id
					AND type = 'IN' AND price_per_unit IS NOT NULL
					AND txn_date <= $3
				UNION ALL
				SELECT price_per_unit AS price, opening_date AS event_date, seq
				FROM opening_balances
				WHERE company_id = $1 AND item_id = i.id
					AND price_per_unit IS NOT NULL
					AND opening_date <= $3
			) p
			ORDER BY p.event_date DESC, p.seq DESC
			LIMIT 1
		) pp ON TRUE
		WHERE i.company_id = $1
	`
	args := []any{companyID, rng.Start, rng.End}

	fragment, scopeArgs := postgres.ScopeFragment("g.division_id", sc, len(args)+1)
	query += fragment
	args = append(args, scopeArgs...)

	query += `
		ORDER BY d.name ASC, g.name ASC, i.name ASC, i.expiry_date ASC NULLS FIRST
	`

	rows := []reports.RawRow{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("balance rows: %w", err)
	}
	return rows, nil
}
