package event_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"inventaris/internal/core/id"
	"inventaris/internal/domain/events"
	"inventaris/internal/infrastructure/storage/postgres"
)

// ListMerged returns the merged chronological stream of all three event
// kinds for the ledger replay.
//
// Window semantics differ per kind: transactions and adjustments are
// taken in [Start, End], opening rows only in (Start, End]. Rows at or
// before Start are already part of the reconstructed opening seed.
// Ordering is (event_date, seq) ascending; seq is globally unique
// across the three tables, so replay order is deterministic.
func (r *EventRepo) ListMerged(ctx context.Context, companyID id.ID, f events.MergedFilter) ([]events.Event, error) {
	query := `
		SELECT
			e.item_id,
			e.event_date,
			e.kind,
			e.qty,
			e.note,
			e.seq,
			COALESCE(u.name, '') AS actor_name,
			e.created_at,
			i.name AS item_name,
			g.name AS group_name,
			d.name AS division_name,
			i.expiry_date,
			i.unit
		FROM (
			SELECT item_id, opening_date AS event_date, 'OPENING' AS kind,
				qty, note, seq, created_at, created_by
			FROM opening_balances
			WHERE company_id = $1 AND opening_date > $2 AND opening_date <= $3
			UNION ALL
			SELECT item_id, txn_date AS event_date, type AS kind,
				qty, note, seq, created_at, created_by
			FROM transactions
			WHERE company_id = $1 AND txn_date BETWEEN $2 AND $3
			UNION ALL
			SELECT item_id, adj_date AS event_date, 'ADJ' AS kind,
				qty_delta AS qty, note, seq, created_at, created_by
			FROM adjustments
			WHERE company_id = $1 AND adj_date BETWEEN $2 AND $3
		) e
		JOIN items i ON i.id = e.item_id
		JOIN item_groups g ON g.id = i.group_id
		JOIN divisions d ON d.id = g.division_id
		LEFT JOIN users u ON u.id = e.created_by
		WHERE TRUE
	`
	args := []any{companyID, f.Start, f.End}

	fragment, scopeArgs := postgres.ScopeFragment("g.division_id", f.Scope, len(args)+1)
	query += fragment
	args = append(args, scopeArgs...)

	if f.ItemID != nil {
		query += fmt.Sprintf(" AND e.item_id = $%d", len(args)+1)
		args = append(args, *f.ItemID)
	}

	query += `
		ORDER BY e.event_date ASC, e.seq ASC
	`

	evts := []events.Event{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &evts, query, args...); err != nil {
		return nil, fmt.Errorf("merged events: %w", err)
	}
	return evts, nil
}
