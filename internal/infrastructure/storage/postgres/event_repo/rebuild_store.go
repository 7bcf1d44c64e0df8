package event_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/events"
	"inventaris/internal/domain/rebuild"
	"inventaris/internal/infrastructure/storage/postgres"
)

var _ rebuild.Store = (*RebuildStore)(nil)

// RebuildStore implements the bulk delete+insert surface of the
// cutover. Its methods require an active transaction; the rebuild
// service runs them under SERIALIZABLE isolation.
type RebuildStore struct {
	txm     *postgres.TxManager
	batcher *postgres.BatchInserter
}

// NewRebuildStore creates the store.
func NewRebuildStore(txm *postgres.TxManager) *RebuildStore {
	return &RebuildStore{txm: txm, batcher: postgres.NewBatchInserter(txm)}
}

// DeleteOpeningsThrough removes opening rows dated <= cutoff.
func (s *RebuildStore) DeleteOpeningsThrough(ctx context.Context, companyID id.ID, cutoff dateonly.Date) (int64, error) {
	return s.deleteDated(ctx, companyID, "opening_balances", squirrel.LtOrEq{"opening_date": cutoff})
}

// DeleteTransactionsBefore removes transactions dated < cutoff.
func (s *RebuildStore) DeleteTransactionsBefore(ctx context.Context, companyID id.ID, cutoff dateonly.Date) (int64, error) {
	return s.deleteDated(ctx, companyID, "transactions", squirrel.Lt{"txn_date": cutoff})
}

// DeleteAdjustmentsBefore removes adjustments dated < cutoff.
func (s *RebuildStore) DeleteAdjustmentsBefore(ctx context.Context, companyID id.ID, cutoff dateonly.Date) (int64, error) {
	return s.deleteDated(ctx, companyID, "adjustments", squirrel.Lt{"adj_date": cutoff})
}

func (s *RebuildStore) deleteDated(ctx context.Context, companyID id.ID, table string, datePred squirrel.Sqlizer) (int64, error) {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"company_id": companyID}).
		Where(datePred).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := s.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	return result.RowsAffected(), nil
}

// InsertOpenings bulk-inserts replacement opening rows via COPY.
// seq is left to the shared sequence default.
func (s *RebuildStore) InsertOpenings(ctx context.Context, rows []events.OpeningBalance) error {
	if len(rows) == 0 {
		return nil
	}

	columns := []string{"id", "company_id", "item_id", "qty", "price_per_unit", "note", "opening_date", "created_by", "created_at"}
	values := make([][]any, len(rows))
	now := time.Now().UTC()
	for i, o := range rows {
		createdAt := o.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		values[i] = []any{o.ID, o.CompanyID, o.ItemID, o.Qty, o.PricePerUnit, o.Note, o.OpeningDate, o.CreatedBy, createdAt}
	}

	if _, err := s.batcher.CopyFromSlice(ctx, "opening_balances", columns, values); err != nil {
		return fmt.Errorf("copy openings: %w", err)
	}
	return nil
}
