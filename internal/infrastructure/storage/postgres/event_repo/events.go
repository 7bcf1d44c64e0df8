// Package event_repo provides PostgreSQL persistence for the three
// event streams: opening balances, transactions, adjustments.
//
// The seq column is filled from a single shared sequence across all
// three tables, so it is a global insertion-order tie-break for the
// merged stream.
package event_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/events"
	"inventaris/internal/domain/scope"
	"inventaris/internal/infrastructure/storage/postgres"
)

var _ events.Repository = (*EventRepo)(nil)

// EventRepo implements events.Repository.
type EventRepo struct {
	txm *postgres.TxManager
}

// NewEventRepo creates the repository.
func NewEventRepo(txm *postgres.TxManager) *EventRepo {
	return &EventRepo{txm: txm}
}

// --- Opening balances ---

// CreateOpening inserts an opening balance row. seq comes from the
// shared event sequence.
func (r *EventRepo) CreateOpening(ctx context.Context, o *events.OpeningBalance) error {
	sql, args, err := postgres.Builder().
		Insert("opening_balances").
		Columns("id", "company_id", "item_id", "qty", "price_per_unit", "note", "opening_date", "created_by", "created_at").
		Values(o.ID, o.CompanyID, o.ItemID, o.Qty, o.PricePerUnit, o.Note, o.OpeningDate, o.CreatedBy, o.CreatedAt).
		Suffix("RETURNING seq").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&o.Seq); err != nil {
		return fmt.Errorf("insert opening: %w", err)
	}
	return nil
}

// GetOpening fetches one opening row by ID.
func (r *EventRepo) GetOpening(ctx context.Context, companyID, openingID id.ID) (*events.OpeningBalance, error) {
	sql, args, err := postgres.Builder().
		Select("id", "seq", "company_id", "item_id", "qty", "price_per_unit",
			"note", "opening_date", "created_by", "created_at").
		From("opening_balances").
		Where(squirrel.Eq{"id": openingID, "company_id": companyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var o events.OpeningBalance
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &o, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("opening balance", openingID.String())
		}
		return nil, fmt.Errorf("get opening: %w", err)
	}
	return &o, nil
}

// UpdateOpening modifies qty, price, note, and date of an opening row.
func (r *EventRepo) UpdateOpening(ctx context.Context, o *events.OpeningBalance) error {
	sql, args, err := postgres.Builder().
		Update("opening_balances").
		Set("qty", o.Qty).
		Set("price_per_unit", o.PricePerUnit).
		Set("note", o.Note).
		Set("opening_date", o.OpeningDate).
		Where(squirrel.Eq{"id": o.ID, "company_id": o.CompanyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update opening: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("opening balance", o.ID.String())
	}
	return nil
}

// DeleteOpening removes an opening row.
func (r *EventRepo) DeleteOpening(ctx context.Context, companyID, openingID id.ID) error {
	return r.deleteByID(ctx, "opening_balances", "opening balance", companyID, openingID)
}

// ListOpenings returns opening rows for items in scope,
// newest first with seq as the tie-break.
func (r *EventRepo) ListOpenings(ctx context.Context, companyID id.ID, sc scope.Scope) ([]events.OpeningBalance, error) {
	q := postgres.Builder().
		Select("o.id", "o.seq", "o.company_id", "o.item_id", "o.qty", "o.price_per_unit",
			"o.note", "o.opening_date", "o.created_by", "o.created_at").
		From("opening_balances o").
		Join("items i ON i.id = o.item_id").
		Join("item_groups g ON g.id = i.group_id").
		Where(squirrel.Eq{"o.company_id": companyID}).
		OrderBy("o.opening_date DESC", "o.seq DESC")
	q = postgres.ApplyScope(q, "g.division_id", sc)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows := []events.OpeningBalance{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list openings: %w", err)
	}
	return rows, nil
}

// --- Transactions ---

// CreateTransaction inserts a transaction row.
func (r *EventRepo) CreateTransaction(ctx context.Context, t *events.Transaction) error {
	sql, args, err := postgres.Builder().
		Insert("transactions").
		Columns("id", "company_id", "item_id", "type", "qty", "price_per_unit", "proof_path", "note", "txn_date", "created_by", "created_at").
		Values(t.ID, t.CompanyID, t.ItemID, t.Type, t.Qty, t.PricePerUnit, t.ProofPath, t.Note, t.TxnDate, t.CreatedBy, t.CreatedAt).
		Suffix("RETURNING seq").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&t.Seq); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListTransactions returns transactions for items in scope, optionally
// restricted by type, newest first.
func (r *EventRepo) ListTransactions(ctx context.Context, companyID id.ID, txnType events.TxnType, sc scope.Scope) ([]events.Transaction, error) {
	q := postgres.Builder().
		Select("t.id", "t.seq", "t.company_id", "t.item_id", "t.type", "t.qty", "t.price_per_unit",
			"t.proof_path", "t.note", "t.txn_date", "t.created_by", "t.created_at").
		From("transactions t").
		Join("items i ON i.id = t.item_id").
		Join("item_groups g ON g.id = i.group_id").
		Where(squirrel.Eq{"t.company_id": companyID}).
		OrderBy("t.txn_date DESC", "t.seq DESC")
	if txnType != "" {
		q = q.Where(squirrel.Eq{"t.type": txnType})
	}
	q = postgres.ApplyScope(q, "g.division_id", sc)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows := []events.Transaction{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return rows, nil
}

// --- Adjustments ---

// CreateAdjustment inserts an adjustment row.
func (r *EventRepo) CreateAdjustment(ctx context.Context, a *events.Adjustment) error {
	sql, args, err := postgres.Builder().
		Insert("adjustments").
		Columns("id", "company_id", "item_id", "qty_delta", "proof_path", "note", "adj_date", "created_by", "created_at").
		Values(a.ID, a.CompanyID, a.ItemID, a.QtyDelta, a.ProofPath, a.Note, a.AdjDate, a.CreatedBy, a.CreatedAt).
		Suffix("RETURNING seq").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&a.Seq); err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// ListAdjustments returns adjustments for items in scope, newest first.
func (r *EventRepo) ListAdjustments(ctx context.Context, companyID id.ID, sc scope.Scope) ([]events.Adjustment, error) {
	q := postgres.Builder().
		Select("a.id", "a.seq", "a.company_id", "a.item_id", "a.qty_delta",
			"a.proof_path", "a.note", "a.adj_date", "a.created_by", "a.created_at").
		From("adjustments a").
		Join("items i ON i.id = a.item_id").
		Join("item_groups g ON g.id = i.group_id").
		Where(squirrel.Eq{"a.company_id": companyID}).
		OrderBy("a.adj_date DESC", "a.seq DESC")
	q = postgres.ApplyScope(q, "g.division_id", sc)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows := []events.Adjustment{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	return rows, nil
}

// ItemDivision resolves the division owning an item.
func (r *EventRepo) ItemDivision(ctx context.Context, companyID, itemID id.ID) (id.ID, error) {
	sql, args, err := postgres.Builder().
		Select("g.division_id").
		From("items i").
		Join("item_groups g ON g.id = i.group_id").
		Where(squirrel.Eq{"i.id": itemID, "i.company_id": companyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return id.Nil(), fmt.Errorf("build query: %w", err)
	}

	var divisionID id.ID
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&divisionID); err != nil {
		if pgxscan.NotFound(err) {
			return id.Nil(), apperror.NewNotFound("item", itemID.String())
		}
		return id.Nil(), fmt.Errorf("resolve item division: %w", err)
	}
	return divisionID, nil
}

func (r *EventRepo) deleteByID(ctx context.Context, table, entity string, companyID, rowID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": rowID, "company_id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", entity, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(entity, rowID.String())
	}
	return nil
}
