// Package rebuild implements the opening-balance cutover: history up to
// a cutoff date is collapsed into fresh opening rows, shrinking the
// event streams the balance engine has to scan without changing any
// reconstructed balance on or after the cutoff.
package rebuild

import (
	"context"
	"fmt"
	"time"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/tx"
	"inventaris/internal/domain/events"
	"inventaris/internal/domain/reports"
	"inventaris/internal/domain/scope"
	"inventaris/pkg/logger"
)

// openingNote marks opening rows produced by a cutover.
const openingNote = "Rebuild saldo awal"

// lockTTL bounds how long a crashed rebuild can hold the tenant guard.
const lockTTL = 5 * time.Minute

// Locker is the tenant-level single-flight guard. Acquire returns a
// release function, or a RebuildConflict error when the tenant's guard
// is already held.
type Locker interface {
	Acquire(ctx context.Context, companyID id.ID, ttl time.Duration) (release func(), err error)
}

// Store is the bulk delete+insert surface of the event store. Only the
// rebuild procedure is allowed to use it, and only inside a
// serializable transaction.
type Store interface {
	// DeleteOpeningsThrough removes opening rows dated <= cutoff.
	DeleteOpeningsThrough(ctx context.Context, companyID id.ID, cutoff dateonly.Date) (int64, error)

	// DeleteTransactionsBefore removes transactions dated < cutoff.
	// Rows dated exactly at the cutoff survive as period movement.
	DeleteTransactionsBefore(ctx context.Context, companyID id.ID, cutoff dateonly.Date) (int64, error)

	// DeleteAdjustmentsBefore removes adjustments dated < cutoff.
	DeleteAdjustmentsBefore(ctx context.Context, companyID id.ID, cutoff dateonly.Date) (int64, error)

	// InsertOpenings bulk-inserts the replacement opening rows.
	InsertOpenings(ctx context.Context, rows []events.OpeningBalance) error
}

// Reconstructor is the slice of the balance engine the rebuild uses to
// capture pre-cutover balances.
type Reconstructor interface {
	ReconstructRange(ctx context.Context, companyID id.ID, r dateonly.Range, sc scope.Scope) ([]reports.Row, error)
}

// Result summarizes one cutover.
type Result struct {
	Cutoff              dateonly.Date `json:"cutoff"`
	ItemsSeeded         int           `json:"itemsSeeded"`
	OpeningsDeleted     int64         `json:"openingsDeleted"`
	TransactionsDeleted int64         `json:"transactionsDeleted"`
	AdjustmentsDeleted  int64         `json:"adjustmentsDeleted"`
}

// Service runs cutovers.
type Service struct {
	engine Reconstructor
	store  Store
	txm    tx.SerializableManager
	locker Locker
}

// NewService creates the rebuild service.
func NewService(engine Reconstructor, store Store, txm tx.SerializableManager, locker Locker) *Service {
	return &Service{engine: engine, store: store, txm: txm, locker: locker}
}

// Rebuild collapses all history dated before cutoff into opening rows
// dated at cutoff, one per item with a nonzero balance. Runs under the
// tenant guard and a serializable transaction; any failure rolls the
// whole cutover back.
//
// The invariant: for any window starting at or after cutoff, every
// reconstructed balance is identical before and after the cutover.
// Events dated exactly at cutoff are kept, because the balance captured
// here is the balance at the start of the cutoff day.
func (s *Service) Rebuild(ctx context.Context, companyID id.ID, actorID id.ID, cutoffStr string) (*Result, error) {
	cutoff, err := dateonly.Parse(cutoffStr)
	if err != nil {
		return nil, fmt.Errorf("parse cutoff: %w", err)
	}
	return s.RebuildAt(ctx, companyID, actorID, cutoff)
}

// RebuildAt is Rebuild with a pre-parsed cutoff date.
func (s *Service) RebuildAt(ctx context.Context, companyID id.ID, actorID id.ID, cutoff dateonly.Date) (*Result, error) {
	release, err := s.locker.Acquire(ctx, companyID, lockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	logger.Info(ctx, "rebuild started", "cutoff", cutoff.String())

	var result *Result
	err = s.txm.Serializable(ctx, func(ctx context.Context) error {
		result, err = s.run(ctx, companyID, actorID, cutoff)
		return err
	})
	if err != nil {
		logger.Error(ctx, "rebuild failed", "cutoff", cutoff.String(), "error", err)
		return nil, err
	}

	logger.Info(ctx, "rebuild finished",
		"cutoff", cutoff.String(),
		"items_seeded", result.ItemsSeeded,
		"openings_deleted", result.OpeningsDeleted,
		"transactions_deleted", result.TransactionsDeleted,
		"adjustments_deleted", result.AdjustmentsDeleted,
	)
	return result, nil
}

func (s *Service) run(ctx context.Context, companyID id.ID, actorID id.ID, cutoff dateonly.Date) (*Result, error) {
	// [cutoff, cutoff] makes the reported opening the balance at the
	// start of the cutoff day: all events strictly before cutoff plus
	// opening rows dated <= cutoff. The resolved price rides along.
	rows, err := s.engine.ReconstructRange(ctx, companyID, dateonly.Range{Start: cutoff, End: cutoff}, scope.All())
	if err != nil {
		return nil, fmt.Errorf("capture balances: %w", err)
	}

	openings := make([]events.OpeningBalance, 0, len(rows))
	for _, row := range rows {
		if row.Opening.IsZero() {
			continue
		}
		note := openingNote
		openings = append(openings, events.OpeningBalance{
			ID:           id.New(),
			CompanyID:    companyID,
			ItemID:       row.ItemID,
			Qty:          row.Opening,
			PricePerUnit: row.PricePerUnit,
			Note:         &note,
			OpeningDate:  cutoff,
			CreatedBy:    actorID,
		})
	}

	result := &Result{Cutoff: cutoff, ItemsSeeded: len(openings)}

	if result.OpeningsDeleted, err = s.store.DeleteOpeningsThrough(ctx, companyID, cutoff); err != nil {
		return nil, fmt.Errorf("delete openings: %w", err)
	}
	if result.TransactionsDeleted, err = s.store.DeleteTransactionsBefore(ctx, companyID, cutoff); err != nil {
		return nil, fmt.Errorf("delete transactions: %w", err)
	}
	if result.AdjustmentsDeleted, err = s.store.DeleteAdjustmentsBefore(ctx, companyID, cutoff); err != nil {
		return nil, fmt.Errorf("delete adjustments: %w", err)
	}
	if err = s.store.InsertOpenings(ctx, openings); err != nil {
		return nil, fmt.Errorf("insert openings: %w", err)
	}
	return result, nil
}
