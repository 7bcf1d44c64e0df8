package events

import (
	"context"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/scope"
)

// MergedFilter selects events for the merged ledger stream.
//
// Transactions and adjustments are taken with dates in [Start, End].
// Opening rows are taken with dates in (Start, End] only: rows at or
// before Start are already folded into the reconstructed opening seed,
// while later rows represent in-window resets that must replay as
// ledger entries.
type MergedFilter struct {
	Start dateonly.Date
	End   dateonly.Date
	Scope scope.Scope

	// ItemID restricts the stream to one item when set.
	ItemID *id.ID
}

// Repository defines persistence for the three event streams.
// Transactions and adjustments are append-only: once written, only the
// rebuild cutover may remove them. Opening rows alone are editable and
// deletable, because they are corrections, not movements.
type Repository interface {
	// Opening balances

	CreateOpening(ctx context.Context, o *OpeningBalance) error
	GetOpening(ctx context.Context, companyID, openingID id.ID) (*OpeningBalance, error)
	UpdateOpening(ctx context.Context, o *OpeningBalance) error
	DeleteOpening(ctx context.Context, companyID, openingID id.ID) error
	ListOpenings(ctx context.Context, companyID id.ID, sc scope.Scope) ([]OpeningBalance, error)

	// Transactions

	CreateTransaction(ctx context.Context, t *Transaction) error
	ListTransactions(ctx context.Context, companyID id.ID, txnType TxnType, sc scope.Scope) ([]Transaction, error)

	// Adjustments

	CreateAdjustment(ctx context.Context, a *Adjustment) error
	ListAdjustments(ctx context.Context, companyID id.ID, sc scope.Scope) ([]Adjustment, error)

	// ListMerged returns the merged chronological stream of all three
	// event kinds for items in scope, ordered by (event_date, seq).
	// The seq tie-break makes replay order deterministic when several
	// events share a date.
	ListMerged(ctx context.Context, companyID id.ID, f MergedFilter) ([]Event, error)

	// ItemDivision resolves the division owning an item, for access checks.
	ItemDivision(ctx context.Context, companyID, itemID id.ID) (id.ID, error)
}
