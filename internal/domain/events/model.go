// Package events provides the three append-only event streams the
// balance engine reconstructs from: opening balances, inbound/outbound
// transactions, and manual adjustments.
//
// Events are append-only from the engine's perspective. The only
// sanctioned bulk delete+insert path is the rebuild procedure.
package events

import (
	"context"
	"time"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
)

// TxnType discriminates inbound from outbound transactions.
type TxnType string

const (
	TxnIn  TxnType = "IN"
	TxnOut TxnType = "OUT"
)

// Kind identifies an event in the merged ledger stream.
type Kind string

const (
	KindIn      Kind = "IN"
	KindOut     Kind = "OUT"
	KindAdj     Kind = "ADJ"
	KindOpening Kind = "OPENING"
)

// OpeningBalance establishes a known-correct stock level as of a date.
// Multiple opening rows per item accumulate additively; successive
// rebuild cutovers produce exactly this shape.
type OpeningBalance struct {
	ID           id.ID          `db:"id" json:"id"`
	Seq          int64          `db:"seq" json:"-"`
	CompanyID    id.ID          `db:"company_id" json:"companyId"`
	ItemID       id.ID          `db:"item_id" json:"itemId"`
	Qty          types.Quantity `db:"qty" json:"qty"`
	PricePerUnit *types.Money   `db:"price_per_unit" json:"pricePerUnit,omitempty"`
	Note         *string        `db:"note" json:"note,omitempty"`
	OpeningDate  dateonly.Date  `db:"opening_date" json:"openingDate"`
	CreatedBy    id.ID          `db:"created_by" json:"createdBy"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
}

// Validate checks an opening balance before insert.
func (o *OpeningBalance) Validate(ctx context.Context) error {
	if id.IsNil(o.ItemID) {
		return apperror.NewValidation("item_id is required").WithDetail("field", "item_id")
	}
	if o.OpeningDate.IsZero() {
		return apperror.NewValidation("opening_date is required").WithDetail("field", "opening_date")
	}
	return nil
}

// Transaction is an inbound or outbound stock movement.
// Qty is unsigned; the sign comes from Type.
type Transaction struct {
	ID           id.ID          `db:"id" json:"id"`
	Seq          int64          `db:"seq" json:"-"`
	CompanyID    id.ID          `db:"company_id" json:"companyId"`
	ItemID       id.ID          `db:"item_id" json:"itemId"`
	Type         TxnType        `db:"type" json:"type"`
	Qty          types.Quantity `db:"qty" json:"qty"`
	PricePerUnit *types.Money   `db:"price_per_unit" json:"pricePerUnit,omitempty"`
	ProofPath    *string        `db:"proof_path" json:"proofPath,omitempty"`
	Note         *string        `db:"note" json:"note,omitempty"`
	TxnDate      dateonly.Date  `db:"txn_date" json:"txnDate"`
	CreatedBy    id.ID          `db:"created_by" json:"createdBy"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
}

// Validate checks a transaction before insert.
func (t *Transaction) Validate(ctx context.Context) error {
	if id.IsNil(t.ItemID) {
		return apperror.NewValidation("item_id is required").WithDetail("field", "item_id")
	}
	if t.Type != TxnIn && t.Type != TxnOut {
		return apperror.NewValidation("type must be IN or OUT").WithDetail("field", "type")
	}
	if t.Qty.IsNegative() {
		return apperror.NewValidation("qty cannot be negative").WithDetail("field", "qty")
	}
	if t.Type == TxnOut && t.PricePerUnit != nil {
		return apperror.NewValidation("price_per_unit applies to IN transactions only").
			WithDetail("field", "price_per_unit")
	}
	if t.TxnDate.IsZero() {
		return apperror.NewValidation("txn_date is required").WithDetail("field", "txn_date")
	}
	return nil
}

// Adjustment is a signed manual correction applied directly to stock.
type Adjustment struct {
	ID        id.ID          `db:"id" json:"id"`
	Seq       int64          `db:"seq" json:"-"`
	CompanyID id.ID          `db:"company_id" json:"companyId"`
	ItemID    id.ID          `db:"item_id" json:"itemId"`
	QtyDelta  types.Quantity `db:"qty_delta" json:"qtyDelta"`
	ProofPath *string        `db:"proof_path" json:"proofPath,omitempty"`
	Note      *string        `db:"note" json:"note,omitempty"`
	AdjDate   dateonly.Date  `db:"adj_date" json:"adjDate"`
	CreatedBy id.ID          `db:"created_by" json:"createdBy"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

// Validate checks an adjustment before insert.
func (a *Adjustment) Validate(ctx context.Context) error {
	if id.IsNil(a.ItemID) {
		return apperror.NewValidation("item_id is required").WithDetail("field", "item_id")
	}
	if a.AdjDate.IsZero() {
		return apperror.NewValidation("adj_date is required").WithDetail("field", "adj_date")
	}
	return nil
}

// Event is one entry of the merged chronological stream the mutation
// ledger replays. Qty carries the stored magnitude: unsigned for IN/OUT
// (the kind supplies the sign), signed for ADJ, signed for OPENING.
type Event struct {
	ItemID    id.ID          `db:"item_id" json:"itemId"`
	EventDate dateonly.Date  `db:"event_date" json:"eventDate"`
	Kind      Kind           `db:"kind" json:"kind"`
	Qty       types.Quantity `db:"qty" json:"qty"`
	Note      *string        `db:"note" json:"note,omitempty"`
	Seq       int64          `db:"seq" json:"-"`
	ActorName string         `db:"actor_name" json:"actorName"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`

	// Item identity, joined in so items seen only through events can
	// still be labelled.
	ItemName     string         `db:"item_name" json:"itemName"`
	GroupName    string         `db:"group_name" json:"groupName"`
	DivisionName string         `db:"division_name" json:"divisionName"`
	ExpiryDate   *dateonly.Date `db:"expiry_date" json:"expiryDate,omitempty"`
	Unit         *string        `db:"unit" json:"unit,omitempty"`
}

// Delta returns the signed quantity this event applies to a running
// balance: +qty for IN and OPENING resets, -qty for OUT, the raw signed
// delta for ADJ.
func (e Event) Delta() types.Quantity {
	if e.Kind == KindOut {
		return e.Qty.Neg()
	}
	return e.Qty
}
