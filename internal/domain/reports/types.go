// Package reports provides the balance reconstruction engine.
//
// Stock is never stored as a running total. Every balance is recomputed
// from the raw event streams, which is what keeps concurrent writers
// trivial (plain inserts) and makes the rebuild procedure safe: deleting
// and replacing event rows changes the inputs, and the next
// reconstruction is correct by construction.
package reports

import (
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
)

// RawRow is the per-item aggregate set the repository returns for a
// [start, end] window. "Before" sums cover events strictly before start
// for transactions and adjustments; opening rows are summed at <= start,
// because an opening row is a reset effective from its date inclusive.
type RawRow struct {
	DivisionName string         `db:"division_name"`
	GroupName    string         `db:"group_name"`
	ItemID       id.ID          `db:"item_id"`
	ItemName     string         `db:"item_name"`
	ExpiryDate   *dateonly.Date `db:"expiry_date"`
	Unit         *string        `db:"unit"`

	OpeningQty types.Quantity `db:"opening_qty"`
	InBefore   types.Quantity `db:"in_before"`
	OutBefore  types.Quantity `db:"out_before"`
	AdjBefore  types.Quantity `db:"adj_before"`

	// OpeningWindow sums opening rows dated inside (start, end]. Those
	// rows are in-window resets (a rebuild cutover inside the window
	// produces exactly this shape) and count toward closing, matching
	// the mutation ledger's replay of the same rows.
	OpeningWindow types.Quantity `db:"opening_window"`

	InQty  types.Quantity `db:"in_qty"`
	OutQty types.Quantity `db:"out_qty"`
	AdjQty types.Quantity `db:"adj_qty"`

	// PricePerUnit is the price of the most recent priced event
	// (IN transaction or opening row) dated at or before end.
	PricePerUnit *types.Money `db:"price_per_unit"`
}

// Row is one reconstructed item balance.
type Row struct {
	DivisionName string         `json:"divisionName"`
	GroupName    string         `json:"groupName"`
	ItemID       id.ID          `json:"itemId"`
	ItemName     string         `json:"itemName"`
	ExpiryDate   *dateonly.Date `json:"expiryDate,omitempty"`
	Unit         *string        `json:"unit,omitempty"`

	Opening       types.Quantity `json:"opening"`
	OpeningWindow types.Quantity `json:"openingWindow"`
	InQty         types.Quantity `json:"inQty"`
	OutQty        types.Quantity `json:"outQty"`
	AdjQty        types.Quantity `json:"adjQty"`
	Closing       types.Quantity `json:"closing"`

	PricePerUnit *types.Money `json:"pricePerUnit,omitempty"`
	// StockValue is closing * price, nil while no price has resolved.
	StockValue *types.Money `json:"stockValue,omitempty"`
}

// GroupRows is the per-group slice of a grouped report.
type GroupRows struct {
	Name  string `json:"name"`
	Items []Row  `json:"items"`
}

// DivisionRows is the per-division slice of a grouped report.
type DivisionRows struct {
	Name   string      `json:"name"`
	Groups []GroupRows `json:"groups"`
}
