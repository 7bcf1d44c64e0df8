// Package mutations builds the mutation ledger: every stock event in a
// window replayed chronologically on top of the reconstructed opening
// balance, yielding an audit trail with a running balance.
package mutations

import (
	"time"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
)

// RowType identifies a ledger row. The opening seed keeps its
// historical label, which exports print verbatim.
type RowType string

const (
	RowOpeningSeed RowType = "SALDO AWAL"
	RowIn          RowType = "IN"
	RowOut         RowType = "OUT"
	RowAdj         RowType = "ADJ"
	RowOpening     RowType = "OPENING"
)

// Row is one ledger line. Balance is the running balance after the
// row's delta has been applied.
type Row struct {
	ItemLabel string         `json:"itemLabel"`
	EventDate dateonly.Date  `json:"eventDate"`
	Type      RowType        `json:"type"`
	Qty       types.Quantity `json:"qty"`
	Balance   types.Quantity `json:"balance"`
	Note      string         `json:"note"`
	Actor     string         `json:"actor"`
	CreatedAt *time.Time     `json:"createdAt,omitempty"`
}

// ItemInfo is the identity block of one item's ledger.
type ItemInfo struct {
	ItemID       id.ID          `json:"itemId"`
	DivisionName string         `json:"divisionName"`
	GroupName    string         `json:"groupName"`
	ItemName     string         `json:"itemName"`
	ExpiryDate   *dateonly.Date `json:"expiryDate,omitempty"`
	Unit         *string        `json:"unit,omitempty"`
	Opening      types.Quantity `json:"opening"`
	Label        string         `json:"label"`
}

// ItemLedger is one item's seed row plus movement rows.
type ItemLedger struct {
	Item ItemInfo `json:"item"`
	Rows []Row    `json:"rows"`
}

// Ledger carries both presentations: per-item groups and the flattened
// order-preserving concatenation. Items appear in report order.
type Ledger struct {
	Items []ItemLedger `json:"items"`
	Flat  []Row        `json:"flat"`
}
