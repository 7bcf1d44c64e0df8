package dto

import (
	"inventaris/internal/core/types"
)

// --- Opening balances ---

// CreateOpeningRequest for POST /openings.
type CreateOpeningRequest struct {
	ItemID       string         `json:"itemId" binding:"required,uuid"`
	Qty          types.Quantity `json:"qty" binding:"required"`
	PricePerUnit *types.Money   `json:"pricePerUnit"`
	Note         *string        `json:"note"`
	OpeningDate  string         `json:"openingDate" binding:"required"`
}

// UpdateOpeningRequest for PUT /openings/:id.
type UpdateOpeningRequest struct {
	ItemID       string         `json:"itemId" binding:"required,uuid"`
	Qty          types.Quantity `json:"qty" binding:"required"`
	PricePerUnit *types.Money   `json:"pricePerUnit"`
	Note         *string        `json:"note"`
	OpeningDate  string         `json:"openingDate" binding:"required"`
}

// --- Transactions ---

// CreateTransactionRequest for POST /transactions.
// PricePerUnit is only legal on IN rows.
type CreateTransactionRequest struct {
	ItemID       string         `json:"itemId" binding:"required,uuid"`
	Type         string         `json:"type" binding:"required,oneof=IN OUT"`
	Qty          types.Quantity `json:"qty" binding:"required"`
	PricePerUnit *types.Money   `json:"pricePerUnit"`
	Note         *string        `json:"note"`
	TxnDate      string         `json:"txnDate" binding:"required"`
}

// TransactionListQuery filters GET /transactions by type.
type TransactionListQuery struct {
	Type string `form:"type" binding:"required,oneof=IN OUT"`
}

// --- Adjustments ---

// CreateAdjustmentRequest for POST /adjustments. QtyDelta is signed.
type CreateAdjustmentRequest struct {
	ItemID   string         `json:"itemId" binding:"required,uuid"`
	QtyDelta types.Quantity `json:"qtyDelta" binding:"required"`
	Note     *string        `json:"note"`
	AdjDate  string         `json:"adjDate" binding:"required"`
}
