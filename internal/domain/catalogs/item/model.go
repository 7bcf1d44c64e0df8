// Package item provides the Item catalog.
//
// Items with the same name and group but different expiry dates are
// distinct stocking units; expiry is part of an item's identity, not an
// attribute of individual movements.
package item

import (
	"context"
	"time"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
)

// Item represents one stocking unit.
type Item struct {
	ID         id.ID          `db:"id" json:"id"`
	CompanyID  id.ID          `db:"company_id" json:"companyId"`
	GroupID    id.ID          `db:"group_id" json:"groupId"`
	Name       string         `db:"name" json:"name"`
	SKU        string         `db:"sku" json:"sku"`
	Unit       *string        `db:"unit" json:"unit,omitempty"`
	ExpiryDate *dateonly.Date `db:"expiry_date" json:"expiryDate,omitempty"`
	MinStock   types.Quantity `db:"min_stock" json:"minStock"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`

	// Populated on reads that join the group and division.
	GroupName    string `db:"group_name" json:"groupName,omitempty"`
	DivisionID   id.ID  `db:"division_id" json:"divisionId,omitempty"`
	DivisionName string `db:"division_name" json:"divisionName,omitempty"`
}

// New creates an Item with a generated ID.
func New(companyID, groupID id.ID, name string) *Item {
	return &Item{
		ID:        id.New(),
		CompanyID: companyID,
		GroupID:   groupID,
		Name:      name,
		MinStock:  types.Zero(),
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks required fields.
func (i *Item) Validate(ctx context.Context) error {
	if i.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if id.IsNil(i.GroupID) {
		return apperror.NewValidation("group_id is required").WithDetail("field", "group_id")
	}
	if id.IsNil(i.CompanyID) {
		return apperror.NewValidation("company_id is required").WithDetail("field", "company_id")
	}
	if i.MinStock.IsNegative() {
		return apperror.NewValidation("min_stock cannot be negative").WithDetail("field", "min_stock")
	}
	return nil
}

// Label renders the item the way ledgers and exports present it:
// "group - name - expiry" with "-" for items without expiry.
func (i *Item) Label() string {
	expiry := "-"
	if i.ExpiryDate != nil && !i.ExpiryDate.IsZero() {
		expiry = i.ExpiryDate.String()
	}
	return i.GroupName + " - " + i.Name + " - " + expiry
}
