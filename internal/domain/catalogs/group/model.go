// Package group provides the ItemGroup catalog.
// Every group belongs to exactly one division; items hang off groups.
package group

import (
	"context"
	"time"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/id"
)

// Group represents an item group within a division.
type Group struct {
	ID          id.ID     `db:"id" json:"id"`
	CompanyID   id.ID     `db:"company_id" json:"companyId"`
	DivisionID  id.ID     `db:"division_id" json:"divisionId"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	// DivisionName is populated on reads that join the division.
	DivisionName string `db:"division_name" json:"divisionName,omitempty"`
}

// New creates a Group with a generated ID.
func New(companyID, divisionID id.ID, name string) *Group {
	return &Group{
		ID:         id.New(),
		CompanyID:  companyID,
		DivisionID: divisionID,
		Name:       name,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate checks required fields.
func (g *Group) Validate(ctx context.Context) error {
	if g.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if id.IsNil(g.DivisionID) {
		return apperror.NewValidation("division_id is required").WithDetail("field", "division_id")
	}
	if id.IsNil(g.CompanyID) {
		return apperror.NewValidation("company_id is required").WithDetail("field", "company_id")
	}
	return nil
}
