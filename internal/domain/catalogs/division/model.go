// Package division provides the Division catalog.
// A division is the sub-organization within a company that access
// restriction is keyed on: restricted admins see an explicit set of
// divisions, owners see all of them.
package division

import (
	"context"
	"time"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/id"
)

// Division represents one division of a company.
type Division struct {
	ID          id.ID     `db:"id" json:"id"`
	CompanyID   id.ID     `db:"company_id" json:"companyId"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// New creates a Division with a generated ID.
func New(companyID id.ID, name string) *Division {
	return &Division{
		ID:        id.New(),
		CompanyID: companyID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks required fields.
func (d *Division) Validate(ctx context.Context) error {
	if d.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if id.IsNil(d.CompanyID) {
		return apperror.NewValidation("company_id is required").WithDetail("field", "company_id")
	}
	return nil
}
