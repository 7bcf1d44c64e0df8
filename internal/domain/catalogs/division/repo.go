package division

import (
	"context"

	"inventaris/internal/core/id"
	"inventaris/internal/domain/scope"
)

// Repository defines the interface for Division persistence.
// Every method is company-scoped; queries must filter by company_id first.
type Repository interface {
	Create(ctx context.Context, d *Division) error
	Update(ctx context.Context, d *Division) error
	Delete(ctx context.Context, companyID, divisionID id.ID) error

	GetByID(ctx context.Context, companyID, divisionID id.ID) (*Division, error)
	GetByName(ctx context.Context, companyID id.ID, name string) (*Division, error)

	// List returns divisions visible under the caller's scope,
	// ordered by name.
	List(ctx context.Context, companyID id.ID, sc scope.Scope) ([]Division, error)

	// GroupCount returns how many item groups reference the division.
	// Divisions with groups cannot be deleted.
	GroupCount(ctx context.Context, companyID, divisionID id.ID) (int64, error)
}
