package item

import (
	"context"

	"inventaris/internal/core/id"
	"inventaris/internal/domain/scope"
)

// Repository defines the interface for Item persistence.
type Repository interface {
	Create(ctx context.Context, i *Item) error
	Update(ctx context.Context, i *Item) error
	Delete(ctx context.Context, companyID, itemID id.ID) error

	// GetByID returns an item with its group and division joined in.
	GetByID(ctx context.Context, companyID, itemID id.ID) (*Item, error)

	// List returns items whose division is visible under the scope,
	// ordered by (division name, group name, item name, expiry).
	List(ctx context.Context, companyID id.ID, sc scope.Scope) ([]Item, error)

	// GroupDivision resolves the division owning a group, for access checks.
	GroupDivision(ctx context.Context, companyID, groupID id.ID) (id.ID, error)
}
