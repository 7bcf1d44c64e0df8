package group

import (
	"context"

	"inventaris/internal/core/id"
	"inventaris/internal/domain/scope"
)

// Repository defines the interface for ItemGroup persistence.
type Repository interface {
	Create(ctx context.Context, g *Group) error
	Update(ctx context.Context, g *Group) error
	Delete(ctx context.Context, companyID, groupID id.ID) error

	GetByID(ctx context.Context, companyID, groupID id.ID) (*Group, error)
	GetByName(ctx context.Context, companyID, divisionID id.ID, name string) (*Group, error)

	// List returns groups whose owning division is visible under the
	// scope, ordered by (division name, group name).
	List(ctx context.Context, companyID id.ID, sc scope.Scope) ([]Group, error)

	// ItemCount returns how many items the group owns.
	ItemCount(ctx context.Context, companyID, groupID id.ID) (int64, error)
}
