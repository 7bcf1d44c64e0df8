package backup

import (
	"context"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/catalogs/division"
	"inventaris/internal/domain/catalogs/group"
	"inventaris/internal/domain/catalogs/item"
	"inventaris/internal/domain/events"
)

// Repository reads tenant-scoped relation dumps. Event relations are
// returned chronologically with seq as the tie-break, so a restored
// store replays in the same order it was written.
type Repository interface {
	FetchDivisions(ctx context.Context, companyID id.ID) ([]division.Division, error)
	FetchGroups(ctx context.Context, companyID id.ID) ([]group.Group, error)
	FetchItems(ctx context.Context, companyID id.ID) ([]item.Item, error)
	FetchOpenings(ctx context.Context, companyID id.ID, r dateonly.Range) ([]events.OpeningBalance, error)
	FetchTransactions(ctx context.Context, companyID id.ID, r dateonly.Range) ([]events.Transaction, error)
	FetchAdjustments(ctx context.Context, companyID id.ID, r dateonly.Range) ([]events.Adjustment, error)
}
