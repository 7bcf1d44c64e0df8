package stock

import (
	"context"
	"time"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
	"inventaris/internal/domain/scope"
)

// RecentTransaction is one row of the dashboard's recent-activity feed.
type RecentTransaction struct {
	ID        id.ID          `db:"id" json:"id"`
	ItemName  string         `db:"item_name" json:"itemName"`
	GroupName string         `db:"group_name" json:"groupName"`
	Type      string         `db:"type" json:"type"`
	Qty       types.Quantity `db:"qty" json:"qty"`
	TxnDate   dateonly.Date  `db:"txn_date" json:"txnDate"`
	ActorName string         `db:"actor_name" json:"actorName"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

// DayTotals are the summed inbound and outbound quantities of one day.
type DayTotals struct {
	In  types.Quantity `db:"in_qty"`
	Out types.Quantity `db:"out_qty"`
}

// Repository supplies the aggregates the stock service cannot derive
// from the reconstruction engine alone.
type Repository interface {
	// ItemBalance returns the cumulative balance of one item across all
	// dates: sum of openings plus inbound minus outbound plus adjustments.
	ItemBalance(ctx context.Context, companyID, itemID id.ID) (types.Quantity, error)

	// ItemEventCount counts the item's rows across all three event streams.
	ItemEventCount(ctx context.Context, companyID, itemID id.ID) (int64, error)

	// GroupBalance returns the cumulative balance summed over every item
	// in the group.
	GroupBalance(ctx context.Context, companyID, groupID id.ID) (types.Quantity, error)

	// GroupEventCount counts event rows across all items of the group.
	GroupEventCount(ctx context.Context, companyID, groupID id.ID) (int64, error)

	// MinStocks returns min_stock per item for items visible under the
	// scope, for low-stock detection.
	MinStocks(ctx context.Context, companyID id.ID, sc scope.Scope) (map[id.ID]types.Quantity, error)

	// DayTotals sums transaction quantities for one date.
	DayTotals(ctx context.Context, companyID id.ID, day dateonly.Date, sc scope.Scope) (DayTotals, error)

	// RecentTransactions returns the latest transactions by insertion
	// order, newest first.
	RecentTransactions(ctx context.Context, companyID id.ID, sc scope.Scope, limit int) ([]RecentTransaction, error)
}
