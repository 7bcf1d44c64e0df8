// Package stock aggregates current balances from the event streams and
// owns the deletion guards that keep the catalog consistent with
// history.
package stock

import (
	"context"
	"fmt"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
	"inventaris/internal/domain/reports"
	"inventaris/internal/domain/scope"
)

// epoch is the lower bound for cumulative reconstruction. Every event
// in the store is dated after it, so a reconstruction over
// [epoch, today] has empty "before" aggregates and its closing is the
// cumulative balance.
var epoch = dateonly.MustParse("1970-01-01")

// Reconstructor is the slice of the balance engine the aggregator uses.
type Reconstructor interface {
	ReconstructRange(ctx context.Context, companyID id.ID, r dateonly.Range, sc scope.Scope) ([]reports.Row, error)
}

// LowStockRow is one item at or below its minimum stock level.
type LowStockRow struct {
	ItemID       id.ID          `json:"itemId"`
	ItemName     string         `json:"itemName"`
	GroupName    string         `json:"groupName"`
	DivisionName string         `json:"divisionName"`
	Qty          types.Quantity `json:"qty"`
	MinStock     types.Quantity `json:"minStock"`
}

// Dashboard is the landing-page aggregate set.
type Dashboard struct {
	TotalItems int                 `json:"totalItems"`
	TotalQty   types.Quantity      `json:"totalQty"`
	TotalValue types.Money         `json:"totalValue"`
	TodayIn    types.Quantity      `json:"todayIn"`
	TodayOut   types.Quantity      `json:"todayOut"`
	LowStock   []LowStockRow       `json:"lowStock"`
	Recent     []RecentTransaction `json:"recent"`
}

// recentLimit caps the dashboard activity feed.
const recentLimit = 10

// Service is the current stock aggregator.
type Service struct {
	engine Reconstructor
	repo   Repository
}

// NewService creates the aggregator.
func NewService(engine Reconstructor, repo Repository) *Service {
	return &Service{engine: engine, repo: repo}
}

// Current reconstructs every visible item's cumulative balance as of
// today. Zero-activity items are included with zero balances.
func (s *Service) Current(ctx context.Context, companyID id.ID, sc scope.Scope) ([]reports.Row, error) {
	return s.engine.ReconstructRange(ctx, companyID, dateonly.Range{Start: epoch, End: dateonly.Today()}, sc)
}

// CurrentMap returns current balances keyed by item.
func (s *Service) CurrentMap(ctx context.Context, companyID id.ID, sc scope.Scope) (map[id.ID]types.Quantity, error) {
	rows, err := s.Current(ctx, companyID, sc)
	if err != nil {
		return nil, err
	}
	out := make(map[id.ID]types.Quantity, len(rows))
	for _, row := range rows {
		out[row.ItemID] = row.Closing
	}
	return out, nil
}

// LowStock returns items whose current balance is at or below their
// minimum stock level. The predicate is qty <= min_stock with no
// special case: an item with a zero minimum and zero stock is low.
func (s *Service) LowStock(ctx context.Context, companyID id.ID, sc scope.Scope) ([]LowStockRow, error) {
	rows, err := s.Current(ctx, companyID, sc)
	if err != nil {
		return nil, err
	}
	return s.lowStockFrom(ctx, companyID, sc, rows)
}

func (s *Service) lowStockFrom(ctx context.Context, companyID id.ID, sc scope.Scope, rows []reports.Row) ([]LowStockRow, error) {
	minimums, err := s.repo.MinStocks(ctx, companyID, sc)
	if err != nil {
		return nil, fmt.Errorf("fetch min stocks: %w", err)
	}

	low := []LowStockRow{}
	for _, row := range rows {
		min, ok := minimums[row.ItemID]
		if !ok {
			continue
		}
		if row.Closing.LessThanOrEqual(min) {
			low = append(low, LowStockRow{
				ItemID:       row.ItemID,
				ItemName:     row.ItemName,
				GroupName:    row.GroupName,
				DivisionName: row.DivisionName,
				Qty:          row.Closing,
				MinStock:     min,
			})
		}
	}
	return low, nil
}

// Dashboard assembles the landing-page aggregates in one call.
func (s *Service) Dashboard(ctx context.Context, companyID id.ID, sc scope.Scope) (*Dashboard, error) {
	rows, err := s.Current(ctx, companyID, sc)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalItems: len(rows),
		TotalQty:   types.Zero(),
		TotalValue: types.Zero(),
	}
	for _, row := range rows {
		d.TotalQty = d.TotalQty.Add(row.Closing)
		if row.StockValue != nil {
			d.TotalValue = d.TotalValue.Add(*row.StockValue)
		}
	}

	d.LowStock, err = s.lowStockFrom(ctx, companyID, sc, rows)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.DayTotals(ctx, companyID, dateonly.Today(), sc)
	if err != nil {
		return nil, fmt.Errorf("fetch day totals: %w", err)
	}
	d.TodayIn = totals.In
	d.TodayOut = totals.Out

	d.Recent, err = s.repo.RecentTransactions(ctx, companyID, sc, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent transactions: %w", err)
	}
	return d, nil
}

// EnsureItemDeletable blocks deletion of an item that still holds
// stock or has any historical event. The two guards are independent
// and report distinct reasons; nonzero stock is checked first.
func (s *Service) EnsureItemDeletable(ctx context.Context, companyID, itemID id.ID) error {
	balance, err := s.repo.ItemBalance(ctx, companyID, itemID)
	if err != nil {
		return fmt.Errorf("item balance: %w", err)
	}
	if !balance.IsZero() {
		return apperror.NewDeletionBlocked("item", apperror.DeletionReasonStock)
	}

	count, err := s.repo.ItemEventCount(ctx, companyID, itemID)
	if err != nil {
		return fmt.Errorf("item event count: %w", err)
	}
	if count > 0 {
		return apperror.NewDeletionBlocked("item", apperror.DeletionReasonHistory)
	}
	return nil
}

// EnsureGroupDeletable is the group-level counterpart: blocked while
// any item in the group holds stock or any event references them.
func (s *Service) EnsureGroupDeletable(ctx context.Context, companyID, groupID id.ID) error {
	balance, err := s.repo.GroupBalance(ctx, companyID, groupID)
	if err != nil {
		return fmt.Errorf("group balance: %w", err)
	}
	if !balance.IsZero() {
		return apperror.NewDeletionBlocked("group", apperror.DeletionReasonStock)
	}

	count, err := s.repo.GroupEventCount(ctx, companyID, groupID)
	if err != nil {
		return fmt.Errorf("group event count: %w", err)
	}
	if count > 0 {
		return apperror.NewDeletionBlocked("group", apperror.DeletionReasonHistory)
	}
	return nil
}
