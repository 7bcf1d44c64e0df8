package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
	"inventaris/internal/domain/reports"
	"inventaris/internal/domain/scope"
)

type fakeEngine struct {
	rows     []reports.Row
	gotRange dateonly.Range
}

func (f *fakeEngine) ReconstructRange(ctx context.Context, companyID id.ID, r dateonly.Range, sc scope.Scope) ([]reports.Row, error) {
	f.gotRange = r
	return f.rows, nil
}

type fakeRepo struct {
	itemBalance  types.Quantity
	itemCount    int64
	groupBalance types.Quantity
	groupCount   int64
	minStocks    map[id.ID]types.Quantity
	dayTotals    DayTotals
	recent       []RecentTransaction
}

func (f *fakeRepo) ItemBalance(ctx context.Context, companyID, itemID id.ID) (types.Quantity, error) {
	return f.itemBalance, nil
}

func (f *fakeRepo) ItemEventCount(ctx context.Context, companyID, itemID id.ID) (int64, error) {
	return f.itemCount, nil
}

func (f *fakeRepo) GroupBalance(ctx context.Context, companyID, groupID id.ID) (types.Quantity, error) {
	return f.groupBalance, nil
}

func (f *fakeRepo) GroupEventCount(ctx context.Context, companyID, groupID id.ID) (int64, error) {
	return f.groupCount, nil
}

func (f *fakeRepo) MinStocks(ctx context.Context, companyID id.ID, sc scope.Scope) (map[id.ID]types.Quantity, error) {
	return f.minStocks, nil
}

func (f *fakeRepo) DayTotals(ctx context.Context, companyID id.ID, day dateonly.Date, sc scope.Scope) (DayTotals, error) {
	return f.dayTotals, nil
}

func (f *fakeRepo) RecentTransactions(ctx context.Context, companyID id.ID, sc scope.Scope, limit int) ([]RecentTransaction, error) {
	return f.recent, nil
}

func dec(s string) types.Quantity {
	return types.MustDecimal(s)
}

func TestCurrent_UsesEpochToToday(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewService(engine, &fakeRepo{})

	_, err := svc.Current(context.Background(), id.New(), scope.All())
	require.NoError(t, err)

	assert.True(t, engine.gotRange.Start.Equal(dateonly.MustParse("1970-01-01")))
	assert.True(t, engine.gotRange.End.Equal(dateonly.Today()))
}

func TestLowStock(t *testing.T) {
	atMin := id.New()
	belowMin := id.New()
	aboveMin := id.New()
	zeroBoth := id.New()
	zeroMin := id.New()

	engine := &fakeEngine{rows: []reports.Row{
		{ItemID: atMin, ItemName: "at", Closing: dec("10")},
		{ItemID: belowMin, ItemName: "below", Closing: dec("2")},
		{ItemID: aboveMin, ItemName: "above", Closing: dec("50")},
		{ItemID: zeroBoth, ItemName: "zeroboth", Closing: dec("0")},
		{ItemID: zeroMin, ItemName: "zeromin", Closing: dec("5")},
	}}
	repo := &fakeRepo{minStocks: map[id.ID]types.Quantity{
		atMin:    dec("10"),
		belowMin: dec("5"),
		aboveMin: dec("5"),
		zeroBoth: dec("0"),
		zeroMin:  dec("0"),
	}}
	svc := NewService(engine, repo)

	low, err := svc.LowStock(context.Background(), id.New(), scope.All())
	require.NoError(t, err)
	require.Len(t, low, 3)

	names := make([]string, 0, len(low))
	for _, row := range low {
		names = append(names, row.ItemName)
	}
	assert.Contains(t, names, "at")
	assert.Contains(t, names, "below")
	// Plain qty <= min_stock: a zero minimum with zero stock qualifies.
	assert.Contains(t, names, "zeroboth")
	assert.NotContains(t, names, "zeromin")
}

func TestDashboard_Totals(t *testing.T) {
	value := dec("300")
	engine := &fakeEngine{rows: []reports.Row{
		{ItemID: id.New(), Closing: dec("100"), StockValue: &value},
		{ItemID: id.New(), Closing: dec("20")},
	}}
	repo := &fakeRepo{
		dayTotals: DayTotals{In: dec("7"), Out: dec("3")},
		recent:    []RecentTransaction{{ItemName: "x"}},
	}
	svc := NewService(engine, repo)

	d, err := svc.Dashboard(context.Background(), id.New(), scope.All())
	require.NoError(t, err)

	assert.Equal(t, 2, d.TotalItems)
	assert.True(t, d.TotalQty.Equal(dec("120")))
	assert.True(t, d.TotalValue.Equal(dec("300")))
	assert.True(t, d.TodayIn.Equal(dec("7")))
	assert.True(t, d.TodayOut.Equal(dec("3")))
	assert.Len(t, d.Recent, 1)
}

func TestEnsureItemDeletable_StockGuardFirst(t *testing.T) {
	// Both guards would trip; the stock reason must win.
	repo := &fakeRepo{itemBalance: dec("5"), itemCount: 3}
	svc := NewService(&fakeEngine{}, repo)

	err := svc.EnsureItemDeletable(context.Background(), id.New(), id.New())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDeletionBlocked, appErr.Code)
	assert.Equal(t, string(apperror.DeletionReasonStock), appErr.Details["reason"])
}

func TestEnsureItemDeletable_HistoryGuard(t *testing.T) {
	repo := &fakeRepo{itemBalance: dec("0"), itemCount: 1}
	svc := NewService(&fakeEngine{}, repo)

	err := svc.EnsureItemDeletable(context.Background(), id.New(), id.New())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, string(apperror.DeletionReasonHistory), appErr.Details["reason"])
}

func TestEnsureItemDeletable_Clean(t *testing.T) {
	svc := NewService(&fakeEngine{}, &fakeRepo{})
	assert.NoError(t, svc.EnsureItemDeletable(context.Background(), id.New(), id.New()))
}

func TestEnsureGroupDeletable(t *testing.T) {
	tests := []struct {
		name       string
		balance    string
		count      int64
		wantReason apperror.DeletionReason
	}{
		{"stock blocks", "4", 0, apperror.DeletionReasonStock},
		{"history blocks", "0", 2, apperror.DeletionReasonHistory},
		{"negative stock still blocks", "-1", 0, apperror.DeletionReasonStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{groupBalance: dec(tt.balance), groupCount: tt.count}
			svc := NewService(&fakeEngine{}, repo)

			err := svc.EnsureGroupDeletable(context.Background(), id.New(), id.New())
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, string(tt.wantReason), appErr.Details["reason"])
		})
	}
}
