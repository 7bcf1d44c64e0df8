package mutations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
	"inventaris/internal/domain/events"
	"inventaris/internal/domain/reports"
	"inventaris/internal/domain/scope"
)

type fakeEngine struct {
	rows []reports.Row
}

func (f *fakeEngine) ReconstructRange(ctx context.Context, companyID id.ID, r dateonly.Range, sc scope.Scope) ([]reports.Row, error) {
	return f.rows, nil
}

type fakeSource struct {
	events    []events.Event
	gotFilter events.MergedFilter
}

func (f *fakeSource) ListMerged(ctx context.Context, companyID id.ID, filter events.MergedFilter) ([]events.Event, error) {
	f.gotFilter = filter
	return f.events, nil
}

func dec(s string) types.Quantity {
	return types.MustDecimal(s)
}

func date(s string) dateonly.Date {
	return dateonly.MustParse(s)
}

func TestBuildLedger_SeedAndRunningBalance(t *testing.T) {
	itemID := id.New()
	engine := &fakeEngine{rows: []reports.Row{{
		ItemID:       itemID,
		DivisionName: "Gudang",
		GroupName:    "Minuman",
		ItemName:     "Air Mineral",
		Opening:      dec("100"),
		Closing:      dec("115"),
	}}}
	source := &fakeSource{events: []events.Event{
		{ItemID: itemID, EventDate: date("2026-01-10"), Kind: events.KindIn, Qty: dec("50"), Seq: 1, CreatedAt: time.Now()},
		{ItemID: itemID, EventDate: date("2026-01-15"), Kind: events.KindOut, Qty: dec("30"), Seq: 2, CreatedAt: time.Now()},
		{ItemID: itemID, EventDate: date("2026-01-20"), Kind: events.KindAdj, Qty: dec("-5"), Seq: 3, CreatedAt: time.Now()},
	}}
	svc := NewService(engine, source)

	ledger, err := svc.BuildLedger(context.Background(), id.New(), "2026-01-01", "2026-01-31", scope.All(), nil)
	require.NoError(t, err)
	require.Len(t, ledger.Items, 1)

	rows := ledger.Items[0].Rows
	require.Len(t, rows, 4)

	// Seed row carries the reconstructed opening.
	assert.Equal(t, RowOpeningSeed, rows[0].Type)
	assert.Equal(t, "Saldo awal", rows[0].Note)
	assert.True(t, rows[0].Balance.Equal(dec("100")))
	assert.True(t, rows[0].EventDate.Equal(date("2026-01-01")))

	// Running balance after each event.
	assert.True(t, rows[1].Balance.Equal(dec("150")))
	assert.True(t, rows[2].Balance.Equal(dec("120")))
	assert.True(t, rows[3].Balance.Equal(dec("115")))

	// Final running balance agrees with the engine's closing.
	assert.True(t, rows[3].Balance.Equal(engine.rows[0].Closing))
}

func TestBuildLedger_OpeningEventIsAdditive(t *testing.T) {
	itemID := id.New()
	engine := &fakeEngine{rows: []reports.Row{{ItemID: itemID, ItemName: "X", Opening: dec("10")}}}
	source := &fakeSource{events: []events.Event{
		{ItemID: itemID, EventDate: date("2026-01-05"), Kind: events.KindOpening, Qty: dec("7"), Seq: 1},
	}}
	svc := NewService(engine, source)

	ledger, err := svc.BuildLedger(context.Background(), id.New(), "2026-01-01", "2026-01-31", scope.All(), nil)
	require.NoError(t, err)

	rows := ledger.Items[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, RowOpening, rows[1].Type)
	assert.True(t, rows[1].Balance.Equal(dec("17")))
}

func TestBuildLedger_ItemFilter(t *testing.T) {
	wanted := id.New()
	other := id.New()
	engine := &fakeEngine{rows: []reports.Row{
		{ItemID: wanted, ItemName: "wanted", Opening: dec("1")},
		{ItemID: other, ItemName: "other", Opening: dec("2")},
	}}
	source := &fakeSource{}
	svc := NewService(engine, source)

	ledger, err := svc.BuildLedger(context.Background(), id.New(), "2026-01-01", "2026-01-31", scope.All(), &wanted)
	require.NoError(t, err)
	require.Len(t, ledger.Items, 1)
	assert.Equal(t, wanted, ledger.Items[0].Item.ItemID)
	require.NotNil(t, source.gotFilter.ItemID)
	assert.Equal(t, wanted, *source.gotFilter.ItemID)
}

func TestBuildLedger_EventOnlyItemSeedsAtZero(t *testing.T) {
	itemID := id.New()
	engine := &fakeEngine{}
	source := &fakeSource{events: []events.Event{
		{ItemID: itemID, ItemName: "ghost", GroupName: "G", EventDate: date("2026-01-02"), Kind: events.KindIn, Qty: dec("3"), Seq: 1},
	}}
	svc := NewService(engine, source)

	ledger, err := svc.BuildLedger(context.Background(), id.New(), "2026-01-01", "2026-01-31", scope.All(), nil)
	require.NoError(t, err)
	require.Len(t, ledger.Items, 1)

	rows := ledger.Items[0].Rows
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Balance.IsZero())
	assert.True(t, rows[1].Balance.Equal(dec("3")))
}

func TestBuildLedger_NoneScope(t *testing.T) {
	svc := NewService(&fakeEngine{rows: []reports.Row{{ItemID: id.New()}}}, &fakeSource{})

	ledger, err := svc.BuildLedger(context.Background(), id.New(), "2026-01-01", "2026-01-31", scope.None(), nil)
	require.NoError(t, err)
	assert.Empty(t, ledger.Items)
	assert.Empty(t, ledger.Flat)
}

func TestBuildLedger_InvalidRange(t *testing.T) {
	svc := NewService(&fakeEngine{}, &fakeSource{})

	_, err := svc.BuildLedger(context.Background(), id.New(), "2026-02-01", "2026-01-01", scope.All(), nil)
	require.Error(t, err)
}

func TestBuildLedger_ItemsInReportOrder(t *testing.T) {
	a := id.New()
	b := id.New()
	engine := &fakeEngine{rows: []reports.Row{
		{ItemID: b, DivisionName: "B", GroupName: "G", ItemName: "x", Opening: dec("1")},
		{ItemID: a, DivisionName: "A", GroupName: "G", ItemName: "x", Opening: dec("1")},
	}}
	svc := NewService(engine, &fakeSource{})

	ledger, err := svc.BuildLedger(context.Background(), id.New(), "2026-01-01", "2026-01-31", scope.All(), nil)
	require.NoError(t, err)
	require.Len(t, ledger.Items, 2)
	assert.Equal(t, "A", ledger.Items[0].Item.DivisionName)
	assert.Equal(t, "B", ledger.Items[1].Item.DivisionName)
}

func TestBuildLabel(t *testing.T) {
	exp := date("2026-06-30")
	withExpiry := &ItemInfo{GroupName: "Minuman", ItemName: "Susu", ExpiryDate: &exp}
	assert.Equal(t, "Minuman - Susu - 2026-06-30", buildLabel(withExpiry))

	without := &ItemInfo{GroupName: "Minuman", ItemName: "Air"}
	assert.Equal(t, "Minuman - Air - -", buildLabel(without))
}
