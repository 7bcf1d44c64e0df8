package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
	"inventaris/internal/domain/scope"
)

type fakeRepo struct {
	rows []RawRow
	err  error

	gotRange dateonly.Range
	gotScope scope.Scope
}

func (f *fakeRepo) FetchBalanceRows(ctx context.Context, companyID id.ID, r dateonly.Range, sc scope.Scope) ([]RawRow, error) {
	f.gotRange = r
	f.gotScope = sc
	return f.rows, f.err
}

func dec(s string) types.Quantity {
	return types.MustDecimal(s)
}

func TestReconstruct_BalanceMath(t *testing.T) {
	price := dec("12")
	repo := &fakeRepo{rows: []RawRow{{
		DivisionName: "Gudang",
		GroupName:    "Minuman",
		ItemID:       id.New(),
		ItemName:     "Air Mineral",
		OpeningQty:   dec("100"),
		InQty:        dec("50"),
		OutQty:       dec("30"),
		AdjQty:       dec("-5"),
		PricePerUnit: &price,
	}}}
	svc := NewService(repo)

	rows, err := svc.Reconstruct(context.Background(), id.New(), "2026-01-01", "2026-01-31", scope.All())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, row.Opening.Equal(dec("100")), "opening = %s", row.Opening)
	assert.True(t, row.Closing.Equal(dec("115")), "closing = %s", row.Closing)
	require.NotNil(t, row.StockValue)
	assert.True(t, row.StockValue.Equal(dec("1380")), "stock value = %s", row.StockValue)
}

func TestReconstruct_OpeningFoldsPriorMovement(t *testing.T) {
	// A later window sees the prior window's movement in its "before"
	// aggregates: opening 100 + in 50 - out 30 - adj 5 = 115, then +5 in.
	repo := &fakeRepo{rows: []RawRow{{
		ItemID:     id.New(),
		ItemName:   "Air Mineral",
		OpeningQty: dec("100"),
		InBefore:   dec("50"),
		OutBefore:  dec("30"),
		AdjBefore:  dec("-5"),
		InQty:      dec("5"),
	}}}
	svc := NewService(repo)

	rows, err := svc.Reconstruct(context.Background(), id.New(), "2026-02-01", "2026-02-28", scope.All())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.True(t, rows[0].Opening.Equal(dec("115")), "opening = %s", rows[0].Opening)
	assert.True(t, rows[0].Closing.Equal(dec("120")), "closing = %s", rows[0].Closing)
}

func TestReconstruct_InWindowOpeningCountsTowardClosing(t *testing.T) {
	// A rebuild cutover inside the window leaves exactly this shape:
	// no opening row at or before start, a reset row mid-window, and the
	// cutoff-day movement still in place. The reset must land in closing.
	repo := &fakeRepo{rows: []RawRow{{
		ItemID:        id.New(),
		ItemName:      "Air Mineral",
		OpeningWindow: dec("150"),
		OutQty:        dec("30"),
		AdjQty:        dec("-5"),
	}}}
	svc := NewService(repo)

	rows, err := svc.Reconstruct(context.Background(), id.New(), "2024-01-01", "2024-01-31", scope.All())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.True(t, rows[0].Opening.IsZero(), "opening = %s", rows[0].Opening)
	assert.True(t, rows[0].OpeningWindow.Equal(dec("150")))
	assert.True(t, rows[0].Closing.Equal(dec("115")), "closing = %s", rows[0].Closing)
}

func TestReconstruct_NoPriceNoValue(t *testing.T) {
	repo := &fakeRepo{rows: []RawRow{{
		ItemID:     id.New(),
		OpeningQty: dec("10"),
	}}}
	svc := NewService(repo)

	rows, err := svc.Reconstruct(context.Background(), id.New(), "2026-01-01", "2026-01-31", scope.All())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].StockValue)
	assert.Nil(t, rows[0].PricePerUnit)
}

func TestReconstruct_InvalidRange(t *testing.T) {
	svc := NewService(&fakeRepo{})

	tests := []struct {
		name       string
		start, end string
	}{
		{"malformed start", "01-01-2026", "2026-01-31"},
		{"malformed end", "2026-01-01", "tomorrow"},
		{"inverted", "2026-02-01", "2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Reconstruct(context.Background(), id.New(), tt.start, tt.end, scope.All())
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeInvalidRange, appErr.Code)
		})
	}
}

func TestReconstructRange_NoneScopeShortCircuits(t *testing.T) {
	repo := &fakeRepo{rows: []RawRow{{ItemID: id.New()}}}
	svc := NewService(repo)

	r := dateonly.Range{Start: dateonly.MustParse("2026-01-01"), End: dateonly.MustParse("2026-01-31")}
	rows, err := svc.ReconstructRange(context.Background(), id.New(), r, scope.None())
	require.NoError(t, err)
	assert.Empty(t, rows)
	// Repository must not be consulted at all.
	assert.True(t, repo.gotRange.Start.IsZero())
}

func TestGroup_PreservesOrder(t *testing.T) {
	rows := []Row{
		{DivisionName: "A", GroupName: "G1", ItemName: "x"},
		{DivisionName: "A", GroupName: "G1", ItemName: "y"},
		{DivisionName: "A", GroupName: "G2", ItemName: "z"},
		{DivisionName: "B", GroupName: "G3", ItemName: "w"},
	}

	grouped := Group(rows)
	require.Len(t, grouped, 2)
	assert.Equal(t, "A", grouped[0].Name)
	require.Len(t, grouped[0].Groups, 2)
	assert.Equal(t, "G1", grouped[0].Groups[0].Name)
	assert.Len(t, grouped[0].Groups[0].Items, 2)
	assert.Equal(t, "B", grouped[1].Name)
	require.Len(t, grouped[1].Groups, 1)
	assert.Equal(t, "w", grouped[1].Groups[0].Items[0].ItemName)
}
