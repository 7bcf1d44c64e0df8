package backup

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventaris/internal/core/dateonly"
	"inventaris/internal/core/id"
	"inventaris/internal/core/types"
	"inventaris/internal/domain/catalogs/division"
	"inventaris/internal/domain/events"
)

func TestArchiveRoundTrip(t *testing.T) {
	companyID := id.New()
	note := "Saldo awal"
	price := types.MustDecimal("3000")

	dump := &Dump{
		Meta: Meta{
			CompanyID: companyID,
			Range: dateonly.Range{
				Start: dateonly.MustParse("2026-01-01"),
				End:   dateonly.MustParse("2026-01-31"),
			},
			GeneratedAt: time.Now().UTC().Truncate(time.Second),
		},
		Divisions: []division.Division{
			{ID: id.New(), CompanyID: companyID, Name: "Gudang Utama"},
		},
		Openings: []events.OpeningBalance{{
			ID:           id.New(),
			CompanyID:    companyID,
			ItemID:       id.New(),
			Qty:          types.MustDecimal("100"),
			PricePerUnit: &price,
			Note:         &note,
			OpeningDate:  dateonly.MustParse("2026-01-01"),
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, dump))

	// The payload is zstd-framed, not plain JSON.
	assert.NotEqual(t, byte('{'), buf.Bytes()[0])

	back, err := ReadArchive(&buf)
	require.NoError(t, err)

	assert.Equal(t, companyID, back.Meta.CompanyID)
	assert.True(t, back.Meta.Range.End.Equal(dump.Meta.Range.End))
	require.Len(t, back.Divisions, 1)
	assert.Equal(t, "Gudang Utama", back.Divisions[0].Name)
	require.Len(t, back.Openings, 1)
	assert.True(t, back.Openings[0].Qty.Equal(types.MustDecimal("100")))
	require.NotNil(t, back.Openings[0].PricePerUnit)
	assert.True(t, back.Openings[0].PricePerUnit.Equal(price))
	require.NotNil(t, back.Openings[0].Note)
	assert.Equal(t, note, *back.Openings[0].Note)
}

func TestReadArchive_Garbage(t *testing.T) {
	_, err := ReadArchive(bytes.NewReader([]byte("not a zstd frame")))
	require.Error(t, err)
}

func TestResolveRange(t *testing.T) {
	full, err := ResolveRange("", "")
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01", full.Start.String())
	assert.True(t, full.End.Equal(dateonly.Today()))

	onlyEnd, err := ResolveRange("", "2026-06-30")
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01", onlyEnd.Start.String())
	assert.Equal(t, "2026-06-30", onlyEnd.End.String())

	onlyStart, err := ResolveRange("2026-01-01", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", onlyStart.Start.String())
	assert.True(t, onlyStart.End.Equal(dateonly.Today()))

	_, err = ResolveRange("2026-02-01", "2026-01-01")
	require.Error(t, err)
}
