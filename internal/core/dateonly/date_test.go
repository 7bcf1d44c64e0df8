package dateonly

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", d.String())

	_, err = Parse("15-01-2026")
	assert.Error(t, err)

	_, err = Parse("2026-02-30")
	assert.Error(t, err)
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", r.Start.String())
	assert.Equal(t, "2026-01-31", r.End.String())

	// Single-day windows are valid.
	_, err = ParseRange("2026-01-01", "2026-01-01")
	assert.NoError(t, err)

	_, err = ParseRange("2026-02-01", "2026-01-01")
	assert.Error(t, err)

	_, err = ParseRange("", "2026-01-31")
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	d := MustParse("2026-03-09")
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-09"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d))
}

func TestJSONNull(t *testing.T) {
	b, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte("null"), &d))
	assert.True(t, d.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
}

func TestAddDays(t *testing.T) {
	d := MustParse("2026-01-31")
	assert.Equal(t, "2026-02-01", d.AddDays(1).String())
	assert.Equal(t, "2026-01-30", d.AddDays(-1).String())
}

func TestOrdering(t *testing.T) {
	a := MustParse("2026-01-01")
	b := MustParse("2026-01-02")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(MustParse("2026-01-01")))
}

func TestScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2026-05-05"))
	assert.Equal(t, "2026-05-05", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}
