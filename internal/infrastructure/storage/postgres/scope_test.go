package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventaris/internal/core/id"
	"inventaris/internal/domain/scope"
)

func TestScopePredicate_All(t *testing.T) {
	assert.Nil(t, ScopePredicate("g.division_id", scope.All()))
}

func TestScopePredicate_None(t *testing.T) {
	pred := ScopePredicate("g.division_id", scope.None())
	require.NotNil(t, pred)

	sql, args, err := pred.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "FALSE", sql)
	assert.Empty(t, args)
}

func TestScopePredicate_Subset(t *testing.T) {
	a, b := id.New(), id.New()
	pred := ScopePredicate("g.division_id", scope.Subset([]id.ID{a, b}))
	require.NotNil(t, pred)

	sql, args, err := pred.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "g.division_id IN (?,?)", sql)
	assert.Equal(t, []any{a, b}, args)
}

func TestApplyScope(t *testing.T) {
	base := Builder().Select("id").From("divisions")

	sql, _, err := ApplyScope(base, "id", scope.All()).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM divisions", sql)

	sql, _, err = ApplyScope(base, "id", scope.None()).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE FALSE")

	divisionID := id.New()
	sql, args, err := ApplyScope(base, "id", scope.Subset([]id.ID{divisionID})).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM divisions WHERE id IN ($1)", sql)
	assert.Equal(t, []any{divisionID}, args)
}

func TestScopeFragment(t *testing.T) {
	frag, args := ScopeFragment("d.id", scope.All(), 3)
	assert.Empty(t, frag)
	assert.Nil(t, args)

	frag, args = ScopeFragment("d.id", scope.None(), 3)
	assert.Equal(t, " AND FALSE", frag)
	assert.Nil(t, args)

	a, b := id.New(), id.New()
	frag, args = ScopeFragment("d.id", scope.Subset([]id.ID{a, b}), 3)
	assert.Equal(t, " AND d.id IN ($3,$4)", frag)
	assert.Equal(t, []any{a, b}, args)
}
