package scope

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "inventaris/internal/core/context"
	"inventaris/internal/core/id"
)

func TestSubset_EmptyCollapsesToNone(t *testing.T) {
	assert.True(t, Subset(nil).IsNone())
	assert.True(t, Subset([]id.ID{}).IsNone())
}

func TestContains(t *testing.T) {
	granted := id.New()
	other := id.New()

	assert.True(t, All().Contains(other))
	assert.False(t, None().Contains(other))

	sub := Subset([]id.ID{granted})
	assert.True(t, sub.Contains(granted))
	assert.False(t, sub.Contains(other))
}

func TestIDs_CopySemantics(t *testing.T) {
	original := []id.ID{id.New(), id.New()}
	sub := Subset(original)

	// Mutating the input slice must not leak into the scope.
	original[0] = id.New()
	got := sub.IDs()
	require.Len(t, got, 2)
	assert.NotEqual(t, original[0], got[0])

	// Nor can the caller mutate the scope through the returned slice.
	got[1] = id.New()
	assert.NotEqual(t, got[1], sub.IDs()[1])

	assert.Nil(t, All().IDs())
	assert.Nil(t, None().IDs())
}

type fakeAccessRepo struct {
	ids []id.ID
	err error

	called bool
}

func (f *fakeAccessRepo) DivisionIDs(ctx context.Context, companyID, userID id.ID) ([]id.ID, error) {
	f.called = true
	return f.ids, f.err
}

func TestResolve_OwnerIsUnrestricted(t *testing.T) {
	repo := &fakeAccessRepo{}
	r := NewResolver(repo)

	sc, err := r.Resolve(context.Background(), id.New(), id.New(), appctx.RoleOwner)
	require.NoError(t, err)
	assert.True(t, sc.IsAll())
	assert.False(t, repo.called)
}

func TestResolve_AdminGetsAllowList(t *testing.T) {
	granted := id.New()
	repo := &fakeAccessRepo{ids: []id.ID{granted}}
	r := NewResolver(repo)

	sc, err := r.Resolve(context.Background(), id.New(), id.New(), appctx.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, KindSubset, sc.Kind())
	assert.True(t, sc.Contains(granted))
}

func TestResolve_AdminWithNoGrants(t *testing.T) {
	r := NewResolver(&fakeAccessRepo{})

	sc, err := r.Resolve(context.Background(), id.New(), id.New(), appctx.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, sc.IsNone())
}

func TestResolve_RepoErrorFailsClosed(t *testing.T) {
	r := NewResolver(&fakeAccessRepo{err: errors.New("boom")})

	sc, err := r.Resolve(context.Background(), id.New(), id.New(), appctx.RoleAdmin)
	require.Error(t, err)
	assert.True(t, sc.IsNone())
}
