package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventaris/internal/core/apperror"
	appctx "inventaris/internal/core/context"
	"inventaris/internal/core/id"
)

type fakeRepo struct {
	users map[string]*User
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", email)
}

func (f *fakeRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID)
}

func newTestService(t *testing.T) (*Service, *User) {
	t.Helper()

	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	user := &User{
		ID:           id.New(),
		CompanyID:    id.New(),
		Email:        "owner@demo.local",
		Name:         "Demo Owner",
		Role:         appctx.RoleOwner,
		PasswordHash: hash,
	}
	repo := &fakeRepo{users: map[string]*User{user.Email: user}}
	return NewService(repo, []byte("test-signing-secret")), user
}

func TestLogin_VerifyRoundTrip(t *testing.T) {
	svc, user := newTestService(t)

	result, err := svc.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)

	uc, err := svc.Verify(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, uc.UserID)
	assert.Equal(t, user.CompanyID, uc.CompanyID)
	assert.Equal(t, user.Email, uc.Email)
	assert.Equal(t, appctx.RoleOwner, uc.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, user := newTestService(t)

	_, err := svc.Login(context.Background(), user.Email, "wrong")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	assert.Equal(t, "Invalid email or password", appErr.Message)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@demo.local", "secret123")
	require.Error(t, err)

	// Same message as a wrong password, so login failures do not reveal
	// which accounts exist.
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	assert.Equal(t, "Invalid email or password", appErr.Message)
}

func TestVerify_RejectsTamperedToken(t *testing.T) {
	svc, user := newTestService(t)

	result, err := svc.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)

	other := NewService(&fakeRepo{}, []byte("a-different-secret"))
	_, err = other.Verify(context.Background(), result.Token)
	require.Error(t, err)

	_, err = svc.Verify(context.Background(), result.Token+"x")
	require.Error(t, err)

	_, err = svc.Verify(context.Background(), "not-a-token")
	require.Error(t, err)
}
