package user

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot-backend/internal/auth"
	"parkspot-backend/internal/store"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "parking.json"))
	require.NoError(t, err)
	// MinCost keeps the tests fast.
	return NewService(st, auth.NewBcryptPasswordHasherWithCost(4))
}

func ptr(s string) *string { return &s }

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Alice", "Alice@Example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.False(t, u.IsAdmin)
	assert.NotEqual(t, "secret123", u.PasswordHash)

	got, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "a@b.com", "pw")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Register(ctx, "Alice", "a@b.com", "")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Register(ctx, "Alice", "a@b.com", "pw")
	require.NoError(t, err)

	// Duplicate email is rejected case-insensitively.
	_, err = svc.Register(ctx, "Alice Again", "A@B.com", "pw")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestUpdateProfilePatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Alice", "a@b.com", "pw")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, u.ID, Patch{Name: ptr("Alicia")})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "a@b.com", updated.Email)

	// Changing the password keeps login working with the new one only.
	_, err = svc.UpdateProfile(ctx, u.ID, Patch{Password: ptr("newpass")})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@b.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "a@b.com", "newpass")
	require.NoError(t, err)
}

func TestUpdateProfileLazyCreate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// An upstream-issued identity unknown to the document gets a record on
	// first write.
	u, err := svc.UpdateProfile(ctx, "ext-identity-1", Patch{Name: ptr("Carol"), Email: ptr("carol@b.com")})
	require.NoError(t, err)
	assert.Equal(t, "ext-identity-1", u.ID)
	assert.Equal(t, "Carol", u.Name)
	assert.False(t, u.IsAdmin)

	got, err := svc.GetByID(ctx, "ext-identity-1")
	require.NoError(t, err)
	assert.Equal(t, "carol@b.com", got.Email)
}

func TestUpdateProfileLazyCreateRejectsTakenEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@b.com", "pw")
	require.NoError(t, err)

	// A first write from an unknown identity may not claim Alice's email,
	// case-insensitively or otherwise.
	_, err = svc.UpdateProfile(ctx, "ext-identity-1", Patch{Email: ptr("a@b.com")})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	_, err = svc.UpdateProfile(ctx, "ext-identity-1", Patch{Email: ptr("A@B.com")})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	// The rejected write must not have created the record.
	_, err = svc.GetByID(ctx, "ext-identity-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminUpdateAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Alice", "a@b.com", "pw")
	require.NoError(t, err)

	isAdmin := true
	updated, err := svc.AdminUpdate(ctx, u.ID, AdminPatch{IsAdmin: &isAdmin})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	assert.Equal(t, "Alice", updated.Name)

	_, err = svc.AdminUpdate(ctx, "missing", AdminPatch{})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, u.ID))
	err = svc.Delete(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
