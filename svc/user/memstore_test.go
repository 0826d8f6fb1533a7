package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watersmet/identity/svc/user"
)

func TestMemStoreCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("hashes password and applies defaults", func(t *testing.T) {
		t.Parallel()
		store := user.NewMemStore()

		created, err := store.Create(ctx, user.CreateParams{
			FullName: "Jane Doe",
			Email:    "Jane@Example.com",
			Password: "Aa1!aaaa",
		})
		require.NoError(t, err)

		assert.Equal(t, "jane@example.com", created.Email)
		assert.Equal(t, user.RoleCustomer, created.Role)
		assert.Equal(t, user.ProviderLocal, created.Provider)
		assert.True(t, created.Active)
		assert.False(t, created.EmailVerified)
		assert.Empty(t, created.PasswordHash, "default projection must not expose the hash")

		secret, err := store.ByEmailWithSecrets(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.True(t, user.IsHashed(secret.PasswordHash))

		ok, err := user.VerifyPassword(secret.PasswordHash, "Aa1!aaaa")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()
		store := user.NewMemStore()

		_, err := store.Create(ctx, user.CreateParams{FullName: "A", Email: "a@x.com", Password: "Aa1!aaaa"})
		require.NoError(t, err)

		_, err = store.Create(ctx, user.CreateParams{FullName: "B", Email: "A@X.com", Password: "Bb2!bbbb"})
		require.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	})

	t.Run("duplicate google id conflicts", func(t *testing.T) {
		t.Parallel()
		store := user.NewMemStore()

		_, err := store.Create(ctx, user.CreateParams{
			FullName: "A", Email: "a@x.com", Provider: user.ProviderGoogle, GoogleID: "g-1", EmailVerified: true,
		})
		require.NoError(t, err)

		_, err = store.Create(ctx, user.CreateParams{
			FullName: "B", Email: "b@x.com", Provider: user.ProviderGoogle, GoogleID: "g-1", EmailVerified: true,
		})
		require.ErrorIs(t, err, user.ErrGoogleIDLinked)
	})
}

func TestMemStoreProjections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := user.NewMemStore()

	created, err := store.Create(ctx, user.CreateParams{FullName: "Jane", Email: "jane@x.com", Password: "Aa1!aaaa"})
	require.NoError(t, err)
	require.NoError(t, store.SaveVerificationCode(ctx, created.ID, "123456", time.Now().Add(10*time.Minute)))

	t.Run("default reads exclude secrets", func(t *testing.T) {
		t.Parallel()
		byID, err := store.ByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Empty(t, byID.PasswordHash)
		assert.Empty(t, byID.VerificationCode)
		assert.Nil(t, byID.VerificationExpiresAt)

		list, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Empty(t, list[0].PasswordHash)
		assert.Empty(t, list[0].VerificationCode)
	})

	t.Run("privileged reads include secrets", func(t *testing.T) {
		t.Parallel()
		secret, err := store.ByIDWithSecrets(ctx, created.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, secret.PasswordHash)
		assert.Equal(t, "123456", secret.VerificationCode)
		require.NotNil(t, secret.VerificationExpiresAt)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		_, err := store.ByID(ctx, uuid.New())
		require.ErrorIs(t, err, user.ErrUserNotFound)
		_, err = store.ByEmail(ctx, "ghost@x.com")
		require.ErrorIs(t, err, user.ErrUserNotFound)
		_, err = store.ByGoogleID(ctx, "ghost")
		require.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestMemStoreUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("partial merge", func(t *testing.T) {
		t.Parallel()
		store := user.NewMemStore()
		created, err := store.Create(ctx, user.CreateParams{FullName: "Jane", Email: "jane@x.com", Password: "Aa1!aaaa"})
		require.NoError(t, err)

		name := "Jane Smith"
		updated, err := store.Update(ctx, created.ID, user.UpdateParams{FullName: &name})
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", updated.FullName)
		assert.Equal(t, "jane@x.com", updated.Email)
	})

	t.Run("email collision with another user", func(t *testing.T) {
		t.Parallel()
		store := user.NewMemStore()
		_, err := store.Create(ctx, user.CreateParams{FullName: "A", Email: "a@x.com", Password: "Aa1!aaaa"})
		require.NoError(t, err)
		b, err := store.Create(ctx, user.CreateParams{FullName: "B", Email: "b@x.com", Password: "Bb2!bbbb"})
		require.NoError(t, err)

		taken := "a@x.com"
		_, err = store.Update(ctx, b.ID, user.UpdateParams{Email: &taken})
		require.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	})

	t.Run("repeated password save does not double-hash", func(t *testing.T) {
		t.Parallel()
		store := user.NewMemStore()
		created, err := store.Create(ctx, user.CreateParams{FullName: "Jane", Email: "jane@x.com", Password: "Aa1!aaaa"})
		require.NoError(t, err)

		secret, err := store.ByIDWithSecrets(ctx, created.ID)
		require.NoError(t, err)

		// Saving the stored hash back must keep it verifiable.
		hash := secret.PasswordHash
		_, err = store.Update(ctx, created.ID, user.UpdateParams{Password: &hash})
		require.NoError(t, err)

		after, err := store.ByIDWithSecrets(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, hash, after.PasswordHash)

		ok, err := user.VerifyPassword(after.PasswordHash, "Aa1!aaaa")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestMemStoreSoftDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := user.NewMemStore()

	created, err := store.Create(ctx, user.CreateParams{FullName: "Jane", Email: "jane@x.com", Password: "Aa1!aaaa"})
	require.NoError(t, err)

	require.NoError(t, store.SoftDelete(ctx, created.ID))

	after, err := store.ByID(ctx, created.ID)
	require.NoError(t, err, "soft-deleted rows remain readable")
	assert.False(t, after.Active)

	require.ErrorIs(t, store.SoftDelete(ctx, uuid.New()), user.ErrUserNotFound)
}

func TestMemStoreLinkGoogle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := user.NewMemStore()

	created, err := store.Create(ctx, user.CreateParams{FullName: "Jane", Email: "jane@x.com", Password: "Aa1!aaaa"})
	require.NoError(t, err)

	linked, err := store.LinkGoogle(ctx, created.ID, "g-123")
	require.NoError(t, err)
	assert.Equal(t, "g-123", linked.GoogleID)
	assert.Equal(t, user.ProviderGoogle, linked.Provider)
	assert.True(t, linked.EmailVerified)

	// Password survives the link.
	secret, err := store.ByIDWithSecrets(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, secret.PasswordHash)
}

func TestMemStoreVerificationLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := user.NewMemStore()

	created, err := store.Create(ctx, user.CreateParams{FullName: "Jane", Email: "jane@x.com", Password: "Aa1!aaaa"})
	require.NoError(t, err)

	expiresAt := time.Now().Add(10 * time.Minute)
	require.NoError(t, store.SaveVerificationCode(ctx, created.ID, "654321", expiresAt))

	secret, err := store.ByIDWithSecrets(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "654321", secret.VerificationCode)
	require.NotNil(t, secret.VerificationExpiresAt)
	assert.WithinDuration(t, expiresAt, *secret.VerificationExpiresAt, time.Second)

	require.NoError(t, store.MarkEmailVerified(ctx, created.ID))

	after, err := store.ByIDWithSecrets(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, after.EmailVerified)
	assert.Empty(t, after.VerificationCode)
	assert.Nil(t, after.VerificationExpiresAt)
}
