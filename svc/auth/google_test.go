package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watersmet/identity/svc/auth"
	"github.com/watersmet/identity/svc/user"
)

// stubProvider returns a canned profile for any authorization code.
type stubProvider struct {
	profile *auth.GoogleProfile
	err     error
}

func (p *stubProvider) AuthURL(state string) string { return "https://example.com/auth?state=" + state }

func (p *stubProvider) ResolveProfile(context.Context, string) (*auth.GoogleProfile, error) {
	return p.profile, p.err
}

func TestReconcileGoogle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	profile := &auth.GoogleProfile{
		GoogleID: "google-123",
		Email:    "Jane@Example.com",
		FullName: "Jane Doe",
	}

	t.Run("known google id returns the existing user", func(t *testing.T) {
		t.Parallel()
		svc, store, _ := newServiceFixture(t)

		existing, err := store.Create(ctx, user.CreateParams{
			FullName:      "Jane Doe",
			Email:         "jane@example.com",
			Provider:      user.ProviderGoogle,
			GoogleID:      "google-123",
			EmailVerified: true,
		})
		require.NoError(t, err)

		u, err := svc.ReconcileGoogle(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, u.ID)
	})

	t.Run("matching email links the google identity", func(t *testing.T) {
		t.Parallel()
		svc, store, _ := newServiceFixture(t)

		local, err := store.Create(ctx, user.CreateParams{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Password: "Aa1!aaaa",
		})
		require.NoError(t, err)

		u, err := svc.ReconcileGoogle(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, local.ID, u.ID)
		assert.Equal(t, user.ProviderGoogle, u.Provider)
		assert.Equal(t, "google-123", u.GoogleID)
		assert.True(t, u.EmailVerified)

		secret, err := store.ByEmailWithSecrets(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.True(t, user.IsHashed(secret.PasswordHash), "linking must keep the local password")
	})

	t.Run("unknown profile creates a verified google user", func(t *testing.T) {
		t.Parallel()
		svc, store, _ := newServiceFixture(t)

		u, err := svc.ReconcileGoogle(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", u.Email)
		assert.Equal(t, user.ProviderGoogle, u.Provider)
		assert.Equal(t, user.RoleCustomer, u.Role)
		assert.True(t, u.EmailVerified)
		assert.True(t, u.Active)

		secret, err := store.ByEmailWithSecrets(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.False(t, secret.HasPassword())
	})

	t.Run("inactive account is refused", func(t *testing.T) {
		t.Parallel()
		svc, store, _ := newServiceFixture(t)

		existing, err := store.Create(ctx, user.CreateParams{
			FullName:      "Jane Doe",
			Email:         "jane@example.com",
			Provider:      user.ProviderGoogle,
			GoogleID:      "google-123",
			EmailVerified: true,
		})
		require.NoError(t, err)
		require.NoError(t, store.SoftDelete(ctx, existing.ID))

		_, err = svc.ReconcileGoogle(ctx, profile)
		assert.ErrorIs(t, err, auth.ErrAccountInactive)
	})
}

func TestLoginWithGoogle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("issues a session token for the reconciled user", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newServiceFixture(t)

		provider := &stubProvider{profile: &auth.GoogleProfile{
			GoogleID: "google-123",
			Email:    "jane@example.com",
			FullName: "Jane Doe",
		}}

		result, err := svc.LoginWithGoogle(ctx, provider, "authcode")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "jane@example.com", result.User.Email)

		identity, err := svc.ValidateToken(ctx, result.Token)
		require.NoError(t, err)
		assert.True(t, identity.EmailVerified)
	})

	t.Run("provider failure is passed through", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newServiceFixture(t)

		provider := &stubProvider{err: errors.Join(auth.ErrProviderExchange, errors.New("bad code"))}
		_, err := svc.LoginWithGoogle(ctx, provider, "authcode")
		assert.ErrorIs(t, err, auth.ErrProviderExchange)
	})
}
