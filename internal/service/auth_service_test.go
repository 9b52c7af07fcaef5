package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campus-auth/internal/crypto"
	"campus-auth/internal/model"
	"campus-auth/internal/repository"
)

type authFixture struct {
	store    *memStore
	registry *repository.MemoryRefreshRegistry
	auth     *AuthService
}

func newAuthFixture(t *testing.T, strict bool) *authFixture {
	t.Helper()

	store := newMemStore()
	registry := repository.NewMemoryRefreshRegistry()
	hasher := crypto.NewBcryptHasher()
	tokens := NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	reg := NewRegistrationService(store, hasher)
	_, err := reg.Register(context.Background(), studentRequest())
	require.NoError(t, err)

	return &authFixture{
		store:    store,
		registry: registry,
		auth:     NewAuthService(store, hasher, tokens, registry, strict),
	}
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, false)

	pair, err := f.auth.Login(context.Background(), "jane@example.edu", "secret123", "")
	require.NoError(t, err)

	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	require.Equal(t, "jane@example.edu", pair.User.Email)
	require.Equal(t, model.RoleStudent, pair.User.Role)
	require.NotNil(t, pair.User.Profile)
}

func TestLoginEnumerationResistance(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, false)

	_, wrongPassword := f.auth.Login(context.Background(), "jane@example.edu", "wrong", "")
	_, unknownEmail := f.auth.Login(context.Background(), "nobody@example.edu", "secret123", "")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error(),
		"wrong password and unknown email must be indistinguishable by message")
}

func TestLoginFingerprintBinding(t *testing.T) {
	t.Parallel()

	t.Run("strict mode learns the first fingerprint", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t, true)

		// First login with a fingerprint: stored side is unset, so it passes
		// and the fingerprint is persisted.
		_, err := f.auth.Login(context.Background(), "jane@example.edu", "secret123", "device-a")
		require.NoError(t, err)

		user, err := f.store.FindByEmail(context.Background(), "jane@example.edu")
		require.NoError(t, err)
		require.Equal(t, "device-a", user.DeviceFingerprint)

		// Same device keeps working; a different one is rejected.
		_, err = f.auth.Login(context.Background(), "jane@example.edu", "secret123", "device-a")
		require.NoError(t, err)

		_, err = f.auth.Login(context.Background(), "jane@example.edu", "secret123", "device-b")
		require.ErrorIs(t, err, model.ErrDeviceMismatch)

		// Absent fingerprint cannot be compared, so it passes.
		_, err = f.auth.Login(context.Background(), "jane@example.edu", "secret123", "")
		require.NoError(t, err)
	})

	t.Run("lenient mode ignores mismatches", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t, false)

		_, err := f.auth.Login(context.Background(), "jane@example.edu", "secret123", "device-a")
		require.NoError(t, err)

		_, err = f.auth.Login(context.Background(), "jane@example.edu", "secret123", "device-b")
		require.NoError(t, err)
	})
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, false)

	pair, err := f.auth.Login(context.Background(), "jane@example.edu", "secret123", "")
	require.NoError(t, err)

	// Repeated refreshes with the same token keep working and yield distinct
	// access tokens; the registry entry is never touched.
	seen := map[string]struct{}{}
	for i := 0; i < 3; i++ {
		accessToken, err := f.auth.Refresh(context.Background(), pair.RefreshToken)
		require.NoError(t, err)
		_, dup := seen[accessToken]
		require.False(t, dup)
		seen[accessToken] = struct{}{}
	}

	current, err := f.registry.Validate(context.Background(), pair.User.ID, pair.RefreshToken)
	require.NoError(t, err)
	require.True(t, current, "refresh must not rotate the stored token")
}

func TestRefreshAfterLogout(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, false)

	pair, err := f.auth.Login(context.Background(), "jane@example.edu", "secret123", "")
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(context.Background(), pair.User.ID))

	_, err = f.auth.Refresh(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, model.ErrRefreshTokenRevoked)

	// Logout is idempotent.
	require.NoError(t, f.auth.Logout(context.Background(), pair.User.ID))
}

func TestSecondLoginSupersedesFirst(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, false)

	first, err := f.auth.Login(context.Background(), "jane@example.edu", "secret123", "")
	require.NoError(t, err)

	second, err := f.auth.Login(context.Background(), "jane@example.edu", "secret123", "")
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The first token still verifies cryptographically but is no longer the
	// current one.
	_, err = f.auth.Refresh(context.Background(), first.RefreshToken)
	require.ErrorIs(t, err, model.ErrRefreshTokenRevoked)

	_, err = f.auth.Refresh(context.Background(), second.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshForDeletedUser(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, false)

	pair, err := f.auth.Login(context.Background(), "jane@example.edu", "secret123", "")
	require.NoError(t, err)

	require.NoError(t, f.store.Delete(context.Background(), pair.User.ID))

	_, err = f.auth.Refresh(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, false)

	_, err := f.auth.Refresh(context.Background(), "not-a-token")
	require.ErrorIs(t, err, model.ErrTokenInvalidSignature)
}

func TestLoginCancelledBeforeCommit(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.auth.Login(ctx, "jane@example.edu", "secret123", "")
	require.Error(t, err)

	user, err := f.store.FindByEmail(context.Background(), "jane@example.edu")
	require.NoError(t, err)

	ok, err := f.registry.Validate(context.Background(), user.ID, "anything")
	require.NoError(t, err)
	require.False(t, ok, "an abandoned login must not leave a registry entry")
}

func TestGetProfile(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t, false)

	user, err := f.store.FindByEmail(context.Background(), "jane@example.edu")
	require.NoError(t, err)

	got, err := f.auth.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, got.Email)
	require.NotNil(t, got.Profile)

	_, err = f.auth.GetProfile(context.Background(), "missing")
	require.ErrorIs(t, err, model.ErrUserNotFound)
}
