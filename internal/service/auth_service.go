package service

import (
	"context"

	"campus-auth/internal/crypto"
	"campus-auth/internal/fingerprint"
	"campus-auth/internal/model"
)

// AuthService drives the session lifecycle: login issues a token pair and
// registers the refresh token, refresh reissues access tokens against the
// registry, logout revokes, and a newer login from elsewhere supersedes the
// previous session.
type AuthService struct {
	users             UserStore
	hasher            crypto.Hasher
	tokens            *TokenService
	registry          RefreshTokenRegistry
	strictFingerprint bool
}

func NewAuthService(users UserStore, hasher crypto.Hasher, tokens *TokenService, registry RefreshTokenRegistry, strictFingerprint bool) *AuthService {
	return &AuthService{
		users:             users,
		hasher:            hasher,
		tokens:            tokens,
		registry:          registry,
		strictFingerprint: strictFingerprint,
	}
}

// Login verifies credentials and device binding, then issues an access and a
// refresh token. The refresh token is registered before the pair is returned,
// replacing any token from an earlier login.
func (s *AuthService) Login(ctx context.Context, email string, password string, deviceFingerprint string) (model.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Same error for an unknown email and a wrong password.
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	if !fingerprint.Validate(user.DeviceFingerprint, deviceFingerprint, s.strictFingerprint) {
		return model.TokenPair{}, model.ErrDeviceMismatch
	}

	// One-time binding: learn the fingerprint on the first login that has one.
	if deviceFingerprint != "" && user.DeviceFingerprint == "" {
		if err := s.users.UpdateFingerprint(ctx, user.ID, deviceFingerprint); err != nil {
			return model.TokenPair{}, err
		}
		user.DeviceFingerprint = deviceFingerprint
	}

	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		return model.TokenPair{}, err
	}
	refreshToken, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return model.TokenPair{}, err
	}

	// Committing step: an abandoned request must not register tokens the
	// client never received.
	if err := ctx.Err(); err != nil {
		return model.TokenPair{}, err
	}
	if err := s.registry.Store(ctx, user.ID, refreshToken); err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Sanitize(),
	}, nil
}

// Refresh mints a new access token for a refresh token that both verifies
// cryptographically and is still the current one for its subject. The
// refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	current, err := s.registry.Validate(ctx, claims.UserID, refreshToken)
	if err != nil {
		return "", err
	}
	if !current {
		return "", model.ErrRefreshTokenRevoked
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}

	return s.tokens.IssueAccess(user)
}

// Logout revokes the user's refresh token. Revoking an absent entry succeeds.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.registry.Revoke(ctx, userID)
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (model.SanitizedUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.SanitizedUser{}, err
	}
	return user.Sanitize(), nil
}

// VerifyAccess exposes access-token verification for the auth middleware.
func (s *AuthService) VerifyAccess(token string) (*model.AuthClaims, error) {
	return s.tokens.VerifyAccess(token)
}
