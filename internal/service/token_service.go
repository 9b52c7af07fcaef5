package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"campus-auth/internal/model"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenService issues and verifies signed access and refresh tokens. Each
// token class is signed with its own secret, so one class never verifies
// under the other's key.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret string, refreshSecret string, accessTTL time.Duration, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// IssueAccess mints a short-lived access token carrying identity and role.
func (s *TokenService) IssueAccess(user model.User) (string, error) {
	now := time.Now().UTC()
	return s.sign(jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"type":  tokenTypeAccess,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
	}, s.accessSecret)
}

// IssueRefresh mints a long-lived refresh token carrying only the subject.
func (s *TokenService) IssueRefresh(user model.User) (string, error) {
	now := time.Now().UTC()
	return s.sign(jwt.MapClaims{
		"sub":  user.ID,
		"type": tokenTypeRefresh,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.refreshTTL).Unix(),
	}, s.refreshSecret)
}

func (s *TokenService) VerifyAccess(tokenString string) (*model.AuthClaims, error) {
	return s.verify(tokenString, tokenTypeAccess, s.accessSecret)
}

// VerifyRefresh checks signature, expiry and type. It does not confirm the
// token is still the current one for its subject; that is the refresh token
// registry's job.
func (s *TokenService) VerifyRefresh(tokenString string) (*model.AuthClaims, error) {
	return s.verify(tokenString, tokenTypeRefresh, s.refreshSecret)
}

func (s *TokenService) sign(claims jwt.MapClaims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *TokenService) verify(tokenString string, expectedType string, secret []byte) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrTokenInvalidSignature
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrTokenInvalidSignature
	}
	if !parsed.Valid {
		return nil, model.ErrTokenInvalidSignature
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrTokenInvalidSignature
	}

	typ, _ := claimsMap["type"].(string)
	if typ != expectedType {
		return nil, model.ErrTokenTypeMismatch
	}

	claims := &model.AuthClaims{Type: typ}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	if role, ok := claimsMap["role"].(string); ok {
		claims.Role = model.Role(role)
	}

	if claims.UserID == "" {
		return nil, model.ErrTokenInvalidSignature
	}

	return claims, nil
}
