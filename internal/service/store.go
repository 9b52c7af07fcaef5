package service

import (
	"context"

	"campus-auth/internal/model"
)

// UserStore is the persistence collaborator for users and their role-variant
// profiles. Create must write the user row and its profile row atomically.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	Update(ctx context.Context, u model.User) error
	UpdateFingerprint(ctx context.Context, userID string, fingerprint string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
}

// RefreshTokenRegistry records each user's single currently-valid refresh
// token. Store replaces any prior entry; Validate requires exact string
// identity; Revoke is idempotent. Implementations must keep per-user
// operations atomic under concurrent logins and logouts.
type RefreshTokenRegistry interface {
	Store(ctx context.Context, userID string, token string) error
	Validate(ctx context.Context, userID string, token string) (bool, error)
	Revoke(ctx context.Context, userID string) error
}
