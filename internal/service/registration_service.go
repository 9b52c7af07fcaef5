package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"campus-auth/internal/crypto"
	"campus-auth/internal/model"
	"campus-auth/pkg/apierror"
)

// RegistrationService creates users with their role-matched profiles. Each
// step is a hard precondition for the next: duplicate check, profile
// validation, password hashing, atomic create.
type RegistrationService struct {
	users  UserStore
	hasher crypto.Hasher
}

func NewRegistrationService(users UserStore, hasher crypto.Hasher) *RegistrationService {
	return &RegistrationService{users: users, hasher: hasher}
}

func (s *RegistrationService) Register(ctx context.Context, req model.RegisterRequest) (model.SanitizedUser, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return model.SanitizedUser{}, apierror.New("Email is required", http.StatusBadRequest)
	}

	role, ok := model.ParseRole(strings.TrimSpace(req.Role))
	if !ok {
		return model.SanitizedUser{}, apierror.New("Invalid role", http.StatusBadRequest)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.SanitizedUser{}, err
	}
	if exists {
		return model.SanitizedUser{}, model.ErrDuplicateUser
	}

	profile, err := buildProfile(role, req)
	if err != nil {
		return model.SanitizedUser{}, err
	}

	if req.Password == "" {
		return model.SanitizedUser{}, model.ErrMissingPassword
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.SanitizedUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:                uuid.NewString(),
		Email:             email,
		PasswordHash:      hash,
		Role:              role,
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		DeviceFingerprint: req.DeviceFingerprint,
		Profile:           profile,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return model.SanitizedUser{}, err
	}

	return created.Sanitize(), nil
}
