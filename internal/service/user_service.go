package service

import (
	"context"
	"strings"
	"time"

	"campus-auth/internal/model"
)

// UserService covers user administration outside the session lifecycle:
// listing, lookup, profile updates and deletion.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]model.SanitizedUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return sanitizeAll(users), nil
}

func (s *UserService) ListByRole(ctx context.Context, role model.Role) ([]model.SanitizedUser, error) {
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return sanitizeAll(users), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (model.SanitizedUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.SanitizedUser{}, err
	}
	return user.Sanitize(), nil
}

// Update rewrites base fields and, when profile fields are present, the
// role-matched profile. The role itself and the password are immutable here.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (model.SanitizedUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.SanitizedUser{}, err
	}

	if email := strings.TrimSpace(req.Email); email != "" {
		user.Email = email
	}
	if req.FirstName != "" {
		user.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		user.LastName = strings.TrimSpace(req.LastName)
	}
	user.Profile = mergeProfile(user.Profile, req)
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return model.SanitizedUser{}, err
	}
	return user.Sanitize(), nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// mergeProfile applies any supplied profile fields onto the existing variant.
// The variant tag never changes: a student stays a student.
func mergeProfile(current model.Profile, req model.UpdateUserRequest) model.Profile {
	switch p := current.(type) {
	case model.StudentProfile:
		if req.StudentID != "" {
			p.StudentID = req.StudentID
		}
		if req.EnrollmentYear != 0 {
			p.EnrollmentYear = req.EnrollmentYear
		}
		if req.Major != "" {
			p.Major = req.Major
		}
		return p
	case model.TeacherProfile:
		if req.TeacherID != "" {
			p.TeacherID = req.TeacherID
		}
		if req.Department != "" {
			p.Department = req.Department
		}
		return p
	case model.AdminProfile:
		if req.AdminLevel != 0 {
			p.AdminLevel = req.AdminLevel
		}
		return p
	}
	return current
}

func sanitizeAll(users []model.User) []model.SanitizedUser {
	out := make([]model.SanitizedUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitize())
	}
	return out
}
