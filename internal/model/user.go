package model

import "time"

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return Role(raw), true
	default:
		return "", false
	}
}

// Profile is the role-specific record attached 1:1 to a user. Each variant
// reports the role it belongs to, so User.Role and the attached variant can
// be checked against each other.
type Profile interface {
	ProfileRole() Role
}

type StudentProfile struct {
	StudentID      string `json:"studentId"`
	EnrollmentYear int    `json:"enrollmentYear"`
	Major          string `json:"major,omitempty"`
}

func (StudentProfile) ProfileRole() Role { return RoleStudent }

type TeacherProfile struct {
	TeacherID  string `json:"teacherId"`
	Department string `json:"department,omitempty"`
}

func (TeacherProfile) ProfileRole() Role { return RoleTeacher }

type AdminProfile struct {
	AdminLevel int `json:"adminLevel"`
}

func (AdminProfile) ProfileRole() Role { return RoleAdmin }

type User struct {
	ID                string
	Email             string
	PasswordHash      string
	Role              Role
	FirstName         string
	LastName          string
	DeviceFingerprint string
	Profile           Profile
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SanitizedUser is the external shape of a user: no password hash, and the
// role-matched profile exposed under a single field regardless of role.
type SanitizedUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Profile   Profile   `json:"profile"`
}

func (u User) Sanitize() SanitizedUser {
	return SanitizedUser{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		Profile:   u.Profile,
	}
}

type AuthClaims struct {
	UserID string `json:"sub"`
	Email  string `json:"email,omitempty"`
	Role   Role   `json:"role,omitempty"`
	Type   string `json:"type"`
}

type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         SanitizedUser `json:"user"`
}
