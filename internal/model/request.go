package model

// RegisterRequest carries the flat registration payload. Profile fields are
// top-level and picked up according to the requested role.
type RegisterRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	Role              string `json:"role"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	DeviceFingerprint string `json:"deviceFingerprint"`

	// Student fields
	StudentID      string `json:"studentId"`
	EnrollmentYear int    `json:"enrollmentYear"`
	Major          string `json:"major"`

	// Teacher fields
	TeacherID  string `json:"teacherId"`
	Department string `json:"department"`

	// Admin fields
	AdminLevel int `json:"adminLevel"`
}

type LoginRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	DeviceFingerprint string `json:"deviceFingerprint"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpdateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	StudentID      string `json:"studentId"`
	EnrollmentYear int    `json:"enrollmentYear"`
	Major          string `json:"major"`
	TeacherID      string `json:"teacherId"`
	Department     string `json:"department"`
	AdminLevel     int    `json:"adminLevel"`
}
