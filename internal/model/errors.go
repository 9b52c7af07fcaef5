package model

import (
	"errors"
	"fmt"
)

var (
	// Registration errors
	ErrDuplicateUser   = errors.New("User already exists")
	ErrMissingPassword = errors.New("Password is required")

	// Login errors. ErrInvalidCredentials covers both an unknown email and a
	// wrong password so the response text cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrDeviceMismatch     = errors.New("This account is already registered on another device")

	// Token errors
	ErrTokenExpired          = errors.New("Token expired")
	ErrTokenInvalidSignature = errors.New("Invalid token signature")
	ErrTokenTypeMismatch     = errors.New("Invalid token type")
	ErrRefreshTokenRevoked   = errors.New("Invalid refresh token")

	// Lookup / access errors
	ErrUserNotFound = errors.New("User not found")
	ErrUnauthorized = errors.New("Unauthorized")
	ErrForbidden    = errors.New("Forbidden: Insufficient permissions")
)

// MissingProfileFieldError identifies exactly which role-specific field was
// absent during registration. Validation stops at the first missing field.
type MissingProfileFieldError struct {
	Role  Role
	Field string
}

func (e *MissingProfileFieldError) Error() string {
	switch e.Field {
	case "studentId":
		return "Student ID is required"
	case "enrollmentYear":
		return "Enrollment year is required"
	case "teacherId":
		return "Teacher ID is required"
	}
	return fmt.Sprintf("%s is required", e.Field)
}
