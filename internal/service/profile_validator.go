package service

import "campus-auth/internal/model"

// buildProfile validates the role-specific fields of a registration payload
// and returns the matching profile variant. Validation is role branch first,
// then field by field; the first missing field wins.
func buildProfile(role model.Role, req model.RegisterRequest) (model.Profile, error) {
	switch role {
	case model.RoleStudent:
		if req.StudentID == "" {
			return nil, &model.MissingProfileFieldError{Role: role, Field: "studentId"}
		}
		if req.EnrollmentYear == 0 {
			return nil, &model.MissingProfileFieldError{Role: role, Field: "enrollmentYear"}
		}
		return model.StudentProfile{
			StudentID:      req.StudentID,
			EnrollmentYear: req.EnrollmentYear,
			Major:          req.Major,
		}, nil

	case model.RoleTeacher:
		if req.TeacherID == "" {
			return nil, &model.MissingProfileFieldError{Role: role, Field: "teacherId"}
		}
		return model.TeacherProfile{
			TeacherID:  req.TeacherID,
			Department: req.Department,
		}, nil

	case model.RoleAdmin:
		level := req.AdminLevel
		if level == 0 {
			level = 1
		}
		return model.AdminProfile{AdminLevel: level}, nil
	}

	return nil, &model.MissingProfileFieldError{Role: role, Field: "role"}
}
