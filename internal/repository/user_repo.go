package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campus-auth/internal/model"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, role, first_name, last_name,
		        COALESCE(device_fingerprint, ''), created_at, updated_at`

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName,
			&u.DeviceFingerprint, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}

	if err := r.attachProfile(ctx, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email)).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName,
			&u.DeviceFingerprint, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}

	if err := r.attachProfile(ctx, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`,
		strings.TrimSpace(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// Create inserts the user row and its role-matched profile row in one
// transaction, so no user is ever visible without its profile.
func (r *UserRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("begin create user: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, first_name, last_name, device_fingerprint, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.FirstName, u.LastName,
		u.DeviceFingerprint, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}

	if err := insertProfile(ctx, tx, u.ID, u.Profile); err != nil {
		return model.User{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.User{}, fmt.Errorf("commit create user: %w", err)
	}
	return u, nil
}

func insertProfile(ctx context.Context, tx pgx.Tx, userID string, profile model.Profile) error {
	var err error
	switch p := profile.(type) {
	case model.StudentProfile:
		_, err = tx.Exec(ctx,
			`INSERT INTO student_profiles (user_id, student_id, enrollment_year, major)
			 VALUES ($1, $2, $3, NULLIF($4, ''))`,
			userID, p.StudentID, p.EnrollmentYear, p.Major)
	case model.TeacherProfile:
		_, err = tx.Exec(ctx,
			`INSERT INTO teacher_profiles (user_id, teacher_id, department)
			 VALUES ($1, $2, NULLIF($3, ''))`,
			userID, p.TeacherID, p.Department)
	case model.AdminProfile:
		_, err = tx.Exec(ctx,
			`INSERT INTO admin_profiles (user_id, admin_level) VALUES ($1, $2)`,
			userID, p.AdminLevel)
	default:
		return fmt.Errorf("create profile: unsupported variant %T", profile)
	}
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// Update rewrites the user's base fields and upserts its profile row in one
// transaction. The password hash and role are not touched here.
func (r *UserRepository) Update(ctx context.Context, u model.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update user: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE users SET email = $2, first_name = $3, last_name = $4, updated_at = $5 WHERE id = $1`,
		u.ID, u.Email, u.FirstName, u.LastName, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	if u.Profile != nil {
		if err := upsertProfile(ctx, tx, u.ID, u.Profile); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update user: %w", err)
	}
	return nil
}

func upsertProfile(ctx context.Context, tx pgx.Tx, userID string, profile model.Profile) error {
	var err error
	switch p := profile.(type) {
	case model.StudentProfile:
		_, err = tx.Exec(ctx,
			`INSERT INTO student_profiles (user_id, student_id, enrollment_year, major)
			 VALUES ($1, $2, $3, NULLIF($4, ''))
			 ON CONFLICT (user_id) DO UPDATE
			 SET student_id = EXCLUDED.student_id,
			     enrollment_year = EXCLUDED.enrollment_year,
			     major = EXCLUDED.major`,
			userID, p.StudentID, p.EnrollmentYear, p.Major)
	case model.TeacherProfile:
		_, err = tx.Exec(ctx,
			`INSERT INTO teacher_profiles (user_id, teacher_id, department)
			 VALUES ($1, $2, NULLIF($3, ''))
			 ON CONFLICT (user_id) DO UPDATE
			 SET teacher_id = EXCLUDED.teacher_id,
			     department = EXCLUDED.department`,
			userID, p.TeacherID, p.Department)
	case model.AdminProfile:
		_, err = tx.Exec(ctx,
			`INSERT INTO admin_profiles (user_id, admin_level) VALUES ($1, $2)
			 ON CONFLICT (user_id) DO UPDATE SET admin_level = EXCLUDED.admin_level`,
			userID, p.AdminLevel)
	default:
		return fmt.Errorf("update profile: unsupported variant %T", profile)
	}
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// UpdateFingerprint records the device fingerprint learned at first login.
func (r *UserRepository) UpdateFingerprint(ctx context.Context, userID string, fingerprint string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET device_fingerprint = $2, updated_at = now() WHERE id = $1`,
		userID, fingerprint)
	if err != nil {
		return fmt.Errorf("update fingerprint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// Delete removes the user; profile rows go with it via ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	return r.scanUsers(ctx, rows)
}

func (r *UserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY email`, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()

	return r.scanUsers(ctx, rows)
}

func (r *UserRepository) scanUsers(ctx context.Context, rows pgx.Rows) ([]model.User, error) {
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName,
			&u.LastName, &u.DeviceFingerprint, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		if err := r.attachProfile(ctx, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (r *UserRepository) attachProfile(ctx context.Context, u *model.User) error {
	var err error
	switch u.Role {
	case model.RoleStudent:
		var p model.StudentProfile
		err = r.pool.QueryRow(ctx,
			`SELECT student_id, enrollment_year, COALESCE(major, '')
			 FROM student_profiles WHERE user_id = $1`, u.ID).
			Scan(&p.StudentID, &p.EnrollmentYear, &p.Major)
		u.Profile = p
	case model.RoleTeacher:
		var p model.TeacherProfile
		err = r.pool.QueryRow(ctx,
			`SELECT teacher_id, COALESCE(department, '')
			 FROM teacher_profiles WHERE user_id = $1`, u.ID).
			Scan(&p.TeacherID, &p.Department)
		u.Profile = p
	case model.RoleAdmin:
		var p model.AdminProfile
		err = r.pool.QueryRow(ctx,
			`SELECT admin_level FROM admin_profiles WHERE user_id = $1`, u.ID).
			Scan(&p.AdminLevel)
		u.Profile = p
	default:
		return fmt.Errorf("attach profile: unknown role %q", u.Role)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		// Should not happen: creation is transactional.
		return fmt.Errorf("attach profile: user %s has no %s profile", u.ID, u.Role)
	}
	if err != nil {
		return fmt.Errorf("attach profile: %w", err)
	}
	return nil
}
