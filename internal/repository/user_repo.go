package repository

import (
	"context"
	"errors"
	"fmt"

	"agribot/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, email, password_hash, full_name, COALESCE(phone, ''), COALESCE(address, ''), role, status, created_at`

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	CreateAdminIfMissing(ctx context.Context, user *model.User) (bool, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	UpdateStatus(ctx context.Context, id int, from, to model.UserStatus) (bool, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	UpdateProfile(ctx context.Context, id int, fullName, phone, address string) error
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	ListByStatus(ctx context.Context, status model.UserStatus) ([]model.User, error)
	Counts(ctx context.Context) (*model.DashboardStats, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

func scanUser(row scanner) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.FullName,
		&user.Phone, &user.Address, &user.Role, &user.Status, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user and fills in its generated id and creation time
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (username, email, password_hash, full_name, role, status)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, user.Username, user.Email, user.PasswordHash, user.FullName, user.Role, user.Status).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUniqueViolation
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// CreateAdminIfMissing inserts the given approved admin unless an admin row
// already exists. It reports whether a row was inserted.
func (r *userRepository) CreateAdminIfMissing(ctx context.Context, user *model.User) (bool, error) {
	sql := `INSERT INTO users (username, email, password_hash, full_name, role, status)
            SELECT $1, $2, $3, $4, 'admin', 'approved'
            WHERE NOT EXISTS (SELECT 1 FROM users WHERE role = 'admin')
            ON CONFLICT DO NOTHING`
	tag, err := r.db.Exec(ctx, sql, user.Username, user.Email, user.PasswordHash, user.FullName)
	if err != nil {
		return false, fmt.Errorf("failed to seed admin: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// FindByUsername retrieves a user by username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// UpdateStatus moves a user from one status to another. It reports false
// when the row no longer holds the expected status.
func (r *userRepository) UpdateStatus(ctx context.Context, id int, from, to model.UserStatus) (bool, error) {
	sql := `UPDATE users SET status = $1 WHERE id = $2 AND status = $3`
	tag, err := r.db.Exec(ctx, sql, to, id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update user status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdatePassword replaces the stored password hash
func (r *userRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	sql := `UPDATE users SET password_hash = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, sql, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProfile replaces the editable profile fields
func (r *userRepository) UpdateProfile(ctx context.Context, id int, fullName, phone, address string) error {
	sql := `UPDATE users SET full_name = $1, phone = $2, address = $3 WHERE id = $4`
	tag, err := r.db.Exec(ctx, sql, fullName, phone, address, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByRole returns every account holding the given role, oldest first
func (r *userRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`
	return r.list(ctx, sql, role)
}

// ListByStatus returns every account in the given status, oldest first
func (r *userRepository) ListByStatus(ctx context.Context, status model.UserStatus) ([]model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE status = $1 ORDER BY id`
	return r.list(ctx, sql, status)
}

func (r *userRepository) list(ctx context.Context, sql string, args ...any) ([]model.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// Counts returns the admin dashboard counters. PendingList is left empty.
func (r *userRepository) Counts(ctx context.Context) (*model.DashboardStats, error) {
	sql := `SELECT
                COUNT(*) FILTER (WHERE role = 'user'),
                COUNT(*) FILTER (WHERE role = 'user' AND status = 'pending'),
                COUNT(*) FILTER (WHERE status = 'restricted')
            FROM users`
	stats := &model.DashboardStats{}
	if err := r.db.QueryRow(ctx, sql).Scan(&stats.TotalUsers, &stats.PendingUsers, &stats.RestrictedUsers); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return stats, nil
}
