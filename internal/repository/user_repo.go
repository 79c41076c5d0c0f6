package repository

import (
	"context"
	"errors"
	"fmt"

	"lead_scoring/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. The caller supplies the ID and the password hash.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (user_id, name, email, password_hash, role)
            VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, sql, user.ID, user.Name, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create user: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user, including the password hash, by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT user_id, name, email, password_hash, role FROM users WHERE email = $1`
	err := r.db.QueryRow(ctx, sql, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by ID
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT user_id, name, email, password_hash, role FROM users WHERE user_id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// List returns every user ordered by name. Password hashes are not loaded.
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id, name, email, role FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// Update overwrites name, email and role. An empty PasswordHash keeps the stored one.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	sql := `UPDATE users
            SET name = $1, email = $2, role = $3, password_hash = COALESCE(NULLIF($4, ''), password_hash)
            WHERE user_id = $5`
	cmdTag, err := r.db.Exec(ctx, sql, user.Name, user.Email, user.Role, user.PasswordHash, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to update user: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update user %s: %w", user.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a user and releases the leads it had claimed, in one transaction
func (r *userRepository) Delete(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE nasabah SET user_id = NULL WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("failed to release leads of user: %w", err)
		}
		cmdTag, err := tx.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("failed to delete user %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
