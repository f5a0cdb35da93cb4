package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
	apperrors "github.com/havenmed/records-api/pkg/errors"
)

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, username, email, first_name, last_name, role, phone,
			password_hash, authorized, active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	user.CreatedAt = time.Now()

	_, err := r.GetDB().ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		user.Phone,
		user.PasswordHash,
		user.Authorized,
		user.Active,
		user.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users_username_key"):
			return apperrors.Conflict("username already taken")
		case isUniqueViolation(err, "users_email_key"):
			return apperrors.Conflict("email already registered")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT * FROM users WHERE id = $1`
	var user model.User
	err := r.GetDB().GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM users WHERE username = $1`
	var user model.User
	err := r.GetDB().GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user")
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, phone = $4,
			password_hash = $5, authorized = $6, active = $7
		WHERE id = $8
	`
	result, err := r.GetDB().ExecContext(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.PasswordHash,
		user.Authorized,
		user.Active,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return checkAffected(result, "user")
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	query := `UPDATE users SET refresh_token = $1 WHERE id = $2`
	result, err := r.GetDB().ExecContext(ctx, query, token, id)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	return checkAffected(result, "user")
}

func (r *userRepository) SetAuthorized(ctx context.Context, id uuid.UUID, authorized bool) error {
	query := `UPDATE users SET authorized = $1 WHERE id = $2`
	result, err := r.GetDB().ExecContext(ctx, query, authorized, id)
	if err != nil {
		return fmt.Errorf("failed to set authorization: %w", err)
	}
	return checkAffected(result, "user")
}

func (r *userRepository) SetLoginCode(ctx context.Context, id uuid.UUID, code *string) error {
	query := `UPDATE users SET login_code = $1 WHERE id = $2`
	result, err := r.GetDB().ExecContext(ctx, query, code, id)
	if err != nil {
		return fmt.Errorf("failed to set login code: %w", err)
	}
	return checkAffected(result, "user")
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT * FROM users ORDER BY created_at DESC`
	var users []*model.User
	if err := r.GetDB().SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func checkAffected(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound(resource)
	}
	return nil
}
