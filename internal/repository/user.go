// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"codeberg.org/oliverandrich/sparknest/internal/models"
)

// CreateUserParams holds the fields for creating a user.
type CreateUserParams struct {
	Email        string
	PasswordHash *string
	FirstName    string
	LastName     string
	GoogleID     *string
}

// CreateUser inserts a new user. Returns ErrDuplicate if the email is
// already taken.
func (r *Repository) CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error) {
	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		GoogleID:     params.GoogleID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name, google_id, is_email_verified, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.GoogleID, now, now)
	if err != nil {
		return nil, wrapError(err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByGoogleID retrieves a user by their federated Google identity.
func (r *Repository) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE google_id = ?`, googleID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// SetEmailVerified updates the email verification flag for a user.
func (r *Repository) SetEmailVerified(ctx context.Context, email string, verified bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_email_verified = ?, updated_at = ? WHERE email = ?`,
		verified, time.Now().UTC(), email)
	return wrapError(err)
}

// DeleteUser deletes a user by ID. Notes cascade at the schema level.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return wrapError(err)
}
