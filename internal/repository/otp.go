// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"codeberg.org/oliverandrich/sparknest/internal/models"
)

// CreateOTPCode stores a new verification code for an email address.
// Multiple live codes per email are allowed; a resend simply adds one.
func (r *Repository) CreateOTPCode(ctx context.Context, email, code string, expiresAt time.Time) (*models.OTPCode, error) {
	now := time.Now().UTC()
	otp := &models.OTPCode{
		ID:        uuid.NewString(),
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: now,
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO otp_codes (id, email, code, expires_at, is_used, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		otp.ID, otp.Email, otp.Code, otp.ExpiresAt, otp.CreatedAt)
	if err != nil {
		return nil, wrapError(err)
	}
	return otp, nil
}

// GetValidOTPCode returns the stored code matching (email, code) that is
// neither used nor expired. ErrNotFound otherwise.
func (r *Repository) GetValidOTPCode(ctx context.Context, email, code string) (*models.OTPCode, error) {
	var otp models.OTPCode
	err := r.db.GetContext(ctx, &otp,
		`SELECT * FROM otp_codes
		 WHERE email = ? AND code = ? AND is_used = 0 AND expires_at > ?
		 ORDER BY created_at DESC LIMIT 1`,
		email, code, time.Now().UTC())
	if err != nil {
		return nil, wrapError(err)
	}
	return &otp, nil
}

// MarkOTPCodeUsed consumes a code. Marking an already-used code again is
// a no-op, not an error.
func (r *Repository) MarkOTPCodeUsed(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE otp_codes SET is_used = 1 WHERE id = ?`, id)
	return wrapError(err)
}

// PurgeExpiredOTPCodes deletes codes whose validity window has passed.
// Best-effort cleanup; correctness never depends on it because lookups
// filter on expiry themselves.
func (r *Repository) PurgeExpiredOTPCodes(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM otp_codes WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, wrapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
