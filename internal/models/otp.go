// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// OTPCode is a stored one-time verification code for an email address.
// The account does not exist yet when the code is issued, so the record
// references the email, not a user ID.
type OTPCode struct { //nolint:govet // fieldalignment: readability over optimization
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Code      string    `db:"code" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	IsUsed    bool      `db:"is_used" json:"is_used"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
