// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// User is an account record. PasswordHash is nil for accounts that only
// carry a federated identity (GoogleID) and can never log in by password.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID              string    `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`
	PasswordHash    *string   `db:"password_hash" json:"-"`
	FirstName       string    `db:"first_name" json:"firstName"`
	LastName        string    `db:"last_name" json:"lastName"`
	GoogleID        *string   `db:"google_id" json:"-"`
	IsEmailVerified bool      `db:"is_email_verified" json:"isEmailVerified"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// PublicUser is the projection of a user that may leave the server.
// The credential hash is never part of it.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Public returns the outward-facing projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
