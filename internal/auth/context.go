// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth provides authentication context helpers.
package auth

import (
	"context"

	"codeberg.org/oliverandrich/sparknest/internal/ctxkeys"
	"codeberg.org/oliverandrich/sparknest/internal/models"
)

// SetUser returns a context carrying the authenticated user.
func SetUser(ctx context.Context, user *models.PublicUser) context.Context {
	return context.WithValue(ctx, ctxkeys.User{}, user)
}

// GetUser returns the authenticated user from the context, or nil if
// not authenticated.
func GetUser(ctx context.Context) *models.PublicUser {
	if user, ok := ctx.Value(ctxkeys.User{}).(*models.PublicUser); ok {
		return user
	}
	return nil
}

// IsAuthenticated returns true if the context has an authenticated user.
func IsAuthenticated(ctx context.Context) bool {
	return GetUser(ctx) != nil
}
