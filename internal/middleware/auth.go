// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware contains HTTP middleware for the API.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"codeberg.org/oliverandrich/sparknest/internal/auth"
	"codeberg.org/oliverandrich/sparknest/internal/models"
	authsvc "codeberg.org/oliverandrich/sparknest/internal/services/auth"
)

// UserLoader resolves an account identifier to a user record.
type UserLoader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth validates the bearer token on every request, re-resolves
// the encoded account against storage and attaches the identity to the
// request context. Fail-closed: any ambiguity rejects with 401.
func RequireAuth(tokens *authsvc.TokenManager, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request())
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Access token required"})
			}

			userID, err := tokens.Validate(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid or expired token"})
			}

			// The token only proves who the account was at issue time;
			// the account must still exist now.
			user, err := users.GetUserByID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid or expired token"})
			}

			identity := user.Public()
			ctx := auth.SetUser(c.Request().Context(), &identity)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
