// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"

	"codeberg.org/oliverandrich/sparknest/internal/database"
	"codeberg.org/oliverandrich/sparknest/internal/models"
	"codeberg.org/oliverandrich/sparknest/internal/repository"
	"codeberg.org/oliverandrich/sparknest/internal/services/auth"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewVerifiedUser creates a verified test user with the given email and
// password.
func NewVerifiedUser(t *testing.T, repo *repository.Repository, email, password string) *models.User {
	t.Helper()
	ctx := context.Background()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user, err := repo.CreateUser(ctx, repository.CreateUserParams{
		Email:        email,
		PasswordHash: &hash,
		FirstName:    "Test",
		LastName:     "User",
	})
	require.NoError(t, err)

	require.NoError(t, repo.SetEmailVerified(ctx, email, true))
	user.IsEmailVerified = true
	return user
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// FakeMailer records verification codes instead of sending them.
type FakeMailer struct {
	mu    sync.Mutex
	Sent  []SentCode
	Fail  bool
	Error error
}

// SentCode is one recorded delivery.
type SentCode struct {
	Email string
	Code  string
}

// SendVerificationCode records the code, or fails when configured to.
func (m *FakeMailer) SendVerificationCode(_ context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		if m.Error != nil {
			return m.Error
		}
		return errors.New("smtp unavailable")
	}
	m.Sent = append(m.Sent, SentCode{Email: email, Code: code})
	return nil
}

// LastCode returns the most recently recorded code for an email.
func (m *FakeMailer) LastCode(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Sent) - 1; i >= 0; i-- {
		if m.Sent[i].Email == email {
			return m.Sent[i].Code
		}
	}
	return ""
}
