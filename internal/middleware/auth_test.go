// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/oliverandrich/sparknest/internal/auth"
	"codeberg.org/oliverandrich/sparknest/internal/middleware"
	"codeberg.org/oliverandrich/sparknest/internal/repository"
	authsvc "codeberg.org/oliverandrich/sparknest/internal/services/auth"
	"codeberg.org/oliverandrich/sparknest/internal/testutil"
)

func gateTestSetup(t *testing.T) (*echo.Echo, *repository.Repository, *authsvc.TokenManager) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	tokens := authsvc.NewTokenManager("test-secret", time.Hour)

	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		user := auth.GetUser(c.Request().Context())
		require.NotNil(t, user)
		return c.JSON(http.StatusOK, user)
	}, middleware.RequireAuth(tokens, repo))
	return e, repo, tokens
}

func doProtected(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth_MissingToken(t *testing.T) {
	e, _, _ := gateTestSetup(t)

	rec := doProtected(e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	e, _, _ := gateTestSetup(t)

	rec := doProtected(e, "Basic dXNlcjpwdw==")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	e, _, _ := gateTestSetup(t)

	rec := doProtected(e, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	e, repo, _ := gateTestSetup(t)

	user := testutil.NewVerifiedUser(t, repo, "a@x.com", "pw12345678")
	expired := authsvc.NewTokenManager("test-secret", -time.Minute)
	token, err := expired.Issue(user.ID)
	require.NoError(t, err)

	rec := doProtected(e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_DeletedAccount(t *testing.T) {
	e, repo, tokens := gateTestSetup(t)

	user := testutil.NewVerifiedUser(t, repo, "a@x.com", "pw12345678")
	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	// The token is valid but the account it names is gone.
	require.NoError(t, repo.DeleteUser(t.Context(), user.ID))

	rec := doProtected(e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	e, repo, tokens := gateTestSetup(t)

	user := testutil.NewVerifiedUser(t, repo, "a@x.com", "pw12345678")
	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	rec := doProtected(e, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")
	// The credential hash never leaves the gate.
	assert.NotContains(t, rec.Body.String(), "password")
}
