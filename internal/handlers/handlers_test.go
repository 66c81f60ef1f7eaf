// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/oliverandrich/sparknest/internal/handlers"
	"codeberg.org/oliverandrich/sparknest/internal/middleware"
	"codeberg.org/oliverandrich/sparknest/internal/repository"
	authsvc "codeberg.org/oliverandrich/sparknest/internal/services/auth"
	"codeberg.org/oliverandrich/sparknest/internal/testutil"
)

// testApp wires the API exactly like the server does, with a fake
// mailer in place of SMTP.
type testApp struct {
	e      *echo.Echo
	repo   *repository.Repository
	mailer *testutil.FakeMailer
	tokens *authsvc.TokenManager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	mailer := &testutil.FakeMailer{}
	tokens := authsvc.NewTokenManager("test-secret", 7*24*time.Hour)
	svc := authsvc.NewService(repo, mailer, tokens, 10*time.Minute)
	h := handlers.New(repo, svc)

	e := echo.New()
	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.POST("/auth/signup", h.Signup)
	api.POST("/auth/verify-otp", h.VerifyOTP)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/resend-otp", h.ResendOTP)

	protected := api.Group("", middleware.RequireAuth(tokens, repo))
	protected.GET("/user/profile", h.Profile)
	protected.GET("/notes", h.ListNotes)
	protected.POST("/notes", h.CreateNote)
	protected.GET("/notes/:id", h.GetNote)
	protected.PUT("/notes/:id", h.UpdateNote)
	protected.DELETE("/notes/:id", h.DeleteNote)

	return &testApp{e: e, repo: repo, mailer: mailer, tokens: tokens}
}

// do performs a JSON request against the test app.
func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}
