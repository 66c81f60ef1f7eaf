// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers contains the JSON API handlers.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/oliverandrich/sparknest/internal/repository"
	authsvc "codeberg.org/oliverandrich/sparknest/internal/services/auth"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	repo *repository.Repository
	auth *authsvc.Service
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, auth *authsvc.Service) *Handlers {
	return &Handlers{repo: repo, auth: auth}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// messageResponse is the generic {message} payload.
type messageResponse struct {
	Message string `json:"message"`
}

// validationResponse carries field-level validation errors.
type validationResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, messageResponse{Message: msg})
}

func validationFailed(c echo.Context, errs []string) error {
	return c.JSON(http.StatusBadRequest, validationResponse{
		Message: "Validation failed",
		Errors:  errs,
	})
}
