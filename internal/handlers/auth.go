// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/oliverandrich/sparknest/internal/auth"
	"codeberg.org/oliverandrich/sparknest/internal/models"
	authsvc "codeberg.org/oliverandrich/sparknest/internal/services/auth"
)

// SignupRequest is the candidate account payload. It is submitted on
// signup and resubmitted on verification.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r *SignupRequest) validate() []string {
	var errs []string
	if !validEmail(r.Email) {
		errs = append(errs, "Invalid email address")
	}
	if len(r.Password) < minPasswordLength {
		errs = append(errs, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	if r.FirstName == "" {
		errs = append(errs, "First name is required")
	}
	if r.LastName == "" {
		errs = append(errs, "Last name is required")
	}
	return errs
}

func (r *SignupRequest) params() authsvc.SignUpParams {
	return authsvc.SignUpParams{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// VerifyOTPRequest carries the code plus the resubmitted account
// payload.
type VerifyOTPRequest struct {
	Email    string        `json:"email"`
	Code     string        `json:"code"`
	UserData SignupRequest `json:"userData"`
}

// LoginRequest is the password login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is returned by flows that establish a session.
type authResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// Signup issues a verification code for a new account.
func (h *Handlers) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, []string{"Invalid request body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	if err := h.auth.SignUp(c.Request().Context(), req.params()); err != nil {
		switch {
		case errors.Is(err, authsvc.ErrDuplicateAccount):
			return message(c, http.StatusBadRequest, "User with this email already exists")
		case errors.Is(err, authsvc.ErrDeliveryFailed):
			return message(c, http.StatusBadRequest, "Failed to send OTP")
		default:
			slog.Error("signup_failed", "error", err)
			return message(c, http.StatusInternalServerError, "Server error")
		}
	}

	return message(c, http.StatusOK, "OTP sent to your email")
}

// VerifyOTP consumes a verification code, creates the account and
// returns a session token.
func (h *Handlers) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, []string{"Invalid request body"})
	}

	var errs []string
	if !validEmail(req.Email) {
		errs = append(errs, "Invalid email address")
	}
	if !validOTPCode(req.Code) {
		errs = append(errs, "OTP must be 6 digits")
	}
	errs = append(errs, req.UserData.validate()...)
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	result, err := h.auth.VerifyOTP(c.Request().Context(), req.Email, req.Code, req.UserData.params())
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidOrExpiredCode):
			return message(c, http.StatusBadRequest, "Invalid or expired OTP")
		case errors.Is(err, authsvc.ErrDuplicateAccount):
			return message(c, http.StatusBadRequest, "User with this email already exists")
		default:
			slog.Error("verify_otp_failed", "error", err)
			return message(c, http.StatusInternalServerError, "Server error")
		}
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "Account created successfully",
		Token:   result.Token,
		User:    result.User,
	})
}

// Login authenticates by email and password.
func (h *Handlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, []string{"Invalid request body"})
	}

	var errs []string
	if !validEmail(req.Email) {
		errs = append(errs, "Invalid email address")
	}
	if req.Password == "" {
		errs = append(errs, "Password is required")
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidCredentials):
			return message(c, http.StatusBadRequest, "Invalid email or password")
		case errors.Is(err, authsvc.ErrEmailNotVerified):
			return message(c, http.StatusBadRequest, "Please verify your email first")
		default:
			slog.Error("login_failed", "error", err)
			return message(c, http.StatusInternalServerError, "Server error")
		}
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

// ResendOTP issues a fresh verification code. It is a caller-initiated
// retry of signup with the same payload.
func (h *Handlers) ResendOTP(c echo.Context) error {
	return h.Signup(c)
}

// Profile returns the authenticated user's profile.
func (h *Handlers) Profile(c echo.Context) error {
	identity := auth.GetUser(c.Request().Context())
	if identity == nil {
		return message(c, http.StatusUnauthorized, "Access token required")
	}

	user, err := h.repo.GetUserByID(c.Request().Context(), identity.ID)
	if err != nil {
		return message(c, http.StatusNotFound, "User not found")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"id":        user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"createdAt": user.CreatedAt,
	})
}
