// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth implements the signup, verification and login flows and
// the session token machinery behind them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"codeberg.org/oliverandrich/sparknest/internal/models"
	"codeberg.org/oliverandrich/sparknest/internal/repository"
)

var (
	ErrDuplicateAccount     = errors.New("account with this email already exists")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired verification code")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrDeliveryFailed       = errors.New("failed to send verification code")
)

// dummyHash is compared against when no account or no password
// credential exists, so login takes the same time either way.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

// Sender delivers a verification code to an email address. Failures are
// reported upward, never retried here.
type Sender interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// Service coordinates the account verification lifecycle:
// Unregistered -> PendingVerification (code issued) -> Verified.
type Service struct {
	repo        *repository.Repository
	mailer      Sender
	tokens      *TokenManager
	otpValidity time.Duration
}

// NewService creates the auth service.
func NewService(repo *repository.Repository, mailer Sender, tokens *TokenManager, otpValidity time.Duration) *Service {
	return &Service{
		repo:        repo,
		mailer:      mailer,
		tokens:      tokens,
		otpValidity: otpValidity,
	}
}

// Tokens returns the token manager for use by the HTTP middleware.
func (s *Service) Tokens() *TokenManager {
	return s.tokens
}

// SignUpParams is the full candidate account payload. It is submitted
// on signup and again on verification, because nothing about the
// account is persisted until the code is consumed.
type SignUpParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult is returned by flows that establish a session.
type AuthResult struct {
	Token string
	User  models.PublicUser
}

// SignUp issues a verification code for a prospective account and mails
// it to the address. No account row is created and the password is not
// persisted; both travel back to the client for the verify step.
func (s *Service) SignUp(ctx context.Context, params SignUpParams) error {
	_, err := s.repo.GetUserByEmail(ctx, params.Email)
	if err == nil {
		return ErrDuplicateAccount
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	code, err := GenerateOTP()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.otpValidity)
	otp, err := s.repo.CreateOTPCode(ctx, params.Email, code, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	// The stored code stays valid even when delivery fails; a retried
	// signup simply issues a fresh one.
	if err := s.mailer.SendVerificationCode(ctx, params.Email, code); err != nil {
		slog.Error("otp_delivery_failed", "email", params.Email, "error", err)
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	slog.Info("otp_issued", "email", params.Email, "otp_id", otp.ID, "expires_at", otp.ExpiresAt)
	return nil
}

// VerifyOTP consumes a verification code, creates the account and opens
// a session. The code is marked used only after the account exists, so
// a lost race on a duplicate email leaves the code consumable by the
// legitimate request.
func (s *Service) VerifyOTP(ctx context.Context, email, code string, params SignUpParams) (*AuthResult, error) {
	otp, err := s.repo.GetValidOTPCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("otp_rejected", "email", email)
			return nil, ErrInvalidOrExpiredCode
		}
		return nil, fmt.Errorf("failed to look up verification code: %w", err)
	}

	passwordHash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Email:        params.Email,
		PasswordHash: &passwordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.repo.SetEmailVerified(ctx, params.Email, true); err != nil {
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}

	if err := s.repo.MarkOTPCodeUsed(ctx, otp.ID); err != nil {
		return nil, fmt.Errorf("failed to consume verification code: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	slog.Info("account_verified", "user_id", user.ID, "email", user.Email)
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login authenticates by email and password and opens a session.
// Unknown emails and wrong passwords are indistinguishable in the
// result; an unverified email is reported as such, since that reveals
// nothing about the password.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "email", email, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.PasswordHash == nil {
		// Federated-only account, no password credential to check.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		slog.Warn("login_failed", "email", email, "reason", "no_password_credential")
		return nil, ErrInvalidCredentials
	}

	if !CheckPassword(password, *user.PasswordHash) {
		slog.Warn("login_failed", "email", email, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		slog.Warn("login_failed", "email", email, "reason", "email_not_verified")
		return nil, ErrEmailNotVerified
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	slog.Info("login_success", "user_id", user.ID, "email", email)
	return &AuthResult{Token: token, User: user.Public()}, nil
}
