// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires the HTTP API together and runs it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"

	"codeberg.org/oliverandrich/sparknest/internal/config"
	"codeberg.org/oliverandrich/sparknest/internal/database"
	"codeberg.org/oliverandrich/sparknest/internal/handlers"
	"codeberg.org/oliverandrich/sparknest/internal/middleware"
	"codeberg.org/oliverandrich/sparknest/internal/repository"
	authsvc "codeberg.org/oliverandrich/sparknest/internal/services/auth"
	"codeberg.org/oliverandrich/sparknest/internal/services/email"
)

// otpPurgeInterval is how often expired verification codes are removed.
const otpPurgeInterval = time.Hour

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// Repository
	repo := repository.New(db)

	// Services
	mailer, err := email.NewService(&cfg.SMTP, cfg.Auth.OTPValidity)
	if err != nil {
		return fmt.Errorf("failed to create email service: %w", err)
	}
	tokens := authsvc.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenValidity)*time.Hour)
	authService := authsvc.NewService(repo, mailer, tokens, time.Duration(cfg.Auth.OTPValidity)*time.Minute)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg)
	setupRoutes(e, repo, authService)

	// Best-effort cleanup of expired verification codes
	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go purgeExpiredOTPs(purgeCtx, repo)

	return startWithGracefulShutdown(e, cfg)
}

func setupRoutes(e *echo.Echo, repo *repository.Repository, authService *authsvc.Service) {
	h := handlers.New(repo, authService)

	e.GET("/health", h.Health)

	api := e.Group("/api")

	api.POST("/auth/signup", h.Signup)
	api.POST("/auth/verify-otp", h.VerifyOTP)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/resend-otp", h.ResendOTP)

	protected := api.Group("", middleware.RequireAuth(authService.Tokens(), repo))
	protected.GET("/user/profile", h.Profile)
	protected.GET("/notes", h.ListNotes)
	protected.POST("/notes", h.CreateNote)
	protected.GET("/notes/:id", h.GetNote)
	protected.PUT("/notes/:id", h.UpdateNote)
	protected.DELETE("/notes/:id", h.DeleteNote)
}

// purgeExpiredOTPs periodically deletes expired verification codes.
// Lookups filter on expiry themselves, so this only reclaims space.
func purgeExpiredOTPs(ctx context.Context, repo *repository.Repository) {
	ticker := time.NewTicker(otpPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeExpiredOTPCodes(ctx)
			if err != nil {
				slog.Error("otp_purge_failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("otp_purge", "deleted", n)
			}
		}
	}
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	tlsResult, err := SetupTLS(cfg)
	if err != nil {
		return fmt.Errorf("TLS setup failed: %w", err)
	}

	errChan := make(chan error, 2)

	var httpServer *http.Server

	switch tlsResult.Mode {
	case TLSModeOff:
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			slog.Info("Server running", "url", cfg.Server.BaseURL)
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case TLSModeACME:
		go func() {
			slog.Info("Server running", "url", cfg.Server.BaseURL)
			if err := startTLSServer(e, ":443", tlsResult.TLSConfig); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

		// HTTP challenge/redirect server on :80
		httpServer = &http.Server{
			Addr:              ":80",
			Handler:           tlsResult.HTTPHandler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("HTTP→HTTPS redirect active", "addr", ":80")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case TLSModeManual:
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			slog.Info("Server running", "url", cfg.Server.BaseURL)
			if err := startTLSServer(e, addr, tlsResult.TLSConfig); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown main server", "error", err)
	}

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown HTTP redirect server", "error", err)
		}
	}

	slog.Info("server stopped")
	return nil
}
