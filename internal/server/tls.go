// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/acme/autocert"

	"codeberg.org/oliverandrich/sparknest/internal/config"
)

// TLSMode represents the resolved TLS mode.
type TLSMode string

const (
	TLSModeOff    TLSMode = "off"
	TLSModeACME   TLSMode = "acme"
	TLSModeManual TLSMode = "manual"
)

// TLSResult contains the resolved TLS configuration.
type TLSResult struct {
	TLSConfig   *tls.Config
	HTTPHandler http.Handler // ACME challenge + HTTP→HTTPS redirect (ACME only)
	Mode        TLSMode
}

// SetupTLS configures TLS based on the configuration.
func SetupTLS(cfg *config.Config) (*TLSResult, error) {
	mode := resolveTLSMode(cfg)

	switch mode {
	case TLSModeOff:
		slog.Info("TLS mode: off")
		return &TLSResult{Mode: TLSModeOff}, nil

	case TLSModeACME:
		if config.IsLocalhost(cfg.Server.Host) {
			return nil, fmt.Errorf("ACME mode requires a public hostname, got %q", cfg.Server.Host)
		}
		if cfg.TLS.Email == "" {
			return nil, fmt.Errorf("ACME mode requires tls.email for Let's Encrypt registration")
		}
		slog.Info("TLS mode: acme (Let's Encrypt)", "host", cfg.Server.Host, "email", cfg.TLS.Email)
		return setupACME(cfg)

	case TLSModeManual:
		slog.Info("TLS mode: manual", "cert", cfg.TLS.CertFile, "key", cfg.TLS.KeyFile)
		return setupManual(cfg)

	default:
		return nil, fmt.Errorf("unknown TLS mode: %s", mode)
	}
}

// resolveTLSMode maps the configured mode to a concrete one. "auto"
// means no TLS on localhost and ACME on public hosts.
func resolveTLSMode(cfg *config.Config) TLSMode {
	switch strings.ToLower(cfg.TLS.Mode) {
	case "off":
		return TLSModeOff
	case "acme":
		return TLSModeACME
	case "manual":
		return TLSModeManual
	default: // "auto" or empty
		if config.IsLocalhost(cfg.Server.Host) {
			return TLSModeOff
		}
		return TLSModeACME
	}
}

func setupACME(cfg *config.Config) (*TLSResult, error) {
	if err := os.MkdirAll(cfg.TLS.CertDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create cert dir: %w", err)
	}

	manager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(cfg.Server.Host),
		Cache:      autocert.DirCache(cfg.TLS.CertDir),
		Email:      cfg.TLS.Email,
	}

	redirect := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := "https://" + stripPort(r.Host) + r.URL.RequestURI()
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})

	return &TLSResult{
		Mode:        TLSModeACME,
		TLSConfig:   manager.TLSConfig(),
		HTTPHandler: manager.HTTPHandler(redirect),
	}, nil
}

func setupManual(cfg *config.Config) (*TLSResult, error) {
	if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
		return nil, fmt.Errorf("manual TLS mode requires tls.cert_file and tls.key_file")
	}

	cert, err := tls.LoadX509KeyPair(cfg.TLS.CertFile, cfg.TLS.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}

	return &TLSResult{
		Mode: TLSModeManual,
		TLSConfig: &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		},
	}, nil
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// startTLSServer starts the Echo server with a custom TLS configuration.
func startTLSServer(e *echo.Echo, addr string, tlsConfig *tls.Config) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}
	e.TLSListener = tls.NewListener(ln, tlsConfig)
	e.TLSServer.TLSConfig = tlsConfig
	return e.Server.Serve(e.TLSListener)
}
