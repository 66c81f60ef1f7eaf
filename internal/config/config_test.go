// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_MissingJWTSecret(t *testing.T) {
	cfg := &Config{
		Auth: AuthConfig{TokenValidity: 168, OTPValidity: 10},
	}

	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)
}

func TestValidate_NonPositiveValidity(t *testing.T) {
	cfg := &Config{
		Auth: AuthConfig{JWTSecret: "secret", TokenValidity: 0, OTPValidity: 10},
	}
	assert.Error(t, cfg.Validate())

	cfg.Auth.TokenValidity = 168
	cfg.Auth.OTPValidity = -1
	assert.Error(t, cfg.Validate())
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{
		Auth: AuthConfig{JWTSecret: "secret", TokenValidity: 168, OTPValidity: 10},
	}

	assert.NoError(t, cfg.Validate())
}

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"", true},
		{"localhost", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"myapp.localhost", true},
		{"example.com", false},
		{"192.168.1.10", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLocalhost(tt.host))
		})
	}
}

func TestBuildBaseURL(t *testing.T) {
	tests := []struct {
		name string
		host string
		port int
		mode string
		want string
	}{
		{"localhost auto", "localhost", 8080, "auto", "http://localhost:8080"},
		{"public auto", "example.com", 443, "auto", "https://example.com"},
		{"acme ignores port", "example.com", 8080, "acme", "https://example.com"},
		{"off on public host", "example.com", 8080, "off", "http://example.com:8080"},
		{"default http port hidden", "localhost", 80, "off", "http://localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server: ServerConfig{Host: tt.host, Port: tt.port},
				TLS:    TLSConfig{Mode: tt.mode},
			}
			assert.Equal(t, tt.want, buildBaseURL(cfg))
		})
	}
}
