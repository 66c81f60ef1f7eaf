// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package email sends verification codes over SMTP.
package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"codeberg.org/oliverandrich/sparknest/internal/config"
)

const verificationBody = `Welcome to SparkNest!

Your verification code is:

    %s

The code expires in %d minutes. If you didn't request it, you can
ignore this email.
`

// Service sends transactional mail via SMTP using go-mail.
type Service struct {
	cfg        *config.SMTPConfig
	otpMinutes int
}

// NewService creates a new email service. Host and from address are
// required; everything else has workable defaults.
func NewService(cfg *config.SMTPConfig, otpMinutes int) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{cfg: cfg, otpMinutes: otpMinutes}, nil
}

// SendVerificationCode delivers a signup verification code. Failures
// are returned to the caller; there is no retry here.
func (s *Service) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	subject := "SparkNest - Email Verification Code"
	body := fmt.Sprintf(verificationBody, code, s.otpMinutes)
	return s.send(ctx, toEmail, subject, body)
}

// send sends an email via SMTP.
func (s *Service) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS for port 465, STARTTLS for others
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
