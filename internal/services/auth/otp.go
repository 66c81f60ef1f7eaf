// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// otpSpan covers the six-digit range 100000–999999.
var otpSpan = big.NewInt(900000)

// GenerateOTP produces a uniformly random six-digit verification code.
// Codes come from crypto/rand so they cannot be predicted within their
// validity window.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpan)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
