// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import "net/mail"

const minPasswordLength = 8

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func validOTPCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
