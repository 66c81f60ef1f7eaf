// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/oliverandrich/sparknest/internal/services/auth"
)

func TestGenerateOTP_Width(t *testing.T) {
	for range 100 {
		code, err := auth.GenerateOTP()
		require.NoError(t, err)

		assert.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGenerateOTP_NotConstant(t *testing.T) {
	seen := make(map[string]struct{})
	for range 50 {
		code, err := auth.GenerateOTP()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}

	// 50 draws from 900000 values landing on a single code would mean
	// the generator is broken.
	assert.Greater(t, len(seen), 1)
}
