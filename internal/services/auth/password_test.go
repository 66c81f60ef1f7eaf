// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/oliverandrich/sparknest/internal/services/auth"
)

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("pw12345678")

	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "pw12345678", hash)
}

func TestCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("pw12345678")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword("pw12345678", hash))
	assert.False(t, auth.CheckPassword("wrong-password", hash))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, auth.CheckPassword("pw12345678", "not-a-bcrypt-hash"))
	assert.False(t, auth.CheckPassword("pw12345678", ""))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	h1, err := auth.HashPassword("pw12345678")
	require.NoError(t, err)
	h2, err := auth.HashPassword("pw12345678")
	require.NoError(t, err)

	// Same password, different salt, different hash; both verify.
	assert.NotEqual(t, h1, h2)
	assert.True(t, auth.CheckPassword("pw12345678", h1))
	assert.True(t, auth.CheckPassword("pw12345678", h2))
}
