// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_InMemory(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	// Migrations ran and created the schema.
	for _, table := range []string{"users", "otp_codes", "notes"} {
		var count int
		err := db.Get(&count,
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s missing", table)
	}
}

func TestAddDefaultParams(t *testing.T) {
	dsn := addDefaultParams("./data/app.db")
	assert.Contains(t, dsn, "_txlock=immediate")
	assert.Contains(t, dsn, "_busy_timeout=5000")
	assert.Contains(t, dsn, "_foreign_keys=on")

	// Existing parameters are kept as given.
	dsn = addDefaultParams("./data/app.db?_busy_timeout=100")
	assert.Contains(t, dsn, "_busy_timeout=100")
	assert.NotContains(t, dsn, "_busy_timeout=5000")
}
