package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaPerDriver(t *testing.T) {
	sqlite, err := Schema(DriverSQLite)
	require.NoError(t, err)
	assert.Contains(t, sqlite, "CREATE TABLE IF NOT EXISTS items")
	assert.Contains(t, sqlite, "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, sqlite, "INTEGER PRIMARY KEY")

	pg, err := Schema(DriverPostgres)
	require.NoError(t, err)
	assert.Contains(t, pg, "BIGSERIAL PRIMARY KEY")
	assert.False(t, strings.Contains(pg, "INTEGER PRIMARY KEY"))

	_, err = Schema("mysql")
	assert.Error(t, err)
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	database := NewTestDB(t)

	require.NoError(t, EnsureSchema(database, DriverSQLite))

	for _, table := range Tables {
		var count int
		err := database.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count)
		require.NoError(t, err, table)
		assert.Zero(t, count, table)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "x")
	assert.ErrorContains(t, err, "unsupported database driver")
}
