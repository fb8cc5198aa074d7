package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectStatements(t *testing.T) {
	t.Run("mysql makes short_id case sensitive", func(t *testing.T) {
		stmts := dialectStatements(DriverMySQL)
		require.Len(t, stmts, 1)
		assert.Contains(t, stmts[0], "short_id")
		assert.Contains(t, stmts[0], "COLLATE utf8mb4_bin")
		assert.Contains(t, stmts[0], "VARCHAR(64)")
	})

	t.Run("postgres compares text byte-wise already", func(t *testing.T) {
		assert.Empty(t, dialectStatements(DriverPostgres))
	})
}
