package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesSkipsRollbacks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"0002_add_index.sql",
		"0001_create_search_logs.sql",
		"0001_create_search_logs_rollback.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.sql"), 0o755))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_create_search_logs.sql", "0002_add_index.sql"}, files)
}

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, "0001", migrationVersion("0001_create_search_logs.sql"))
	assert.Equal(t, "0003", migrationVersion("0003.sql"))
}

func TestRepositoryMigrationsHaveRollbacks(t *testing.T) {
	dir := filepath.Join("..", "..", "migrations")
	files, err := migrationFiles(dir)
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		rollback := filepath.Join(dir, file[:len(file)-len(".sql")]+"_rollback.sql")
		_, err := os.Stat(rollback)
		assert.NoError(t, err, "missing rollback for %s", file)
	}
}
