package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cobranza/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"add weekly cut index", "add_weekly_cut_index"},
		{"Add-Ventanilla  ID", "add_ventanilla_id"},
		{"__trim me__", "trim_me"},
		{"v2 (pre-cuts)", "v2_pre_cuts"},
		{"¡¿", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in), tt.in)
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "create cuts", "daily cut table")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_cuts.up.sql"), first.UpPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- create cuts")
	assert.Contains(t, string(up), "-- daily cut table")

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")

	second, err := CreateMigration(dir, "add folio index", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	list, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "000001_create_cuts", list[0].Name)
	assert.Equal(t, "000002_add_folio_index", list[1].Name)

	_, err = CreateMigration(dir, "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations_MissingDir(t *testing.T) {
	list, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := filepath.Glob("../../../migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		name := filepath.Base(up)
		down := name[:len(name)-len(".up.sql")] + ".down.sql"
		_, err := migrations.FS.Open(name)
		assert.NoError(t, err, name)
		_, err = migrations.FS.Open(down)
		assert.NoError(t, err, down)
	}
}
