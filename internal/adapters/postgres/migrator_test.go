package postgres

import (
	"testing"
	"testing/fstest"

	"recommendation-service/internal/adapters/postgres/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrationsSortsByName(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_second.sql": {Data: []byte("SELECT 2;")},
		"0001_first.sql":  {Data: []byte("SELECT 1;")},
		"notes.txt":       {Data: []byte("ignored")},
	}

	got, err := LoadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0001_first", got[0].Version)
	assert.Equal(t, "SELECT 1;", got[0].SQL)
	assert.Equal(t, "0002_second", got[1].Version)
}

func TestEmbeddedMigrations(t *testing.T) {
	got, err := LoadMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "0001_init", got[0].Version)
	for _, m := range got {
		assert.Contains(t, m.SQL, "IF NOT EXISTS")
	}
}

func TestPendingSkipsApplied(t *testing.T) {
	all := []Migration{{Version: "0001"}, {Version: "0002"}, {Version: "0003"}}
	got := pending(all, map[string]bool{"0001": true, "0003": true})
	require.Len(t, got, 1)
	assert.Equal(t, "0002", got[0].Version)
}
