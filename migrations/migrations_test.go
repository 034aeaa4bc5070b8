package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionsSorted(t *testing.T) {
	files := fstest.MapFS{
		"010_late.sql":  {Data: []byte("SELECT 1;")},
		"002_b.sql":     {Data: []byte("SELECT 1;")},
		"001_a.sql":     {Data: []byte("SELECT 1;")},
		"README.md":     {Data: []byte("docs")},
		"sub/003_x.sql": {Data: []byte("SELECT 1;")},
	}
	got, err := versions(files)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql", "010_late.sql"}, got)
}

func TestEmbeddedMigrations(t *testing.T) {
	got, err := versions(Files)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_users_disasters.sql", "002_activity_logs.sql"}, got)
}
