package storage

import (
	"path/filepath"
	"testing"

	"snowreport/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		url    string
		remote bool
	}{
		{"libsql://snow.turso.io", true},
		{"https://snow.turso.io", true},
		{"http://127.0.0.1:8080", true},
		{"wss://snow.turso.io", true},
		{":memory:", false},
		{"./data/snow.db", false},
		{"file:snow.db", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.remote, IsRemote(tt.url))
		})
	}
}

func TestOpen_EmptyURL(t *testing.T) {
	_, err := Open(structures.DatabaseConfig{})
	assert.Error(t, err)
}

func TestOpen_LocalFileCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snow.db")

	db, err := Open(structures.DatabaseConfig{URL: path})
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='estaciones'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "estaciones", name)

	// running the schema twice is harmless
	assert.NoError(t, Migrate(db))
}

func TestNewDatabase_Cleanup(t *testing.T) {
	conf := &structures.Config{Database: structures.DatabaseConfig{URL: ":memory:"}}

	db, cleanup, err := NewDatabase(conf)
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	cleanup()
	assert.Error(t, db.Ping())
}
