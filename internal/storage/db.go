package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"snowreport/internal/structures"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS estaciones (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slug TEXT NOT NULL,
    remontes_abiertos TEXT,
    remontes_totales TEXT,
    kilometros_abiertos TEXT,
    kilometros_totales TEXT,
    nieve TEXT,
    timestamp TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_estaciones_slug_timestamp ON estaciones(slug, timestamp);
CREATE INDEX IF NOT EXISTS idx_estaciones_timestamp ON estaciones(timestamp);
`

var remoteSchemes = []string{"libsql://", "https://", "http://", "wss://", "ws://"}

// IsRemote reports whether the URL points at a hosted libSQL server rather
// than a local database file.
func IsRemote(dbURL string) bool {
	for _, scheme := range remoteSchemes {
		if strings.HasPrefix(dbURL, scheme) {
			return true
		}
	}
	return false
}

// Open connects to the configured database and makes sure the table exists.
func Open(conf structures.DatabaseConfig) (*sql.DB, error) {
	if conf.URL == "" {
		return nil, fmt.Errorf("database url was not specified")
	}

	var (
		db  *sql.DB
		err error
	)
	if IsRemote(conf.URL) {
		dsn := conf.URL
		if conf.AuthToken != "" {
			values := url.Values{}
			values.Add("authToken", conf.AuthToken)
			dsn += "?" + values.Encode()
		}
		db, err = sql.Open("libsql", dsn)
	} else {
		db, err = openLocal(conf.URL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func openLocal(path string) (*sql.DB, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer; in-memory databases are also per connection
	db.SetMaxOpenConns(1)
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL: %w", err)
		}
	}
	return db, nil
}

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// NewDatabase is the injector-facing constructor; the returned cleanup closes
// the pool.
func NewDatabase(conf *structures.Config) (*sql.DB, func(), error) {
	db, err := Open(conf.Database)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}
