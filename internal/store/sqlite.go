// Package store persists last-known query results in a local sqlite
// database so the console can render immediately on the next start, before
// the first pull completes. Restored entries are primed stale and
// revalidated as usual.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/deparrow/console/internal/config"
	"github.com/deparrow/console/internal/logger"
	"github.com/deparrow/console/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectSQLite opens (and creates if needed) the snapshot database. The
// path ":memory:" keeps snapshots only for the lifetime of the process.
func NewConnectSQLite(ctx context.Context, cfg config.Storage, log *logger.Logger) (*DB, error) {
	path := cfg.SnapshotPath
	if path == "" {
		path = ":memory:"
	}
	if path != ":memory:" {
		if err := createLocalDBFileIfNotExists(path); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
			return nil, fmt.Errorf("error creating database file")
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to snapshot database")

	return &DB{DB: conn, logger: log}, nil
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
