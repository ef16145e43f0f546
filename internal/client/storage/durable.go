package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/dailykeep/internal/client/migrations"
	"github.com/dmitrijs2005/dailykeep/internal/client/repositories/kv"
	"github.com/dmitrijs2005/dailykeep/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// DurableFileName is the SQLite database file created inside the data dir.
const DurableFileName = "dailykeep.db"

// Durable is the SQLite-backed primary backend.
type Durable struct {
	*kv.SQLiteRepository
	db *sql.DB
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenDurable opens (or creates) the durable database in dataDir and
// migrates it. Pass ":memory:" for an in-memory database.
func OpenDurable(ctx context.Context, dataDir string) (*Durable, error) {
	dsn := ":memory:"
	if dataDir != ":memory:" {
		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, DurableFileName)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and avoids
	// "database is locked" errors between our own writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Durable{SQLiteRepository: kv.NewSQLiteRepository(db), db: db}, nil
}

// DurableOpener returns an Opener for OpenDurable(dataDir).
func DurableOpener(dataDir string) Opener {
	return func(ctx context.Context) (Backend, error) {
		d, err := OpenDurable(ctx, dataDir)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

// Restore upserts entries in a single transaction.
func (d *Durable) Restore(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, d.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return kv.NewSQLiteRepository(tx).SetMany(ctx, entries)
	})
}

// Close closes the underlying database.
func (d *Durable) Close() error {
	return d.db.Close()
}
