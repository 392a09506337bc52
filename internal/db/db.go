package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/martinezmaria/sqlalchemy-challenge/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

// ErrMissingTable is returned by VerifyTables when the store lacks a table
// the service queries.
var ErrMissingTable = errors.New("missing table")

// Open opens the climate store read-only. The file must already exist: the
// service never creates or migrates it.
func Open(cfg config.Config) (*sql.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = buildDSN(cfg.Path, true)
	}

	var (
		db  *sql.DB
		err error
	)
	if cfg.LogSQL {
		connector, connErr := NewLoggingConnector(dsn, slog.Default())
		if connErr != nil {
			return nil, fmt.Errorf("db connector: %w", connErr)
		}
		db = sql.OpenDB(connector)
	} else {
		db, err = sql.Open(cfg.Driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns >= 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// Validate connectivity early
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping %s: %w", cfg.Path, err)
	}

	return db, nil
}

// OpenWritable opens (creating if needed) a file-backed store for schema
// tooling.
func OpenWritable(path string) (*sql.DB, error) {
	if !strings.HasPrefix(path, "file:") {
		dir := filepath.Dir(path)
		if dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", buildDSN(path, false))
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// VerifyTables checks that every named table exists in the store.
func VerifyTables(ctx context.Context, db *sql.DB, tables ...string) error {
	for _, table := range tables {
		var n int
		err := db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&n)
		if err != nil {
			return fmt.Errorf("lookup table %q: %w", table, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %q", ErrMissingTable, table)
		}
	}
	return nil
}

func buildDSN(path string, readOnly bool) string {
	params := []string{"_busy_timeout=5000"}
	if readOnly {
		// mode=ro makes a missing file an open error instead of an empty db.
		params = append(params, "mode=ro", "_query_only=true")
	} else {
		// Rollback journal, not WAL: read-only consumers of a WAL file need
		// write access to its -shm sidecar.
		params = append(params, "_foreign_keys=on")
	}

	// If caller provided something like "file:/data/app.db?x=y" as Path, don't double-wrap
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&")
	}

	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&"))
}
