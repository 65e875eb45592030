// Package database provides read-only connection management for the
// databases under examination.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "modernc.org/sqlite"             // pure-Go SQLite driver

	"github.com/dfirlab/goevidence/internal/config"
)

// Handle wraps an open read-only connection to a single database under
// examination. The handle is exclusively owned by one extraction run;
// nothing here protects against concurrent writers because forensic
// images are read-only artifacts.
type Handle struct {
	DB     *sql.DB
	Driver string // "sqlite" or "mysql"
	Name   string // file path (sqlite) or DSN host/schema (mysql), for logs
}

// Open establishes a connection according to the source configuration.
func Open(ctx context.Context, cfg *config.SourceConfig) (*Handle, error) {
	switch cfg.Driver {
	case "sqlite":
		return OpenSQLite(ctx, cfg.Path)
	case "mysql":
		return OpenMySQL(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// OpenSQLite opens a SQLite database file read-only.
// A missing file is reported up front rather than surfacing later as an
// opaque driver error on the first query.
func OpenSQLite(ctx context.Context, path string) (*Handle, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database file not accessible: %w", err)
	}

	db, err := sql.Open("sqlite", BuildSQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single connection keeps table and row iteration order stable
	// across the whole run, which the output determinism depends on.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}

	return &Handle{DB: db, Driver: "sqlite", Name: path}, nil
}

// OpenMySQL connects to a MySQL server with retry and exponential backoff.
func OpenMySQL(ctx context.Context, dsn string) (*Handle, error) {
	var db *sql.DB
	var err error

	maxRetries := 3
	backoff := time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			if pingErr := db.PingContext(ctx); pingErr == nil {
				db.SetMaxOpenConns(2)
				db.SetConnMaxLifetime(10 * time.Minute)
				return &Handle{DB: db, Driver: "mysql", Name: dsn}, nil
			} else {
				db.Close()
				err = pingErr
			}
		}

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2 // Exponential backoff
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d retries: %w", maxRetries, err)
}

// BuildSQLiteDSN constructs a read-only SQLite DSN for the given file path.
func BuildSQLiteDSN(path string) string {
	return "file:" + path + "?mode=ro"
}

// Close closes the underlying connection.
func (h *Handle) Close() error {
	if h == nil || h.DB == nil {
		return nil
	}
	if err := h.DB.Close(); err != nil {
		return fmt.Errorf("close %s: %w", h.Name, err)
	}
	return nil
}
