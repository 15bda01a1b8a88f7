// Package database keeps the rebuild history and task progress in SQLite.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/a2zdsa/atlas/db/migrations"
	"github.com/a2zdsa/atlas/internal/config"
	sqldb "github.com/a2zdsa/atlas/internal/database/sqlc"

	// Import SQLite driver for database/sql
	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

// Context holds the database connection and query interface.
type Context struct {
	DB      *sql.DB
	Queries *sqldb.Queries
}

// CreateDatabase opens the atlas database at dbPath (the configured path when
// empty, or ":memory:") and brings its schema up to date.
func CreateDatabase(dbPath string) (*Context, error) {
	path := dbPath
	if path == "" {
		path = config.GetDBPath()
	}

	dsn, err := dataSourceName(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", path, err)
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Context{
		DB:      db,
		Queries: sqldb.New(db),
	}, nil
}

// dataSourceName builds the modernc DSN. A rebuild and a running server may
// share the file, so writers wait on the lock instead of failing.
func dataSourceName(path string) (string, error) {
	if path == memoryPath {
		return "file::memory:?cache=shared", nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o750); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", filepath.ToSlash(absPath)), nil
}

// CloseDatabase closes the database connection.
func CloseDatabase(ctx *Context) error {
	if ctx == nil || ctx.DB == nil {
		return nil
	}
	return ctx.DB.Close()
}

// InTx runs fn with queries bound to one transaction, committing when fn
// returns nil and rolling back otherwise.
func (c *Context) InTx(ctx context.Context, fn func(q *sqldb.Queries) error) error {
	if c == nil || c.DB == nil {
		return ErrNoConnection
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(queriesFromContext(c).WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback error: %w)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ClearDatabase forgets all rebuild history and task progress.
func ClearDatabase(ctx *Context) error {
	if ctx == nil || ctx.DB == nil {
		return nil
	}

	return ctx.InTx(context.Background(), func(q *sqldb.Queries) error {
		bg := context.Background()
		if err := q.DeleteAllProgress(bg); err != nil {
			return fmt.Errorf("failed to delete task_progress: %w", err)
		}
		if err := q.DeleteAllRuns(bg); err != nil {
			return fmt.Errorf("failed to delete rebuild_runs: %w", err)
		}
		return nil
	})
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to initialise migrate driver: %w", err)
	}

	source, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	defer func() {
		_ = source.Close()
	}()

	migrator, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
