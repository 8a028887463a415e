// Package sqlite provides SQLite-based storage for the documentation
// index, including the ranked full-text search capability.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// maxOpenConns bounds the connection pool. Every query operation draws
// its own connection from the pool, so concurrent readers never share
// cursor state; WAL mode lets them proceed in parallel.
const maxOpenConns = 8

// DB represents a SQLite database connection pool.
type DB struct {
	db   *sql.DB
	path string
	fts  bool
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database, creates the schema if needed, and probes for
// the FTS5 capability.
func (db *DB) Open() error {
	dsn := db.path
	if db.path != ":memory:" {
		// Pragmas go through the DSN so every pooled connection gets
		// them, not just the one that ran an Exec.
		// WAL allows concurrent readers during the index build; the
		// busy timeout prevents immediate "database is locked" errors
		// under write contention.
		dsn = "file:" + db.path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)"
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if db.path == ":memory:" {
		// Each pooled connection would otherwise get its own empty
		// in-memory database.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(maxOpenConns)
	}

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// FTSEnabled reports whether the ranked full-text capability is
// available. Its absence is not an error; search degrades to substring
// matching.
func (db *DB) FTSEnabled() bool {
	return db.fts
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the tables if they don't exist and sets the FTS
// capability flag.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS pages (
			id INTEGER PRIMARY KEY,
			path TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			last_modified TEXT NOT NULL
		);
	`
	if _, err := db.db.Exec(schema); err != nil {
		return err
	}

	// FTS5 is a capability, not a requirement: builds without it fall
	// back to substring search.
	fts := `
		CREATE VIRTUAL TABLE IF NOT EXISTS pages_fts USING fts5(
			title, content, url, content=pages, content_rowid=id
		);
	`
	if _, err := db.db.Exec(fts); err == nil {
		db.fts = true
	}

	return nil
}
