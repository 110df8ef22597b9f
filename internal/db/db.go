package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var (
	mu     sync.Mutex
	db     *sql.DB
	dbPath string
)

// GetDB returns the shared database connection for path, opening and
// migrating it on first use. Subsequent calls with the same path reuse it.
func GetDB(path string) (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if db != nil {
		if path != dbPath {
			return nil, fmt.Errorf("database already open at %s, cannot switch to %s", dbPath, path)
		}
		return db, nil
	}

	conn, err := Open(path)
	if err != nil {
		return nil, err
	}
	db = conn
	dbPath = path
	return db, nil
}

// Open opens a database at path, creating its directory, and brings the
// schema up to date. Callers own the returned connection.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas are per connection, and SQLite allows a single writer anyway.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := InitSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return conn, nil
}

// Close closes the shared database connection
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	dbPath = ""
	return err
}
