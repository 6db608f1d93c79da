// Package database sets up/opens the media info cache database.
package database

import (
	"database/sql"
	"fmt"

	"vidpick/internal/utils/logging"

	// Package sqlite3 provides interface to SQLite3 databases.
	_ "github.com/mattn/go-sqlite3"
)

const (
	dbDriver = "sqlite3"
)

// Database holds the cache database instance for vidpick.
type Database struct {
	DB *sql.DB
}

// InitDB opens (creating if needed) the cache database at path.
func InitDB(path string) (d *Database, err error) {
	d = new(Database)
	d.DB, err = sql.Open(dbDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}

	// Enable Write-Ahead Logging for concurrent access
	if _, err := d.DB.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Allow SQLite to wait for locks (in milliseconds)
	if _, err := d.DB.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}

	// Slightly reduce fsync frequency for faster writes
	if _, err := d.DB.Exec(`PRAGMA synchronous = NORMAL;`); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if err := d.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return d, nil
}

// Close closes the underlying database handle.
func (d *Database) Close() error {
	return d.DB.Close()
}

// initTables initializes the SQL tables.
func (d *Database) initTables() error {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Panic rollback failed for table creation: %v", rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Rollback failed for table creation: %v", rbErr)
			}
		}
	}()

	if err = initMediaInfoTable(tx); err != nil {
		return err
	}

	return tx.Commit()
}
