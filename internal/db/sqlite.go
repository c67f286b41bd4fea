// Package db opens, hardens, and migrates the TireTrack SQLite database.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"
)

// defaultReadPoolSize is used when OpenSQLite("read") is called with
// maxOpen <= 0.
const defaultReadPoolSize = 4

// OpenSQLite opens one pool against the SQLite file at path.
//
// mode must be "write" or "read". The write pool is pinned to a single
// connection so every writer in the process is serialised; the read pool may
// hold up to maxOpen connections against the same WAL file.
func OpenSQLite(path, mode string, maxOpen int) (*sql.DB, error) {
	if mode != "read" && mode != "write" {
		return nil, fmt.Errorf("sqlite mode must be \"read\" or \"write\", got %q", mode)
	}

	pool, err := sql.Open("sqlite3", sqliteDSN(path, mode))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s pool: %w", mode, err)
	}

	if mode == "write" {
		pool.SetMaxOpenConns(1)
		pool.SetMaxIdleConns(1)
	} else {
		if maxOpen <= 0 {
			maxOpen = defaultReadPoolSize
		}
		pool.SetMaxOpenConns(maxOpen)
		pool.SetMaxIdleConns(maxOpen)
	}
	pool.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping sqlite %s pool: %w", mode, err)
	}
	return pool, nil
}

// OpenSQLitePair opens the write pool and the read pool the server uses for
// the same file. readMaxOpen <= 0 falls back to defaultReadPoolSize.
func OpenSQLitePair(path string, readMaxOpen int) (writeDB, readDB *sql.DB, err error) {
	writeDB, err = OpenSQLite(path, "write", 0)
	if err != nil {
		return nil, nil, err
	}
	readDB, err = OpenSQLite(path, "read", readMaxOpen)
	if err != nil {
		_ = writeDB.Close()
		return nil, nil, err
	}
	return writeDB, readDB, nil
}

func sqliteDSN(path, mode string) string {
	v := url.Values{}
	v.Set("_journal_mode", "WAL")
	v.Set("_busy_timeout", "5000")
	v.Set("_synchronous", "NORMAL")
	v.Set("_foreign_keys", "on")
	if mode == "write" {
		// Take the write lock at BEGIN so busy_timeout applies there
		// instead of surfacing as SQLITE_BUSY at COMMIT.
		v.Set("_txlock", "immediate")
	}
	return path + "?" + v.Encode()
}
