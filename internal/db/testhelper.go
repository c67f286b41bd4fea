package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// OpenTestSQLite opens a fully migrated write/read pool pair on a database
// file under t.TempDir(). Both pools are closed on cleanup. Tests that never
// exercise the pool split can ignore readDB and use writeDB throughout.
func OpenTestSQLite(t *testing.T) (writeDB, readDB *sql.DB) {
	t.Helper()

	writeDB, readDB, err := OpenSQLitePair(filepath.Join(t.TempDir(), "tiretrack.sqlite"), 0)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = readDB.Close()
		_ = writeDB.Close()
	})

	if err := RunMigrations(writeDB); err != nil {
		t.Fatalf("migrate test sqlite: %v", err)
	}
	return writeDB, readDB
}
