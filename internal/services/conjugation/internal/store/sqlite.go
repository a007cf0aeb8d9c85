package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS verbs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	infinitive  TEXT NOT NULL,
	lookup_key  TEXT NOT NULL UNIQUE,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS forms (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	verb_id     INTEGER NOT NULL REFERENCES verbs (id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	mood        TEXT NOT NULL,
	tense       TEXT NOT NULL,
	person      INTEGER NOT NULL CHECK (person BETWEEN 0 AND 5),
	gender      TEXT NOT NULL DEFAULT '',
	form        TEXT NOT NULL,
	UNIQUE (verb_id, position)
);
`

// OpenSQLite opens the embedded database at path, creating the file and schema when missing.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "conjugations.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single writer avoids SQLITE_BUSY on concurrent imports
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

func NewSQLiteStore(db *sql.DB) *SQLStore {
	return newSQLStore(db, dialect{
		name: "sqlite",
		isUnique: func(err error) bool {
			return isSQLiteConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE") ||
				isSQLiteConstraint(err, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, "PRIMARY KEY")
		},
		isForeign: func(err error) bool {
			return isSQLiteConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY")
		},
	})
}

// isSQLiteConstraint matches the extended result code, falling back to the
// primary code plus message when extended codes are not reported.
func isSQLiteConstraint(err error, extended int, keyword string) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}

	if se.Code() == extended {
		return true
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), keyword)
}
