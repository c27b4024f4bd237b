package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Schema DDL for the snapshot table. body holds the entity dictionary as
// JSON; kind duplicates its __class__ tag for inspection with the sqlite3
// shell.
const createObjects = `CREATE TABLE IF NOT EXISTS objects (
    key TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    body TEXT NOT NULL
);`

// SQLiteFile stores the snapshot as one row per entity in a SQLite
// database. Every Store replaces all rows in a single transaction.
type SQLiteFile struct {
	path string
}

// NewSQLiteFile returns a backend using the database at path.
func NewSQLiteFile(path string) *SQLiteFile {
	return &SQLiteFile{path: path}
}

// Path returns the database file path.
func (s *SQLiteFile) Path() string { return s.path }

func (s *SQLiteFile) String() string { return "sqlite:" + s.path }

func (s *SQLiteFile) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	if _, err := db.Exec(createObjects); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

// Load reads every row. A missing database file is reported as ok=false
// with no error and is not created.
func (s *SQLiteFile) Load() (Snapshot, bool, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("stat %s: %w", s.path, err)
	}

	db, err := s.open()
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT key, body FROM objects")
	if err != nil {
		return nil, false, fmt.Errorf("querying objects: %w", err)
	}
	defer rows.Close()

	snap := Snapshot{}
	for rows.Next() {
		var key, body string
		if err := rows.Scan(&key, &body); err != nil {
			return nil, false, fmt.Errorf("scanning object: %w", err)
		}
		rec, err := decodeRecord([]byte(body))
		if err != nil {
			return nil, false, fmt.Errorf("decoding %s: %w", key, err)
		}
		snap[key] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating objects: %w", err)
	}
	return snap, true, nil
}

// Store replaces all rows with the entries of snap.
func (s *SQLiteFile) Store(snap Snapshot) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning store transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM objects"); err != nil {
		return fmt.Errorf("clearing objects: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO objects (key, kind, body) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		rec := snap[key]
		body, err := encodeRecord(rec)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", key, err)
		}
		kind, _ := rec[types.KeyKind].(string)
		if _, err := stmt.Exec(key, kind, string(body)); err != nil {
			return fmt.Errorf("inserting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing store transaction: %w", err)
	}
	return nil
}
