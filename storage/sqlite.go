package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const createSavesSQL = `
CREATE TABLE IF NOT EXISTS saves (
	slot     TEXT PRIMARY KEY,
	data     BLOB NOT NULL,
	saved_at INTEGER NOT NULL
);`

const upsertSaveSQL = `
INSERT INTO saves (slot, data, saved_at)
VALUES (?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
	data = excluded.data,
	saved_at = excluded.saved_at;`

// SQLiteStore keeps one row per slot
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and ensures the schema
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY under the saver
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(createSavesSQL); err != nil {
		return fmt.Errorf("create saves table: %w", err)
	}
	if _, err := s.db.Exec(createHistorySQL); err != nil {
		return fmt.Errorf("create history table: %w", err)
	}
	return nil
}

// Save upserts the slot
func (s *SQLiteStore) Save(ctx context.Context, slot string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertSaveSQL, slot, data, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("save slot %q: %w", slot, err)
	}
	return nil
}

// Load returns the slot's document
func (s *SQLiteStore) Load(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM saves WHERE slot = ?", slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", slot, err)
	}
	return data, nil
}

// List returns slots sorted by name
func (s *SQLiteStore) List(ctx context.Context) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT slot, length(data), saved_at FROM saves ORDER BY slot")
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var out []Slot
	for rows.Next() {
		var (
			sl      Slot
			savedAt int64
		)
		if err := rows.Scan(&sl.Name, &sl.Size, &savedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		sl.SavedAt = time.UnixMilli(savedAt)
		out = append(out, sl)
	}
	return out, rows.Err()
}

// Close releases the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
