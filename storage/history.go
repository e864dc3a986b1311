package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const createHistorySQL = `
CREATE TABLE IF NOT EXISTS history (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	slot     TEXT NOT NULL,
	saved_at INTEGER NOT NULL,
	snapshot BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS history_slot ON history (slot, id);`

// HistoryLimit is how many snapshots are kept per slot
const HistoryLimit = 20

// Snapshot is a compact progress record kept alongside each save
type Snapshot struct {
	SavedAt   time.Time `msgpack:"t" json:"savedAt"`
	Stage     int       `msgpack:"stage" json:"stage"`
	Level     int       `msgpack:"level" json:"level"`
	Bits      float64   `msgpack:"bits" json:"bits"`
	Prestige  float64   `msgpack:"prestige" json:"prestige"`
	BossKills int       `msgpack:"kills" json:"bossKills"`
	Playtime  float64   `msgpack:"playtime" json:"playtime"`
}

// AppendHistory stores snap for slot and prunes beyond HistoryLimit
func (s *SQLiteStore) AppendHistory(ctx context.Context, slot string, snap Snapshot) error {
	blob, err := msgpack.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO history (slot, saved_at, snapshot) VALUES (?, ?, ?)",
		slot, snap.SavedAt.UnixMilli(), blob); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM history WHERE slot = ? AND id NOT IN (
			SELECT id FROM history WHERE slot = ? ORDER BY id DESC LIMIT ?
		)`, slot, slot, HistoryLimit); err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return tx.Commit()
}

// History returns the slot's snapshots, newest first
func (s *SQLiteStore) History(ctx context.Context, slot string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT snapshot FROM history WHERE slot = ? ORDER BY id DESC", slot)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		var snap Snapshot
		if err := msgpack.Unmarshal(blob, &snap); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
