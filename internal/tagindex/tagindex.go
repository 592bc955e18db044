// Package tagindex maintains the device-to-tag reverse index in SQLite.
//
// The index is derived data: the authoritative tag record is the marker file
// in the per-device metadata directory, and losing or deleting the index
// database never corrupts the store. It exists so "which devices carry tag
// X" does not require scanning every metadata directory.
package tagindex

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// Index is a SQLite-backed tag/device reverse index.
type Index struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if necessary) the index database at dbPath. Use
// ":memory:" for an in-memory index in tests.
func Open(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	idx := &Index{db: db}
	if err := idx.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return idx, nil
}

func (i *Index) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS device_tags (
		tag TEXT NOT NULL,
		device_id TEXT NOT NULL,
		PRIMARY KEY (tag, device_id)
	);
	CREATE INDEX IF NOT EXISTS idx_device_id ON device_tags(device_id);
	`
	_, err := i.db.Exec(schema)
	return err
}

// Add records that deviceID carries tag. Re-adding an existing pair is a
// no-op.
func (i *Index) Add(ctx context.Context, tag, deviceID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	_, err := i.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO device_tags (tag, device_id) VALUES (?, ?)",
		tag, deviceID,
	)
	if err != nil {
		return fmt.Errorf("insert tag pair: %w", err)
	}
	return nil
}

// RemoveDevice drops every tag association of deviceID, typically on a
// remove event. Removing an unknown device is a no-op.
func (i *Index) RemoveDevice(ctx context.Context, deviceID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	_, err := i.db.ExecContext(ctx,
		"DELETE FROM device_tags WHERE device_id = ?", deviceID)
	if err != nil {
		return fmt.Errorf("delete device tags: %w", err)
	}
	return nil
}

// DevicesForTag returns the ids of all devices carrying tag, sorted.
func (i *Index) DevicesForTag(ctx context.Context, tag string) ([]string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	rows, err := i.db.QueryContext(ctx,
		"SELECT device_id FROM device_tags WHERE tag = ? ORDER BY device_id", tag)
	if err != nil {
		return nil, fmt.Errorf("query devices for tag: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

// TagsForDevice returns all tags carried by deviceID, sorted.
func (i *Index) TagsForDevice(ctx context.Context, deviceID string) ([]string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	rows, err := i.db.QueryContext(ctx,
		"SELECT tag FROM device_tags WHERE device_id = ? ORDER BY tag", deviceID)
	if err != nil {
		return nil, fmt.Errorf("query tags for device: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (i *Index) Close() error {
	return i.db.Close()
}
