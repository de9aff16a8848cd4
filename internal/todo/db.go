package todo

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Both backends register under the same driver name: modernc.org/sqlite on
// native targets, the host-provided driver on js/wasm (see db_native.go and
// db_js.go).
const driverName = "sqlite"

// created_at columns hold SQLite datetime('now') text, UTC, second precision.
const timeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE todo_lists (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE todo_items (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	list_id      INTEGER NOT NULL REFERENCES todo_lists(id) ON DELETE CASCADE,
	description  TEXT NOT NULL,
	is_completed INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX idx_todo_items_list ON todo_items(list_id);
`

// Open opens (creating if necessary) the todo database at path and returns a
// connection handle ready for the repository functions in this package.
//
// The schema is applied only when the file does not yet exist; there is no
// migration mechanism. If applying the schema to a fresh file fails, the file
// and any ancillary -wal/-shm files are removed so the next attempt starts
// clean.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	path, fresh, err := prepareDatabaseFile(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// The app owns a single long-lived handle; no pooling.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", p, err)
		}
	}

	if fresh {
		if err := ApplySchema(ctx, db); err != nil {
			_ = db.Close()
			removeDatabaseFiles(path)
			return nil, fmt.Errorf("applying schema to new database file: %w", err)
		}
	}

	return db, nil
}

// ApplySchema creates the tables. It must run exactly once against a new
// database; re-running against an existing one is unsupported.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
