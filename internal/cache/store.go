package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kennyfrc/llmctx/internal/codemap"
)

const schema = `
CREATE TABLE IF NOT EXISTS parse_results (
	path       TEXT NOT NULL,
	sum        TEXT NOT NULL,
	entries    TEXT NOT NULL,
	run_id     TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (path)
);
`

// Store is the persistent tier: one row per path, replaced whenever the
// content digest changes. Rows carry the run that produced them.
type Store struct {
	db    *sql.DB
	runID string
}

// OpenStore opens (and if needed initializes) the SQLite store at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parse cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create parse cache schema: %w", err)
	}
	return &Store{db: db, runID: uuid.NewString()}, nil
}

// Get returns the stored entries for path when the digest still matches.
func (s *Store) Get(path, sum string) ([]codemap.Entry, bool, error) {
	var stored string
	var payload []byte
	err := s.db.QueryRow(
		"SELECT sum, entries FROM parse_results WHERE path = ?", path,
	).Scan(&stored, &payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if stored != sum {
		return nil, false, nil
	}

	var entries []codemap.Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

// Put upserts the entries for path at the given digest.
func (s *Store) Put(path, sum string, entries []codemap.Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO parse_results (path, sum, entries, run_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			sum = excluded.sum,
			entries = excluded.entries,
			run_id = excluded.run_id,
			updated_at = excluded.updated_at`,
		path, sum, string(payload), s.runID, time.Now().Unix())
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
