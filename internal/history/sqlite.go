package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/elenchus/socratic-tutor/backend/internal/model/dialogue"
)

// SQLiteStore is the durable Store implementation: a single key-value table
// in an embedded database file. It stands in for the browser's local storage
// and keeps its semantics: whole-value overwrite, last writer wins.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the store database under baseDir.
// The baseDir parameter lets tests point at t.TempDir().
func OpenSQLite(baseDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	dbPath := filepath.Join(baseDir, "history.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS store (
	  key        TEXT PRIMARY KEY,
	  value      TEXT NOT NULL,
	  updated_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap history schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the stored transcript for the identity. Absent rows, read
// failures, and malformed values all degrade to an empty transcript; read
// failures are logged, never surfaced.
func (s *SQLiteStore) Load(identityID string) ([]dialogue.Turn, error) {
	raw, ok, err := s.get(transcriptKey(identityID))
	if err != nil {
		log.Printf("[history] load failed for %s, degrading to empty: %v", identityID, err)
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return decodeTurns(raw), nil
}

// Save overwrites the stored transcript for the identity.
func (s *SQLiteStore) Save(identityID string, turns []dialogue.Turn) error {
	raw, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	return s.put(transcriptKey(identityID), raw)
}

// Delete removes the identity's transcript. Invoked on logout.
func (s *SQLiteStore) Delete(identityID string) error {
	_, err := s.db.Exec(`DELETE FROM store WHERE key = ?`, transcriptKey(identityID))
	return err
}

// LoadCurrent returns the persisted login selection, if any.
func (s *SQLiteStore) LoadCurrent() (Selection, bool, error) {
	raw, ok, err := s.get(currentIdentityKey)
	if err != nil || !ok {
		return Selection{}, false, err
	}
	var sel Selection
	if err := json.Unmarshal(raw, &sel); err != nil || !sel.Identity.Valid() {
		return Selection{}, false, nil
	}
	return sel, true, nil
}

// SaveCurrent persists the login selection.
func (s *SQLiteStore) SaveCurrent(sel Selection) error {
	raw, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	return s.put(currentIdentityKey, raw)
}

// ClearCurrent removes the login selection.
func (s *SQLiteStore) ClearCurrent() error {
	_, err := s.db.Exec(`DELETE FROM store WHERE key = ?`, currentIdentityKey)
	return err
}

func (s *SQLiteStore) get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *SQLiteStore) put(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO store (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().Unix(),
	)
	return err
}
