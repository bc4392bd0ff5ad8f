// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteStore keeps the ledger in a single SQLite table.
type sqliteStore struct {
	db *sql.DB
}

func openSQLite(path string) (Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	s := &sqliteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

func (s *sqliteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS imported (
			collection TEXT NOT NULL,
			doi TEXT NOT NULL,
			imported_at TEXT NOT NULL,
			PRIMARY KEY (collection, doi)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Close releases the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// Imported reports whether doi was recorded for collection.
func (s *sqliteStore) Imported(collection, doi string) (bool, error) {
	doi = normalizeDOI(doi)
	if doi == "" {
		return false, nil
	}
	var n int
	err := s.db.QueryRow(
		`SELECT count(*) FROM imported WHERE collection = ? AND doi = ?`,
		collection, doi,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying ledger: %w", err)
	}
	return n > 0, nil
}

// MarkImported records doi for collection. Recording twice keeps the first
// timestamp.
func (s *sqliteStore) MarkImported(collection, doi string) error {
	doi = normalizeDOI(doi)
	if doi == "" {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO imported (collection, doi, imported_at) VALUES (?, ?, ?)
		ON CONFLICT(collection, doi) DO NOTHING`,
		collection, doi, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording %s in ledger: %w", doi, err)
	}
	return nil
}
