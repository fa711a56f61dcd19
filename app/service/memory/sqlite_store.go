package memory

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var _ Store = (*SQLiteStore)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS identity (
	id   INTEGER PRIMARY KEY CHECK (id = 1),
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS taught_responses (
	position INTEGER PRIMARY KEY,
	question TEXT NOT NULL UNIQUE,
	answer   TEXT NOT NULL
);
`

// SQLiteStore keeps both documents as tables of one database file.
// Saving the responses replaces the table contents inside a single transaction.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) LoadIdentity() (string, error) {
	var name string

	err := s.db.QueryRow(`SELECT name FROM identity WHERE id = 1`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load identity: %w", err)
	}

	return name, nil
}

func (s *SQLiteStore) SaveIdentity(name string) error {
	_, err := s.db.Exec(`INSERT INTO identity (id, name) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name`, name)
	if err != nil {
		return fmt.Errorf("failed to save identity: %w", err)
	}

	return nil
}

func (s *SQLiteStore) DeleteIdentity() error {
	if _, err := s.db.Exec(`DELETE FROM identity`); err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}

	return nil
}

func (s *SQLiteStore) LoadResponses() (*Responses, error) {
	rows, err := s.db.Query(`SELECT question, answer FROM taught_responses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	responses := NewResponses()
	for rows.Next() {
		var question, answer string
		if err = rows.Scan(&question, &answer); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses.Set(question, answer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading responses: %w", err)
	}

	return responses, nil
}

func (s *SQLiteStore) SaveResponses(responses *Responses) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec(`DELETE FROM taught_responses`); err != nil {
		return fmt.Errorf("failed to clear responses: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO taught_responses (position, question, answer) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	position := 0
	for p := responses.Oldest(); p != nil; p = p.Next() {
		if _, err = stmt.Exec(position, p.Key, p.Value); err != nil {
			return fmt.Errorf("failed to insert response: %w", err)
		}
		position++
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit responses: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
