package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const dbFile = "clipkeep.db"

type Store struct {
	db      *sql.DB
	rootDir string
}

func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one writer keeps sqlite from returning SQLITE_BUSY between the
	// watcher and the command loop
	db.SetMaxOpenConns(1)

	s := &Store{db: db, rootDir: dataDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Path returns the database file location for a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, dbFile)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		name       TEXT PRIMARY KEY,
		body       TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveDocument replaces the named document with the JSON encoding of v.
func (s *Store) SaveDocument(name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO documents (name, body, updated_at) VALUES (?, ?, ?)",
		name, string(body), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// LoadDocument decodes the named document into v. It reports false when the
// document has never been saved.
func (s *Store) LoadDocument(name string, v any) (bool, error) {
	doc, err := s.GetDocument(name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(doc.Body), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

func (s *Store) GetDocument(name string) (*Document, error) {
	var doc Document
	err := s.db.QueryRow(
		"SELECT name, body, updated_at FROM documents WHERE name = ?", name,
	).Scan(&doc.Name, &doc.Body, &doc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Store) DeleteDocument(name string) error {
	_, err := s.db.Exec("DELETE FROM documents WHERE name = ?", name)
	return err
}

func (s *Store) ListDocuments() ([]DocumentInfo, error) {
	rows, err := s.db.Query(
		"SELECT name, length(body), updated_at FROM documents ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []DocumentInfo
	for rows.Next() {
		var d DocumentInfo
		if err := rows.Scan(&d.Name, &d.Size, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
