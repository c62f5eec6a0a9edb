// Package store persists entities in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite handle. All methods are safe for concurrent
// use; SQLite serializes writers itself.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates or opens the database at dbPath and ensures the schema.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS admin_users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		image_url TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		designation TEXT NOT NULL,
		description TEXT NOT NULL,
		image_url TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		mobile TEXT NOT NULL,
		city TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS subscriptions (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Collections whose records carry an image_url column. The rebase job
// iterates exactly these.
const (
	CollectionProjects = "projects"
	CollectionClients  = "clients"
)

// ImageRow is the slice of a record the rebase job needs.
type ImageRow struct {
	ID  string
	URL string
}

// ImageRows returns id/image_url pairs for an image-bearing collection.
func (s *Store) ImageRows(ctx context.Context, collection string) ([]ImageRow, error) {
	if collection != CollectionProjects && collection != CollectionClients {
		return nil, fmt.Errorf("collection %q has no image column", collection)
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT id, image_url FROM %s ORDER BY created_at DESC", collection))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ImageRow
	for rows.Next() {
		var r ImageRow
		if err := rows.Scan(&r.ID, &r.URL); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SetImageURL rewrites a single record's image_url in place.
func (s *Store) SetImageURL(ctx context.Context, collection, id, url string) error {
	if collection != CollectionProjects && collection != CollectionClients {
		return fmt.Errorf("collection %q has no image column", collection)
	}
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET image_url = ?, updated_at = ? WHERE id = ?", collection),
		url, now(), id)
	return err
}
