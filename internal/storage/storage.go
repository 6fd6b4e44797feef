/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a backup id does not exist.
var ErrNotFound = errors.New("backup not found")

// Backup is a snapshot of a configuration file taken before it was overwritten.
type Backup struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Note      string    `json:"note"`
}

// BackupMeta is a Backup without its content.
// Used for listing when the snapshot text is not needed
type BackupMeta struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	Note      string    `json:"note"`
	Size      int       `json:"size"`
}

type Storage struct {
	db         *sql.DB
	maxEntries int
}

// DefaultPath returns ~/.config/grubtamer/backups.db.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "grubtamer", "backups.db"), nil
}

func New(dbPath string, maxEntries int) (*Storage, error) {
	if dbPath == "" {
		var err error
		if dbPath, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if maxEntries <= 0 {
		maxEntries = 50
	}

	s := &Storage{
		db:         db,
		maxEntries: maxEntries,
	}

	if err := s.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return s, nil
}

func (s *Storage) createTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS backups (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			note TEXT DEFAULT ''
		)
	`
	if _, err := s.db.Exec(query); err != nil {
		return err
	}

	_, err := s.db.Exec("CREATE INDEX IF NOT EXISTS idx_backups_path ON backups(path, created_at)")
	return err
}

// Add stores a snapshot of path. When the newest snapshot of the same
// path already holds identical content only its timestamp and note are
// refreshed. The returned id identifies the stored row.
func (s *Storage) Add(path, content, note string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("backup path must not be empty")
	}

	var latestID, latestContent string
	query := "SELECT id, content FROM backups WHERE path = ? ORDER BY created_at DESC, id DESC LIMIT 1"
	err := s.db.QueryRow(query, path).Scan(&latestID, &latestContent)
	switch {
	case err == nil && latestContent == content:
		_, err := s.db.Exec("UPDATE backups SET created_at = ?, note = ? WHERE id = ?", time.Now(), note, latestID)
		return latestID, err
	case err != nil && err != sql.ErrNoRows:
		return "", err
	}

	id := fmt.Sprintf("%d", time.Now().UnixNano())
	insert := "INSERT INTO backups (id, path, content, created_at, note) VALUES (?, ?, ?, ?, ?)"
	if _, err := s.db.Exec(insert, id, path, content, time.Now(), note); err != nil {
		return "", err
	}

	// Keep only the latest maxEntries snapshots of this path
	deleteQuery := `
		DELETE FROM backups
		WHERE path = ? AND id NOT IN (
			SELECT id FROM backups
			WHERE path = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)
	`
	if _, err := s.db.Exec(deleteQuery, path, path, s.maxEntries); err != nil {
		return id, err
	}

	return id, nil
}

// List returns snapshot metadata newest first. An empty path lists all files.
func (s *Storage) List(path string) []BackupMeta {
	query := "SELECT id, path, created_at, note, LENGTH(content) FROM backups"
	var args []any
	if path != "" {
		query += " WHERE path = ?"
		args = append(args, path)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return []BackupMeta{}
	}
	defer rows.Close()

	var items []BackupMeta
	for rows.Next() {
		var item BackupMeta
		if err := rows.Scan(&item.ID, &item.Path, &item.CreatedAt, &item.Note, &item.Size); err != nil {
			continue
		}
		items = append(items, item)
	}

	return items
}

func (s *Storage) Get(id string) (*Backup, error) {
	query := "SELECT id, path, content, created_at, note FROM backups WHERE id = ?"
	return s.scanOne(s.db.QueryRow(query, id))
}

// Latest returns the newest snapshot of path.
func (s *Storage) Latest(path string) (*Backup, error) {
	query := "SELECT id, path, content, created_at, note FROM backups WHERE path = ? ORDER BY created_at DESC, id DESC LIMIT 1"
	return s.scanOne(s.db.QueryRow(query, path))
}

func (s *Storage) scanOne(row *sql.Row) (*Backup, error) {
	var b Backup
	err := row.Scan(&b.ID, &b.Path, &b.Content, &b.CreatedAt, &b.Note)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Count returns the number of stored snapshots of path, or of all paths.
func (s *Storage) Count(path string) int {
	var count int
	var err error
	if path == "" {
		err = s.db.QueryRow("SELECT COUNT(*) FROM backups").Scan(&count)
	} else {
		err = s.db.QueryRow("SELECT COUNT(*) FROM backups WHERE path = ?", path).Scan(&count)
	}
	if err != nil {
		return 0
	}
	return count
}

func (s *Storage) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM backups WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
