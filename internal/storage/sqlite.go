// Package storage provides a SQLite level library: imported level descriptors
// kept by ID so they can be played without the original file.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The library only stores descriptors. Runs and scores are never persisted.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-dash/internal/level"
)

// ErrNotFound is returned when no level has the requested ID.
var ErrNotFound = errors.New("storage: level not found")

// Store manages the SQLite database connection for the level library.
type Store struct {
	db *sql.DB
}

// LevelInfo describes a stored level without its descriptor bytes.
type LevelInfo struct {
	ID         string
	Title      string
	Format     level.Format
	Size       int
	ImportedAt time.Time
}

// LevelRecord is a stored level including the raw descriptor.
type LevelRecord struct {
	LevelInfo
	Data []byte
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS levels (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			format TEXT NOT NULL,
			data BLOB NOT NULL,
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ImportLevel validates a descriptor and stores it under id, replacing any
// level with the same ID. An empty title falls back to the descriptor's name,
// then to the ID. Invalid descriptors are rejected with their *level.Error.
func (s *Store) ImportLevel(id, title string, format level.Format, data []byte) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	spec, err := level.ParseFormat(data, format)
	if err != nil {
		return fmt.Errorf("storage: level %s: %w", id, err)
	}

	if title == "" {
		title = spec.Name()
	}
	if title == "" {
		title = id
	}

	_, err = s.db.Exec(
		`INSERT INTO levels (id, title, format, data, imported_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   format = excluded.format,
		   data = excluded.data,
		   imported_at = excluded.imported_at`,
		id, title, format.String(), data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save level %s: %w", id, err)
	}
	return nil
}

// LevelData returns the stored descriptor for id.
func (s *Store) LevelData(id string) (LevelRecord, error) {
	var rec LevelRecord
	var format string
	var importedAt any

	err := s.db.QueryRow(
		`SELECT id, title, format, data, imported_at FROM levels WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Title, &format, &rec.Data, &importedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return LevelRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return LevelRecord{}, fmt.Errorf("storage: cannot query level %s: %w", id, err)
	}

	rec.Format = level.FormatFromName(format)
	rec.Size = len(rec.Data)
	rec.ImportedAt = scanTime(importedAt)
	return rec, nil
}

// ListLevels returns every stored level, sorted by ID.
func (s *Store) ListLevels() ([]LevelInfo, error) {
	rows, err := s.db.Query(
		`SELECT id, title, format, length(data), imported_at
		 FROM levels
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var infos []LevelInfo
	for rows.Next() {
		var info LevelInfo
		var format string
		var importedAt any
		if err := rows.Scan(&info.ID, &info.Title, &format, &info.Size, &importedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.Format = level.FormatFromName(format)
		info.ImportedAt = scanTime(importedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// DeleteLevel removes a stored level.
func (s *Store) DeleteLevel(id string) error {
	res, err := s.db.Exec("DELETE FROM levels WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete level %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete level %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// ValidateID checks that id can be used as a library key and a CLI argument.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("storage: level ID is empty")
	}
	if strings.ContainsAny(id, `/\`) || strings.ContainsFunc(id, unicode.IsSpace) {
		return fmt.Errorf("storage: level ID %q must not contain slashes or spaces", id)
	}
	return nil
}

// scanTime handles both time.Time and string datetimes from the driver.
func scanTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
