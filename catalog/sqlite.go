package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore reads catalog records from the marketplace's SQLite database.
// Field values are stored as a JSON object in the fields column; the id
// column doubles as the pagination sort key.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	source_lang TEXT NOT NULL DEFAULT 'en',
	fields      TEXT NOT NULL
);`

// NewSQLiteStore opens (and if necessary initializes) the catalog database
// at the given path. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing catalog schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Put inserts or replaces a record. Used for seeding and tests; the
// translation service itself never writes.
func (s *SQLiteStore) Put(ctx context.Context, r Record) error {
	fields, err := json.Marshal(r.Fields)
	if err != nil {
		return fmt.Errorf("encoding fields: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO products (id, source_lang, fields) VALUES (?, ?, ?)`,
		r.ID, r.SourceLang, string(fields))
	return err
}

// GetByID implements Store.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_lang, fields FROM products WHERE id = ?`, id)

	r, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ScanPage implements Store using keyset pagination, never a full scan.
func (s *SQLiteStore) ScanPage(ctx context.Context, afterID string, limit int) ([]Record, string, error) {
	// Fetch one extra row to learn whether the scan is exhausted.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_lang, fields FROM products WHERE id > ? ORDER BY id LIMIT ?`,
		afterID, limit+1)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, "", err
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	nextID := ""
	if len(records) > limit {
		records = records[:limit]
		nextID = records[len(records)-1].ID
	}
	return records, nextID, nil
}

func scanRecord(scan func(dest ...any) error) (*Record, error) {
	var r Record
	var fields string
	if err := scan(&r.ID, &r.SourceLang, &fields); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(fields), &r.Fields); err != nil {
		return nil, fmt.Errorf("decoding fields for %s: %w", r.ID, err)
	}
	return &r, nil
}

// Verify SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
