package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Recent returns the n most recently created entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, request_hash, request_json, sql_text, preview, favorite, label
		FROM entries
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("recent entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Favorites returns all saved queries, newest first.
func (s *Store) Favorites(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, request_hash, request_json, sql_text, preview, favorite, label
		FROM entries
		WHERE favorite = 1
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("favorite entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Get returns a single entry by id.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, request_hash, request_json, sql_text, preview, favorite, label
		FROM entries
		WHERE id = ?
	`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return Entry{}, fmt.Errorf("no entry with id %s", id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var createdAt, requestJSON string
	var favorite int
	if err := row.Scan(&e.ID, &createdAt, &e.RequestHash, &requestJSON, &e.SQL, &e.Preview, &favorite, &e.Label); err != nil {
		return Entry{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	e.CreatedAt = t

	if err := json.Unmarshal([]byte(requestJSON), &e.Request); err != nil {
		return Entry{}, fmt.Errorf("unmarshal request: %w", err)
	}
	e.Favorite = favorite != 0
	return e, nil
}
