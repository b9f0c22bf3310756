package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// ExportJSON writes all entries to w as an indented JSON array, newest
// first. The format is the interchange form for moving history between
// machines.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	entries, err := s.all(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("export history: %w", err)
	}
	return nil
}

// ImportJSON reads a JSON array of entries from r and appends each one.
// Entries already present (by request hash) are skipped. Returns the number
// of entries actually imported.
func (s *Store) ImportJSON(ctx context.Context, r io.Reader) (int, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return 0, fmt.Errorf("import history: %w", err)
	}

	imported := 0
	for _, e := range entries {
		written, err := s.Append(ctx, e)
		if err != nil {
			return imported, err
		}
		if written {
			imported++
		}
	}
	return imported, nil
}

func (s *Store) all(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, request_hash, request_json, sql_text, preview, favorite, label
		FROM entries
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("all entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}
