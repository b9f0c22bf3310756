package history

import (
	"context"
	"fmt"
	"time"
)

// Append inserts a history entry.
//
// Uses ON CONFLICT(request_hash) DO NOTHING for deduplication - regenerating
// an identical request is silently ignored. Returns true when a new row was
// actually written.
func (s *Store) Append(ctx context.Context, e Entry) (bool, error) {
	requestJSON, err := marshalRequest(e.Request)
	if err != nil {
		return false, fmt.Errorf("append entry: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO entries
		(id, created_at, request_hash, request_json, sql_text, preview, favorite, label)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(request_hash) DO NOTHING
	`,
		e.ID,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
		e.RequestHash,
		requestJSON,
		e.SQL,
		e.Preview,
		boolToInt(e.Favorite),
		e.Label,
	)
	if err != nil {
		return false, fmt.Errorf("append entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("append entry: %w", err)
	}
	return rows > 0, nil
}

// SetFavorite marks or unmarks an entry as a saved query. The label is
// stored only when marking; unmarking clears it.
func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool, label string) error {
	if !favorite {
		label = ""
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE entries SET favorite = ?, label = ? WHERE id = ?`,
		boolToInt(favorite), label, id,
	)
	if err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("set favorite: no entry with id %s", id)
	}
	return nil
}

// Delete removes an entry. Deleting a missing id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
