package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/waferq/waferq/internal/request"
)

// Entry is one generated query in the history.
type Entry struct {
	// ID is a UUIDv7, so entries sort by creation time.
	ID string `json:"id"`

	// CreatedAt is the generation time in UTC.
	CreatedAt time.Time `json:"created_at"`

	// RequestHash is the canonical content hash of Request.
	RequestHash string `json:"request_hash"`

	// Request is the request that produced the query.
	Request request.Request `json:"request"`

	// SQL and Preview are the assembler's output, stored verbatim.
	SQL     string `json:"sql"`
	Preview string `json:"preview"`

	// Favorite marks a saved query; Label is its optional display name.
	Favorite bool   `json:"favorite,omitempty"`
	Label    string `json:"label,omitempty"`
}

// NewEntry builds a history entry for an assembled query, computing the
// canonical request hash and a fresh UUIDv7 id.
func NewEntry(req request.Request, sqlText, preview string) (Entry, error) {
	hash, err := request.CanonicalHash(req)
	if err != nil {
		return Entry{}, fmt.Errorf("new entry: %w", err)
	}
	return Entry{
		ID:          uuid.Must(uuid.NewV7()).String(),
		CreatedAt:   time.Now().UTC(),
		RequestHash: hash,
		Request:     req,
		SQL:         sqlText,
		Preview:     preview,
	}, nil
}

// marshalRequest serializes the request for storage.
func marshalRequest(req request.Request) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	return string(b), nil
}
