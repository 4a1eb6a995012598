package models

import (
	"time"

	"github.com/google/uuid"
)

// PriceImport records one price-table import and its outcome.
// Processed is false when the file could not be applied.
type PriceImport struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"fileName"`
	StoredPath string    `json:"storedPath"`
	CreatedAt  time.Time `json:"createdAt"`
	Processed  bool      `json:"processed"`
	Error      string    `json:"error,omitempty"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
}
