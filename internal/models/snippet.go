package models

import (
	"time"

	"github.com/google/uuid"
)

type Snippet struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Code        string    `json:"code"`
	Language    string    `json:"language"`
	Explanation *string   `json:"explanation,omitempty"`
	Tags        []string  `json:"tags"`
	IsFavorite  bool      `json:"isFavorite"`
	UserID      uuid.UUID `json:"user_id"`
	// CollectionID is the raw reference; Collection is its resolved form
	// and is nil when the referenced collection no longer exists.
	CollectionID uuid.UUID      `json:"collection_id"`
	Collection   *CollectionRef `json:"collection"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
