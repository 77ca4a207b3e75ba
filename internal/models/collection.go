package models

import (
	"time"

	"github.com/google/uuid"
)

type Collection struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CollectionRef is the resolved form of a snippet's collection reference:
// just enough to render the collection without a second lookup.
type CollectionRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
